// The wordpack package is a dictionary-substitution codec for text.
//
// Encoding counts the words of a document, picks the ones that repeat, and
// stores them once in a header at the start of the output. Every occurrence
// in the body is then replaced with a short reference:
//
//	@the cat sat@@0 cat @1
//
// The header is framed by two markers. In the body, a marker followed by
// decimal digits refers to a dictionary word; a marker followed by anything
// else is an escaped literal. Decoding reverses the transform exactly.
//
// The work is split the same way as in most dictionary coders: something
// that decides which words go in the dictionary (a Selector), and something
// that writes the document format (Encoder and Decoder).
package wordpack

import "strings"

// Marker is the character that frames the dictionary header and prefixes
// references and escapes in the body.
const Marker = '@'

// A Selector chooses the dictionary for a document.
type Selector interface {
	// Select appends the words that should be replaced with references to
	// dst, in identifier order, and returns dst. Words for which Storable
	// reports false, and repeats of earlier words, are dropped by the
	// encoder, and the identifiers of the remaining words close up.
	Select(dst []string, f *Frequencies) []string
}

// Storable reports whether word can be stored in the dictionary header.
// The word must not be empty, made only of ASCII digits, or contain the
// Marker or a space.
func Storable(word string) bool {
	return word != "" && !allDigits(word) && strings.IndexByte(word, Marker) < 0 && strings.IndexByte(word, ' ') < 0
}

// IsReference reports whether word is a reference token: a Marker followed
// by one or more ASCII digits.
func IsReference(word string) bool {
	return len(word) > 1 && word[0] == Marker && allDigits(word[1:])
}

// IsEncoded reports whether text looks like an encoded document, i.e. whether
// its first character is the Marker.
func IsEncoded(text []byte) bool {
	return len(text) > 0 && text[0] == Marker
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
