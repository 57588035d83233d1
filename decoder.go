package wordpack

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
)

// ErrFraming is returned (wrapped in a *FramingError) when a document does
// not have the two markers around its dictionary header.
var ErrFraming = errors.New("wordpack: missing dictionary header")

// A FramingError describes why a document could not be framed.
type FramingError struct {
	Markers int // the number of markers found
}

func (e *FramingError) Error() string {
	return "wordpack: missing dictionary header: found " + strconv.Itoa(e.Markers) + " of 2 markers"
}

func (e *FramingError) Unwrap() error {
	return ErrFraming
}

// A Decoder turns encoded documents back into text.
type Decoder struct {
	// OnMiss, if not nil, is called for each reference that does not
	// resolve to a dictionary word. The reference decodes to an empty word.
	// id is -1 if the reference is too large to parse.
	OnMiss func(id int)
}

// Decode appends the decoded form of src to dst and returns dst. It returns a
// *FramingError if src does not contain a dictionary header; unresolved
// references are not errors.
func (dec *Decoder) Decode(dst []byte, src []byte) ([]byte, error) {
	header, body, err := split(src)
	if err != nil {
		return dst, err
	}
	d := NewDictionary(parseHeader(string(header)))
	for i, line := range strings.Split(string(body), "\n") {
		if i != 0 {
			dst = append(dst, '\n')
		}
		forEachWord(line, func(j int, word string) {
			if j != 0 {
				dst = append(dst, ' ')
			}
			dst = append(dst, dec.resolve(d, word)...)
		})
	}
	return dst, nil
}

// DecodeString is like Decode, but works on strings.
func (dec *Decoder) DecodeString(doc string) (string, error) {
	b, err := dec.Decode(make([]byte, 0, 2*len(doc)), []byte(doc))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode decodes doc with the default Decoder.
func Decode(doc string) (string, error) {
	var dec Decoder
	return dec.DecodeString(doc)
}

// ParseHeader returns the dictionary stored in the header of an encoded
// document.
func ParseHeader(src []byte) (*Dictionary, error) {
	header, _, err := split(src)
	if err != nil {
		return nil, err
	}
	return NewDictionary(parseHeader(string(header))), nil
}

// split separates an encoded document into its header and body. Anything
// before the first marker is ignored.
func split(src []byte) (header, body []byte, err error) {
	first := bytes.IndexByte(src, Marker)
	if first < 0 {
		return nil, nil, &FramingError{Markers: 0}
	}
	rest := src[first+1:]
	second := bytes.IndexByte(rest, Marker)
	if second < 0 {
		return nil, nil, &FramingError{Markers: 1}
	}
	return rest[:second], rest[second+1:], nil
}

func parseHeader(header string) []string {
	var words []string
	for _, w := range strings.Split(header, " ") {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func (dec *Decoder) resolve(d *Dictionary, word string) string {
	if word == "" || word[0] != Marker {
		return word
	}
	rest := word[1:]
	if !allDigits(rest) {
		// An escaped literal, either "@@..." or a legacy "@<non-digit>...".
		return rest
	}
	id, err := strconv.Atoi(rest)
	if err != nil {
		id = -1
	}
	w, ok := d.Word(id)
	if !ok && dec.OnMiss != nil {
		dec.OnMiss(id)
	}
	return w
}
