package wordpack

import "strconv"

// An Encoder replaces repeated words with references into a dictionary
// stored at the start of its output.
//
// An Encoder holds no state between calls, so it may be used by several
// goroutines at once.
type Encoder struct {
	// Selector chooses the dictionary. A nil Selector means RepeatSelector{}.
	Selector Selector
}

// Encode appends the encoded form of src to dst and returns dst.
// Encoding never fails; empty input produces "@@".
func (e *Encoder) Encode(dst []byte, src []byte) []byte {
	text := string(src)
	d := BuildDictionary(text, e.selector())
	return d.AppendBody(d.AppendHeader(dst), text)
}

// EncodeString is like Encode, but works on strings.
func (e *Encoder) EncodeString(text string) string {
	d := BuildDictionary(text, e.selector())
	b := make([]byte, 0, len(text)+2)
	return string(d.AppendBody(d.AppendHeader(b), text))
}

func (e *Encoder) selector() Selector {
	if e == nil || e.Selector == nil {
		return RepeatSelector{}
	}
	return e.Selector
}

// Encode encodes text with the default Encoder.
func Encode(text string) string {
	var e Encoder
	return e.EncodeString(text)
}

// AppendBody appends the body of the encoded form of text to dst, using d
// for substitutions.
func (d *Dictionary) AppendBody(dst []byte, text string) []byte {
	for i, line := range Lines(text) {
		if i != 0 {
			dst = append(dst, '\n')
		}
		forEachWord(line, func(j int, word string) {
			if j != 0 {
				dst = append(dst, ' ')
			}
			dst = d.appendWord(dst, word)
		})
	}
	return dst
}

func (d *Dictionary) appendWord(dst []byte, word string) []byte {
	if id, ok := d.ids[word]; ok {
		dst = append(dst, Marker)
		return strconv.AppendInt(dst, int64(id), 10)
	}
	if word != "" && word[0] == Marker {
		dst = append(dst, Marker)
	}
	return append(dst, word...)
}
