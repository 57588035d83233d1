package wordpack

import (
	"fmt"
	"strconv"
	"strings"
)

// Annotate produces a human-readable view of an encoded document. References
// are replaced with <id:word> symbols, missing ones with <id:?>, and escaped
// literals are shown unescaped. It is meant for inspecting what the encoder
// chose, not for decoding.
func Annotate(doc string) (string, error) {
	header, body, err := split([]byte(doc))
	if err != nil {
		return "", err
	}
	d := NewDictionary(parseHeader(string(header)))

	var b strings.Builder
	fmt.Fprintf(&b, "dictionary: %d words\n", d.Len())
	for i, line := range strings.Split(string(body), "\n") {
		if i != 0 {
			b.WriteByte('\n')
		}
		forEachWord(line, func(j int, word string) {
			if j != 0 {
				b.WriteByte(' ')
			}
			if !IsReference(word) {
				if word != "" && word[0] == Marker {
					word = word[1:]
				}
				b.WriteString(word)
				return
			}
			id, err := strconv.Atoi(word[1:])
			if err != nil {
				id = -1
			}
			if w, ok := d.Word(id); ok {
				fmt.Fprintf(&b, "<%d:%s>", id, w)
			} else {
				fmt.Fprintf(&b, "<%s:?>", word[1:])
			}
		})
	}
	return b.String(), nil
}
