package wordpack

import "strings"

// Lines splits text into lines. Lines end at '\n'; a '\r' before the '\n' is
// dropped, and a final newline does not start another line. Empty text has no
// lines.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Normalize joins the lines of text with single '\n' characters. Encoding
// and decoding preserve normalized text exactly.
func Normalize(text string) string {
	return strings.Join(Lines(text), "\n")
}

// forEachWord calls f with each space-separated word of line, including the
// empty words between consecutive spaces.
func forEachWord(line string, f func(i int, word string)) {
	i := 0
	for {
		n := strings.IndexByte(line, ' ')
		if n < 0 {
			f(i, line)
			return
		}
		f(i, line[:n])
		line = line[n+1:]
		i++
	}
}
