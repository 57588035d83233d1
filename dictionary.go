package wordpack

import (
	"sort"
	"strings"
)

// An Order determines how a RepeatSelector assigns identifiers.
type Order int

const (
	// ByFrequency puts the most frequent words first, so they get the
	// shortest references. Ties are broken by comparing the words.
	ByFrequency Order = iota

	// FirstSeen assigns identifiers in the order the words first appear in
	// the document.
	FirstSeen
)

func (o Order) String() string {
	switch o {
	case ByFrequency:
		return "frequency"
	case FirstSeen:
		return "first-seen"
	default:
		return "unknown"
	}
}

// ParseOrder converts the name of an Order back into its value.
func ParseOrder(s string) (Order, bool) {
	switch s {
	case "frequency", "":
		return ByFrequency, true
	case "first-seen":
		return FirstSeen, true
	}
	return ByFrequency, false
}

// RepeatSelector is the default Selector. It picks every word that occurs
// more than once, except for words that could not be stored safely in the
// header or told apart from a reference.
type RepeatSelector struct {
	// MinCount is the minimum number of occurrences for a word to be
	// selected. Values below 2 are treated as 2.
	MinCount int

	// MinLength is the minimum length in bytes of a selected word.
	// 0 means no minimum.
	MinLength int

	Order Order
}

// Eligible reports whether a word that occurs count times belongs in the
// dictionary.
func (s RepeatSelector) Eligible(word string, count int) bool {
	minCount := s.MinCount
	if minCount < 2 {
		minCount = 2
	}
	return count >= minCount && len(word) >= s.MinLength && Storable(word)
}

func (s RepeatSelector) Select(dst []string, f *Frequencies) []string {
	start := len(dst)
	for _, w := range f.Words() {
		if s.Eligible(w, f.Count(w)) {
			dst = append(dst, w)
		}
	}
	if s.Order == ByFrequency {
		chosen := dst[start:]
		sort.SliceStable(chosen, func(i, j int) bool {
			ci, cj := f.Count(chosen[i]), f.Count(chosen[j])
			if ci != cj {
				return ci > cj
			}
			return chosen[i] < chosen[j]
		})
	}
	return dst
}

// A Dictionary maps words to identifiers and back. A word's identifier is its
// position in the dictionary.
type Dictionary struct {
	words []string
	ids   map[string]int
}

// NewDictionary returns a Dictionary holding words, in order.
func NewDictionary(words []string) *Dictionary {
	d := &Dictionary{
		words: words,
		ids:   make(map[string]int, len(words)),
	}
	for i, w := range words {
		if _, ok := d.ids[w]; !ok {
			d.ids[w] = i
		}
	}
	return d
}

// BuildDictionary counts the words of text and lets s choose the dictionary.
// A nil s means RepeatSelector{}. Words that cannot be stored in the header
// are dropped from the selection.
func BuildDictionary(text string, s Selector) *Dictionary {
	if s == nil {
		s = RepeatSelector{}
	}
	return NewDictionary(storable(s.Select(nil, CountWords(text))))
}

// storable filters words in place, keeping the first occurrence of each
// word that Storable accepts.
func storable(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := words[:0]
	for _, w := range words {
		if Storable(w) && !seen[w] {
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// ID returns the identifier of word, if it is in the dictionary.
func (d *Dictionary) ID(word string) (int, bool) {
	id, ok := d.ids[word]
	return id, ok
}

// Word returns the word with identifier id, if there is one.
func (d *Dictionary) Word(id int) (string, bool) {
	if id < 0 || id >= len(d.words) {
		return "", false
	}
	return d.words[id], true
}

// Len returns the number of words in the dictionary.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns the dictionary words in identifier order.
func (d *Dictionary) Words() []string {
	return d.words
}

// Header returns the dictionary as it is stored between the two framing
// markers: the words in identifier order, separated by spaces.
func (d *Dictionary) Header() string {
	return strings.Join(d.words, " ")
}

// AppendHeader appends the framed header, including both markers, to dst.
func (d *Dictionary) AppendHeader(dst []byte) []byte {
	dst = append(dst, Marker)
	for i, w := range d.words {
		if i != 0 {
			dst = append(dst, ' ')
		}
		dst = append(dst, w...)
	}
	return append(dst, Marker)
}
