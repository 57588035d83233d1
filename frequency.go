package wordpack

// Frequencies holds the number of times each distinct word occurs in a
// document, along with the order in which the words were first seen.
type Frequencies struct {
	counts map[string]int
	order  []string
}

// CountWords scans text line by line, splits each line on the space
// character, and counts every word. Consecutive spaces produce empty words,
// which are counted like any other.
func CountWords(text string) *Frequencies {
	f := &Frequencies{counts: make(map[string]int)}
	for _, line := range Lines(text) {
		forEachWord(line, func(_ int, word string) {
			f.Add(word)
		})
	}
	return f
}

// Add records one occurrence of word.
func (f *Frequencies) Add(word string) {
	if f.counts == nil {
		f.counts = make(map[string]int)
	}
	if _, ok := f.counts[word]; !ok {
		f.order = append(f.order, word)
	}
	f.counts[word]++
}

// Count returns the number of occurrences of word.
func (f *Frequencies) Count(word string) int {
	return f.counts[word]
}

// Len returns the number of distinct words.
func (f *Frequencies) Len() int {
	return len(f.order)
}

// Words returns the distinct words in the order they were first seen.
// The slice must not be modified.
func (f *Frequencies) Words() []string {
	return f.order
}
