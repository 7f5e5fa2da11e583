package bpe

type entry struct {
	word string
	freq int
}

// Corpus is the word frequency index of a training run.
//
// Entries keep insertion order. Add appends instead of merging into an
// existing entry, so a word may appear more than once; Frequency reports
// the first one.
type Corpus struct {
	entries []entry
	first   map[string]int // word => index of its first entry
}

func newCorpus(size int) *Corpus {
	return &Corpus{
		entries: make([]entry, 0, size),
		first:   make(map[string]int, size),
	}
}

// NewCorpus returns an empty corpus to be filled with Add.
func NewCorpus() *Corpus {
	return newCorpus(0)
}

// CountWords counts every distinct word, entries ordered by first occurrence.
func CountWords(words []string) *Corpus {
	c := newCorpus(len(words)/4 + 1)
	for _, w := range words {
		if i, ok := c.first[w]; ok {
			c.entries[i].freq++
			continue
		}
		c.first[w] = len(c.entries)
		c.entries = append(c.entries, entry{word: w, freq: 1})
	}
	return c
}

// Add appends a (word, freq) entry. Non-positive frequencies are dropped.
func (c *Corpus) Add(word string, freq int) {
	if freq < 1 {
		return
	}
	if c.first == nil {
		c.first = make(map[string]int)
	}
	if _, ok := c.first[word]; !ok {
		c.first[word] = len(c.entries)
	}
	c.entries = append(c.entries, entry{word: word, freq: freq})
}

// Frequency returns the frequency of the first entry for word, or 0.
func (c *Corpus) Frequency(word string) int {
	i, ok := c.first[word]
	if !ok {
		return 0
	}
	return c.entries[i].freq
}

func (c *Corpus) Len() int {
	return len(c.entries)
}

func (c *Corpus) Total() int {
	var n int
	for _, e := range c.entries {
		n += e.freq
	}
	return n
}

func (c *Corpus) Range(fn func(word string, freq int)) {
	for _, e := range c.entries {
		fn(e.word, e.freq)
	}
}

// Words returns the distinct words in insertion order.
func (c *Corpus) Words() []string {
	ret := make([]string, 0, len(c.first))
	for i, e := range c.entries {
		if c.first[e.word] == i {
			ret = append(ret, e.word)
		}
	}
	return ret
}

// Map collapses the corpus into a map, a later duplicate overriding an
// earlier one.
func (c *Corpus) Map() map[string]int {
	ret := make(map[string]int, len(c.entries))
	for _, e := range c.entries {
		ret[e.word] = e.freq
	}
	return ret
}
