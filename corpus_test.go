package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fruits = []string{"apple", "mango", "banana", "banana", "banana", "banana", "mango", "mango"}

func TestCountWords(t *testing.T) {
	c := CountWords(fruits)
	assert.Equal(t, map[string]int{"apple": 1, "mango": 3, "banana": 4}, c.Map())
	assert.Equal(t, []string{"apple", "mango", "banana"}, c.Words())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, len(fruits), c.Total())
}

func TestCountWordsTotal(t *testing.T) {
	for _, words := range [][]string{
		nil,
		{"a"},
		{"a", "a", "a"},
		{"x", "y", "x", "z", "y", "x"},
		fruits,
	} {
		c := CountWords(words)
		var sum int
		for _, w := range c.Words() {
			sum += c.Frequency(w)
		}
		assert.Equal(t, len(words), sum, "words %v", words)
	}
}

func TestFrequencyAbsent(t *testing.T) {
	c := CountWords(fruits)
	assert.Equal(t, 0, c.Frequency("kiwi"))
	assert.Equal(t, 0, c.Frequency(""))
	assert.Equal(t, 0, NewCorpus().Frequency("apple"))
}

// Add appends even when the word exists; lookups keep returning the
// first entry while Map lets the last one win.
func TestAddAppendsDuplicate(t *testing.T) {
	c := CountWords(fruits)
	c.Add("mango", 10)
	assert.Equal(t, 4, c.Len())
	assert.Equal(t, 3, c.Frequency("mango"))
	assert.Equal(t, 10, c.Map()["mango"])
	assert.Equal(t, []string{"apple", "mango", "banana"}, c.Words())
	assert.Equal(t, len(fruits)+10, c.Total())

	var got []int
	c.Range(func(word string, freq int) {
		if word == "mango" {
			got = append(got, freq)
		}
	})
	assert.Equal(t, []int{3, 10}, got)
}

func TestAddIgnoresNonPositive(t *testing.T) {
	c := NewCorpus()
	c.Add("kiwi", 0)
	c.Add("kiwi", -2)
	require.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Frequency("kiwi"))

	c.Add("kiwi", 2)
	assert.Equal(t, 2, c.Frequency("kiwi"))
}

func TestCorpusZeroValue(t *testing.T) {
	var c Corpus
	c.Add("a", 1)
	assert.Equal(t, 1, c.Frequency("a"))
}
