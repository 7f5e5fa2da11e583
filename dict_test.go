package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeedVocabulary(t *testing.T) {
	got := SeedVocabulary(fruits)
	assert.Equal(t, []Symbol{"a", "b", "e", "g", "l", "m", "n", "o", "p"}, got)
	assert.Empty(t, SeedVocabulary(nil))
	assert.Equal(t, []Symbol{"é", "日"}, SeedVocabulary([]string{"日é", "é"}))
}

func TestDict(t *testing.T) {
	d := newDict([]Symbol{"b", "a", "b"})
	assert.Equal(t, 2, d.Size())
	id, ok := d.ID("a")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	assert.False(t, d.add("a"))
	assert.True(t, d.add("ab"))
	sym, ok := d.Symbol(2)
	assert.True(t, ok)
	assert.Equal(t, Symbol("ab"), sym)
	_, ok = d.Symbol(3)
	assert.False(t, ok)
	_, ok = d.Symbol(-1)
	assert.False(t, ok)
}
