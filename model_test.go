package bpe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRuleString(t *testing.T) {
	assert.Equal(t, "#0 a + n => an", rule("a", "n", 0).String())
	assert.Equal(t, "#3 a + \\u20 => a\\u20", rule("a", " ", 3).String())
	assert.Equal(t, PairKey{"a", "n"}, rule("a", "n", 0).Pair())
}

func TestModelCopies(t *testing.T) {
	m := trainFruits(t, 100)
	merges := m.Merges()
	merges[0].Merged = "x"
	assert.Equal(t, Symbol("an"), m.Merges()[0].Merged)

	symbols := m.Vocabulary().Symbols()
	symbols[0] = "x"
	assert.Equal(t, Symbol("a"), m.Vocabulary().Symbols()[0])
}

func TestVocabulary(t *testing.T) {
	v := trainFruits(t, 12).Vocabulary()
	assert.Equal(t, 12, v.Len())
	id, ok := v.ID("anana")
	assert.True(t, ok)
	assert.Equal(t, 11, id)
	sym, ok := v.Symbol(id)
	assert.True(t, ok)
	assert.Equal(t, Symbol("anana"), sym)
	id, ok = v.ID("z")
	assert.False(t, ok)
	assert.Equal(t, Unknown, id)
	assert.False(t, v.Contains("banana"))

	var empty *Vocabulary
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.Contains("a"))
	assert.Nil(t, empty.Symbols())
}
