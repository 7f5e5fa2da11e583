package bpe

import "fmt"

// MergeRule replaces the adjacent pair (Left, Right) with Merged. Rank is
// the position in which the rule was learned, starting at 0.
type MergeRule struct {
	Left   Symbol
	Right  Symbol
	Merged Symbol
	Rank   int
}

func (r MergeRule) Pair() PairKey {
	return PairKey{Left: r.Left, Right: r.Right}
}

func (r MergeRule) String() string {
	return fmt.Sprintf("#%d %s + %s => %s", r.Rank, fmtShow(r.Left), fmtShow(r.Right), fmtShow(r.Merged))
}

// Vocabulary is the set of symbols known to a model. Ids are dense:
// seed characters first, then merge results in rank order.
type Vocabulary struct {
	dict *dict
}

func newVocabulary(seed []Symbol) *Vocabulary {
	return &Vocabulary{dict: newDict(seed)}
}

func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return v.dict.Size()
}

func (v *Vocabulary) Contains(s Symbol) bool {
	_, ok := v.ID(s)
	return ok
}

func (v *Vocabulary) ID(s Symbol) (int, bool) {
	if v == nil {
		return Unknown, false
	}
	id, ok := v.dict.ID(s)
	if !ok {
		return Unknown, false
	}
	return id, true
}

func (v *Vocabulary) Symbol(id int) (Symbol, bool) {
	if v == nil {
		return "", false
	}
	return v.dict.Symbol(id)
}

// Symbols returns the vocabulary in id order.
func (v *Vocabulary) Symbols() []Symbol {
	if v == nil {
		return nil
	}
	ret := make([]Symbol, len(v.dict.id2sym))
	copy(ret, v.dict.id2sym)
	return ret
}

// Model is a trained tokenizer: the ordered merge rules and the final
// vocabulary. A Model is never modified after training or loading.
type Model struct {
	merges []MergeRule
	ranks  map[PairKey]int
	vocab  *Vocabulary
}

func newModel(seed []Symbol) *Model {
	return &Model{
		ranks: make(map[PairKey]int),
		vocab: newVocabulary(seed),
	}
}

// learn appends a rule for p and reports whether the vocabulary grew.
func (m *Model) learn(p PairKey) (MergeRule, bool) {
	rule := MergeRule{
		Left:   p.Left,
		Right:  p.Right,
		Merged: p.Merged(),
		Rank:   len(m.merges),
	}
	m.merges = append(m.merges, rule)
	if _, ok := m.ranks[p]; !ok {
		m.ranks[p] = rule.Rank
	}
	return rule, m.vocab.dict.add(rule.Merged)
}

func (m *Model) Merges() []MergeRule {
	ret := make([]MergeRule, len(m.merges))
	copy(ret, m.merges)
	return ret
}

func (m *Model) NumMerges() int {
	return len(m.merges)
}

// Rank returns the rank of the rule merging p.
func (m *Model) Rank(p PairKey) (int, bool) {
	rank, ok := m.ranks[p]
	return rank, ok
}

func (m *Model) Vocabulary() *Vocabulary {
	return m.vocab
}

func (m *Model) VocabSize() int {
	return m.vocab.Len()
}

// IsEmpty reports whether the model was trained on no words at all.
func (m *Model) IsEmpty() bool {
	return len(m.merges) == 0 && m.vocab.Len() == 0
}
