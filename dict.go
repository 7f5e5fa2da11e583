package bpe

import "sort"

type dict struct {
	sym2id map[Symbol]int
	id2sym []Symbol
}

func newDict(seed []Symbol) *dict {
	d := &dict{
		sym2id: make(map[Symbol]int, len(seed)),
		id2sym: make([]Symbol, 0, len(seed)),
	}
	for _, s := range seed {
		d.add(s)
	}
	return d
}

// add inserts s when missing and reports whether the dict grew.
func (d *dict) add(s Symbol) bool {
	if _, ok := d.sym2id[s]; ok {
		return false
	}
	d.sym2id[s] = len(d.id2sym)
	d.id2sym = append(d.id2sym, s)
	return true
}

func (d *dict) Size() int {
	return len(d.id2sym)
}

func (d *dict) ID(s Symbol) (int, bool) {
	id, ok := d.sym2id[s]
	return id, ok
}

func (d *dict) Symbol(id int) (Symbol, bool) {
	if id < 0 || id >= len(d.id2sym) {
		return "", false
	}
	return d.id2sym[id], true
}

// SeedVocabulary returns the distinct characters of words ordered by
// their encoding.
func SeedVocabulary(words []string) []Symbol {
	chars := make(map[Symbol]struct{})
	for _, w := range words {
		for _, s := range splitWord(w) {
			chars[s] = struct{}{}
		}
	}
	ret := make([]Symbol, 0, len(chars))
	for s := range chars {
		ret = append(ret, s)
	}
	sort.Slice(ret, func(i, j int) bool {
		return ret[i] < ret[j]
	})
	return ret
}
