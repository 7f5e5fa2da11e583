package bpe

import (
	"container/list"
	"strings"
)

// sequence is one distinct corpus word split into symbols.
type sequence struct {
	data list.List
	freq int
}

func newSequence(word string, freq int) *sequence {
	s := &sequence{freq: freq}
	for _, sym := range splitWord(word) {
		s.Push(sym)
	}
	return s
}

func (s *sequence) Push(sym Symbol) {
	s.data.PushBack(sym)
}

func (s *sequence) Range(fn func(Symbol)) {
	for e := s.data.Front(); e != nil; e = e.Next() {
		fn(e.Value.(Symbol))
	}
}

func (s *sequence) RangePairs(fn func(PairKey)) {
	begin := s.data.Front()
	if begin == nil {
		return
	}
	for e := begin.Next(); e != nil; e = e.Next() {
		fn(PairKey{Left: begin.Value.(Symbol), Right: e.Value.(Symbol)})
		begin = e
	}
}

// Pairs counts the adjacent pairs of the sequence, unweighted.
func (s *sequence) Pairs() map[PairKey]int {
	ret := make(map[PairKey]int, s.Size())
	s.RangePairs(func(p PairKey) {
		ret[p]++
	})
	return ret
}

func (s *sequence) Symbols() []Symbol {
	ret := make([]Symbol, 0, s.Size())
	s.Range(func(sym Symbol) {
		ret = append(ret, sym)
	})
	return ret
}

func (s *sequence) String() string {
	var ret []string
	s.Range(func(sym Symbol) {
		ret = append(ret, "["+string(sym)+"]")
	})
	return strings.Join(ret, " => ")
}

func (s *sequence) Size() int {
	return s.data.Len()
}

// Merge replaces every occurrence of p, scanning left to right and
// resuming after each merged symbol, and returns the number of merges.
func (s *sequence) Merge(p PairKey) int {
	merged := p.Merged()
	var n int
	e := s.data.Front()
	for e != nil {
		next := e.Next()
		if next == nil {
			break
		}
		if e.Value.(Symbol) == p.Left && next.Value.(Symbol) == p.Right {
			e.Value = merged
			s.data.Remove(next)
			n++
			e = e.Next()
			continue
		}
		e = next
	}
	return n
}

// mergeSymbols applies the same scan as sequence.Merge to a slice in place.
func mergeSymbols(symbols []Symbol, p PairKey) []Symbol {
	merged := p.Merged()
	out := symbols[:0]
	for i := 0; i < len(symbols); i++ {
		if i+1 < len(symbols) && symbols[i] == p.Left && symbols[i+1] == p.Right {
			out = append(out, merged)
			i++
			continue
		}
		out = append(out, symbols[i])
	}
	return out
}
