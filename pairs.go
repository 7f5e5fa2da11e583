package bpe

import "sort"

// PairKey is an ordered pair of adjacent symbols.
type PairKey struct {
	Left  Symbol
	Right Symbol
}

func (p PairKey) Merged() Symbol {
	return p.Left + p.Right
}

func (p PairKey) String() string {
	return "(" + string(p.Left) + ", " + string(p.Right) + ")"
}

func (p PairKey) less(o PairKey) bool {
	if p.Left != o.Left {
		return p.Left < o.Left
	}
	return p.Right < o.Right
}

// pairStats is the weighted count of every adjacent pair over all
// sequences, with a reverse index from pair to the sequences holding it.
// Zero counts are never stored.
type pairStats struct {
	counts map[PairKey]int
	where  map[PairKey]map[int]struct{}
}

func newPairStats(size int) *pairStats {
	return &pairStats{
		counts: make(map[PairKey]int, size),
		where:  make(map[PairKey]map[int]struct{}, size),
	}
}

// buildPairStats counts all sequences from scratch. With workers > 1 the
// sequences are counted in partitions and reduced afterwards.
func buildPairStats(seqs []*sequence, workers int) (*pairStats, error) {
	parts, err := parallel(seqs, workers, func(begin int, part []*sequence) *pairStats {
		ps := newPairStats(len(part))
		for i, seq := range part {
			for p, n := range seq.Pairs() {
				ps.add(begin+i, p, n*seq.freq)
			}
		}
		return ps
	})
	if err != nil {
		return nil, err
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	var total int
	for _, part := range parts {
		total += len(part.counts)
	}
	ret := newPairStats(total)
	for _, part := range parts {
		ret.reduce(part)
	}
	return ret, nil
}

func (ps *pairStats) add(id int, p PairKey, weight int) {
	ps.counts[p] += weight
	ids, ok := ps.where[p]
	if !ok {
		ids = make(map[int]struct{})
		ps.where[p] = ids
	}
	ids[id] = struct{}{}
}

func (ps *pairStats) reduce(o *pairStats) {
	for p, n := range o.counts {
		ps.counts[p] += n
	}
	for p, ids := range o.where {
		dst, ok := ps.where[p]
		if !ok {
			ps.where[p] = ids
			continue
		}
		for id := range ids {
			dst[id] = struct{}{}
		}
	}
}

// update patches the statistics for sequence id whose pairs changed from
// removed to added, each weighted by freq.
func (ps *pairStats) update(id, freq int, removed, added map[PairKey]int) {
	for p, n := range removed {
		left := ps.counts[p] - n*freq
		if left <= 0 {
			delete(ps.counts, p)
		} else {
			ps.counts[p] = left
		}
		if added[p] > 0 {
			continue
		}
		if ids, ok := ps.where[p]; ok {
			delete(ids, id)
			if len(ids) == 0 {
				delete(ps.where, p)
			}
		}
	}
	for p, n := range added {
		ps.add(id, p, n*freq)
	}
}

// sequences returns the ids of the sequences containing p in ascending order.
func (ps *pairStats) sequences(p PairKey) []int {
	ids := ps.where[p]
	ret := make([]int, 0, len(ids))
	for id := range ids {
		ret = append(ret, id)
	}
	sort.Ints(ret)
	return ret
}

// best returns the accepted pair with the highest count, ties going to
// the lexicographically smallest pair.
func (ps *pairStats) best(accept func(PairKey, int) bool) (PairKey, int, bool) {
	var ret PairKey
	var freq int
	var found bool
	for p, n := range ps.counts {
		if found && (n < freq || (n == freq && !p.less(ret))) {
			continue
		}
		if accept != nil && !accept(p, n) {
			continue
		}
		ret, freq, found = p, n, true
	}
	return ret, freq, found
}

func (ps *pairStats) Len() int {
	return len(ps.counts)
}

func (ps *pairStats) Freq(p PairKey) int {
	return ps.counts[p]
}

func (ps *pairStats) snapshot() map[PairKey]int {
	ret := make(map[PairKey]int, len(ps.counts))
	for p, n := range ps.counts {
		ret[p] = n
	}
	return ret
}

// PairFrequencies returns the weighted frequency of every adjacent
// character pair in the corpus.
func PairFrequencies(c *Corpus) map[PairKey]int {
	seqs := loadSequences(c)
	ps, _ := buildPairStats(seqs, 1)
	return ps.snapshot()
}
