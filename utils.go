package bpe

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/sync/errgroup"
)

// parallel splits seqs into at most workers contiguous partitions and runs
// fn on each of them concurrently. Results keep partition order.
func parallel[T any](seqs []*sequence, workers int, fn func(int, []*sequence) T) ([]T, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(seqs) {
		workers = len(seqs)
	}
	if workers <= 1 {
		return []T{fn(0, seqs)}, nil
	}
	size := (len(seqs) + workers - 1) / workers
	ret := make([]T, (len(seqs)+size-1)/size)
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range ret {
		i := i
		begin := i * size
		end := begin + size
		if end > len(seqs) {
			end = len(seqs)
		}
		g.Go(func() error {
			ret[i] = fn(begin, seqs[begin:end])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parallel: %w", err)
	}
	return ret, nil
}

// fmtShow renders a symbol for logs, escaping what would not print.
func fmtShow(sym Symbol) string {
	var sb strings.Builder
	for _, ch := range string(sym) {
		if unicode.IsLetter(ch) ||
			unicode.IsNumber(ch) ||
			unicode.IsPunct(ch) ||
			unicode.IsSymbol(ch) {
			sb.WriteRune(ch)
			continue
		}
		fmt.Fprintf(&sb, "\\u%x", ch)
	}
	return sb.String()
}
