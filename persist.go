package bpe

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"
	"github.com/lwch/logging"
)

// On disk a model is line oriented text, every symbol Go quoted:
//
//	#bpe v1
//	#merges <n>
//	"left" "right"      n lines, rank order
//	#vocab <n>
//	"symbol"            n lines, id order
//	#checksum <xxhash64 of everything above, hex>
const (
	headerLine     = "#bpe v1"
	mergesPrefix   = "#merges "
	vocabPrefix    = "#vocab "
	checksumPrefix = "#checksum "
)

func (m *Model) WriteTo(w io.Writer) (int64, error) {
	var body bytes.Buffer
	fmt.Fprintln(&body, headerLine)
	fmt.Fprintf(&body, "%s%d\n", mergesPrefix, len(m.merges))
	for _, rule := range m.merges {
		fmt.Fprintf(&body, "%s %s\n", strconv.Quote(string(rule.Left)), strconv.Quote(string(rule.Right)))
	}
	symbols := m.vocab.Symbols()
	fmt.Fprintf(&body, "%s%d\n", vocabPrefix, len(symbols))
	for _, s := range symbols {
		fmt.Fprintln(&body, strconv.Quote(string(s)))
	}
	fmt.Fprintf(&body, "%s%016x\n", checksumPrefix, xxhash.Sum64(body.Bytes()))
	return body.WriteTo(w)
}

// ReadModel parses a model written by Model.WriteTo.
func ReadModel(r io.Reader) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	body, err := verifyChecksum(data)
	if err != nil {
		return nil, err
	}

	s := bufio.NewScanner(bytes.NewReader(body))
	s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var line int
	next := func() (string, error) {
		if !s.Scan() {
			if err := s.Err(); err != nil {
				return "", err
			}
			return "", fmt.Errorf("%w: unexpected end at line %d", ErrCorruptModel, line+1)
		}
		line++
		return s.Text(), nil
	}
	corrupt := func(format string, args ...any) error {
		return fmt.Errorf("%w: line %d: %s", ErrCorruptModel, line, fmt.Sprintf(format, args...))
	}

	str, err := next()
	if err != nil {
		return nil, err
	}
	if str != headerLine {
		return nil, corrupt("unexpected header %q", str)
	}

	str, err = next()
	if err != nil {
		return nil, err
	}
	n, err := parseCount(str, mergesPrefix)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	pairs := make([]PairKey, 0, n)
	for i := 0; i < n; i++ {
		str, err = next()
		if err != nil {
			return nil, err
		}
		left, rest, err := unquoteSymbol(str)
		if err != nil {
			return nil, corrupt("%v", err)
		}
		right, rest, err := unquoteSymbol(strings.TrimPrefix(rest, " "))
		if err != nil {
			return nil, corrupt("%v", err)
		}
		if rest != "" {
			return nil, corrupt("trailing data %q", rest)
		}
		pairs = append(pairs, PairKey{Left: left, Right: right})
	}

	str, err = next()
	if err != nil {
		return nil, err
	}
	n, err = parseCount(str, vocabPrefix)
	if err != nil {
		return nil, corrupt("%v", err)
	}
	symbols := make([]Symbol, 0, n)
	for i := 0; i < n; i++ {
		str, err = next()
		if err != nil {
			return nil, err
		}
		sym, rest, err := unquoteSymbol(str)
		if err != nil {
			return nil, corrupt("%v", err)
		}
		if rest != "" {
			return nil, corrupt("trailing data %q", rest)
		}
		symbols = append(symbols, sym)
	}
	if s.Scan() {
		return nil, fmt.Errorf("%w: unexpected data after vocabulary", ErrCorruptModel)
	}

	m := &Model{
		merges: make([]MergeRule, 0, len(pairs)),
		ranks:  make(map[PairKey]int, len(pairs)),
		vocab:  newVocabulary(symbols),
	}
	if m.vocab.Len() != len(symbols) {
		return nil, fmt.Errorf("%w: duplicate symbols in vocabulary", ErrCorruptModel)
	}
	for i, p := range pairs {
		if !m.vocab.Contains(p.Left) || !m.vocab.Contains(p.Right) || !m.vocab.Contains(p.Merged()) {
			return nil, fmt.Errorf("%w: merge %d %s not covered by vocabulary", ErrCorruptModel, i, p)
		}
		if _, ok := m.ranks[p]; !ok {
			m.ranks[p] = i
		}
		m.merges = append(m.merges, MergeRule{Left: p.Left, Right: p.Right, Merged: p.Merged(), Rank: i})
	}
	return m, nil
}

func verifyChecksum(data []byte) ([]byte, error) {
	trimmed := bytes.TrimSuffix(data, []byte("\n"))
	idx := bytes.LastIndexByte(trimmed, '\n')
	last := string(trimmed[idx+1:])
	if !strings.HasPrefix(last, checksumPrefix) {
		return nil, fmt.Errorf("%w: missing checksum", ErrCorruptModel)
	}
	want, err := strconv.ParseUint(strings.TrimPrefix(last, checksumPrefix), 16, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad checksum %q", ErrCorruptModel, last)
	}
	body := data[:idx+1]
	if got := xxhash.Sum64(body); got != want {
		return nil, fmt.Errorf("%w: got %016x, want %016x", ErrChecksum, got, want)
	}
	return body, nil
}

func parseCount(line, prefix string) (int, error) {
	if !strings.HasPrefix(line, prefix) {
		return 0, fmt.Errorf("expected %q, got %q", strings.TrimSpace(prefix), line)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(line, prefix))
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

func unquoteSymbol(str string) (Symbol, string, error) {
	quoted, err := strconv.QuotedPrefix(str)
	if err != nil {
		return "", "", fmt.Errorf("bad symbol %q: %v", str, err)
	}
	sym, err := strconv.Unquote(quoted)
	if err != nil {
		return "", "", fmt.Errorf("bad symbol %q: %v", quoted, err)
	}
	return Symbol(sym), str[len(quoted):], nil
}

// Save writes the model to path.
func (m *Model) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	n, err := m.WriteTo(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("write model: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.Info("model saved to %s: %d merges, %d symbols, %s",
		path, m.NumMerges(), m.VocabSize(), humanize.Bytes(uint64(n)))
	return nil
}

// Load reads a model saved with Model.Save.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return m, nil
}
