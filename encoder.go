package bpe

import (
	"fmt"
	"strings"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// Encode splits word into characters and applies every merge rule in
// rank order. Characters never seen in training come back with the
// Unknown id; encoding itself cannot fail.
func (m *Model) Encode(word string) []Token {
	return m.tokens(m.symbols(word))
}

// EncodeText encodes every whitespace separated word of text.
func (m *Model) EncodeText(text string) [][]Token {
	words := strings.Fields(text)
	ret := make([][]Token, len(words))
	for i, w := range words {
		ret[i] = m.Encode(w)
	}
	return ret
}

func (m *Model) symbols(word string) []Symbol {
	symbols := splitWord(word)
	for _, rule := range m.merges {
		if len(symbols) < 2 {
			break
		}
		symbols = mergeSymbols(symbols, rule.Pair())
	}
	return symbols
}

func (m *Model) tokens(symbols []Symbol) []Token {
	ret := make([]Token, len(symbols))
	for i, s := range symbols {
		id, _ := m.vocab.ID(s)
		ret[i] = Token{Symbol: s, ID: id}
	}
	return ret
}

func (m *Model) Decode(tokens []Token) string {
	symbols := make([]Symbol, len(tokens))
	for i, tk := range tokens {
		symbols[i] = tk.Symbol
	}
	return concat(symbols)
}

func (m *Model) DecodeSymbols(symbols []Symbol) string {
	return concat(symbols)
}

// DecodeIDs maps ids back through the vocabulary. Unknown tokens carry no
// id to map from, so they cannot be part of the input.
func (m *Model) DecodeIDs(ids []int) (string, error) {
	symbols := make([]Symbol, len(ids))
	for i, id := range ids {
		s, ok := m.vocab.Symbol(id)
		if !ok {
			return "", fmt.Errorf("%w: %d", ErrUnknownID, id)
		}
		symbols[i] = s
	}
	return concat(symbols), nil
}

const defaultCacheSize = 4096

type EncoderOptions struct {
	// CacheSize bounds the number of cached words, defaultCacheSize when zero.
	CacheSize uint64
	// CacheTTL expires cached words, never when zero.
	CacheTTL time.Duration
	Metrics  *Metrics
}

// Encoder encodes words with a model and caches the result per word.
// It is safe for concurrent use.
type Encoder struct {
	model   *Model
	cache   *ttlcache.Cache[string, []Symbol]
	metrics *Metrics
}

func NewEncoder(m *Model, opts EncoderOptions) *Encoder {
	size := opts.CacheSize
	if size == 0 {
		size = defaultCacheSize
	}
	cacheOpts := []ttlcache.Option[string, []Symbol]{
		ttlcache.WithCapacity[string, []Symbol](size),
	}
	if opts.CacheTTL > 0 {
		cacheOpts = append(cacheOpts, ttlcache.WithTTL[string, []Symbol](opts.CacheTTL))
	}
	return &Encoder{
		model:   m,
		cache:   ttlcache.New(cacheOpts...),
		metrics: opts.Metrics,
	}
}

func (e *Encoder) Model() *Model {
	return e.model
}

func (e *Encoder) Encode(word string) []Token {
	if item := e.cache.Get(word); item != nil {
		e.metrics.observeCache(true)
		return e.model.tokens(item.Value())
	}
	e.metrics.observeCache(false)
	symbols := e.model.symbols(word)
	e.cache.Set(word, symbols, ttlcache.DefaultTTL)
	return e.model.tokens(symbols)
}

func (e *Encoder) EncodeText(text string) [][]Token {
	words := strings.Fields(text)
	ret := make([][]Token, len(words))
	for i, w := range words {
		ret[i] = e.Encode(w)
	}
	return ret
}

func (e *Encoder) Decode(tokens []Token) string {
	return e.model.Decode(tokens)
}

// Len returns the number of cached words.
func (e *Encoder) Len() int {
	return e.cache.Len()
}
