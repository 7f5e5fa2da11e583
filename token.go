package bpe

import "unicode/utf8"

// Symbol is one unit of a tokenized word: a single character or the
// concatenation produced by a merge.
type Symbol string

// Unknown is the id of a token whose symbol is not in the vocabulary.
const Unknown = -1

func (s Symbol) Len() int {
	return utf8.RuneCountInString(string(s))
}

// Token is an encoded symbol together with its vocabulary id.
type Token struct {
	Symbol Symbol
	ID     int
}

func (t Token) Known() bool {
	return t.ID != Unknown
}

func (t Token) String() string {
	if !t.Known() {
		return "<unk:" + string(t.Symbol) + ">"
	}
	return string(t.Symbol)
}

// splitWord returns one symbol per character of word. Invalid UTF-8 bytes
// become one symbol each so that concatenation stays exact.
func splitWord(word string) []Symbol {
	ret := make([]Symbol, 0, len(word))
	for len(word) > 0 {
		_, size := utf8.DecodeRuneInString(word)
		ret = append(ret, Symbol(word[:size]))
		word = word[size:]
	}
	return ret
}

func concat(symbols []Symbol) string {
	var n int
	for _, s := range symbols {
		n += len(s)
	}
	buf := make([]byte, 0, n)
	for _, s := range symbols {
		buf = append(buf, string(s)...)
	}
	return string(buf)
}
