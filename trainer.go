package bpe

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/lwch/logging"
)

const logEvery = 100 // merges between two progress lines

// FilterFunc vetoes a candidate merge given the merged symbol and the
// pair frequency. Returning false skips the pair.
type FilterFunc func(string, int) bool

type Options struct {
	// VocabSize is the target vocabulary size, must be positive.
	VocabSize int
	// MinFrequency is the lowest pair frequency still merged, 1 when zero.
	MinFrequency int
	// MaxMerges caps the number of learned rules, 0 for no cap.
	MaxMerges int
	// MaxSymbolLength caps the characters of a merged symbol, 0 for no cap.
	MaxSymbolLength int
	Filter          FilterFunc
	// Workers partitions the initial pair count, sequential when < 2.
	Workers  int
	Metrics  *Metrics
	Progress chan<- Progress
}

// Progress is reported after every merge when Options.Progress is set.
// Sends never block: a full channel drops the report.
type Progress struct {
	Rule      MergeRule
	Frequency int
	VocabSize int
}

func (opts Options) validate() error {
	if opts.VocabSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTargetSize, opts.VocabSize)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"min frequency", opts.MinFrequency},
		{"max merges", opts.MaxMerges},
		{"max symbol length", opts.MaxSymbolLength},
		{"workers", opts.Workers},
	} {
		if v.value < 0 {
			return fmt.Errorf("%w: %s is %d", ErrInvalidOptions, v.name, v.value)
		}
	}
	return nil
}

func (opts Options) minFrequency() int {
	if opts.MinFrequency < 1 {
		return 1
	}
	return opts.MinFrequency
}

func (opts Options) accept() func(PairKey, int) bool {
	if opts.MaxSymbolLength == 0 && opts.Filter == nil {
		return nil
	}
	return func(p PairKey, freq int) bool {
		if opts.MaxSymbolLength > 0 && p.Left.Len()+p.Right.Len() > opts.MaxSymbolLength {
			return false
		}
		if opts.Filter != nil && !opts.Filter(string(p.Merged()), freq) {
			return false
		}
		return true
	}
}

// Train counts words and learns merge rules until the vocabulary reaches
// opts.VocabSize or no pair is left to merge.
func Train(words []string, opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return train(CountWords(words), opts)
}

// TrainStrict is Train returning ErrEmptyCorpus instead of an empty model.
func TrainStrict(words []string, opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, ErrEmptyCorpus
	}
	return train(CountWords(words), opts)
}

// TrainCorpus learns from an existing corpus. Duplicate entries added with
// Corpus.Add each contribute their own frequency.
func TrainCorpus(c *Corpus, opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return train(c, opts)
}

func loadSequences(c *Corpus) []*sequence {
	seqs := make([]*sequence, 0, c.Len())
	c.Range(func(word string, freq int) {
		seqs = append(seqs, newSequence(word, freq))
	})
	return seqs
}

func train(c *Corpus, opts Options) (*Model, error) {
	begin := time.Now()
	m := newModel(SeedVocabulary(c.Words()))
	if c.Len() == 0 {
		logging.Info("empty corpus, nothing to train")
		return m, nil
	}
	logging.Info("corpus: %s words, %s distinct, %d characters",
		humanize.Comma(int64(c.Total())), humanize.Comma(int64(c.Len())), m.VocabSize())

	seqs := loadSequences(c)
	stats, err := buildPairStats(seqs, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("build pair statistics: %w", err)
	}
	logging.Info("%s pairs found", humanize.Comma(int64(stats.Len())))
	opts.Metrics.observeVocabulary(m.VocabSize(), stats.Len())

	minFreq := opts.minFrequency()
	accept := opts.accept()
	for m.VocabSize() < opts.VocabSize {
		if opts.MaxMerges > 0 && m.NumMerges() >= opts.MaxMerges {
			logging.Info("max merges %d reached", opts.MaxMerges)
			break
		}
		p, freq, ok := stats.best(accept)
		if !ok || freq < minFreq {
			logging.Info("no pair left to merge, vocabulary stops at %d", m.VocabSize())
			break
		}
		rule, grown := m.learn(p)
		var changed int
		for _, id := range stats.sequences(p) {
			seq := seqs[id]
			before := seq.Pairs()
			if seq.Merge(p) == 0 {
				continue
			}
			stats.update(id, seq.freq, before, seq.Pairs())
			changed++
		}
		if !grown {
			logging.Debug("merge %s already in vocabulary", fmtShow(rule.Merged))
		}
		logging.Debug("merge %s freq=%d words=%d", rule, freq, changed)
		if rule.Rank%logEvery == 0 {
			logging.Info("merge %d, vocabulary %d/%d, %s pairs left",
				rule.Rank+1, m.VocabSize(), opts.VocabSize, humanize.Comma(int64(stats.Len())))
		}
		opts.Metrics.observeMerge(freq)
		opts.Metrics.observeVocabulary(m.VocabSize(), stats.Len())
		if opts.Progress != nil {
			select {
			case opts.Progress <- Progress{Rule: rule, Frequency: freq, VocabSize: m.VocabSize()}:
			default:
			}
		}
	}

	cost := time.Since(begin)
	opts.Metrics.observeTraining(cost)
	logging.Info("training done: %d merges, vocabulary %d, cost %s",
		m.NumMerges(), m.VocabSize(), cost)
	return m, nil
}
