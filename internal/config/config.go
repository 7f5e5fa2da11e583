package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of the bpe command line tool.
type Config struct {
	Corpus          []string `yaml:"corpus"`
	Output          string   `yaml:"output"`
	VocabSize       int      `yaml:"vocab_size"`
	MinFrequency    int      `yaml:"min_frequency"`
	MaxMerges       int      `yaml:"max_merges"`
	MaxSymbolLength int      `yaml:"max_symbol_length"`
	Workers         int      `yaml:"workers"`
	MetricsFile     string   `yaml:"metrics_file"`
	Verbose         bool     `yaml:"verbose"`

	// File is the yaml file loaded by Complete, flags only.
	File string `yaml:"-"`

	fs *pflag.FlagSet
}

func DefaultConfig() *Config {
	return &Config{
		Output:       "model.bpe",
		VocabSize:    1000,
		MinFrequency: 1,
		Workers:      1,
	}
}

// LoadFile reads a yaml file on top of the defaults. Unknown keys are
// rejected.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg, nil
}

// AddFlags binds the Config fields to command line flags on fs.
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	if fs == nil {
		fs = pflag.CommandLine
	}
	c.fs = fs

	fs.StringVar(&c.File, "config", c.File, "yaml configuration file, flags override its values")
	fs.StringSliceVar(&c.Corpus, "corpus", c.Corpus, "corpus files, comma separated or repeated")
	fs.StringVarP(&c.Output, "output", "o", c.Output, "model output file")
	fs.IntVar(&c.VocabSize, "vocab-size", c.VocabSize, "target vocabulary size")
	fs.IntVar(&c.MinFrequency, "min-frequency", c.MinFrequency, "lowest pair frequency still merged")
	fs.IntVar(&c.MaxMerges, "max-merges", c.MaxMerges, "maximum number of merges, 0 for no limit")
	fs.IntVar(&c.MaxSymbolLength, "max-symbol-length", c.MaxSymbolLength, "maximum characters of a merged symbol, 0 for no limit")
	fs.IntVar(&c.Workers, "workers", c.Workers, "workers used for the initial pair count")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "write prometheus metrics to this file after training")
	fs.BoolVarP(&c.Verbose, "verbose", "v", c.Verbose, "log every merge")
}

// Complete loads File, if any, and applies the flags explicitly set on
// the command line over it.
func (c *Config) Complete() error {
	if c.File == "" {
		return nil
	}
	file, err := LoadFile(c.File)
	if err != nil {
		return err
	}
	changed := func(name string) bool {
		if c.fs == nil {
			return false
		}
		f := c.fs.Lookup(name)
		return f != nil && f.Changed
	}
	if !changed("corpus") {
		c.Corpus = file.Corpus
	}
	if !changed("output") {
		c.Output = file.Output
	}
	if !changed("vocab-size") {
		c.VocabSize = file.VocabSize
	}
	if !changed("min-frequency") {
		c.MinFrequency = file.MinFrequency
	}
	if !changed("max-merges") {
		c.MaxMerges = file.MaxMerges
	}
	if !changed("max-symbol-length") {
		c.MaxSymbolLength = file.MaxSymbolLength
	}
	if !changed("workers") {
		c.Workers = file.Workers
	}
	if !changed("metrics-file") {
		c.MetricsFile = file.MetricsFile
	}
	if !changed("verbose") {
		c.Verbose = file.Verbose
	}
	return nil
}

// Validate checks the settings needed by training.
func (c *Config) Validate() error {
	if len(c.Corpus) == 0 {
		return errors.New("no corpus file given")
	}
	if c.Output == "" {
		return errors.New("no output file given")
	}
	if c.VocabSize <= 0 {
		return fmt.Errorf("invalid vocab size %d: must be positive", c.VocabSize)
	}
	for _, v := range []struct {
		name  string
		value int
	}{
		{"min-frequency", c.MinFrequency},
		{"max-merges", c.MaxMerges},
		{"max-symbol-length", c.MaxSymbolLength},
		{"workers", c.Workers},
	} {
		if v.value < 0 {
			return fmt.Errorf("invalid value %d for %q: must not be negative", v.value, v.name)
		}
	}
	return nil
}
