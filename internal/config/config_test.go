package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bpe.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "model.bpe", cfg.Output)
	assert.Equal(t, 1000, cfg.VocabSize)
	assert.Equal(t, 1, cfg.MinFrequency)
	assert.Equal(t, 1, cfg.Workers)
	// no corpus yet
	assert.Error(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := writeFile(t, `
corpus:
  - a.txt
  - b.txt
vocab_size: 500
max_merges: 20
metrics_file: train.prom
`)
	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt"}, cfg.Corpus)
	assert.Equal(t, 500, cfg.VocabSize)
	assert.Equal(t, 20, cfg.MaxMerges)
	assert.Equal(t, "train.prom", cfg.MetricsFile)
	// untouched keys keep their defaults
	assert.Equal(t, "model.bpe", cfg.Output)
	assert.Equal(t, 1, cfg.MinFrequency)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileUnknownKey(t *testing.T) {
	_, err := LoadFile(writeFile(t, "vocab_sise: 10\n"))
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFlags(t *testing.T) {
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{
		"--corpus", "a.txt,b.txt", "--corpus", "c.txt",
		"--vocab-size", "300", "-o", "out.bpe", "--workers", "4", "-v",
	}))
	require.NoError(t, cfg.Complete())
	assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, cfg.Corpus)
	assert.Equal(t, 300, cfg.VocabSize)
	assert.Equal(t, "out.bpe", cfg.Output)
	assert.Equal(t, 4, cfg.Workers)
	assert.True(t, cfg.Verbose)
	assert.NoError(t, cfg.Validate())
}

func TestFlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "corpus: [a.txt]\nvocab_size: 500\nworkers: 2\n")
	cfg := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--vocab-size", "50"}))
	require.NoError(t, cfg.Complete())
	assert.Equal(t, []string{"a.txt"}, cfg.Corpus)
	assert.Equal(t, 50, cfg.VocabSize)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "model.bpe", cfg.Output)
}

func TestCompleteMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "missing.yaml")
	assert.Error(t, cfg.Complete())
}

func TestValidate(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"no corpus":         func(c *Config) { c.Corpus = nil },
		"no output":         func(c *Config) { c.Output = "" },
		"zero vocab size":   func(c *Config) { c.VocabSize = 0 },
		"negative merges":   func(c *Config) { c.MaxMerges = -1 },
		"negative workers":  func(c *Config) { c.Workers = -2 },
		"negative min freq": func(c *Config) { c.MinFrequency = -1 },
		"negative length":   func(c *Config) { c.MaxSymbolLength = -1 },
	} {
		cfg := DefaultConfig()
		cfg.Corpus = []string{"a.txt"}
		mutate(cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}
