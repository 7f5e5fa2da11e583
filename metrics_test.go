package bpe

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	m, err := Train(fruits, Options{VocabSize: 12, Metrics: metrics})
	require.NoError(t, err)

	assert.Equal(t, float64(m.NumMerges()), testutil.ToFloat64(metrics.merges))
	assert.Equal(t, float64(m.VocabSize()), testutil.ToFloat64(metrics.vocabulary))
	// (an, ana) was merged with frequency 4
	assert.Equal(t, 4.0, testutil.ToFloat64(metrics.lastFrequency))
	assert.Equal(t, 1, testutil.CollectAndCount(metrics.duration))

	n, err := testutil.GatherAndCount(reg,
		"bpe_merges_total", "bpe_vocabulary_size", "bpe_pair_statistics",
		"bpe_last_merge_frequency", "bpe_training_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.observeMerge(1)
		m.observeVocabulary(1, 1)
		m.observeCache(true)
		m.observeTraining(0)
	})
	assert.NotNil(t, NewMetrics(nil))
}
