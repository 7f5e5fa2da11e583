package bpe

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bpe"

// Metrics instruments training and encoding. A nil *Metrics records
// nothing.
type Metrics struct {
	merges        prometheus.Counter
	vocabulary    prometheus.Gauge
	pairs         prometheus.Gauge
	lastFrequency prometheus.Gauge
	duration      prometheus.Histogram
	cache         *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		merges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "merges_total",
			Help:      "Number of merge rules learned.",
		}),
		vocabulary: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "vocabulary_size",
			Help:      "Current vocabulary size of the model being trained.",
		}),
		pairs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pair_statistics",
			Help:      "Number of distinct adjacent pairs with a non-zero frequency.",
		}),
		lastFrequency: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_merge_frequency",
			Help:      "Frequency of the most recently merged pair.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "training_duration_seconds",
			Help:      "Wall time of a training run.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_cache_requests_total",
			Help:      "Encoder cache lookups by result.",
		}, []string{"result"}),
	}
	if reg != nil {
		reg.MustRegister(m.merges, m.vocabulary, m.pairs, m.lastFrequency, m.duration, m.cache)
	}
	return m
}

func (m *Metrics) observeMerge(freq int) {
	if m == nil {
		return
	}
	m.merges.Inc()
	m.lastFrequency.Set(float64(freq))
}

func (m *Metrics) observeVocabulary(size, pairs int) {
	if m == nil {
		return
	}
	m.vocabulary.Set(float64(size))
	m.pairs.Set(float64(pairs))
}

func (m *Metrics) observeTraining(cost time.Duration) {
	if m == nil {
		return
	}
	m.duration.Observe(cost.Seconds())
}

func (m *Metrics) observeCache(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cache.WithLabelValues("hit").Inc()
		return
	}
	m.cache.WithLabelValues("miss").Inc()
}
