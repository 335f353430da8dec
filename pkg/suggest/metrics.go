package suggest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	operationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninekey",
		Name:      "operations_total",
		Help:      "Number of lexicon operations served.",
	}, []string{"op"})
	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "ninekey",
		Name:      "operation_duration_seconds",
		Help:      "Time spent in lexicon operations.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 10),
	}, []string{"op"})
	vocabularyWords = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ninekey",
		Name:      "words",
		Help:      "Number of stored words.",
	})
	vocabularyNodes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ninekey",
		Name:      "nodes",
		Help:      "Number of allocated trie nodes.",
	})
	cacheHitsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninekey",
		Name:      "query_cache_hits_total",
		Help:      "Query cache hits by query kind.",
	}, []string{"kind"})
	cacheMissesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ninekey",
		Name:      "query_cache_misses_total",
		Help:      "Query cache misses by query kind.",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(operationsTotal)
	prometheus.MustRegister(operationDuration)
	prometheus.MustRegister(vocabularyWords)
	prometheus.MustRegister(vocabularyNodes)
	prometheus.MustRegister(cacheHitsTotal)
	prometheus.MustRegister(cacheMissesTotal)
}

// observe is deferred at the top of an operation
func observe(op string, start time.Time) {
	operationsTotal.WithLabelValues(op).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
