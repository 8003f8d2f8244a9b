package main

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// promCollector implements rapidscorer.MetricsCollector on top of
// Prometheus collectors.
type promCollector struct {
	buildsTotal    *prometheus.CounterVec
	batchesTotal   *prometheus.CounterVec
	documentsTotal prometheus.Counter
	batchDuration  prometheus.Histogram
}

func newPromCollector() *promCollector {
	return &promCollector{
		buildsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rapidscorer_builds_total",
				Help: "Scorer constructions by variant and outcome.",
			},
			[]string{"variant", "outcome"},
		),
		batchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rapidscorer_score_batches_total",
				Help: "ScoreAll runs by outcome.",
			},
			[]string{"outcome"},
		),
		documentsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rapidscorer_documents_scored_total",
				Help: "Documents scored successfully.",
			},
		),
		batchDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rapidscorer_score_batch_duration_seconds",
				Help:    "ScoreAll latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
		),
	}
}

// RecordBuild implements rapidscorer.MetricsCollector.
func (c *promCollector) RecordBuild(variant string, duration time.Duration, err error) {
	c.buildsTotal.WithLabelValues(variant, outcome(err)).Inc()
}

// RecordScoreBatch implements rapidscorer.MetricsCollector.
func (c *promCollector) RecordScoreBatch(documents int, duration time.Duration, err error) {
	c.batchesTotal.WithLabelValues(outcome(err)).Inc()
	c.batchDuration.Observe(duration.Seconds())
	if err == nil {
		c.documentsTotal.Add(float64(documents))
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
