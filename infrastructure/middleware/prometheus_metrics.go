// Package middleware provides cross-cutting concerns for the tabulation
// pipeline.
package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ahrav/go-podium/internal/ports"
)

// PrometheusMetrics implements the MetricsCollector interface using
// Prometheus. It provides monitoring of pipeline execution latency and
// of placement run shape (records, ties, fallbacks) for operators
// tabulating many rounds in batch.
type PrometheusMetrics struct {
	unitDuration     *prometheus.HistogramVec
	unitExecutions   *prometheus.CounterVec
	placementRecords prometheus.Counter
	tieGroups        prometheus.Counter
	rankFallbacks    prometheus.Counter
}

// NewPrometheusMetrics creates a PrometheusMetrics instance and registers
// all metrics in the global Prometheus registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	return &PrometheusMetrics{
		unitDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tabulation_unit_duration_seconds",
				Help:    "Execution time of tabulation pipeline units.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"unit"},
		),
		unitExecutions: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabulation_unit_executions_total",
				Help: "Total number of tabulation unit executions by outcome.",
			},
			[]string{"unit", "status"},
		),
		placementRecords: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tabulation_placement_records_total",
				Help: "Total number of placement records emitted.",
			},
		),
		tieGroups: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tabulation_tie_groups_total",
				Help: "Total number of placement records containing an unresolved tie.",
			},
		),
		rankFallbacks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tabulation_rank_fallbacks_total",
				Help: "Total number of placement runs that used the average-rank fallback.",
			},
		),
	}
}

var _ ports.MetricsCollector = (*PrometheusMetrics)(nil)

// RecordUnitExecution records one unit execution with its duration in
// seconds and outcome status.
func (pm *PrometheusMetrics) RecordUnitExecution(unit string, seconds float64, status string) {
	pm.unitDuration.WithLabelValues(unit).Observe(seconds)
	pm.unitExecutions.WithLabelValues(unit, status).Inc()
}

// RecordPlacementRun records the shape of one completed placement run.
func (pm *PrometheusMetrics) RecordPlacementRun(records, tieGroups int, fallback bool) {
	pm.placementRecords.Add(float64(records))
	pm.tieGroups.Add(float64(tieGroups))
	if fallback {
		pm.rankFallbacks.Inc()
	}
}
