// Package middleware contains the unit tests for the middleware package.
package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-podium/internal/ports"
)

// testPrometheusMetrics provides a global instance to avoid duplicate
// metric registration panics across tests in the same package.
var testPrometheusMetrics *PrometheusMetrics

func init() {
	testPrometheusMetrics = NewPrometheusMetrics()
}

func TestNewPrometheusMetrics(t *testing.T) {
	pm := testPrometheusMetrics
	require.NotNil(t, pm)

	assert.NotNil(t, pm.unitDuration, "unitDuration should be initialized")
	assert.NotNil(t, pm.unitExecutions, "unitExecutions should be initialized")
	assert.NotNil(t, pm.placementRecords, "placementRecords should be initialized")
	assert.NotNil(t, pm.tieGroups, "tieGroups should be initialized")
	assert.NotNil(t, pm.rankFallbacks, "rankFallbacks should be initialized")

	var _ ports.MetricsCollector = pm
}

func TestPrometheusMetrics_RecordUnitExecution(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name    string
		unit    string
		seconds float64
		status  string
	}{
		{"successful execution", "scaled_median", 0.002, "success"},
		{"failed execution", "judge_rankings", 0.001, "error"},
		{"zero duration", "majority_placement", 0, "success"},
		{"empty unit name", "", 0.5, "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordUnitExecution(tt.unit, tt.seconds, tt.status)
			}, "RecordUnitExecution should not panic")
		})
	}
}

func TestPrometheusMetrics_RecordPlacementRun(t *testing.T) {
	pm := testPrometheusMetrics

	tests := []struct {
		name      string
		records   int
		tieGroups int
		fallback  bool
	}{
		{"clean run", 8, 0, false},
		{"run with ties", 6, 2, false},
		{"fallback run", 4, 1, true},
		{"empty run", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				pm.RecordPlacementRun(tt.records, tt.tieGroups, tt.fallback)
			}, "RecordPlacementRun should not panic")
		})
	}
}

func BenchmarkPrometheusMetrics_RecordUnitExecution(b *testing.B) {
	pm := testPrometheusMetrics

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pm.RecordUnitExecution("benchmark_unit", 0.001, "success")
	}
}
