package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*MetricsUnit)(nil)

// MetricsUnit decorates any pipeline unit with execution metrics. It
// records duration and outcome for every execution and, when the
// wrapped unit emits placement records, the shape of the placement run.
type MetricsUnit struct {
	next      ports.Unit
	collector ports.MetricsCollector
}

// WithMetrics wraps a unit so every execution is recorded by the given
// collector. A nil collector returns the unit unwrapped.
func WithMetrics(unit ports.Unit, collector ports.MetricsCollector) ports.Unit {
	if collector == nil {
		return unit
	}
	return &MetricsUnit{next: unit, collector: collector}
}

// Name returns the wrapped unit's identifier.
func (mu *MetricsUnit) Name() string { return mu.next.Name() }

// Execute delegates to the wrapped unit, recording latency and outcome.
func (mu *MetricsUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	start := time.Now()
	next, err := mu.next.Execute(ctx, state)

	status := "success"
	if err != nil {
		status = "error"
	}
	mu.collector.RecordUnitExecution(mu.next.Name(), time.Since(start).Seconds(), status)

	if err == nil {
		mu.recordPlacements(state, next)
	}
	return next, err
}

// recordPlacements reports placement run shape when this execution is
// the one that produced the records.
func (mu *MetricsUnit) recordPlacements(before, after domain.State) {
	if _, had := domain.Get(before, domain.KeyPlacements); had {
		return
	}
	records, ok := domain.Get(after, domain.KeyPlacements)
	if !ok {
		return
	}

	ties := 0
	fallback := false
	for _, record := range records {
		if record.Tied {
			ties++
		}
		if strings.HasPrefix(record.Rationale, "Fallback") {
			fallback = true
		}
	}
	mu.collector.RecordPlacementRun(len(records), ties, fallback)
}

// Validate delegates to the wrapped unit.
func (mu *MetricsUnit) Validate() error { return mu.next.Validate() }
