// Package ports defines the interfaces between the domain/application
// layers and the infrastructure layer. They enable dependency inversion
// and keep every pipeline stage independently testable.
package ports

import (
	"context"

	"github.com/ahrav/go-podium/internal/domain"
)

// Unit is one stage of the tabulation pipeline. Each Unit performs a
// specific transformation on the tabulation State: combining rounds,
// aggregating category scores, building judge rankings, or assigning
// placements. Units are stateless after construction and safe for
// concurrent execution.
type Unit interface {
	// Name returns a unique identifier for this unit, used for logging,
	// metrics labels, and configuration.
	Name() string

	// Execute performs the unit's transformation and returns a new State
	// containing the results. The input State is never modified. The
	// computation is synchronous and bounded by the competitor count;
	// ctx is accepted for tracing propagation and interface symmetry.
	Execute(ctx context.Context, state domain.State) (domain.State, error)

	// Validate checks that the unit is properly configured and ready for
	// execution. It returns nil when validation passes, or an error
	// describing what is invalid.
	Validate() error
}

// MetricsCollector records tabulation execution metrics. Implementations
// must be safe for concurrent use.
type MetricsCollector interface {
	// RecordUnitExecution records one unit execution with its duration
	// and outcome status ("success" or "error").
	RecordUnitExecution(unit string, seconds float64, status string)

	// RecordPlacementRun records the shape of a completed placement run:
	// how many records were emitted, how many were tie groups, and
	// whether the average-rank fallback fired.
	RecordPlacementRun(records, tieGroups int, fallback bool)
}
