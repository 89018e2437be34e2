package units

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*TrimmedMeanUnit)(nil)
var _ domain.Aggregator = (*TrimmedMeanUnit)(nil)

// TrimmedMeanUnit aggregates a category's judge scores by dropping the
// single lowest and highest score and averaging the remainder. With two
// or fewer available scores there is nothing sensible to trim, so the
// unit falls back to the plain arithmetic mean.
//
// Stateless after construction and safe for concurrent execution.
type TrimmedMeanUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config AggregatorConfig
}

// NewTrimmedMeanUnit creates a TrimmedMeanUnit with the given name and
// configuration.
func NewTrimmedMeanUnit(name string, config AggregatorConfig) (*TrimmedMeanUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := config.validateConfig(); err != nil {
		return nil, err
	}
	return &TrimmedMeanUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *TrimmedMeanUnit) Name() string { return u.name }

// Policy identifies the aggregation strategy.
func (u *TrimmedMeanUnit) Policy() domain.AggregationPolicy { return domain.PolicyTrimmedMean }

// Aggregate reduces the available score values to the trimmed mean.
// Exactly one minimum and one maximum are dropped, so duplicated
// extremes keep their remaining occurrences. An empty input yields an
// absent Score; one or two values average without trimming.
func (u *TrimmedMeanUnit) Aggregate(values []float64) domain.Score {
	if len(values) == 0 {
		return domain.AbsentScore()
	}
	if len(values) <= 2 {
		return domain.SomeScore(mean(values))
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return domain.SomeScore(mean(sorted[1 : len(sorted)-1]))
}

// Execute reduces every competitor's category scores to scorecards under
// the trimmed-mean policy and stores them in the state.
func (u *TrimmedMeanUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	competitors, ok := domain.Get(state, domain.KeyCompetitors)
	if !ok {
		return state, fmt.Errorf("%s: %w", u.name, ErrMissingCompetitors)
	}
	if err := domain.ValidateCompetitorSet(competitors); err != nil {
		return state, fmt.Errorf("%s: %w", u.name, err)
	}

	cards := buildScorecards(competitors, u.config.Categories, u)
	return domain.With(state, domain.KeyScorecards, cards), nil
}

// Validate checks that the unit is properly configured.
func (u *TrimmedMeanUnit) Validate() error {
	return u.config.validateConfig()
}

// UnmarshalParameters deserializes YAML configuration parameters and
// replaces the unit's configuration after validation.
func (u *TrimmedMeanUnit) UnmarshalParameters(params yaml.Node) error {
	var config AggregatorConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := config.validateConfig(); err != nil {
		return err
	}
	u.config = config
	return nil
}
