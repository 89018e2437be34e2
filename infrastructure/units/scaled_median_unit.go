package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*ScaledMedianUnit)(nil)
var _ domain.Aggregator = (*ScaledMedianUnit)(nil)

// ScaledMedianUnit aggregates a category's judge scores with a
// median-anchored weighted average. Each score v is weighted by
// w = 1 / (1 + (v - m)^2) where m is the ordinary median, and the
// aggregate is the weighted mean sum(v*w) / sum(w). Scores far from the
// median are down-weighted quadratically, which suppresses outlier
// judges without discarding their marks outright.
//
// The unit is stateless after construction and safe for concurrent
// execution. Aggregation is deterministic and order-independent.
type ScaledMedianUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config AggregatorConfig
}

// NewScaledMedianUnit creates a ScaledMedianUnit with the given name and
// configuration. Returns ErrEmptyUnitName for an empty name or a wrapped
// validation error for invalid configuration.
func NewScaledMedianUnit(name string, config AggregatorConfig) (*ScaledMedianUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := config.validateConfig(); err != nil {
		return nil, err
	}
	return &ScaledMedianUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ScaledMedianUnit) Name() string { return u.name }

// Policy identifies the aggregation strategy.
func (u *ScaledMedianUnit) Policy() domain.AggregationPolicy { return domain.PolicyScaledMedian }

// Aggregate reduces the available score values to the scaled-median
// aggregate. An empty input yields an absent Score.
func (u *ScaledMedianUnit) Aggregate(values []float64) domain.Score {
	if len(values) == 0 {
		return domain.AbsentScore()
	}

	m := median(values)
	var weightSum, weightedSum float64
	for _, v := range values {
		diff := v - m
		w := 1.0 / (1.0 + diff*diff)
		weightSum += w
		weightedSum += v * w
	}
	if weightSum == 0 {
		return domain.AbsentScore()
	}
	return domain.SomeScore(weightedSum / weightSum)
}

// Execute reduces every competitor's category scores to scorecards under
// the scaled-median policy and stores them in the state. An empty
// competitor set produces an empty scorecard list, not an error.
func (u *ScaledMedianUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
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
func (u *ScaledMedianUnit) Validate() error {
	return u.config.validateConfig()
}

// UnmarshalParameters deserializes YAML configuration parameters and
// replaces the unit's configuration after validation.
func (u *ScaledMedianUnit) UnmarshalParameters(params yaml.Node) error {
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
