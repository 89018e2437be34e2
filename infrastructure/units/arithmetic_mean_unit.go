package units

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*ArithmeticMeanUnit)(nil)
var _ domain.Aggregator = (*ArithmeticMeanUnit)(nil)

// ArithmeticMeanUnit aggregates a category's judge scores with the plain
// arithmetic mean. It is the simple-average reference policy that the
// scaled-median and trimmed-mean variants are compared against.
//
// Stateless after construction and safe for concurrent execution.
type ArithmeticMeanUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config AggregatorConfig
}

// NewArithmeticMeanUnit creates an ArithmeticMeanUnit with the given name
// and configuration.
func NewArithmeticMeanUnit(name string, config AggregatorConfig) (*ArithmeticMeanUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := config.validateConfig(); err != nil {
		return nil, err
	}
	return &ArithmeticMeanUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *ArithmeticMeanUnit) Name() string { return u.name }

// Policy identifies the aggregation strategy.
func (u *ArithmeticMeanUnit) Policy() domain.AggregationPolicy { return domain.PolicySimpleAverage }

// Aggregate reduces the available score values to their arithmetic mean.
// An empty input yields an absent Score.
func (u *ArithmeticMeanUnit) Aggregate(values []float64) domain.Score {
	if len(values) == 0 {
		return domain.AbsentScore()
	}
	return domain.SomeScore(mean(values))
}

// Execute reduces every competitor's category scores to scorecards under
// the simple-average policy and stores them in the state.
func (u *ArithmeticMeanUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
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
func (u *ArithmeticMeanUnit) Validate() error {
	return u.config.validateConfig()
}

// UnmarshalParameters deserializes YAML configuration parameters and
// replaces the unit's configuration after validation.
func (u *ArithmeticMeanUnit) UnmarshalParameters(params yaml.Node) error {
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
