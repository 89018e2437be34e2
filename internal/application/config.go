// Package application wires the tabulation pipeline together: scenario
// configuration, unit construction, and result projection for the
// presentation layer.
package application

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// ScenarioConfig describes one tabulation scenario: which aggregation
// policy recomputes category scores, which categories participate, and
// whether two rounds are combined before placement.
type ScenarioConfig struct {
	// Metadata carries descriptive information about the scenario.
	Metadata Metadata `yaml:"metadata" validate:"required"`

	// Policy selects the aggregation strategy for scorecards.
	Policy domain.AggregationPolicy `yaml:"policy" validate:"required,oneof=scaled_median simple_average trimmed_mean"`

	// Categories lists the category codes to tabulate, in sheet order.
	// Defaults to the canonical acrobatic rock'n'roll set.
	Categories []domain.CategoryCode `yaml:"categories" validate:"required,min=1,dive,min=1"`

	// CombineRounds merges a second round into the competitor set
	// before ranking when one is supplied.
	CombineRounds bool `yaml:"combine_rounds"`

	// NameDistanceLimit tunes the combiner's name reconciliation; see
	// units.CombineConfig.
	NameDistanceLimit int `yaml:"name_distance_limit" validate:"min=0"`
}

// Metadata provides descriptive information about a scenario.
type Metadata struct {
	// Name is the human-readable identifier for this scenario.
	Name string `yaml:"name" validate:"required,min=1,max=255"`
	// Description explains the scenario's purpose.
	Description string `yaml:"description" validate:"max=1000"`
}

// DefaultScenarioConfig tabulates a single round of the canonical
// category set under the scaled-median policy.
func DefaultScenarioConfig() ScenarioConfig {
	return ScenarioConfig{
		Metadata:          Metadata{Name: "default"},
		Policy:            domain.PolicyScaledMedian,
		Categories:        append([]domain.CategoryCode(nil), domain.DefaultCategoryCodes...),
		NameDistanceLimit: 5,
	}
}

// LoadScenarioConfig parses a YAML scenario definition, applies defaults
// for omitted fields, and validates the result.
func LoadScenarioConfig(data []byte) (*ScenarioConfig, error) {
	config := DefaultScenarioConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scenario config: %w", err)
	}
	if len(config.Categories) == 0 {
		config.Categories = append([]domain.CategoryCode(nil), domain.DefaultCategoryCodes...)
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return &config, nil
}
