// Package units provides the tabulation pipeline stages that implement
// the ports.Unit interface for the go-podium ranking engine: round
// combining, category score aggregation, judge ranking construction,
// and majority placement.
package units

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-podium/internal/domain"
)

// Common errors returned by tabulation units.
var (
	// ErrEmptyUnitName is returned when attempting to create a unit with
	// an empty name.
	ErrEmptyUnitName = errors.New("unit name cannot be empty")

	// ErrMissingCompetitors is returned when a unit requires the
	// competitor set and the state does not carry one.
	ErrMissingCompetitors = errors.New("competitor set not found in state")

	// ErrMissingRankings is returned when the placement unit runs before
	// judge rankings have been built.
	ErrMissingRankings = errors.New("judge rankings not found in state")
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// median computes the statistical median of the given values without
// modifying them: the middle value for odd counts, the mean of the two
// middle values for even counts. An empty input returns 0; callers
// validate emptiness before calling.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// mean computes the arithmetic mean. An empty input returns 0.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// buildScorecards reduces every competitor's per-judge category scores to
// one Scorecard under the given aggregation policy. Categories without
// available scores yield an absent aggregate and are skipped from the
// total sum; a competitor with no data in any category gets an absent
// total. The shared implementation keeps the three policy units
// behaviorally identical everywhere except the reduction itself.
func buildScorecards(competitors []domain.Competitor, codes []domain.CategoryCode, agg domain.Aggregator) []domain.Scorecard {
	cards := make([]domain.Scorecard, 0, len(competitors))
	for _, competitor := range competitors {
		card := domain.Scorecard{
			CompetitorID: competitor.ID,
			Policy:       agg.Policy(),
			Categories:   make(map[domain.CategoryCode]domain.Score, len(codes)),
		}

		var total float64
		var any bool
		for _, code := range codes {
			record := competitor.Categories[code]
			aggregate := agg.Aggregate(domain.PresentValues(record.JudgeScores))
			card.Categories[code] = aggregate
			if aggregate.Present {
				total += aggregate.Value
				any = true
			}
		}
		if any {
			card.Total = domain.SomeScore(total)
		}
		cards = append(cards, card)
	}
	return cards
}

// AggregatorConfig is the shared configuration of the three aggregation
// units: the category codes to reduce, in sheet order. The units differ
// only in their reduction, so they share one configuration shape.
type AggregatorConfig struct {
	// Categories lists the category codes to aggregate. Codes missing
	// from a competitor's record aggregate to absent.
	Categories []domain.CategoryCode `yaml:"categories" json:"categories" validate:"required,min=1,dive,min=1"`
}

func (c AggregatorConfig) validateConfig() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// DefaultAggregatorConfig aggregates the canonical category set.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{Categories: append([]domain.CategoryCode(nil), domain.DefaultCategoryCodes...)}
}
