package application

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-podium/infrastructure/middleware"
	"github.com/ahrav/go-podium/infrastructure/units"
	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

// Round is a caller-supplied competitor set plus its optional judging
// panel roster. The engine never reads anything else: fetching, parsing,
// and persistence belong to the surrounding collaborators.
type Round struct {
	// Competitors is the competitor set, IDs unique within the set.
	Competitors []domain.Competitor
	// Judges is the optional panel roster for display labels and slot
	// alignment. May be empty.
	Judges []domain.Judge
}

// TabulationResult is the complete output of one scenario run.
type TabulationResult struct {
	// Scenario is the scenario name from configuration.
	Scenario string
	// Policy names the aggregation strategy behind Scorecards.
	Policy domain.AggregationPolicy
	// Competitors is the competitor set that was tabulated — the merged
	// roster when two rounds were combined.
	Competitors []domain.Competitor
	// Scorecards holds recomputed aggregates, one per competitor.
	Scorecards []domain.Scorecard
	// Rankings holds one ordinal ranking per judge, in judge order.
	Rankings []domain.JudgeRanking
	// JudgeLabels holds display labels aligned with Rankings.
	JudgeLabels []string
	// Placements is the ordered placement record list.
	Placements []domain.PlacementRecord
	// CombineNotes carries round-merge warnings, if any.
	CombineNotes []string
}

// Engine runs tabulation scenarios. It is stateless between invocations;
// every call builds fresh working copies from the caller's input, so
// unrelated rounds may be tabulated concurrently by the caller.
type Engine struct {
	config    ScenarioConfig
	collector ports.MetricsCollector
}

// NewEngine creates an Engine for the given scenario configuration.
// The collector may be nil to disable metrics.
func NewEngine(config ScenarioConfig, collector ports.MetricsCollector) (*Engine, error) {
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}
	return &Engine{config: config, collector: collector}, nil
}

// Tabulate runs the configured scenario over one round, or over two when
// the scenario combines rounds and a second round is supplied. An empty
// competitor set yields an empty result rather than an error.
func (e *Engine) Tabulate(ctx context.Context, round Round, other *Round) (*TabulationResult, error) {
	state := domain.NewState()
	state = domain.With(state, domain.KeyCompetitors, round.Competitors)
	if len(round.Judges) > 0 {
		state = domain.With(state, domain.KeyJudges, round.Judges)
	}

	pipeline, err := e.buildPipeline(other != nil)
	if err != nil {
		return nil, err
	}
	if e.config.CombineRounds && other != nil {
		state = domain.With(state, domain.KeyOtherRound, other.Competitors)
	}

	for _, unit := range pipeline {
		state, err = unit.Execute(ctx, state)
		if err != nil {
			return nil, fmt.Errorf("unit %s failed: %w", unit.Name(), err)
		}
	}

	return e.collectResult(state), nil
}

// ComparePolicies computes the three alternative aggregation results for
// one competitor set, each policy independently and never mixed. The
// rankings and placements derive from raw judge scores and are identical
// across policies, so only scorecards are returned per policy.
func (e *Engine) ComparePolicies(ctx context.Context, round Round) (map[domain.AggregationPolicy][]domain.Scorecard, error) {
	base := domain.With(domain.NewState(), domain.KeyCompetitors, round.Competitors)

	policies := []domain.AggregationPolicy{
		domain.PolicyScaledMedian,
		domain.PolicySimpleAverage,
		domain.PolicyTrimmedMean,
	}

	var mu sync.Mutex
	results := make(map[domain.AggregationPolicy][]domain.Scorecard, len(policies))

	g, ctx := errgroup.WithContext(ctx)
	for _, policy := range policies {
		policy := policy
		g.Go(func() error {
			unit, err := e.aggregatorUnit(policy)
			if err != nil {
				return err
			}
			next, err := unit.Execute(ctx, base)
			if err != nil {
				return fmt.Errorf("unit %s failed: %w", unit.Name(), err)
			}
			cards, _ := domain.Get(next, domain.KeyScorecards)
			mu.Lock()
			results[policy] = cards
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// buildPipeline assembles the unit sequence for this scenario: optional
// round combine, aggregation, ranking, placement. Each unit is wrapped
// with metrics when a collector is configured.
func (e *Engine) buildPipeline(haveOther bool) ([]ports.Unit, error) {
	var pipeline []ports.Unit

	if e.config.CombineRounds && haveOther {
		combine, err := units.NewCombineUnit("combine_rounds", units.CombineConfig{
			Categories:        e.config.Categories,
			NameDistanceLimit: e.config.NameDistanceLimit,
		})
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, combine)
	}

	aggregator, err := e.aggregatorUnit(e.config.Policy)
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, aggregator)

	ranking, err := units.NewRankingUnit("judge_rankings", units.RankingConfig{Categories: e.config.Categories})
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, ranking)

	placement, err := units.NewPlacementUnit("majority_placement")
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, placement)

	for i, unit := range pipeline {
		if err := unit.Validate(); err != nil {
			return nil, fmt.Errorf("unit %s invalid: %w", unit.Name(), err)
		}
		pipeline[i] = middleware.WithMetrics(unit, e.collector)
	}
	return pipeline, nil
}

// aggregatorUnit constructs the aggregation unit for the given policy.
func (e *Engine) aggregatorUnit(policy domain.AggregationPolicy) (ports.Unit, error) {
	config := units.AggregatorConfig{Categories: e.config.Categories}
	switch policy {
	case domain.PolicyScaledMedian:
		return units.NewScaledMedianUnit("scaled_median", config)
	case domain.PolicySimpleAverage:
		return units.NewArithmeticMeanUnit("simple_average", config)
	case domain.PolicyTrimmedMean:
		return units.NewTrimmedMeanUnit("trimmed_mean", config)
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", domain.ErrInvalidConfiguration, policy)
	}
}

func (e *Engine) collectResult(state domain.State) *TabulationResult {
	result := &TabulationResult{
		Scenario: e.config.Metadata.Name,
		Policy:   e.config.Policy,
	}
	result.Competitors, _ = domain.Get(state, domain.KeyCompetitors)
	result.Scorecards, _ = domain.Get(state, domain.KeyScorecards)
	result.Rankings, _ = domain.Get(state, domain.KeyRankings)
	result.JudgeLabels, _ = domain.Get(state, domain.KeyJudgeLabels)
	result.Placements, _ = domain.Get(state, domain.KeyPlacements)
	result.CombineNotes, _ = domain.Get(state, domain.KeyCombineNotes)
	return result
}
