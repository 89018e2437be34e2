package units

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*RankingUnit)(nil)

// RankingUnit converts raw per-judge category scores into one ordinal
// ranking per judge. For each judge slot it sums that judge's score
// across all categories for every competitor, orders competitors by
// descending total with the competitor ID comparator as tie-break, and
// assigns ranks under the standard "skip" scheme: equal totals share the
// earlier rank and the next distinct total takes its 1-based position.
//
// Absent category scores contribute 0 to a judge's total, so a
// competitor entirely unscored by one judge still appears in that
// judge's ranking with total 0. Callers feeding partial score vectors
// get that absent-as-zero behavior by design of this unit.
//
// The unit also resolves judge display labels. With a roster, judges are
// ordered by letter and labeled with the first token of their name,
// falling back to the letter code; slots beyond the roster, or every
// slot when no roster is supplied, are labeled "Judge N".
type RankingUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config RankingConfig
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// RankingConfig controls how judge rankings are built.
type RankingConfig struct {
	// Categories lists the category codes whose scores feed each
	// judge's total, in sheet order.
	Categories []domain.CategoryCode `yaml:"categories" json:"categories" validate:"required,min=1,dive,min=1"`
}

// DefaultRankingConfig builds rankings over the canonical category set.
func DefaultRankingConfig() RankingConfig {
	return RankingConfig{Categories: append([]domain.CategoryCode(nil), domain.DefaultCategoryCodes...)}
}

// NewRankingUnit creates a RankingUnit with the given name and
// configuration.
func NewRankingUnit(name string, config RankingConfig) (*RankingUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &RankingUnit{
		name:   name,
		config: config,
		tracer: otel.Tracer("ranking-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *RankingUnit) Name() string { return u.name }

// Execute builds one JudgeRanking per judge slot plus the resolved judge
// labels and stores both in the state. An empty competitor set, or one
// with no scores at all, produces empty rankings rather than an error.
func (u *RankingUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := u.tracer.Start(ctx, "RankingUnit.Execute",
		trace.WithAttributes(
			attribute.String("unit.id", u.name),
		),
	)
	defer span.End()

	competitors, ok := domain.Get(state, domain.KeyCompetitors)
	if !ok {
		err := fmt.Errorf("%s: %w", u.name, ErrMissingCompetitors)
		span.RecordError(err)
		return state, err
	}
	if err := domain.ValidateCompetitorSet(competitors); err != nil {
		span.RecordError(err)
		return state, fmt.Errorf("%s: %w", u.name, err)
	}

	roster, _ := domain.Get(state, domain.KeyJudges)

	judgeCount := u.judgeCount(competitors, roster)
	span.SetAttributes(
		attribute.Int("competitors", len(competitors)),
		attribute.Int("judges", judgeCount),
	)

	rankings := buildJudgeRankings(competitors, u.config.Categories, judgeCount)
	labels := judgeLabels(roster, judgeCount)

	state = domain.With(state, domain.KeyRankings, rankings)
	state = domain.With(state, domain.KeyJudgeLabels, labels)
	return state, nil
}

// judgeCount resolves the size of the judging panel. An enumerated
// roster is authoritative; otherwise the count is discovered as the
// maximum number of present scores seen in any single category of any
// competitor.
func (u *RankingUnit) judgeCount(competitors []domain.Competitor, roster []domain.Judge) int {
	if len(roster) > 0 {
		return len(roster)
	}
	max := 0
	for _, competitor := range competitors {
		for _, code := range u.config.Categories {
			count := 0
			for _, s := range competitor.Categories[code].JudgeScores {
				if s.Present {
					count++
				}
			}
			if count > max {
				max = count
			}
		}
	}
	return max
}

// buildJudgeRankings computes the per-judge ordinal rankings for the
// given competitor set over the given categories.
func buildJudgeRankings(competitors []domain.Competitor, codes []domain.CategoryCode, judgeCount int) []domain.JudgeRanking {
	if judgeCount == 0 || len(competitors) == 0 {
		return nil
	}

	type judgeTotal struct {
		id    string
		total float64
	}

	rankings := make([]domain.JudgeRanking, 0, judgeCount)
	for judgeIdx := 0; judgeIdx < judgeCount; judgeIdx++ {
		totals := make([]judgeTotal, 0, len(competitors))
		for _, competitor := range competitors {
			var total float64
			for _, code := range codes {
				scores := competitor.Categories[code].JudgeScores
				if judgeIdx < len(scores) && scores[judgeIdx].Present {
					total += scores[judgeIdx].Value
				}
			}
			totals = append(totals, judgeTotal{id: competitor.ID, total: total})
		}

		// Highest total receives rank 1; equal totals fall back to the
		// ID comparator so the order never depends on input order.
		sort.Slice(totals, func(i, j int) bool {
			if totals[i].total != totals[j].total {
				return totals[i].total > totals[j].total
			}
			return domain.CompetitorIDLess(totals[i].id, totals[j].id)
		})

		ranking := make(domain.JudgeRanking, len(totals))
		prevTotal := 0.0
		prevRank := 0
		for position, jt := range totals {
			rank := position + 1
			if position > 0 && jt.total == prevTotal {
				rank = prevRank
			}
			ranking[jt.id] = rank
			prevTotal = jt.total
			prevRank = rank
		}
		rankings = append(rankings, ranking)
	}
	return rankings
}

// judgeLabels resolves display labels for each judge slot.
func judgeLabels(roster []domain.Judge, judgeCount int) []string {
	if judgeCount == 0 {
		return nil
	}
	sorted := domain.SortJudges(roster)
	labels := make([]string, judgeCount)
	for i := 0; i < judgeCount; i++ {
		labels[i] = fmt.Sprintf("Judge %d", i+1)
		if i >= len(sorted) {
			continue
		}
		if fields := strings.Fields(sorted[i].Name); len(fields) > 0 {
			labels[i] = fields[0]
		} else if sorted[i].Letter != "" {
			labels[i] = sorted[i].Letter
		}
	}
	return labels
}

// Validate checks that the unit is properly configured.
func (u *RankingUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters and
// replaces the unit's configuration after validation.
func (u *RankingUnit) UnmarshalParameters(params yaml.Node) error {
	var config RankingConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	u.config = config
	return nil
}
