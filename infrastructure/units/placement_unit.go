package units

import (
	"context"
	"fmt"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*PlacementUnit)(nil)

// PlacementUnit assigns final places with the majority placement system.
// Starting from an unplaced pool of every competitor, it searches
// thresholds t = 1 upward for the first t where some unplaced competitor
// is ranked within the top t by a strict majority of judges. Qualifiers
// are processed in descending order of favorable judges; equal counts
// form tie groups that the head-to-head resolver splits where possible.
// A tie group of size n occupies n consecutive places under one shared
// place number, and the next place skips past the whole group.
//
// When no threshold up to the competitor count produces a qualifier the
// unit degrades to ordering the remaining pool by mean ordinal rank
// across judges, grouping exact ties, with each record annotated as a
// rank-average fallback. That path is designed degradation for
// pathological inputs, not a failure signal.
type PlacementUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// tracer is the OpenTelemetry tracer for observability.
	tracer trace.Tracer
}

// NewPlacementUnit creates a PlacementUnit with the given name.
func NewPlacementUnit(name string) (*PlacementUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	return &PlacementUnit{
		name:   name,
		tracer: otel.Tracer("placement-unit"),
	}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *PlacementUnit) Name() string { return u.name }

// Execute computes the ordered placement records for the competitor set
// in the state and stores them under domain.KeyPlacements. An empty
// competitor set or an empty ranking array yields empty placements, not
// an error. The union of competitor IDs across the emitted records
// always equals the input set exactly once.
func (u *PlacementUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	_, span := u.tracer.Start(ctx, "PlacementUnit.Execute",
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

	rankings, ok := domain.Get(state, domain.KeyRankings)
	if !ok {
		err := fmt.Errorf("%s: %w", u.name, ErrMissingRankings)
		span.RecordError(err)
		return state, err
	}

	records := determinePlacements(domain.CompetitorIDs(competitors), rankings)
	span.SetAttributes(
		attribute.Int("competitors", len(competitors)),
		attribute.Int("judges", len(rankings)),
		attribute.Int("placement.records", len(records)),
	)
	return domain.With(state, domain.KeyPlacements, records), nil
}

// Validate checks that the unit is properly configured.
func (u *PlacementUnit) Validate() error {
	if u.name == "" {
		return ErrEmptyUnitName
	}
	return nil
}

// determinePlacements runs the majority placement loop over the given
// competitor IDs and judge rankings.
func determinePlacements(ids []string, rankings []domain.JudgeRanking) []domain.PlacementRecord {
	if len(ids) == 0 || len(rankings) == 0 {
		return nil
	}

	judgeCount := len(rankings)
	totalCompetitors := len(ids)
	unplaced := append([]string(nil), ids...)
	var records []domain.PlacementRecord
	nextPlace := 1

	for len(unplaced) > 0 {
		majorityFound := false

		for threshold := 1; threshold <= totalCompetitors; threshold++ {
			counts := make(map[string]int)
			var qualifiers []string
			for _, id := range unplaced {
				count := 0
				for _, ranking := range rankings {
					if rank, ok := ranking[id]; ok && rank <= threshold {
						count++
					}
				}
				// Strict majority of the panel.
				if 2*count > judgeCount {
					counts[id] = count
					qualifiers = append(qualifiers, id)
				}
			}
			if len(qualifiers) == 0 {
				continue
			}

			// More favorable judges places higher; the ID comparator
			// keeps equal counts in deterministic order for grouping.
			sort.Slice(qualifiers, func(i, j int) bool {
				if counts[qualifiers[i]] != counts[qualifiers[j]] {
					return counts[qualifiers[i]] > counts[qualifiers[j]]
				}
				return domain.CompetitorIDLess(qualifiers[i], qualifiers[j])
			})

			for idx := 0; idx < len(qualifiers); {
				count := counts[qualifiers[idx]]
				group := []string{qualifiers[idx]}
				idx++
				for idx < len(qualifiers) && counts[qualifiers[idx]] == count {
					group = append(group, qualifiers[idx])
					idx++
				}

				rationale := fmt.Sprintf("Majority within top %d (%d/%d judges)", threshold, count, judgeCount)
				resolved, tieNotes := resolveTies(group, rankings)
				for _, sub := range resolved {
					records = append(records, placementRecord(nextPlace, sub, rationale, tieNotes))
					unplaced = removeIDs(unplaced, sub)
					nextPlace += len(sub)
				}
			}

			majorityFound = true
			break
		}

		if !majorityFound {
			records, nextPlace, unplaced = placeByAverageRank(records, nextPlace, unplaced, rankings, totalCompetitors)
		}
	}

	return records
}

// placeByAverageRank is the degradation path when no majority threshold
// resolves: remaining competitors are ordered by their mean ordinal rank
// across judges, a missing rank counting as worse than last. Exactly
// equal averages stay together as a tie group.
func placeByAverageRank(
	records []domain.PlacementRecord,
	nextPlace int,
	unplaced []string,
	rankings []domain.JudgeRanking,
	totalCompetitors int,
) ([]domain.PlacementRecord, int, []string) {
	judgeCount := len(rankings)

	type avgRank struct {
		id  string
		avg float64
	}
	averages := make([]avgRank, 0, len(unplaced))
	for _, id := range unplaced {
		totalRank := 0
		for _, ranking := range rankings {
			rank, ok := ranking[id]
			if !ok {
				rank = totalCompetitors + 1
			}
			totalRank += rank
		}
		averages = append(averages, avgRank{id: id, avg: float64(totalRank) / float64(judgeCount)})
	}

	sort.Slice(averages, func(i, j int) bool {
		if averages[i].avg != averages[j].avg {
			return averages[i].avg < averages[j].avg
		}
		return domain.CompetitorIDLess(averages[i].id, averages[j].id)
	})

	for idx := 0; idx < len(averages); {
		avg := averages[idx].avg
		group := []string{averages[idx].id}
		idx++
		for idx < len(averages) && averages[idx].avg == avg {
			group = append(group, averages[idx].id)
			idx++
		}

		rationale := fmt.Sprintf("Fallback by average rank (%.2f)", avg)
		notes := make(map[string]string, len(group))
		for _, id := range group {
			notes[id] = rationale
		}
		records = append(records, placementRecord(nextPlace, group, rationale, notes))
		unplaced = removeIDs(unplaced, group)
		nextPlace += len(group)
	}

	return records, nextPlace, unplaced
}

// placementRecord assembles one record for a resolved group, keeping
// only the notes that belong to its members.
func placementRecord(place int, group []string, rationale string, notes map[string]string) domain.PlacementRecord {
	record := domain.PlacementRecord{
		Place:         place,
		Tied:          len(group) > 1,
		CompetitorIDs: append([]string(nil), group...),
		Rationale:     rationale,
		Notes:         make(map[string]string, len(group)),
	}
	for _, id := range group {
		if note, ok := notes[id]; ok && note != "" {
			record.Notes[id] = note
		}
	}
	return record
}
