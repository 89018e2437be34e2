package units

import (
	"context"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-podium/internal/domain"
	"github.com/ahrav/go-podium/internal/ports"
)

var _ ports.Unit = (*CombineUnit)(nil)

// CombineUnit merges two independently judged rounds of the same roster
// (typically a slow and a fast segment) into one synthetic competitor
// set for a combined placement scenario. Competitors are matched by
// start number only. For each category the per-judge score lists are
// merged slot by slot: both absent stays absent, one present passes
// through, both present are summed. Competitors appearing in only one
// round pass through unchanged.
//
// Merged categories carry absent aggregates and the merged competitor an
// absent total: the published values describe a single round and are
// stale after summing, so downstream aggregation units recompute them.
//
// The unit also reconciles names: when the two rounds disagree on the
// name behind one start number it records a warning, using Levenshtein
// distance to separate minor spelling drift from a likely roster mixup.
type CombineUnit struct {
	// name is the unique identifier for this unit instance.
	name string
	// config contains the validated configuration parameters.
	config CombineConfig
}

// CombineConfig controls round merging.
type CombineConfig struct {
	// Categories lists the category codes whose score lists are merged.
	Categories []domain.CategoryCode `yaml:"categories" json:"categories" validate:"required,min=1,dive,min=1"`

	// NameDistanceLimit is the Levenshtein distance above which a name
	// mismatch for the same start number is reported as a likely
	// different couple instead of spelling drift.
	NameDistanceLimit int `yaml:"name_distance_limit" json:"name_distance_limit" validate:"min=0"`
}

// DefaultCombineConfig merges the canonical category set and treats name
// mismatches beyond distance 5 as suspicious.
func DefaultCombineConfig() CombineConfig {
	return CombineConfig{
		Categories:        append([]domain.CategoryCode(nil), domain.DefaultCategoryCodes...),
		NameDistanceLimit: 5,
	}
}

// NewCombineUnit creates a CombineUnit with the given name and
// configuration.
func NewCombineUnit(name string, config CombineConfig) (*CombineUnit, error) {
	if name == "" {
		return nil, ErrEmptyUnitName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &CombineUnit{name: name, config: config}, nil
}

// Name returns the unique identifier for this unit instance.
func (u *CombineUnit) Name() string { return u.name }

// Execute merges the state's competitor set with the second round stored
// under domain.KeyOtherRound, replacing the competitor set with the
// merged roster ordered by the ID comparator. Without a second round the
// state passes through untouched. Collected reconciliation warnings are
// stored under domain.KeyCombineNotes.
func (u *CombineUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	current, ok := domain.Get(state, domain.KeyCompetitors)
	if !ok {
		return state, fmt.Errorf("%s: %w", u.name, ErrMissingCompetitors)
	}
	other, hasOther := domain.Get(state, domain.KeyOtherRound)
	if !hasOther || len(other) == 0 {
		return domain.Without(state, domain.KeyOtherRound), nil
	}
	if len(current) == 0 {
		state = domain.With(state, domain.KeyCompetitors, other)
		return domain.Without(state, domain.KeyOtherRound), nil
	}

	merged, notes := u.merge(current, other)
	state = domain.With(state, domain.KeyCompetitors, merged)
	state = domain.With(state, domain.KeyCombineNotes, notes)
	return domain.Without(state, domain.KeyOtherRound), nil
}

func (u *CombineUnit) merge(current, other []domain.Competitor) ([]domain.Competitor, []string) {
	currentByID := make(map[string]domain.Competitor, len(current))
	for _, c := range current {
		currentByID[c.ID] = c
	}
	otherByID := make(map[string]domain.Competitor, len(other))
	for _, c := range other {
		otherByID[c.ID] = c
	}

	ids := make([]string, 0, len(currentByID)+len(otherByID))
	for id := range currentByID {
		ids = append(ids, id)
	}
	for id := range otherByID {
		if _, dup := currentByID[id]; !dup {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return domain.CompetitorIDLess(ids[i], ids[j]) })

	var notes []string
	merged := make([]domain.Competitor, 0, len(ids))
	for _, id := range ids {
		base, inCurrent := currentByID[id]
		counterpart, inOther := otherByID[id]

		if !inCurrent {
			merged = append(merged, counterpart)
			continue
		}
		if !inOther {
			merged = append(merged, base)
			continue
		}

		if note := u.nameMismatch(id, base.Name, counterpart.Name); note != "" {
			notes = append(notes, note)
		}
		merged = append(merged, u.mergeCompetitor(base, counterpart))
	}
	return merged, notes
}

// mergeCompetitor builds the combined entry for a competitor present in
// both rounds, based on the current round's record.
func (u *CombineUnit) mergeCompetitor(base, other domain.Competitor) domain.Competitor {
	combined := domain.Competitor{
		ID:         base.ID,
		Position:   base.Position,
		Name:       base.Name,
		Categories: make(map[domain.CategoryCode]domain.CategoryRecord, len(u.config.Categories)),
		Total:      domain.AbsentScore(),
	}

	for _, code := range u.config.Categories {
		scoresA := base.Categories[code].JudgeScores
		scoresB := other.Categories[code].JudgeScores

		slots := len(scoresA)
		if len(scoresB) > slots {
			slots = len(scoresB)
		}
		if slots == 0 {
			combined.Categories[code] = domain.CategoryRecord{}
			continue
		}

		mergedScores := make(domain.JudgeScoreList, slots)
		for idx := 0; idx < slots; idx++ {
			mergedScores[idx] = mergeSlot(slotAt(scoresA, idx), slotAt(scoresB, idx))
		}
		combined.Categories[code] = domain.CategoryRecord{JudgeScores: mergedScores}
	}
	return combined
}

// nameMismatch reports a warning when the two rounds disagree on the
// name behind one start number, empty when the names agree or either
// round left the name blank.
func (u *CombineUnit) nameMismatch(id, nameA, nameB string) string {
	if nameA == "" || nameB == "" || nameA == nameB {
		return ""
	}
	distance := levenshtein.ComputeDistance(nameA, nameB)
	if distance > u.config.NameDistanceLimit {
		return fmt.Sprintf("start %s: rounds name different couples (%q vs %q, distance %d)", id, nameA, nameB, distance)
	}
	return fmt.Sprintf("start %s: name drift between rounds (%q vs %q, distance %d)", id, nameA, nameB, distance)
}

// slotAt returns the score at idx, absent when the list is shorter.
func slotAt(scores domain.JudgeScoreList, idx int) domain.Score {
	if idx < len(scores) {
		return scores[idx]
	}
	return domain.AbsentScore()
}

// mergeSlot merges one judge slot across two rounds: both absent stays
// absent, otherwise the present values sum. The merge is commutative.
func mergeSlot(a, b domain.Score) domain.Score {
	if !a.Present && !b.Present {
		return domain.AbsentScore()
	}
	var total float64
	if a.Present {
		total += a.Value
	}
	if b.Present {
		total += b.Value
	}
	return domain.SomeScore(total)
}

// Validate checks that the unit is properly configured.
func (u *CombineUnit) Validate() error {
	if err := validate.Struct(u.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration parameters and
// replaces the unit's configuration after validation.
func (u *CombineUnit) UnmarshalParameters(params yaml.Node) error {
	var config CombineConfig
	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}
	u.config = config
	return nil
}
