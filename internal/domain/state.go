package domain

import "maps"

// Key is a type-safe key for accessing values in State. The type
// parameter ensures compile-time type safety when reading and writing,
// eliminating runtime type assertions at call sites.
type Key[T any] struct{ name string }

// NewKey creates a Key with the given name and type for callers outside
// this package.
func NewKey[T any](name string) Key[T] {
	return Key[T]{name: name}
}

// Predefined state keys used by the tabulation pipeline.
var (
	// KeyCompetitors stores the competitor set being tabulated.
	KeyCompetitors = Key[[]Competitor]{"competitors"}

	// KeyOtherRound stores a second round's competitor set awaiting a
	// combine step. The combiner consumes it and replaces KeyCompetitors
	// with the merged set.
	KeyOtherRound = Key[[]Competitor]{"other_round"}

	// KeyJudges stores the optional judging panel roster.
	KeyJudges = Key[[]Judge]{"judges"}

	// KeyScorecards stores per-competitor aggregates under one policy.
	KeyScorecards = Key[[]Scorecard]{"scorecards"}

	// KeyRankings stores one JudgeRanking per judge slot, in judge order.
	KeyRankings = Key[[]JudgeRanking]{"rankings"}

	// KeyJudgeLabels stores resolved display labels aligned with
	// KeyRankings.
	KeyJudgeLabels = Key[[]string]{"judge_labels"}

	// KeyPlacements stores the final ordered placement records.
	KeyPlacements = Key[[]PlacementRecord]{"placements"}

	// KeyCombineNotes stores warnings produced while merging rounds,
	// such as competitor name mismatches for the same start number.
	KeyCombineNotes = Key[[]string]{"combine_notes"}
)

// State is an immutable collection of tabulation data flowing through
// the pipeline. Writes return a new State sharing unchanged entries;
// stored values are treated as read-only by convention, which every
// stage honors by building fresh slices rather than mutating inputs.
type State struct {
	data map[string]any
}

// NewState returns an empty State ready for use.
func NewState() State {
	return State{data: make(map[string]any)}
}

// Get retrieves a value from the State with compile-time type safety.
// It reports false when the key is missing or holds a value of a
// different type.
func Get[T any](s State, key Key[T]) (T, bool) {
	var zero T
	raw, ok := s.data[key.name]
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

// With returns a new State containing the given key/value pair alongside
// every existing entry. The receiver is left untouched.
func With[T any](s State, key Key[T], value T) State {
	next := make(map[string]any, len(s.data)+1)
	maps.Copy(next, s.data)
	next[key.name] = value
	return State{data: next}
}

// Without returns a new State with the given key removed.
func Without[T any](s State, key Key[T]) State {
	next := make(map[string]any, len(s.data))
	maps.Copy(next, s.data)
	delete(next, key.name)
	return State{data: next}
}

// Len returns the number of entries in the State.
func (s State) Len() int { return len(s.data) }
