// Package domain contains pure, dependency-light domain models and types
// for the competition ranking engine.
package domain

import "sort"

// CategoryCode identifies one scoring category on a result sheet.
type CategoryCode = string

// DefaultCategoryCodes lists the canonical acrobatic rock'n'roll scoring
// categories in sheet order: basics woman, basics man, leader figures,
// dance figures, and music interpretation. Scenario configuration may
// override this set for other disciplines.
var DefaultCategoryCodes = []CategoryCode{"BBW", "BBM", "LF", "DF", "MI"}

// JudgeScoreList holds one Score per judge, in fixed judge order.
// The slot position, not any label, is the identity used to align scores
// across categories and across rounds; absent entries keep their slot.
type JudgeScoreList []Score

// CategoryRecord holds one competitor's scores for a single category:
// the sheet's pre-computed aggregate (if any) and the raw per-judge scores.
type CategoryRecord struct {
	// Aggregated is the aggregate published on the result sheet.
	// It may be absent and is recomputed by the engine's aggregators.
	Aggregated Score
	// JudgeScores are the raw per-judge scores in judge order.
	JudgeScores JudgeScoreList
}

// Competitor is one entry (a couple, in pairs disciplines) in a round.
// ID is the start number and the only identity used for matching across
// rounds and inside ranking and placement structures; it must be unique
// within a competitor set.
type Competitor struct {
	// ID is the start number, kept as a raw string.
	ID string
	// Position is the provisional rank carried over from the source.
	Position int
	// Name holds the competitor names as published.
	Name string
	// Categories maps category code to that category's record.
	Categories map[CategoryCode]CategoryRecord
	// Total is the sheet's published total, if any.
	Total Score
}

// Judge describes one member of the judging panel. The panel sorted by
// Letter defines the slot order of every JudgeScoreList.
type Judge struct {
	Letter  string
	Name    string
	Country string
}

// CompetitorIDLess is the canonical ordering of competitor IDs: a raw
// string comparison, never numeric. Zero-padded and unpadded start numbers
// therefore order differently, which is deliberate — the comparator is the
// deterministic tie-break of last resort and must not shift with formatting
// assumptions.
func CompetitorIDLess(a, b string) bool { return a < b }

// SortJudges orders a judging panel by letter code, establishing the
// index alignment used by every JudgeScoreList.
func SortJudges(judges []Judge) []Judge {
	sorted := make([]Judge, len(judges))
	copy(sorted, judges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Letter < sorted[j].Letter })
	return sorted
}

// CompetitorIDs returns the IDs of a competitor set in input order.
func CompetitorIDs(competitors []Competitor) []string {
	ids := make([]string, len(competitors))
	for i, c := range competitors {
		ids[i] = c.ID
	}
	return ids
}
