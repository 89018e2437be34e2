package domain

import "errors"

// Common domain errors returned by tabulation operations. Absent scores
// and irreducible ties are valid outcomes, not errors; these sentinels
// cover genuinely malformed input only.
var (
	// ErrNoCompetitors indicates an operation received an empty
	// competitor set where at least one entry was required.
	ErrNoCompetitors = errors.New("no competitors in set")

	// ErrDuplicateCompetitor indicates two competitors in one set share
	// a start number, breaking the identity assumption.
	ErrDuplicateCompetitor = errors.New("duplicate competitor id")

	// ErrInvalidConfiguration indicates configuration is invalid or
	// incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidateCompetitorSet checks the structural invariant a competitor set
// must satisfy before tabulation: uniqueness of start numbers. An empty
// set is valid here; engines report empty results for it.
func ValidateCompetitorSet(competitors []Competitor) error {
	seen := make(map[string]struct{}, len(competitors))
	for _, c := range competitors {
		if _, dup := seen[c.ID]; dup {
			return ErrDuplicateCompetitor
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
