package domain

// PlacementRecord is one row of a final placement run: either a single
// competitor or a group that could not be separated. A tie of size n
// occupies n consecutive places but every member carries the same Place;
// the next record's Place skips past the whole group.
//
// Across one placement run the union of CompetitorIDs over all records
// equals the input competitor set exactly once: no competitor appears
// twice and none is omitted.
type PlacementRecord struct {
	// Place is the 1-based final place of this record's group.
	Place int
	// Tied reports whether the group holds more than one competitor.
	Tied bool
	// CompetitorIDs lists the group members.
	CompetitorIDs []string
	// Rationale is a human-readable summary of the criterion that
	// placed this group, suitable for direct display.
	Rationale string
	// Notes carries per-competitor tie-break detail keyed by ID.
	Notes map[string]string
}
