package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompetitorIDLess_IsRawStringOrder(t *testing.T) {
	// The comparator is deliberately lexicographic: "10" sorts before
	// "9" and zero-padding changes the order. Tie-breaks must never
	// shift with numeric reinterpretation of start numbers.
	assert.True(t, CompetitorIDLess("10", "9"))
	assert.True(t, CompetitorIDLess("09", "10"))
	assert.False(t, CompetitorIDLess("9", "10"))
}

func TestSortJudges_ByLetter(t *testing.T) {
	panel := []Judge{
		{Letter: "C", Name: "Carol"},
		{Letter: "A", Name: "Alice"},
		{Letter: "B", Name: "Bob"},
	}

	sorted := SortJudges(panel)

	assert.Equal(t, []string{"A", "B", "C"}, []string{sorted[0].Letter, sorted[1].Letter, sorted[2].Letter})
	assert.Equal(t, "C", panel[0].Letter, "input roster must not be reordered")
}

func TestValidateCompetitorSet(t *testing.T) {
	assert.NoError(t, ValidateCompetitorSet(nil), "empty sets are structurally valid")
	assert.NoError(t, ValidateCompetitorSet([]Competitor{{ID: "1"}, {ID: "2"}}))

	err := ValidateCompetitorSet([]Competitor{{ID: "7"}, {ID: "7"}})
	assert.ErrorIs(t, err, ErrDuplicateCompetitor)
}
