package units

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-podium/internal/domain"
)

func placementState(ids []string, rankings []domain.JudgeRanking) domain.State {
	competitors := make([]domain.Competitor, len(ids))
	for i, id := range ids {
		competitors[i] = domain.Competitor{ID: id}
	}
	state := domain.With(domain.NewState(), domain.KeyCompetitors, competitors)
	return domain.With(state, domain.KeyRankings, rankings)
}

func runPlacement(t *testing.T, ids []string, rankings []domain.JudgeRanking) []domain.PlacementRecord {
	t.Helper()
	unit, err := NewPlacementUnit("placement")
	require.NoError(t, err)

	next, err := unit.Execute(context.Background(), placementState(ids, rankings))
	require.NoError(t, err)

	records, ok := domain.Get(next, domain.KeyPlacements)
	require.True(t, ok)
	return records
}

// assertPartition checks the core invariant: the union of competitor IDs
// across all records equals the input set exactly once.
func assertPartition(t *testing.T, ids []string, records []domain.PlacementRecord) {
	t.Helper()
	seen := make(map[string]int)
	for _, record := range records {
		for _, id := range record.CompetitorIDs {
			seen[id]++
		}
	}
	require.Len(t, seen, len(ids))
	for _, id := range ids {
		assert.Equal(t, 1, seen[id], "competitor %s must be placed exactly once", id)
	}
}

func TestPlacementUnit_MajorityAtFirstThreshold(t *testing.T) {
	// Five judges rank X {1,1,1,2,2}: three firsts are a strict
	// majority at threshold 1, so X places first alone.
	ids := []string{"X", "Y"}
	rankings := []domain.JudgeRanking{
		{"X": 1, "Y": 2},
		{"X": 1, "Y": 2},
		{"X": 1, "Y": 2},
		{"X": 2, "Y": 1},
		{"X": 2, "Y": 1},
	}

	records := runPlacement(t, ids, rankings)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Place)
	assert.False(t, records[0].Tied)
	assert.Equal(t, []string{"X"}, records[0].CompetitorIDs)
	assert.Equal(t, "Majority within top 1 (3/5 judges)", records[0].Rationale)

	assert.Equal(t, 2, records[1].Place)
	assert.Equal(t, []string{"Y"}, records[1].CompetitorIDs)
	assert.Equal(t, "Majority within top 2 (5/5 judges)", records[1].Rationale)

	assertPartition(t, ids, records)
}

func TestPlacementUnit_SymmetricPairStaysTied(t *testing.T) {
	// Judge 1 prefers A, judge 2 prefers B: no majority at threshold 1,
	// both qualify at threshold 2, and head-to-head splits 1-1.
	ids := []string{"A", "B"}
	rankings := []domain.JudgeRanking{
		{"A": 1, "B": 2},
		{"A": 2, "B": 1},
	}

	records := runPlacement(t, ids, rankings)

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Place)
	assert.True(t, records[0].Tied)
	assert.ElementsMatch(t, []string{"A", "B"}, records[0].CompetitorIDs)
	assert.Equal(t, "Head-to-head tie (1-1)", records[0].Notes["A"])

	assertPartition(t, ids, records)
}

func TestPlacementUnit_TieConsumesPlaces(t *testing.T) {
	// Three competitors tied at place 1 must push the next record to
	// place 4, even though only two records are emitted.
	ids := []string{"A", "B", "C", "D"}
	rankings := []domain.JudgeRanking{
		{"A": 1, "B": 1, "C": 1, "D": 4},
		{"A": 1, "B": 1, "C": 1, "D": 4},
		{"A": 1, "B": 1, "C": 1, "D": 4},
	}

	records := runPlacement(t, ids, rankings)

	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].Place)
	assert.True(t, records[0].Tied)
	assert.ElementsMatch(t, []string{"A", "B", "C"}, records[0].CompetitorIDs)

	assert.Equal(t, 4, records[1].Place, "a tie of three occupies places 1-3")
	assert.Equal(t, []string{"D"}, records[1].CompetitorIDs)

	assertPartition(t, ids, records)
}

func TestPlacementUnit_QualifierCountOrdersGroups(t *testing.T) {
	// At threshold 2 both qualify, but A convinces all three judges
	// while B convinces two: A places ahead without a tie-break.
	ids := []string{"A", "B", "C"}
	rankings := []domain.JudgeRanking{
		{"A": 1, "B": 2, "C": 3},
		{"A": 2, "B": 1, "C": 3},
		{"A": 2, "B": 3, "C": 1},
	}

	records := runPlacement(t, ids, rankings)

	require.NotEmpty(t, records)
	assert.Equal(t, []string{"A"}, records[0].CompetitorIDs)
	assert.Equal(t, 1, records[0].Place)
	assert.Equal(t, "Majority within top 2 (3/3 judges)", records[0].Rationale)

	assertPartition(t, ids, records)
}

func TestPlacementUnit_AverageRankFallback(t *testing.T) {
	// Neither competitor appears in any ranking: no threshold ever
	// qualifies and the engine degrades to average-rank ordering. Both
	// average to the same value and stay grouped as a tie.
	ids := []string{"A", "B"}
	rankings := []domain.JudgeRanking{{}, {}}

	records := runPlacement(t, ids, rankings)

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Place)
	assert.True(t, records[0].Tied)
	assert.ElementsMatch(t, []string{"A", "B"}, records[0].CompetitorIDs)
	assert.Equal(t, "Fallback by average rank (3.00)", records[0].Rationale)

	assertPartition(t, ids, records)
}

func TestPlacementUnit_FallbackAfterPartialMajority(t *testing.T) {
	// A has majority support; B is invisible to every judge and lands
	// via the fallback path.
	ids := []string{"A", "B"}
	rankings := []domain.JudgeRanking{
		{"A": 1},
		{"A": 1},
	}

	records := runPlacement(t, ids, rankings)

	require.Len(t, records, 2)
	assert.Equal(t, []string{"A"}, records[0].CompetitorIDs)
	assert.Equal(t, 1, records[0].Place)

	assert.Equal(t, []string{"B"}, records[1].CompetitorIDs)
	assert.Equal(t, 2, records[1].Place)
	assert.Equal(t, "Fallback by average rank (3.00)", records[1].Rationale)

	assertPartition(t, ids, records)
}

func TestPlacementUnit_EmptyInputs(t *testing.T) {
	records := runPlacement(t, nil, nil)
	assert.Empty(t, records)

	records = runPlacement(t, []string{"A"}, nil)
	assert.Empty(t, records, "zero judges reports no result rather than failing")
}

func TestPlacementUnit_SingleCompetitor(t *testing.T) {
	records := runPlacement(t, []string{"A"}, []domain.JudgeRanking{{"A": 1}})

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Place)
	assert.False(t, records[0].Tied)
	assert.Equal(t, []string{"A"}, records[0].CompetitorIDs)
}
