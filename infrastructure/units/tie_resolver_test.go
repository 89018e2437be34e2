package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-podium/internal/domain"
)

func TestHeadToHead(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 2},
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
		{"a": 1, "b": 1}, // equal ranks count for neither side
	}

	winsA, winsB := headToHead("a", "b", rankings)
	assert.Equal(t, 2, winsA)
	assert.Equal(t, 1, winsB)

	// Symmetry: reversing the arguments swaps the counts, and the sum
	// equals the number of judges whose rankings differ for the pair.
	winsB2, winsA2 := headToHead("b", "a", rankings)
	assert.Equal(t, winsA, winsA2)
	assert.Equal(t, winsB, winsB2)
	assert.Equal(t, 3, winsA+winsB)
}

func TestHeadToHead_MissingRankIsLast(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"a": 1}, // b unknown to this judge
		{},       // neither known
	}

	winsA, winsB := headToHead("a", "b", rankings)
	assert.Equal(t, 1, winsA)
	assert.Equal(t, 0, winsB)
}

func TestResolveTies_Singleton(t *testing.T) {
	groups, notes := resolveTies([]string{"7"}, nil)

	assert.Equal(t, [][]string{{"7"}}, groups)
	assert.Empty(t, notes)
}

func TestResolveTies_PairWithMajority(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 2},
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
	}

	groups, notes := resolveTies([]string{"a", "b"}, rankings)

	assert.Equal(t, [][]string{{"a"}, {"b"}}, groups)
	assert.Equal(t, "Head-to-head 2-1", notes["a"])
	assert.Equal(t, "Head-to-head 1-2", notes["b"])
}

func TestResolveTies_PairExactSplitStaysTied(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 2},
		{"a": 2, "b": 1},
	}

	groups, notes := resolveTies([]string{"a", "b"}, rankings)

	assert.Equal(t, [][]string{{"a", "b"}}, groups)
	assert.Equal(t, "Head-to-head tie (1-1)", notes["a"])
	assert.Equal(t, notes["a"], notes["b"])
}

func TestResolveTies_PairZeroZero(t *testing.T) {
	// Every judge ranks both identically: 0-0, a genuine tie.
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 1},
		{"a": 3, "b": 3},
	}

	groups, notes := resolveTies([]string{"a", "b"}, rankings)

	assert.Equal(t, [][]string{{"a", "b"}}, groups)
	assert.Equal(t, "Head-to-head tie (0-0)", notes["a"])
}

func TestResolveTies_ThreeWayWithClearOrder(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 2, "c": 3},
		{"a": 1, "c": 2, "b": 3},
		{"a": 1, "b": 2, "c": 3},
	}

	groups, notes := resolveTies([]string{"a", "b", "c"}, rankings)

	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, groups)
	assert.Contains(t, notes["a"], "vs b: 3-0")
	assert.Contains(t, notes["a"], "vs c: 3-0")
	assert.Contains(t, notes["b"], "vs c: 2-1")
}

func TestResolveTies_CondorcetCycleCollapses(t *testing.T) {
	// a beats b, b beats c, c beats a: every pairwise-win count is 1,
	// so the set is irreducible and stays one tied group.
	rankings := []domain.JudgeRanking{
		{"a": 1, "b": 2, "c": 3},
		{"b": 1, "c": 2, "a": 3},
		{"c": 1, "a": 2, "b": 3},
	}

	groups, notes := resolveTies([]string{"a", "b", "c"}, rankings)

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "b", "c"}, groups[0])
	for _, id := range []string{"a", "b", "c"} {
		assert.NotEmpty(t, notes[id], "every tied competitor carries its pairwise notes")
	}
}

func TestResolveTies_RecursesIntoSharedMaximum(t *testing.T) {
	// Pairwise majorities: b>a, a>c, a>d, b>d, d>c, c>b. Win counts:
	// a=2, b=2, c=1, d=1. The shared maximum {a,b} resolves by
	// head-to-head (b wins), then {c,d} tie on the residual cycle.
	rankings := []domain.JudgeRanking{
		{"1": 1, "4": 2, "3": 3, "2": 4},
		{"2": 1, "1": 2, "4": 3, "3": 4},
		{"3": 1, "2": 2, "1": 3, "4": 4},
	}

	groups, notes := resolveTies([]string{"1", "2", "3", "4"}, rankings)

	assert.Equal(t, [][]string{{"2"}, {"1"}, {"3", "4"}}, groups)
	assert.Equal(t, "Head-to-head 2-1", notes["2"])
	assert.Equal(t, "Head-to-head 1-2", notes["1"])
	assert.NotEmpty(t, notes["3"])
	assert.NotEmpty(t, notes["4"])
}

func TestResolveTies_AllCandidatesAccountedFor(t *testing.T) {
	rankings := []domain.JudgeRanking{
		{"1": 1, "2": 2, "3": 3, "4": 4, "5": 5},
		{"2": 1, "3": 2, "1": 3, "5": 4, "4": 5},
		{"1": 1, "3": 2, "2": 3, "4": 4, "5": 5},
	}
	candidates := []string{"1", "2", "3", "4", "5"}

	groups, _ := resolveTies(candidates, rankings)

	seen := make(map[string]int)
	for _, group := range groups {
		for _, id := range group {
			seen[id]++
		}
	}
	require.Len(t, seen, len(candidates), "every candidate appears in the output")
	for id, count := range seen {
		assert.Equal(t, 1, count, "candidate %s must appear exactly once", id)
	}
}
