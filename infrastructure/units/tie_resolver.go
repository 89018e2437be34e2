package units

import (
	"fmt"
	"strings"

	"github.com/ahrav/go-podium/internal/domain"
)

// headToHead counts, for each of two competitors, the judges ranking
// that competitor strictly above the other. A judge with no rank for a
// competitor treats it as ranked last; judges ranking both equally (or
// knowing neither) count for neither side, so winsA + winsB equals the
// number of judges whose rankings actually differ for the pair.
func headToHead(a, b string, rankings []domain.JudgeRanking) (winsA, winsB int) {
	for _, ranking := range rankings {
		rankA, okA := ranking[a]
		rankB, okB := ranking[b]
		switch {
		case !okA && !okB:
			// Neither ranked: indistinguishable for this judge.
		case !okA:
			winsB++
		case !okB:
			winsA++
		case rankA < rankB:
			winsA++
		case rankB < rankA:
			winsB++
		}
	}
	return winsA, winsB
}

// resolveTies splits a set of competitors tied on the current majority
// criterion into strictly ordered sub-groups using pairwise judge
// preferences. It returns the groups in final order, each either a
// singleton or a genuine unresolvable tie, plus a per-competitor note
// summarizing the deciding comparisons.
//
// For two candidates a strict majority of judge preferences wins
// outright; an exact split, including 0-0, stays tied. For larger sets
// every candidate's pairwise-win count against the rest of the set forms
// a scorecard: the maximum is extracted repeatedly, recursing into
// multi-member maxima, until nothing remains. When every candidate
// shares the same count no separation is possible and the whole input
// collapses to one tied group.
//
// The function never fails; group order within each result preserves the
// candidate input order, which callers keep deterministic.
func resolveTies(candidates []string, rankings []domain.JudgeRanking) ([][]string, map[string]string) {
	notes := make(map[string]string)
	if len(candidates) <= 1 {
		return [][]string{candidates}, notes
	}

	if len(candidates) == 2 {
		a, b := candidates[0], candidates[1]
		winsA, winsB := headToHead(a, b, rankings)
		switch {
		case winsA > winsB:
			notes[a] = fmt.Sprintf("Head-to-head %d-%d", winsA, winsB)
			notes[b] = fmt.Sprintf("Head-to-head %d-%d", winsB, winsA)
			return [][]string{{a}, {b}}, notes
		case winsB > winsA:
			notes[a] = fmt.Sprintf("Head-to-head %d-%d", winsA, winsB)
			notes[b] = fmt.Sprintf("Head-to-head %d-%d", winsB, winsA)
			return [][]string{{b}, {a}}, notes
		default:
			tie := fmt.Sprintf("Head-to-head tie (%d-%d)", winsA, winsB)
			notes[a], notes[b] = tie, tie
			return [][]string{{a, b}}, notes
		}
	}

	// More than two tied: score every candidate by pairwise wins against
	// the rest of the set.
	pairwiseWins := make(map[string]int, len(candidates))
	pairwiseNotes := make(map[string][]string, len(candidates))
	for _, c := range candidates {
		pairwiseWins[c] = 0
	}
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			a, b := candidates[i], candidates[j]
			winsA, winsB := headToHead(a, b, rankings)
			if winsA > winsB {
				pairwiseWins[a]++
			} else if winsB > winsA {
				pairwiseWins[b]++
			}
			pairwiseNotes[a] = append(pairwiseNotes[a], fmt.Sprintf("vs %s: %d-%d", b, winsA, winsB))
			pairwiseNotes[b] = append(pairwiseNotes[b], fmt.Sprintf("vs %s: %d-%d", a, winsB, winsA))
		}
	}

	joined := func(c string) string { return strings.Join(pairwiseNotes[c], "; ") }

	maxWins := func(ids []string) int {
		max := pairwiseWins[ids[0]]
		for _, c := range ids[1:] {
			if pairwiseWins[c] > max {
				max = pairwiseWins[c]
			}
		}
		return max
	}

	if top := topByWins(candidates, pairwiseWins, maxWins(candidates)); len(top) == len(candidates) {
		// Fully symmetric scorecard: an irreducible tie across the set.
		for _, c := range candidates {
			notes[c] = joined(c)
		}
		return [][]string{append([]string(nil), candidates...)}, notes
	}

	var groups [][]string
	remaining := append([]string(nil), candidates...)
	for len(remaining) > 0 {
		currentTop := topByWins(remaining, pairwiseWins, maxWins(remaining))

		if len(currentTop) == len(remaining) {
			for _, c := range remaining {
				notes[c] = joined(c)
			}
			groups = append(groups, append([]string(nil), remaining...))
			break
		}

		if len(currentTop) == 1 {
			winner := currentTop[0]
			notes[winner] = joined(winner)
			groups = append(groups, []string{winner})
			remaining = removeIDs(remaining, currentTop)
			continue
		}

		// A multi-member maximum smaller than the remainder: recurse on
		// just that sub-group to order it internally.
		subGroups, subNotes := resolveTies(currentTop, rankings)
		groups = append(groups, subGroups...)
		for id, note := range subNotes {
			notes[id] = note
		}
		remaining = removeIDs(remaining, currentTop)
	}

	for _, c := range candidates {
		if _, ok := notes[c]; !ok {
			notes[c] = joined(c)
		}
	}
	return groups, notes
}

// topByWins filters ids down to those holding the given pairwise-win
// count, preserving order.
func topByWins(ids []string, wins map[string]int, target int) []string {
	var top []string
	for _, c := range ids {
		if wins[c] == target {
			top = append(top, c)
		}
	}
	return top
}

// removeIDs returns ids without the members of drop, preserving order.
func removeIDs(ids, drop []string) []string {
	dropSet := make(map[string]struct{}, len(drop))
	for _, d := range drop {
		dropSet[d] = struct{}{}
	}
	kept := ids[:0:0]
	for _, id := range ids {
		if _, gone := dropSet[id]; !gone {
			kept = append(kept, id)
		}
	}
	return kept
}
