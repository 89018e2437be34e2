package domain

// JudgeRanking is one judge's ordinal ranking of a competitor set,
// keyed by competitor ID, where 1 is most preferred. Competitors with
// equal judge-assigned totals share the same rank value under the
// standard "skip" scheme: the next distinct total takes the rank equal
// to its 1-based position among all competitors, so ties consume rank
// slots without compacting the ranks that follow.
type JudgeRanking map[string]int

// Rank returns the ordinal rank a judge assigned to a competitor.
// A competitor unknown to this ranking is treated as ranked last, which
// head-to-head comparisons rely on when rounds differ in roster.
func (r JudgeRanking) Rank(id string) (int, bool) {
	rank, ok := r[id]
	return rank, ok
}
