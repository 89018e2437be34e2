package domain

// AggregationPolicy names one of the interchangeable category aggregation
// strategies. Results from different policies are never mixed: one
// tabulation run produces scorecards under exactly one policy.
type AggregationPolicy string

const (
	// PolicyScaledMedian down-weights scores quadratically by their
	// distance from the category median before averaging.
	PolicyScaledMedian AggregationPolicy = "scaled_median"

	// PolicySimpleAverage is the plain arithmetic mean.
	PolicySimpleAverage AggregationPolicy = "simple_average"

	// PolicyTrimmedMean drops the single lowest and highest score before
	// averaging, falling back to the plain mean for two or fewer scores.
	PolicyTrimmedMean AggregationPolicy = "trimmed_mean"
)

// Aggregator reduces the available per-judge scores of one category to a
// single aggregate value. Implementations are pure, deterministic, and
// order-independent; an empty input yields an absent Score.
type Aggregator interface {
	// Policy identifies the aggregation strategy.
	Policy() AggregationPolicy

	// Aggregate reduces already-filtered present score values to one
	// aggregate. Returns an absent Score when no values are available.
	Aggregate(values []float64) Score
}

// Scorecard holds one competitor's recomputed category aggregates and
// total under a single aggregation policy.
type Scorecard struct {
	// CompetitorID is the start number this card belongs to.
	CompetitorID string
	// Policy names the aggregation strategy that produced the card.
	Policy AggregationPolicy
	// Categories maps category code to the recomputed aggregate.
	// Categories with no available judge scores hold an absent Score.
	Categories map[CategoryCode]Score
	// Total is the sum of the present category aggregates. Categories
	// without data are skipped from the sum, not treated as zero; when
	// every category is absent the total is absent.
	Total Score
}
