package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Score represents a single numeric score that may be absent.
// Scraped result sheets routinely contain empty cells, placeholder text, or
// locale-formatted numbers, so every score in the engine is either a concrete
// value or explicitly absent. The zero value is absent.
type Score struct {
	// Value is the numeric score. Only meaningful when Present is true.
	Value float64
	// Present reports whether a value was available and parseable.
	Present bool
}

// SomeScore returns a present Score with the given value.
func SomeScore(v float64) Score { return Score{Value: v, Present: true} }

// AbsentScore returns the absent Score.
func AbsentScore() Score { return Score{} }

// ParseScore converts a raw score token into a canonical Score.
// Result sheets use either "." or "," as the decimal separator and may embed
// regular or non-breaking spaces. Empty, whitespace-only, or unparseable
// tokens degrade to absent; ParseScore never fails.
//
// Examples:
//
//	ParseScore("6,75")   // 6.75
//	ParseScore(" 12.5 ") // 12.5
//	ParseScore("")       // absent
//	ParseScore("n/a")    // absent
func ParseScore(token string) Score {
	// Strip every Unicode whitespace rune, including U+00A0 which the
	// source pages embed inside numbers.
	stripped, _, err := transform.String(runes.Remove(runes.In(unicode.White_Space)), token)
	if err != nil || stripped == "" {
		return AbsentScore()
	}

	normalized := strings.ReplaceAll(stripped, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return AbsentScore()
	}
	return SomeScore(v)
}

// ParseScores converts a slice of raw tokens into a JudgeScoreList,
// preserving slot positions so judge alignment survives absent entries.
func ParseScores(tokens []string) JudgeScoreList {
	scores := make(JudgeScoreList, len(tokens))
	for i, token := range tokens {
		scores[i] = ParseScore(token)
	}
	return scores
}

// PresentValues filters a JudgeScoreList down to the available numeric
// values, in slot order. Aggregators operate on this filtered form.
func PresentValues(scores JudgeScoreList) []float64 {
	values := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s.Present {
			values = append(values, s.Value)
		}
	}
	return values
}
