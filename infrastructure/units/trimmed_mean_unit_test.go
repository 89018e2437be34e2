package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrimmedMeanUnit_Aggregate(t *testing.T) {
	unit, err := NewTrimmedMeanUnit("test", DefaultAggregatorConfig())
	require.NoError(t, err)

	tests := []struct {
		name     string
		values   []float64
		expected float64
		absent   bool
	}{
		{
			name:     "exactly two scores fall back to the simple average",
			values:   []float64{4, 8},
			expected: 6,
		},
		{
			name:     "single score falls back to itself",
			values:   []float64{7},
			expected: 7,
		},
		{
			name:     "three scores keep only the middle one",
			values:   []float64{1, 5, 9},
			expected: 5,
		},
		{
			name:     "extremes are dropped before averaging",
			values:   []float64{1, 2, 3, 4, 100},
			expected: 3,
		},
		{
			name: "only one occurrence of a duplicated extreme is dropped",
			// sorted [1 1 9]: trim one 1 and the 9, the second 1 stays.
			values:   []float64{1, 9, 1},
			expected: 1,
		},
		{
			name:   "empty input is absent",
			values: nil,
			absent: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := unit.Aggregate(tt.values)
			if tt.absent {
				assert.False(t, got.Present)
				return
			}
			require.True(t, got.Present)
			assert.InDelta(t, tt.expected, got.Value, 1e-9)
		})
	}
}

func TestTrimmedMeanUnit_DoesNotMutateInput(t *testing.T) {
	unit, err := NewTrimmedMeanUnit("test", DefaultAggregatorConfig())
	require.NoError(t, err)

	values := []float64{9, 1, 5}
	unit.Aggregate(values)

	assert.Equal(t, []float64{9, 1, 5}, values, "aggregation must sort a copy, not the caller's slice")
}
