package drift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repeated(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func ramp(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func TestTrendChangeConstantSeriesNotSignificant(t *testing.T) {
	// Identical constant snapshots: the trend is flat, every paired
	// difference is zero, and the degenerate test maps to false instead
	// of an error.
	analyzer := NewAnalyzer()

	significant, err := analyzer.TrendChange(repeated(7, 24), repeated(7, 24), 12)
	require.NoError(t, err)
	assert.False(t, significant)
}

func TestTrendChangeShortInputNotSignificant(t *testing.T) {
	analyzer := NewAnalyzer()

	for _, n := range []int{0, 1, 4, 8, 12} {
		significant, err := analyzer.TrendChange(repeated(1, n), nil, 12)
		require.NoError(t, err)
		assert.False(t, significant, "length %d", n)
	}
}

func TestTrendChangeMonotonicShiftIsSignificant(t *testing.T) {
	// A steady ramp keeps climbing after the append: consecutive trend
	// pairs all differ in the same direction.
	analyzer := NewAnalyzer()

	significant, err := analyzer.TrendChange(ramp(0, 40), ramp(40, 20), 4)
	require.NoError(t, err)
	assert.True(t, significant)
}

func TestTrendChangeUsesConfiguredAlpha(t *testing.T) {
	// With alpha 0 nothing is ever significant.
	analyzer := NewAnalyzer(WithAlpha(0))

	significant, err := analyzer.TrendChange(ramp(0, 40), ramp(40, 20), 4)
	require.NoError(t, err)
	assert.False(t, significant)
}

func TestNewCategoriesDetectsFreshValues(t *testing.T) {
	analyzer := NewAnalyzer()

	fresh := analyzer.NewCategories(
		[]interface{}{"a", "b"},
		[]interface{}{"a", "c"},
	)
	assert.ElementsMatch(t, []interface{}{"c"}, fresh)
}

func TestNewCategoriesSubsetYieldsNil(t *testing.T) {
	analyzer := NewAnalyzer()

	fresh := analyzer.NewCategories(
		[]interface{}{"a", "b", "c"},
		[]interface{}{"c", "a", "a"},
	)
	assert.Nil(t, fresh)
}

func TestNewCategoriesDeduplicates(t *testing.T) {
	analyzer := NewAnalyzer()

	fresh := analyzer.NewCategories(
		[]interface{}{"a"},
		[]interface{}{"b", "b", "c", "b"},
	)
	assert.ElementsMatch(t, []interface{}{"b", "c"}, fresh)
}

func TestNewCategoriesCompositeValues(t *testing.T) {
	// JSON sources can hand over nested array cells, which cannot be
	// map keys.
	analyzer := NewAnalyzer()

	fresh := analyzer.NewCategories(
		[]interface{}{"a", []interface{}{"nested"}},
		[]interface{}{"a", []interface{}{"nested"}, []interface{}{"fresh"}, []interface{}{"fresh"}, "b"},
	)
	assert.ElementsMatch(t, []interface{}{[]interface{}{"fresh"}, "b"}, fresh)
}

func TestNewCategoriesMixedTypes(t *testing.T) {
	analyzer := NewAnalyzer()

	fresh := analyzer.NewCategories(
		[]interface{}{1.0, "1"},
		[]interface{}{1.0, "1", 2.0, nil},
	)
	assert.ElementsMatch(t, []interface{}{2.0, nil}, fresh)
}
