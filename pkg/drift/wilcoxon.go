package drift

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/driftwatch/driftwatch/pkg/errors"
)

// PairedTest computes a two-sided p-value for a systematic shift between
// two paired sequences of equal length.
type PairedTest interface {
	PValue(x, y []float64) (float64, error)
}

// WilcoxonTest is the Wilcoxon signed-rank test with the large-sample
// normal approximation and tie-corrected variance. Zero differences are
// discarded before ranking.
type WilcoxonTest struct{}

// PValue returns the two-sided p-value for the paired differences x-y.
// When every difference is exactly zero the test is undefined and an
// undefined error is returned; callers decide the policy.
func (WilcoxonTest) PValue(x, y []float64) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.Newf(errors.ErrorTypeValidation,
			"paired sequences differ in length: %d vs %d", len(x), len(y))
	}

	diffs := make([]float64, 0, len(x))
	for i := range x {
		if d := x[i] - y[i]; d != 0 {
			diffs = append(diffs, d)
		}
	}
	if len(diffs) == 0 {
		return 0, errors.New(errors.ErrorTypeUndefined, "all paired differences are zero")
	}

	ranks, tieCorrection := rankAbsolute(diffs)

	var rPlus float64
	for i, d := range diffs {
		if d > 0 {
			rPlus += ranks[i]
		}
	}

	n := float64(len(diffs))
	mean := n * (n + 1) / 4
	variance := n*(n+1)*(2*n+1)/24 - tieCorrection/48
	if variance <= 0 {
		return 0, errors.New(errors.ErrorTypeUndefined, "zero variance in paired differences")
	}

	z := (rPlus - mean) / math.Sqrt(variance)
	p := 2 * distuv.UnitNormal.Survival(math.Abs(z))
	if p > 1 {
		p = 1
	}
	return p, nil
}

// rankAbsolute assigns average ranks to the absolute differences and
// returns the tie correction term sum(t^3 - t) over tie groups.
func rankAbsolute(diffs []float64) ([]float64, float64) {
	type indexed struct {
		abs float64
		pos int
	}
	order := make([]indexed, len(diffs))
	for i, d := range diffs {
		order[i] = indexed{abs: math.Abs(d), pos: i}
	}
	sort.Slice(order, func(i, j int) bool { return order[i].abs < order[j].abs })

	ranks := make([]float64, len(diffs))
	var tieCorrection float64
	for i := 0; i < len(order); {
		j := i
		for j < len(order) && order[j].abs == order[i].abs {
			j++
		}
		// Average rank over the tie group [i, j).
		avg := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k].pos] = avg
		}
		t := float64(j - i)
		tieCorrection += t*t*t - t
		i = j
	}
	return ranks, tieCorrection
}
