// Package drift implements per-column statistical comparison between an
// original and a new dataset slice: trend-change significance for
// time-series columns and new-value detection for categorical columns.
//
// The statistical estimators themselves sit behind the Decomposer and
// PairedTest interfaces; the package ships classical-decomposition and
// Wilcoxon signed-rank defaults.
package drift

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/errors"
	"github.com/driftwatch/driftwatch/pkg/logger"
)

// DefaultAlpha is the significance threshold for trend-change detection.
const DefaultAlpha = 0.05

// Analyzer runs type-specific drift checks over column slices.
type Analyzer struct {
	decomposer Decomposer
	test       PairedTest
	alpha      float64
	logger     *zap.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDecomposer overrides the trend decomposer.
func WithDecomposer(d Decomposer) Option {
	return func(a *Analyzer) { a.decomposer = d }
}

// WithPairedTest overrides the paired significance test.
func WithPairedTest(t PairedTest) Option {
	return func(a *Analyzer) { a.test = t }
}

// WithAlpha overrides the significance threshold.
func WithAlpha(alpha float64) Option {
	return func(a *Analyzer) { a.alpha = alpha }
}

// WithAnalyzerLogger sets the analyzer logger.
func WithAnalyzerLogger(l *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = l }
}

// NewAnalyzer creates an analyzer with the default estimators and a 0.05
// significance threshold.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		decomposer: MovingAverageDecomposer{},
		test:       WilcoxonTest{},
		alpha:      DefaultAlpha,
		logger:     logger.Get().With(zap.String("component", "drift_analyzer")),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TrendChange reports whether the trend of a time-series column shifted
// significantly after the new rows were appended. The original rows come
// first, then the new rows, each in their existing order; the sequence is
// not re-sorted by time. The combined series is decomposed, the trimmed
// trend is turned into consecutive pairs, and the paired test decides
// significance at the configured threshold.
//
// A trend with one or zero points is never significant, and a degenerate
// test (all paired differences zero) is treated as not significant rather
// than a failure.
func (a *Analyzer) TrendChange(original, updated []float64, period int) (bool, error) {
	combined := make([]float64, 0, len(original)+len(updated))
	combined = append(combined, original...)
	combined = append(combined, updated...)

	trend := a.decomposer.Trend(combined, period)
	if len(trend) <= 1 {
		return false, nil
	}

	p, err := a.test.PValue(trend[:len(trend)-1], trend[1:])
	if err != nil {
		if errors.IsUndefined(err) {
			a.logger.Debug("degenerate paired test, treating as not significant",
				zap.Int("trend_points", len(trend)))
			return false, nil
		}
		return false, err
	}

	return p < a.alpha, nil
}

// NewCategories returns the distinct values present in updated but absent
// from original. A nil result means no new values were observed; the
// distinction between "no new values" and "an empty list of new values"
// matters to record merging downstream. Order follows first appearance in
// updated and carries no meaning.
func (a *Analyzer) NewCategories(original, updated []interface{}) []interface{} {
	seen := make(map[interface{}]struct{}, len(original))
	var seenDeep []interface{}
	for _, v := range original {
		if hashable(v) {
			seen[v] = struct{}{}
		} else {
			seenDeep = append(seenDeep, v)
		}
	}

	var fresh []interface{}
	emitted := make(map[interface{}]struct{})
	var emittedDeep []interface{}
	for _, v := range updated {
		if hashable(v) {
			if _, ok := seen[v]; ok {
				continue
			}
			if _, ok := emitted[v]; ok {
				continue
			}
			emitted[v] = struct{}{}
		} else {
			// Composite cells, e.g. a nested array from a JSON source,
			// cannot be map keys; fall back to a deep-equal scan.
			if containsDeep(seenDeep, v) || containsDeep(emittedDeep, v) {
				continue
			}
			emittedDeep = append(emittedDeep, v)
		}
		fresh = append(fresh, v)
	}
	return fresh
}

// hashable reports whether v can be used as a map key.
func hashable(v interface{}) bool {
	return v == nil || reflect.TypeOf(v).Comparable()
}

func containsDeep(values []interface{}, v interface{}) bool {
	for _, known := range values {
		if reflect.DeepEqual(known, v) {
			return true
		}
	}
	return false
}
