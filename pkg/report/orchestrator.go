package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/config"
	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/drift"
	"github.com/driftwatch/driftwatch/pkg/errors"
	"github.com/driftwatch/driftwatch/pkg/logger"
	"github.com/driftwatch/driftwatch/pkg/metrics"
	"github.com/driftwatch/driftwatch/pkg/profile"
)

// Drift field names in report records.
const (
	TrendChangeField = "trend_significant_change"
	NewValuesField   = "new_values"
)

// Source abstracts column access so the orchestrator treats an in-memory
// dataset and a disk-backed store uniformly. Disk-backed sources load one
// column at a time; the orchestrator never holds more than one column per
// snapshot.
type Source interface {
	ColumnNames() []string
	LoadColumn(name string) (*dataset.Column, error)
}

// memorySource adapts a fully materialized dataset to Source.
type memorySource struct {
	ds *dataset.Dataset
}

func (s memorySource) ColumnNames() []string { return s.ds.ColumnNames() }

func (s memorySource) LoadColumn(name string) (*dataset.Column, error) {
	return s.ds.Column(name)
}

// DatasetSource wraps an in-memory dataset as a Source.
func DatasetSource(ds *dataset.Dataset) Source {
	return memorySource{ds: ds}
}

// Orchestrator processes a dataset pair column by column: type-dispatched
// drift analysis, single-column profiling of the new snapshot, then a
// merge into one record per column.
//
// Columns are processed strictly one at a time in dataset order. This is
// intentional: a disk-backed source keeps a single resident column, and
// overlapping loads would violate that invariant. Callers wanting
// cancellation wrap the run in a context; it is checked between columns.
type Orchestrator struct {
	analyzer *drift.Analyzer
	profiler profile.Profiler
	cfg      config.AnalysisConfig
	logger   *zap.Logger
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithAnalyzer overrides the drift analyzer.
func WithAnalyzer(a *drift.Analyzer) OrchestratorOption {
	return func(o *Orchestrator) { o.analyzer = a }
}

// WithLogger sets the orchestrator logger.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) { o.logger = l }
}

// NewOrchestrator creates an orchestrator for one analysis configuration.
func NewOrchestrator(profiler profile.Profiler, cfg config.AnalysisConfig, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		analyzer: drift.NewAnalyzer(),
		profiler: profiler,
		cfg:      cfg,
		logger:   logger.Get().With(zap.String("component", "orchestrator")),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// ProcessColumns analyzes every column of the pair except the time
// column, in the original dataset's order, loading the original and new
// slices in lockstep one column at a time. Any column failure aborts the
// whole run after logging which column failed and why.
func (o *Orchestrator) ProcessColumns(ctx context.Context, original, updated Source) (*Table, error) {
	table := NewTable()

	for _, name := range original.ColumnNames() {
		if name == o.cfg.TimeColumn {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "run cancelled")
		}

		timer := metrics.NewTimer()

		originalCol, err := original.LoadColumn(name)
		if err != nil {
			o.logger.Error("failed to load original column", zap.String("column", name), zap.Error(err))
			return nil, err
		}
		updatedCol, err := updated.LoadColumn(name)
		if err != nil {
			o.logger.Error("failed to load new column", zap.String("column", name), zap.Error(err))
			return nil, err
		}

		rec, err := o.ProcessColumn(ctx, originalCol, updatedCol)
		if err != nil {
			o.logger.Error("column analysis failed", zap.String("column", name), zap.Error(err))
			return nil, err
		}

		table.Append(rec)
		timer.ObserveColumn()
	}

	return table, nil
}

// ProcessColumn produces the report record for a single column: drift
// fields for the matching semantic type, then the reduced profile of the
// new slice overlaid on top. A column whose type is missing from the
// schema or unrecognized skips drift analysis but still gets profiled.
func (o *Orchestrator) ProcessColumn(ctx context.Context, originalCol, updatedCol *dataset.Column) (Record, error) {
	name := originalCol.Name
	rec := Record{ColumnNameField: name}

	colType, ok := o.cfg.TypeSchema.Type(name)
	switch {
	case !ok || !dataset.Known(colType):
		o.logger.Warn("column type missing or unrecognized, skipping drift analysis",
			zap.String("column", name), zap.String("type", string(colType)))

	case colType == dataset.Timeseries:
		originalSeries, err := originalCol.Floats()
		if err != nil {
			return nil, err
		}
		updatedSeries, err := updatedCol.Floats()
		if err != nil {
			return nil, err
		}
		significant, err := o.analyzer.TrendChange(originalSeries, updatedSeries, o.cfg.Period)
		if err != nil {
			return nil, err
		}
		rec[TrendChangeField] = significant
		if significant {
			metrics.DriftDetected.WithLabelValues("trend_change").Inc()
		}

	case colType == dataset.Categorical:
		// Absent key means no new values; an empty list would mean
		// something else to record merging.
		if fresh := o.analyzer.NewCategories(originalCol.Values, updatedCol.Values); len(fresh) > 0 {
			rec[NewValuesField] = fresh
			metrics.DriftDetected.WithLabelValues("new_categories").Inc()
		}
	}

	single, err := dataset.New(updatedCol)
	if err != nil {
		return nil, err
	}
	schema := dataset.TypeSchema{name: colType}

	raw, err := o.profiler.Profile(ctx, single, schema)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "profiling failed").
			WithDetail("column", name)
	}
	if raw != nil {
		// Single-column profiling: only the first reduced variable
		// contributes fields.
		if reduced := profile.Reduce(raw); len(reduced) > 0 {
			for k, v := range reduced[0] {
				rec[k] = v
			}
		}
	}

	metrics.ColumnsAnalyzed.WithLabelValues(string(colType)).Inc()
	return rec, nil
}
