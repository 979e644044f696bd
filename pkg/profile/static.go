package profile

import (
	"context"
	"os"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// StaticProfiler serves single-column slices of a pre-generated raw
// report, typically produced by an external profiling engine ahead of
// the run. Columns absent from the report yield an empty report, not an
// error: the orchestrator then emits a record with drift fields only.
type StaticProfiler struct {
	report *RawReport
}

// NewStaticProfiler wraps an already parsed raw report.
func NewStaticProfiler(report *RawReport) *StaticProfiler {
	return &StaticProfiler{report: report}
}

// LoadStaticProfiler reads and parses a raw report file.
func LoadStaticProfiler(path string) (*StaticProfiler, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is controlled by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read profiling report "+path)
	}
	rep, err := ParseReport(data)
	if err != nil {
		return nil, err
	}
	return &StaticProfiler{report: rep}, nil
}

// Profile returns the report slice covering the dataset's columns.
func (p *StaticProfiler) Profile(_ context.Context, ds *dataset.Dataset, _ dataset.TypeSchema) (*RawReport, error) {
	out := &RawReport{Variables: make(map[string]map[string]interface{})}
	if p.report == nil {
		return out, nil
	}
	for _, name := range ds.ColumnNames() {
		if details, ok := p.report.Variables[name]; ok {
			out.Variables[name] = details
		}
	}
	return out, nil
}

// NoopProfiler produces an empty report for every column, yielding
// drift-only records.
type NoopProfiler struct{}

// Profile returns an empty report.
func (NoopProfiler) Profile(_ context.Context, _ *dataset.Dataset, _ dataset.TypeSchema) (*RawReport, error) {
	return &RawReport{Variables: map[string]map[string]interface{}{}}, nil
}
