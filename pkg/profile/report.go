// Package profile reduces raw nested profiling reports into flat,
// metric-augmented per-column records. The profiling engine itself is an
// external collaborator behind the Profiler interface; this package only
// filters its output against fixed per-type field whitelists, flattens
// the nesting, and derives the observability metrics.
package profile

import (
	"context"

	gojson "github.com/goccy/go-json"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// Variable type families reported by the profiling collaborator.
const (
	TypeCategorical = "Categorical"
	TypeTimeSeries  = "TimeSeries"
	TypeNumeric     = "Numeric"
)

// RawReport is the nested statistics structure produced by the profiling
// collaborator: variable name to a mapping of statistic name to value or
// nested mapping, with a "type" entry naming the type family. It is a
// read-only input and never mutated.
type RawReport struct {
	Variables map[string]map[string]interface{} `json:"variables"`
}

// ParseReport decodes a JSON profiling report.
func ParseReport(data []byte) (*RawReport, error) {
	var rep RawReport
	if err := gojson.Unmarshal(data, &rep); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse profiling report")
	}
	return &rep, nil
}

// Profiler produces a raw profiling report for a dataset. Implementations
// wrap an external profiling engine and are treated as opaque; the output
// schema is the one reduced by this package.
type Profiler interface {
	Profile(ctx context.Context, ds *dataset.Dataset, schema dataset.TypeSchema) (*RawReport, error)
}
