// Package dataset provides the in-memory data model shared by every
// driftwatch component: ordered named columns carrying untyped values, plus
// the read-only semantic type schema that drives per-column analysis.
package dataset

import (
	"strconv"

	"github.com/driftwatch/driftwatch/pkg/errors"
)

// SemanticType classifies a column for analysis purposes.
type SemanticType string

const (
	// Categorical columns are checked for newly observed values
	Categorical SemanticType = "categorical"
	// Numeric columns receive descriptive profiling only
	Numeric SemanticType = "numeric"
	// Timeseries columns are checked for significant trend changes
	Timeseries SemanticType = "timeseries"
)

// TypeSchema maps column names to their declared semantic types. It is
// shared read-only across all per-column operations and never mutated
// during a run.
type TypeSchema map[string]SemanticType

// Type returns the declared type for a column and whether it is present.
func (s TypeSchema) Type(name string) (SemanticType, bool) {
	t, ok := s[name]
	return t, ok
}

// Known reports whether t is one of the recognized semantic types.
func Known(t SemanticType) bool {
	switch t {
	case Categorical, Numeric, Timeseries:
		return true
	}
	return false
}

// Column is a named, ordered sequence of values, one per row.
type Column struct {
	Name   string
	Values []interface{}
}

// NewColumn creates a column from a name and its row values. Integer and
// float32 cells are normalized to float64 in place, so values keep the
// same representation after a disk spill round trip through the JSON
// codec.
func NewColumn(name string, values []interface{}) *Column {
	for i, v := range values {
		switch x := v.(type) {
		case int:
			values[i] = float64(x)
		case int32:
			values[i] = float64(x)
		case int64:
			values[i] = float64(x)
		case float32:
			values[i] = float64(x)
		}
	}
	return &Column{Name: name, Values: values}
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	return len(c.Values)
}

// Floats converts the column values to float64. Nil values are skipped.
// A value that cannot be interpreted as a number yields a type_mismatch
// error naming the offending row.
func (c *Column) Floats() ([]float64, error) {
	out := make([]float64, 0, len(c.Values))
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		switch x := v.(type) {
		case float64:
			out = append(out, x)
		case float32:
			out = append(out, float64(x))
		case int:
			out = append(out, float64(x))
		case int32:
			out = append(out, float64(x))
		case int64:
			out = append(out, float64(x))
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return nil, errors.Newf(errors.ErrorTypeTypeMismatch,
					"column %s row %d: cannot convert %q to float", c.Name, i, x)
			}
			out = append(out, f)
		default:
			return nil, errors.Newf(errors.ErrorTypeTypeMismatch,
				"column %s row %d: cannot convert %T to float", c.Name, i, v)
		}
	}
	return out, nil
}

// Dataset is an ordered, named set of columns sharing a row index.
type Dataset struct {
	names   []string
	columns map[string]*Column
}

// New creates a dataset from columns in the given order. Column names
// must be unique.
func New(columns ...*Column) (*Dataset, error) {
	ds := &Dataset{
		names:   make([]string, 0, len(columns)),
		columns: make(map[string]*Column, len(columns)),
	}
	for _, col := range columns {
		if _, exists := ds.columns[col.Name]; exists {
			return nil, errors.Newf(errors.ErrorTypeValidation, "duplicate column %q", col.Name)
		}
		ds.names = append(ds.names, col.Name)
		ds.columns[col.Name] = col
	}
	return ds, nil
}

// ColumnNames returns the column names in their original order. The
// returned slice is a copy and safe to retain.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.names))
	copy(names, d.names)
	return names
}

// Column returns the named column or a not_found error.
func (d *Dataset) Column(name string) (*Column, error) {
	col, ok := d.columns[name]
	if !ok {
		return nil, errors.Newf(errors.ErrorTypeNotFound, "column %q not found", name)
	}
	return col, nil
}

// Width returns the number of columns.
func (d *Dataset) Width() int {
	return len(d.names)
}

// Rows returns the number of rows, taken from the first column. An empty
// dataset has zero rows.
func (d *Dataset) Rows() int {
	if len(d.names) == 0 {
		return 0
	}
	return d.columns[d.names[0]].Len()
}

// Select returns a new dataset containing only the named columns, in the
// requested order. The columns are shared, not copied.
func (d *Dataset) Select(names ...string) (*Dataset, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		col, err := d.Column(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return New(cols...)
}
