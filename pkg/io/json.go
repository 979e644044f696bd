package io

import (
	"context"
	"math"
	"os"
	"sort"

	gojson "github.com/goccy/go-json"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// JSONHandler reads and writes a table-format document: a JSON array of
// row objects. Column order is not preserved by JSON objects, so read
// columns come back in sorted name order.
type JSONHandler struct{}

// Read loads a JSON array of objects into a dataset. Keys absent from a
// row yield nil cells.
func (h *JSONHandler) Read(_ context.Context, path string) (*dataset.Dataset, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is controlled by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to read "+path)
	}

	var rows []map[string]interface{}
	if err := gojson.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse "+path)
	}

	names := make([]string, 0)
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				names = append(names, key)
			}
		}
	}
	sort.Strings(names)

	cols := make([]*dataset.Column, len(names))
	for i, name := range names {
		values := make([]interface{}, len(rows))
		for j, row := range rows {
			values[j] = row[name]
		}
		cols[i] = dataset.NewColumn(name, values)
	}
	return dataset.New(cols...)
}

// Write stores a result table as a JSON array of sparse row objects;
// absent cells are omitted from their row object. Non-finite floats
// (a derived metric divided by zero) have no JSON encoding and are
// treated as absent too.
func (h *JSONHandler) Write(_ context.Context, table Tabular, path string) error {
	columns := table.Columns()
	rows := table.Rows()

	out := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		obj := make(map[string]interface{})
		for j, cell := range row {
			if cell == nil {
				continue
			}
			if f, ok := cell.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
				continue
			}
			obj[columns[j]] = cell
		}
		out[i] = obj
	}

	data, err := gojson.MarshalIndent(out, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeData, "failed to encode table")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write "+path)
	}
	return nil
}
