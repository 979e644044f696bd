package io

import (
	"context"
	"encoding/csv"
	"os"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// CSVHandler reads and writes delimited-text files. The first row is the
// header; on read, cells parse to float64 when numeric, empty cells
// become nil, everything else stays a string.
type CSVHandler struct {
	// Comma overrides the field delimiter. Zero means ','.
	Comma rune
}

// Read loads a CSV file into a dataset, one column per header field.
func (h *CSVHandler) Read(_ context.Context, path string) (*dataset.Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is controlled by the caller
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeFile, "failed to open "+path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	if h.Comma != 0 {
		reader.Comma = h.Comma
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeData, "failed to parse "+path)
	}
	if len(rows) == 0 {
		return dataset.New()
	}

	header := rows[0]
	values := make([][]interface{}, len(header))
	for i := range values {
		values[i] = make([]interface{}, 0, len(rows)-1)
	}
	for _, row := range rows[1:] {
		for i := range header {
			if i < len(row) {
				values[i] = append(values[i], parseCell(row[i]))
			} else {
				values[i] = append(values[i], nil)
			}
		}
	}

	cols := make([]*dataset.Column, len(header))
	for i, name := range header {
		cols[i] = dataset.NewColumn(name, values[i])
	}
	return dataset.New(cols...)
}

// Write stores a result table as CSV with the union column set as the
// header. Absent cells render empty.
func (h *CSVHandler) Write(_ context.Context, table Tabular, path string) error {
	f, err := os.Create(path) //nolint:gosec // G304: path is controlled by the caller
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to create "+path)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if h.Comma != 0 {
		writer.Comma = h.Comma
	}

	columns := table.Columns()
	if err := writer.Write(columns); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to write header")
	}

	record := make([]string, len(columns))
	for _, row := range table.Rows() {
		for i, cell := range row {
			record[i] = formatCell(cell)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, errors.ErrorTypeFile, "failed to write row")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeFile, "failed to flush "+path)
	}
	return nil
}

func parseCell(cell string) interface{} {
	if cell == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return f
	}
	return cell
}

func formatCell(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		// Structured cells, e.g. a list of new categorical values.
		raw, err := gojson.Marshal(v)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
