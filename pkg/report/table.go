// Package report drives per-column drift analysis and profiling across a
// dataset pair and assembles the results into a single table whose column
// set is the union of every field any record produced.
package report

import (
	"sort"
)

// Record is one row of the final report: field name to value.
// column_name is always present; drift and profiling fields appear only
// when the column's type produced them.
type Record = map[string]interface{}

// ColumnNameField is present in every record.
const ColumnNameField = "column_name"

// Table accumulates sparse records. Its column set is the union of all
// fields ever appended, in first-seen order (column_name first, then
// each record's remaining fields in sorted order); a record missing a
// field has a nil cell there, not an error.
type Table struct {
	records []Record
	order   []string
	seen    map[string]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{seen: make(map[string]struct{})}
}

// Append adds a record and folds its fields into the union column set.
func (t *Table) Append(rec Record) {
	t.register(ColumnNameField)

	keys := make([]string, 0, len(rec))
	for key := range rec {
		if key != ColumnNameField {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		t.register(key)
	}

	t.records = append(t.records, rec)
}

func (t *Table) register(key string) {
	if _, ok := t.seen[key]; ok {
		return
	}
	t.seen[key] = struct{}{}
	t.order = append(t.order, key)
}

// Len returns the number of records.
func (t *Table) Len() int {
	return len(t.records)
}

// Records returns the appended records in order.
func (t *Table) Records() []Record {
	return t.records
}

// Columns returns the union column set in first-seen order.
func (t *Table) Columns() []string {
	columns := make([]string, len(t.order))
	copy(columns, t.order)
	return columns
}

// Rows materializes the records against the union column set, with nil
// cells where a record had no value.
func (t *Table) Rows() [][]interface{} {
	rows := make([][]interface{}, len(t.records))
	for i, rec := range t.records {
		row := make([]interface{}, len(t.order))
		for j, key := range t.order {
			if v, ok := rec[key]; ok {
				row[j] = v
			}
		}
		rows[i] = row
	}
	return rows
}

// Cell returns the value at (row, column) and whether it is present.
func (t *Table) Cell(row int, column string) (interface{}, bool) {
	if row < 0 || row >= len(t.records) {
		return nil, false
	}
	v, ok := t.records[row][column]
	return v, ok
}
