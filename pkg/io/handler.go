// Package io provides the tabular I/O collaborators: format handlers for
// reading dataset snapshots and writing report tables, selected by a
// factory keyed on declared format and path locality. Format and
// locality are orthogonal: remote paths are fetched to a local temporary
// file and then delegated to the matching format handler.
package io

import (
	"context"
	"sort"

	"github.com/driftwatch/driftwatch/pkg/config"
	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// Tabular is a finished result table: a fixed column set and rows whose
// cells are nil where the record had no value for that column.
type Tabular interface {
	Columns() []string
	Rows() [][]interface{}
}

// Handler reads datasets from and writes tables to one file format.
type Handler interface {
	Read(ctx context.Context, path string) (*dataset.Dataset, error)
	Write(ctx context.Context, table Tabular, path string) error
}

// HandlerFactory creates a format handler.
type HandlerFactory func() Handler

var handlers = map[string]HandlerFactory{
	"csv":  func() Handler { return &CSVHandler{} },
	"json": func() Handler { return &JSONHandler{} },
}

// ForConfig returns the handler for a data configuration. Remote
// locations get the format handler wrapped with an HTTP fetcher.
func ForConfig(cfg config.DataConfig) (Handler, error) {
	factory, ok := handlers[cfg.Format]
	if !ok {
		known := make([]string, 0, len(handlers))
		for name := range handlers {
			known = append(known, name)
		}
		sort.Strings(known)
		return nil, errors.Newf(errors.ErrorTypeConfig,
			"no handler for format %q (known: %v)", cfg.Format, known)
	}

	handler := factory()
	if cfg.Remote() {
		return NewRemoteHandler(handler), nil
	}
	return handler, nil
}
