// Package config provides the configuration model for driftwatch runs:
// where the original and new snapshots live, how they are represented in
// memory, and how columns are typed for analysis. Configurations load
// from YAML with environment variable substitution.
package config

import (
	"strings"

	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/errors"
)

// Data representation modes.
const (
	// ModeMemory keeps the whole dataset resident.
	ModeMemory = "memory"
	// ModeColumnar spills columns to disk and keeps one resident at a time.
	ModeColumnar = "columnar"
)

// DataConfig describes one data location: its file format, its in-memory
// representation, and its path. Paths starting with http:// or https://
// are downloaded to a local temporary file before reading.
type DataConfig struct {
	// Format is the file format, csv or json.
	Format string `yaml:"format" json:"format"`
	// Mode selects the in-memory representation, memory or columnar.
	// Empty means memory.
	Mode string `yaml:"mode" json:"mode"`
	// Path is a local file path or an HTTP(S) URL. An empty report path
	// skips writing.
	Path string `yaml:"path" json:"path"`
	// Compression names the spill compression algorithm for columnar
	// mode (none, gzip, snappy, s2, zstd). Empty means none.
	Compression string `yaml:"compression" json:"compression"`
}

// Remote reports whether the path is an HTTP(S) URL.
func (c DataConfig) Remote() bool {
	return strings.HasPrefix(c.Path, "http://") || strings.HasPrefix(c.Path, "https://")
}

// Columnar reports whether the dataset should be wrapped in a disk store.
func (c DataConfig) Columnar() bool {
	return c.Mode == ModeColumnar
}

// Validate checks the data configuration.
func (c DataConfig) Validate() error {
	switch c.Format {
	case "csv", "json":
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown data format %q", c.Format)
	}
	switch c.Mode {
	case "", ModeMemory, ModeColumnar:
	default:
		return errors.Newf(errors.ErrorTypeConfig, "unknown data mode %q", c.Mode)
	}
	return nil
}

// AnalysisConfig carries the shared per-run analysis parameters. The
// type schema is read-only and threaded through every per-column
// operation; it is never mutated during a run.
type AnalysisConfig struct {
	// TimeColumn names the column carrying the time index. It is
	// excluded from per-column analysis.
	TimeColumn string `yaml:"time_column" json:"time_column"`
	// Period is the seasonality used for trend decomposition, e.g. 12
	// for monthly data with yearly seasonality.
	Period int `yaml:"period" json:"period"`
	// TypeSchema maps column names to semantic types.
	TypeSchema dataset.TypeSchema `yaml:"type_schema" json:"type_schema"`
}

// Validate checks the analysis configuration.
func (c AnalysisConfig) Validate() error {
	if c.Period < 1 {
		return errors.Newf(errors.ErrorTypeConfig, "period must be >= 1, got %d", c.Period)
	}
	for name, t := range c.TypeSchema {
		if !dataset.Known(t) {
			return errors.Newf(errors.ErrorTypeConfig, "column %q: unknown semantic type %q", name, t)
		}
	}
	return nil
}

// Config is the full run configuration.
type Config struct {
	// Original is the dataset snapshot before the new rows were appended.
	Original DataConfig `yaml:"original" json:"original"`
	// New is the snapshot after the append.
	New DataConfig `yaml:"new" json:"new"`
	// Report is the output destination. An empty path skips writing.
	Report DataConfig `yaml:"report" json:"report"`
	// Analysis carries the per-run analysis parameters.
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := c.Original.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "original")
	}
	if err := c.New.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "new")
	}
	if c.Report.Path != "" {
		if err := c.Report.Validate(); err != nil {
			return errors.Wrap(err, errors.ErrorTypeConfig, "report")
		}
	}
	return c.Analysis.Validate()
}
