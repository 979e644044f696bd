package report

import (
	"context"

	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/columnar"
	"github.com/driftwatch/driftwatch/pkg/compression"
	"github.com/driftwatch/driftwatch/pkg/config"
	"github.com/driftwatch/driftwatch/pkg/dataset"
	"github.com/driftwatch/driftwatch/pkg/io"
	"github.com/driftwatch/driftwatch/pkg/logger"
	"github.com/driftwatch/driftwatch/pkg/profile"
)

// Generate runs a full report: read the original and new snapshots, wrap
// them in disk-backed stores when columnar mode is configured, process
// every column, and write the final table when a report path is set. The
// table is returned either way.
func Generate(ctx context.Context, cfg config.Config, profiler profile.Profiler, opts ...OrchestratorOption) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := logger.WithContext(ctx).With(zap.String("component", "report"))

	original, err := readSource(context.WithValue(ctx, logger.DatasetKey, "original"), cfg.Original)
	if err != nil {
		return nil, err
	}
	updated, err := readSource(context.WithValue(ctx, logger.DatasetKey, "new"), cfg.New)
	if err != nil {
		return nil, err
	}

	originalSrc, closeOriginal, err := wrapSource(original, cfg.Original)
	if err != nil {
		return nil, err
	}
	defer closeOriginal()

	updatedSrc, closeUpdated, err := wrapSource(updated, cfg.New)
	if err != nil {
		return nil, err
	}
	defer closeUpdated()

	orch := NewOrchestrator(profiler, cfg.Analysis, opts...)
	table, err := orch.ProcessColumns(ctx, originalSrc, updatedSrc)
	if err != nil {
		return nil, err
	}

	if cfg.Report.Path != "" {
		writer, err := io.ForConfig(cfg.Report)
		if err != nil {
			return nil, err
		}
		if err := writer.Write(ctx, table, cfg.Report.Path); err != nil {
			return nil, err
		}
		log.Info("report written",
			zap.String("path", cfg.Report.Path),
			zap.Int("columns_analyzed", table.Len()))
	}

	return table, nil
}

func readSource(ctx context.Context, cfg config.DataConfig) (*dataset.Dataset, error) {
	handler, err := io.ForConfig(cfg)
	if err != nil {
		return nil, err
	}
	ds, err := handler.Read(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}
	logger.WithContext(ctx).Debug("snapshot loaded",
		zap.String("path", cfg.Path),
		zap.Int("columns", ds.Width()),
		zap.Int("rows", ds.Rows()))
	return ds, nil
}

// wrapSource turns a read dataset into a Source, spilling it to a disk
// store in columnar mode. The returned closer releases the store's spill
// directory; for in-memory mode it is a no-op.
func wrapSource(ds *dataset.Dataset, cfg config.DataConfig) (Source, func(), error) {
	if !cfg.Columnar() {
		return DatasetSource(ds), func() {}, nil
	}

	algorithm := compression.Algorithm(cfg.Compression)
	if algorithm == "" {
		algorithm = compression.None
	}
	store, err := columnar.New(ds, columnar.WithCompression(algorithm))
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close column store", zap.Error(err))
		}
	}, nil
}
