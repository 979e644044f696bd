// Package driftwatch detects and summarizes how a dataset changed after
// new rows were appended: it flags significant shifts in time-series
// trend, surfaces newly observed categorical values, and reduces an
// external profiling report into a standardized per-column metrics table.
//
// # Architecture
//
// A report run flows through four components:
//
// 1. Column storage (pkg/columnar): a disk-backed store that spills every
// column of a snapshot to a private directory and keeps at most one
// column resident in memory, bounding peak memory to O(one column)
// regardless of dataset width.
//
// 2. Drift analysis (pkg/drift): per-column statistical comparison
// between the original and new slices. Time-series columns get a
// trend-change significance check (seasonal decomposition plus a
// Wilcoxon signed-rank test on consecutive trend pairs); categorical
// columns get new-value detection.
//
// 3. Profile reduction (pkg/profile): a raw nested profiling report from
// an external engine is filtered against fixed per-type whitelists,
// flattened, and augmented with derived observability metrics.
//
// 4. Orchestration (pkg/report): columns are processed one at a time in
// dataset order, drift and profiling fields are merged into one record
// per column, and records accumulate into a table whose column set is
// the union of every field produced.
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/driftwatch/driftwatch/pkg/config"
//	    "github.com/driftwatch/driftwatch/pkg/profile"
//	    "github.com/driftwatch/driftwatch/pkg/report"
//	)
//
//	var cfg config.Config
//	if err := config.Load("run.yaml", &cfg); err != nil {
//	    log.Fatal(err)
//	}
//	profiler, err := profile.LoadStaticProfiler("profile.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	table, err := report.Generate(context.Background(), cfg, profiler)
//
// Processing is strictly sequential: the columnar store's active slot is
// a capacity-1 cache, so parallel workers would each need an independent
// store.
package driftwatch
