// Command driftwatch detects and summarizes how a dataset changed after
// new rows were appended.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/driftwatch/driftwatch/pkg/config"
	"github.com/driftwatch/driftwatch/pkg/logger"
	"github.com/driftwatch/driftwatch/pkg/profile"
	"github.com/driftwatch/driftwatch/pkg/report"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "driftwatch",
		Short: "driftwatch - dataset drift detection and reporting",
		Long: `driftwatch compares an original dataset snapshot against a new one,
flags significant time-series trend changes, surfaces newly observed
categorical values, and reduces an external profiling report to a
standardized per-column metrics table.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("driftwatch v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	var configFile, profileFile, logLevel string
	var timeout time.Duration

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a drift report",
		Long: `Generate a drift report for a dataset pair described by a YAML
configuration file.

Example:
  driftwatch run --config run.yaml --profile profile.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(configFile, profileFile, logLevel, timeout)
		},
	}

	runCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to run configuration YAML file (required)")
	_ = runCmd.MarkFlagRequired("config")
	runCmd.Flags().StringVarP(&profileFile, "profile", "p", "", "Path to a raw profiling report JSON file (optional)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "Run timeout")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReport(configFile, profileFile, logLevel string, timeout time.Duration) error {
	if err := logger.Init(logger.Config{Level: logLevel, Encoding: "console"}); err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	var cfg config.Config
	if err := config.Load(configFile, &cfg); err != nil {
		return err
	}

	var profiler profile.Profiler = profile.NoopProfiler{}
	if profileFile != "" {
		p, err := profile.LoadStaticProfiler(profileFile)
		if err != nil {
			return err
		}
		profiler = p
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	runID := fmt.Sprintf("run-%d", time.Now().Unix())
	ctx = context.WithValue(ctx, logger.RunIDKey, runID)

	log := logger.WithContext(ctx).With(zap.String("component", "driftwatch-cli"))
	log.Info("starting drift report",
		zap.String("original", cfg.Original.Path),
		zap.String("new", cfg.New.Path),
		zap.String("report", cfg.Report.Path))

	start := time.Now()
	table, err := report.Generate(ctx, cfg, profiler)
	if err != nil {
		return err
	}

	log.Info("drift report completed",
		zap.Duration("duration", time.Since(start)),
		zap.Int("columns_analyzed", table.Len()),
		zap.Int("report_fields", len(table.Columns())))
	return nil
}
