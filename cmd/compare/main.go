package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"genwell/internal/config"
	"genwell/internal/infrastructure"
	"genwell/internal/report"
	"genwell/internal/survey"
)

func main() {
	exportPath := flag.String("data", "", "survey export to derive user statistics from (defaults to reports/all_user_data.txt)")
	userStats := flag.String("user", "", "user statistics file (defaults to reports/user_statistics.txt)")
	benchFile := flag.String("benchmarks", "", "benchmark statistics file (defaults to reports/benchmarks.txt)")
	out := flag.String("out", "", "comparison report output path (defaults to reports/comparison_report.txt)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}
	if *exportPath == "" {
		*exportPath = paths.SurveyExportFile
	}
	if *userStats == "" {
		*userStats = paths.UserStatsFile
	}
	if *benchFile == "" {
		*benchFile = paths.BenchmarksFile
	}
	if *out == "" {
		*out = paths.ComparisonFile
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("compare.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	// A fresh export supersedes any previously written user statistics
	if _, err := os.Stat(*exportPath); err == nil {
		lines, err := survey.UserStatistics(*exportPath)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to derive user statistics", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := report.WriteStatsFile(*userStats, "User Statistics:", lines); err != nil {
			logger.ErrorContext(ctx, "Failed to write user statistics", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.InfoContext(ctx, "Wrote user statistics",
			slog.String("source", *exportPath),
			slog.String("path", *userStats))
	}

	user, err := report.ParseStatsFile(*userStats)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read user statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	benchmarks, err := report.ParseStatsFile(*benchFile)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read benchmarks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	results := report.Compare(user, benchmarks, report.MetricMapping(cfg.Dataset))
	if len(results) == 0 {
		logger.ErrorContext(ctx, "No matching metrics found for comparison")
		os.Exit(1)
	}

	fmt.Println()
	report.WriteComparisonTable(os.Stdout, results)

	if err := report.WriteComparisonReport(*out, results); err != nil {
		logger.ErrorContext(ctx, "Failed to write comparison report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("\nDetailed comparison report saved to %s\n", *out)
	logger.InfoContext(ctx, "Comparison complete",
		slog.Int("comparisons", len(results)),
		slog.String("report", *out))
}
