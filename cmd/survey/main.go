package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"genwell/internal/config"
	"genwell/internal/infrastructure"
	"genwell/internal/report"
	"genwell/internal/survey"
)

func main() {
	reset := flag.Bool("reset", false, "delete all stored survey data before starting")
	dbPath := flag.String("db", "", "survey database path (defaults to data/survey_data.db)")
	exportPath := flag.String("export", "", "response export path (defaults to reports/all_user_data.txt)")
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
	if *dbPath == "" {
		*dbPath = paths.SurveyDatabase
	}
	if *exportPath == "" {
		*exportPath = paths.SurveyExportFile
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("survey.log")
	// Keep the interactive prompts readable: log records go to the file only
	cfg.Logging.Output = "file"

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	if *reset {
		for _, path := range []string{*dbPath, *exportPath} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				logger.ErrorContext(ctx, "Failed to reset survey data", slog.String("path", path), slog.String("error", err.Error()))
				os.Exit(1)
			}
		}
		logger.InfoContext(ctx, "Survey data reset")
	}

	store, err := survey.OpenStore(*dbPath, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to open survey database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	questions := survey.Questions(cfg.Survey.WeeklyIntervalDays, cfg.Survey.QuarterlyIntervalDays)
	runner := survey.NewRunner(store, os.Stdin, os.Stdout, logger)
	if err := runner.Run(ctx, questions, *exportPath); err != nil {
		logger.ErrorContext(ctx, "Survey session failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Refresh the user statistics whenever an export exists
	if _, err := os.Stat(*exportPath); err != nil {
		return
	}
	lines, err := survey.UserStatistics(*exportPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to derive user statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := report.WriteStatsFile(paths.UserStatsFile, "User Statistics:", lines); err != nil {
		logger.ErrorContext(ctx, "Failed to write user statistics", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Wrote user statistics", slog.String("path", paths.UserStatsFile))
}
