package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"genwell/internal/charts"
	"genwell/internal/cleaning"
	"genwell/internal/config"
	"genwell/internal/dataset"
	"genwell/internal/files"
	"genwell/internal/infrastructure"
	"genwell/internal/report"
	"genwell/internal/stats"
)

func main() {
	input := flag.String("input", "", "dataset file to analyze (defaults to the newest file in data/)")
	out := flag.String("out", "", "output base directory (defaults to the current directory)")
	chartMode := flag.String("charts", "both", "chart outputs: png | xlsx | both")
	flag.Parse()

	if *chartMode != "png" && *chartMode != "xlsx" && *chartMode != "both" {
		slog.Error("Invalid -charts value, expected png, xlsx or both", "value", *chartMode)
		os.Exit(1)
	}

	var paths *config.Paths
	if *out != "" {
		paths = config.PathsFor(*out)
	} else {
		var err error
		paths, err = config.GetPaths()
		if err != nil {
			slog.Error("Failed to initialize paths", "error", err)
			os.Exit(1)
		}
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	cfg.Logging.FilePath = paths.GetLogPath("analyze.log")

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.WithRunID(context.Background(), infrastructure.NewRunID())

	if *input == "" {
		latest, err := files.LatestDataset(paths.DataDir)
		if err != nil {
			logger.ErrorContext(ctx, "No dataset found", slog.String("dir", paths.DataDir), slog.String("error", err.Error()))
			os.Exit(1)
		}
		*input = latest.Path
	}

	logger.InfoContext(ctx, "Starting well-being analysis", slog.String("input", *input))

	ds, err := dataset.Load(*input, dataset.SchemaFromConfig(cfg.Dataset), logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load dataset", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rows, cleanReport, err := cleaning.NewCleaner(cfg.Cleaning, logger).Clean(ctx, ds)
	if err != nil {
		logger.ErrorContext(ctx, "Cleaning failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	benchmarks := stats.Benchmarks(rows, cfg.Dataset)
	lines := make([]report.StatLine, 0, len(benchmarks))
	for _, b := range benchmarks {
		lines = append(lines, report.StatLine{Name: b.Variable, Mean: b.Mean, Median: b.Median})
	}
	if err := report.WriteStatsFile(paths.BenchmarksFile, "Benchmarks for the dataset:", lines); err != nil {
		logger.ErrorContext(ctx, "Failed to write benchmarks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	aggregator := stats.NewAggregator(logger)
	renderer := charts.NewRenderer(cfg.Charts, logger)

	var aggregates []*stats.Aggregate
	for _, spec := range stats.AllSpecs() {
		agg, err := aggregator.Aggregate(ctx, rows, spec)
		if err != nil {
			logger.ErrorContext(ctx, "Aggregation failed", slog.String("grouping", spec.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
		aggregates = append(aggregates, agg)

		if *chartMode == "xlsx" {
			continue
		}
		opts := charts.RenderOptions{
			Title:      agg.ValueLabel + " by " + agg.GroupLabel,
			YLabel:     agg.ValueLabel,
			OutputPath: paths.GetChartPath(agg.Name + ".png"),
		}
		if err := renderer.RenderBar(ctx, agg, opts); err != nil {
			logger.ErrorContext(ctx, "Chart rendering failed", slog.String("chart", agg.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *chartMode != "xlsx" {
		loneliness := make([]float64, 0, len(rows))
		for _, r := range rows {
			loneliness = append(loneliness, r.Loneliness)
		}
		histOpts := charts.RenderOptions{
			Title:      "Distribution of Loneliness Scores",
			YLabel:     "Respondents",
			OutputPath: paths.GetChartPath("loneliness_distribution.png"),
		}
		if err := renderer.RenderHistogram(ctx, "loneliness_distribution", loneliness, 6, histOpts); err != nil {
			logger.ErrorContext(ctx, "Histogram rendering failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	if *chartMode != "png" {
		corr := stats.HealthCorrelations(rows)
		writer := report.NewWorkbookWriter(logger)
		if err := writer.Write(ctx, paths.AnalysisWorkbook, rows, benchmarks, aggregates, corr); err != nil {
			logger.ErrorContext(ctx, "Workbook generation failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	printSummary(cleanReport, renderer, paths, *chartMode)
	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("loaded", cleanReport.Loaded),
		slog.Int("kept", cleanReport.Kept),
		slog.Int("dropped", cleanReport.DroppedTotal()),
		slog.Int("charts_written", len(renderer.Written())),
		slog.Int("charts_skipped", renderer.Skipped()))
}

func printSummary(cleanReport *cleaning.Report, renderer *charts.Renderer, paths *config.Paths, chartMode string) {
	fmt.Println("\nAnalysis Summary")
	fmt.Println("================")
	fmt.Printf("Records loaded:  %d\n", cleanReport.Loaded)
	fmt.Printf("Records kept:    %d\n", cleanReport.Kept)
	fmt.Printf("Records dropped: %d\n", cleanReport.DroppedTotal())
	for _, reason := range cleanReport.Reasons() {
		fmt.Printf("  %-28s %d\n", reason, cleanReport.Dropped[reason])
	}
	fmt.Printf("\nCharts written:  %d", len(renderer.Written()))
	if renderer.Skipped() > 0 {
		fmt.Printf(" (%d skipped, no data)", renderer.Skipped())
	}
	fmt.Println()
	fmt.Printf("Benchmarks:      %s\n", paths.BenchmarksFile)
	if chartMode != "png" {
		fmt.Printf("Workbook:        %s\n", paths.AnalysisWorkbook)
	}
}
