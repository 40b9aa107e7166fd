package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for file locations: every command
// resolves its inputs and outputs through here instead of hardcoding paths.
type Paths struct {
	BaseDir    string
	DataDir    string
	ReportsDir string
	ChartsDir  string
	LogsDir    string

	// Well-known artifact files
	BenchmarksFile   string
	UserStatsFile    string
	ComparisonFile   string
	SurveyDatabase   string
	SurveyExportFile string
	AnalysisWorkbook string
}

// GetPaths returns the application paths rooted at the base directory.
// The base directory defaults to the current working directory and can be
// overridden with GENWELL_BASE_DIR, so the tool works the same whether it is
// run from a checkout or a packaged distribution.
//
// Directory structure:
//
//	base/
//	  ├── data/       (input datasets)
//	  ├── reports/    (benchmarks, statistics, comparison reports, workbook)
//	  ├── charts/     (rendered PNG charts)
//	  └── logs/       (application logs)
func GetPaths() (*Paths, error) {
	baseDir := os.Getenv("GENWELL_BASE_DIR")
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve working directory: %w", err)
		}
		baseDir = wd
	}

	return PathsFor(baseDir), nil
}

// PathsFor returns the application paths rooted at an explicit base directory
func PathsFor(baseDir string) *Paths {
	reportsDir := filepath.Join(baseDir, "reports")

	paths := &Paths{
		BaseDir:    baseDir,
		DataDir:    filepath.Join(baseDir, "data"),
		ReportsDir: reportsDir,
		ChartsDir:  filepath.Join(baseDir, "charts"),
		LogsDir:    filepath.Join(baseDir, "logs"),

		BenchmarksFile:   filepath.Join(reportsDir, "benchmarks.txt"),
		UserStatsFile:    filepath.Join(reportsDir, "user_statistics.txt"),
		ComparisonFile:   filepath.Join(reportsDir, "comparison_report.txt"),
		SurveyDatabase:   filepath.Join(baseDir, "data", "survey_data.db"),
		SurveyExportFile: filepath.Join(reportsDir, "all_user_data.txt"),
		AnalysisWorkbook: filepath.Join(reportsDir, "wellbeing_analysis.xlsx"),
	}

	return paths
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.DataDir,
		p.ReportsDir,
		p.ChartsDir,
		p.LogsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetLogPath returns the path for a named log file
func (p *Paths) GetLogPath(name string) string {
	return filepath.Join(p.LogsDir, name)
}

// GetChartPath returns the path for a named chart artifact
func (p *Paths) GetChartPath(name string) string {
	return filepath.Join(p.ChartsDir, name)
}

// GetReportPath returns the path for a named report artifact
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}
