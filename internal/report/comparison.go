package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"genwell/internal/config"
	"genwell/internal/errors"
)

// Comparison is one metric and statistic compared against the population
// benchmark.
type Comparison struct {
	Metric         string
	StatType       string
	UserValue      float64
	BenchmarkValue float64
	AbsoluteDiff   float64
	PercentDiff    float64
	Trend          string
	Assessment     string
}

// MetricPair links a user-statistics metric to the benchmark variable it is
// measured against.
type MetricPair struct {
	UserMetric   string
	BenchmarkVar string
}

// MetricMapping pairs the survey categories with the dataset columns their
// benchmarks come from, in report order.
func MetricMapping(cols config.DatasetConfig) []MetricPair {
	return []MetricPair{
		{"Hours Alone", cols.HoursAloneColumn},
		{"Physical Health", cols.PhysicalHealthColumn},
		{"Mental Health", cols.MentalHealthColumn},
		{"Face-to-Face Conversations", cols.ConversationsColumn},
		{"Volunteering", cols.VolunteeringColumn},
	}
}

// Compare measures each user statistic against its benchmark. Metrics missing
// from either side are skipped. A difference within 5% is Stable; within 10%
// it is in the Normal Range, within 20% Moderate, beyond that Significant.
func Compare(userStats, benchmarks map[string]Stats, pairs []MetricPair) []Comparison {
	var results []Comparison

	for _, pair := range pairs {
		user, ok := userStats[pair.UserMetric]
		if !ok {
			continue
		}
		bench, ok := benchmarks[pair.BenchmarkVar]
		if !ok {
			continue
		}

		for _, stat := range []struct {
			name        string
			user, bench float64
		}{
			{"Mean", user.Mean, bench.Mean},
			{"Median", user.Median, bench.Median},
		} {
			results = append(results, compareOne(pair.UserMetric, stat.name, stat.user, stat.bench))
		}
	}

	return results
}

func compareOne(metric, statType string, userVal, benchVal float64) Comparison {
	absDiff := userVal - benchVal

	pctDiff := math.Inf(1)
	if benchVal != 0 {
		pctDiff = absDiff / benchVal * 100
	}

	trend := "Stable"
	if math.Abs(pctDiff) > 5 {
		if pctDiff > 0 {
			trend = "Higher"
		} else {
			trend = "Lower"
		}
	}

	assessment := "Normal Range"
	switch {
	case math.Abs(pctDiff) <= 10:
	case math.Abs(pctDiff) <= 20:
		assessment = "Moderate"
	default:
		assessment = "Significant"
	}

	return Comparison{
		Metric:         metric,
		StatType:       statType,
		UserValue:      userVal,
		BenchmarkValue: benchVal,
		AbsoluteDiff:   absDiff,
		PercentDiff:    pctDiff,
		Trend:          trend,
		Assessment:     assessment,
	}
}

// WriteComparisonReport writes the detailed per-metric report
func WriteComparisonReport(path string, results []Comparison) error {
	var b strings.Builder
	b.WriteString("Senior Well-Being Analysis - Comparison Report\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	var current string
	for _, r := range results {
		if r.Metric != current {
			current = r.Metric
			b.WriteString("\n" + current + "\n")
			b.WriteString(strings.Repeat("-", len(current)) + "\n")
		}
		b.WriteString(fmt.Sprintf("\n%s Analysis:\n", r.StatType))
		b.WriteString(fmt.Sprintf("  Your Value:          %.2f\n", r.UserValue))
		b.WriteString(fmt.Sprintf("  Benchmark:           %.2f\n", r.BenchmarkValue))
		b.WriteString(fmt.Sprintf("  Absolute Difference: %+.2f\n", r.AbsoluteDiff))
		b.WriteString(fmt.Sprintf("  Percentage Change:   %+.1f%%\n", r.PercentDiff))
		b.WriteString(fmt.Sprintf("  Trend:               %s\n", r.Trend))
		b.WriteString(fmt.Sprintf("  Assessment:          %s\n", r.Assessment))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewRenderError("write comparison report", err).WithContext("path", path)
	}
	return nil
}

// WriteComparisonTable prints the console summary table
func WriteComparisonTable(w io.Writer, results []Comparison) {
	fmt.Fprintln(w, "Comparison Results:")
	fmt.Fprintln(w, strings.Repeat("=", 100))
	fmt.Fprintf(w, "%-30s %-8s %-10s %-10s %-10s %-10s %s\n",
		"Metric", "Type", "User", "Benchmark", "% Diff", "Trend", "Assessment")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		fmt.Fprintf(w, "%-30s %-8s %-10.2f %-10.2f %+9.1f%% %-10s %s\n",
			r.Metric, r.StatType, r.UserValue, r.BenchmarkValue,
			r.PercentDiff, r.Trend, r.Assessment)
	}
}
