package report

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"genwell/internal/errors"
)

// StatLine is one metric block of a statistics text file
type StatLine struct {
	Name   string
	Mean   float64
	Median float64
	Unit   string
}

// Stats holds the parsed mean and median for one metric
type Stats struct {
	Mean   float64
	Median float64
}

// WriteStatsFile writes metric blocks in the plain-text layout shared by the
// benchmark and user-statistics files:
//
//	<header>
//
//	<name>:
//	  Mean: 1.23
//	  Median: 1.00
func WriteStatsFile(path, header string, lines []StatLine) error {
	var b strings.Builder
	b.WriteString(header + "\n\n")
	for _, line := range lines {
		b.WriteString(line.Name + ":\n")
		b.WriteString(fmt.Sprintf("  Mean: %.2f%s\n", line.Mean, line.Unit))
		b.WriteString(fmt.Sprintf("  Median: %.2f%s\n\n", line.Median, line.Unit))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewRenderError("write statistics file", err).WithContext("path", path)
	}
	return nil
}

// ParseStatsFile reads a statistics file back into metric blocks. Header
// lines and separators are skipped, and units after the numeric value are
// ignored.
func ParseStatsFile(path string) (map[string]Stats, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("open statistics file", err).WithContext("path", path)
	}
	defer file.Close()

	stats := make(map[string]Stats)
	var current string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" ||
			strings.HasPrefix(line, "User Statistics:") ||
			strings.HasPrefix(line, "Benchmarks for") ||
			strings.HasPrefix(line, "=") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Mean:"), strings.HasPrefix(line, "Median:"):
			if current == "" {
				continue
			}
			parts := strings.SplitN(line, ":", 2)
			fields := strings.Fields(parts[1])
			if len(fields) == 0 {
				continue
			}
			value, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				continue
			}
			entry := stats[current]
			if strings.HasPrefix(line, "Mean:") {
				entry.Mean = value
			} else {
				entry.Median = value
			}
			stats[current] = entry

		case strings.HasSuffix(line, ":"):
			current = strings.TrimSuffix(line, ":")
			stats[current] = Stats{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewLoadError("read statistics file", err).WithContext("path", path)
	}

	if len(stats) == 0 {
		return nil, errors.NewLoadError("statistics file contains no metrics", nil).WithContext("path", path)
	}
	return stats, nil
}
