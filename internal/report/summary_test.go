package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genwell/internal/errors"
)

func TestWriteAndParseStatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_statistics.txt")

	lines := []StatLine{
		{Name: "Hours Alone", Mean: 42.5, Median: 40, Unit: " hours"},
		{Name: "Physical Health", Mean: 3.25, Median: 3},
	}
	require.NoError(t, WriteStatsFile(path, "User Statistics:", lines))

	parsed, err := ParseStatsFile(path)
	require.NoError(t, err)
	require.Len(t, parsed, 2)

	hours := parsed["Hours Alone"]
	assert.InDelta(t, 42.5, hours.Mean, 1e-9)
	assert.InDelta(t, 40.0, hours.Median, 1e-9, "the hours unit is stripped")

	physical := parsed["Physical Health"]
	assert.InDelta(t, 3.25, physical.Mean, 1e-9)
}

func TestWriteStatsFile_Format(t *testing.T) {
	path := filepath.Join(t.TempDir(), "benchmarks.txt")

	lines := []StatLine{{Name: "CONNECTION_social_time_alone", Mean: 61.2, Median: 55}}
	require.NoError(t, WriteStatsFile(path, "Benchmarks for the dataset:", lines))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	expected := "Benchmarks for the dataset:\n\n" +
		"CONNECTION_social_time_alone:\n" +
		"  Mean: 61.20\n" +
		"  Median: 55.00\n\n"
	assert.Equal(t, expected, string(content))
}

func TestParseStatsFile_MissingFile(t *testing.T) {
	_, err := ParseStatsFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestParseStatsFile_NoMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("User Statistics:\n\n"), 0644))

	_, err := ParseStatsFile(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestParseStatsFile_SkipsMalformedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.txt")
	content := "User Statistics:\n\nHours Alone:\n  Mean: not-a-number\n  Median: 12.00 hours\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	parsed, err := ParseStatsFile(path)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, parsed["Hours Alone"].Median, 1e-9)
	assert.Equal(t, 0.0, parsed["Hours Alone"].Mean)
}
