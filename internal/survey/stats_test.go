package survey

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genwell/internal/errors"
)

func TestUserStatistics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_user_data.txt")
	content := "User ID: abc, Survey Date: 2026-08-01, Question: Weekly: How many hours did you spend alone last week?, Response: 2\n" +
		"User ID: abc, Survey Date: 2026-08-08, Question: Weekly: How many hours did you spend alone last week?, Response: 4\n" +
		"User ID: abc, Survey Date: 2026-08-01, Question: Weekly: How would you rate your physical health?, Response: 3\n" +
		"User ID: abc, Survey Date: 2026-08-01, Question: Quarterly: How often have you volunteered in the past three months?, Response: 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lines, err := UserStatistics(path)
	require.NoError(t, err)
	require.Len(t, lines, 3, "categories without responses are omitted")

	assert.Equal(t, "Hours Alone", lines[0].Name)
	assert.InDelta(t, 3.0, lines[0].Mean, 1e-9)
	assert.InDelta(t, 3.0, lines[0].Median, 1e-9)
	assert.Equal(t, " hours", lines[0].Unit)

	assert.Equal(t, "Physical Health", lines[1].Name)
	assert.Equal(t, "", lines[1].Unit)
	assert.Equal(t, "Volunteering", lines[2].Name)
}

func TestUserStatistics_MentalBeforePhysicalDisambiguation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_user_data.txt")
	content := "User ID: abc, Survey Date: 2026-08-01, Question: Weekly: How would you rate your mental health?, Response: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lines, err := UserStatistics(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "Mental Health", lines[0].Name)
}

func TestUserStatistics_MissingFile(t *testing.T) {
	_, err := UserStatistics(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestUserStatistics_IgnoresMalformedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_user_data.txt")
	content := "not a response line\n" +
		"User ID: abc, Survey Date: 2026-08-01, Question: Weekly: How would you rate your physical health?, Response: oops\n" +
		"User ID: abc, Survey Date: 2026-08-01, Question: Weekly: How would you rate your physical health?, Response: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	lines, err := UserStatistics(path)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.InDelta(t, 4.0, lines[0].Mean, 1e-9)
}
