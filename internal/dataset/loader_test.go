package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"genwell/internal/config"
	"genwell/internal/errors"
)

func testSchema() Schema {
	return SchemaFromConfig(config.Default().Dataset)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const csvHeader = "PARTICIPANT_ID,DEMO_age,LONELY_dejong_emotional_social_loneliness_scale_TOTAL," +
	"CONNECTION_social_time_alone,CONNECTION_activities_face_to_face_convorsation_p3m," +
	"WELLNESS_self_rated_physical_health,WELLNESS_self_rated_mental_health," +
	"CONNECTION_activities_volunteered_p3m\n"

func TestLoadCSV(t *testing.T) {
	path := writeCSV(t, csvHeader+
		"P001,70,4,10,Weekly,Good,Very good,Monthly\n"+
		"P002,68,2,35,Daily or almost daily,Excellent,Good,Weekly\n")

	ds, err := LoadCSV(path, testSchema(), slog.Default())
	require.NoError(t, err)

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, path, ds.Source)
	assert.Equal(t, "P001", ds.Records[0][FieldParticipantID])
	assert.Equal(t, "70", ds.Records[0][FieldAge])
	assert.Equal(t, "4", ds.Records[0][FieldLoneliness])
	assert.Equal(t, "Daily or almost daily", ds.Records[1][FieldConversations])
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), testSchema(), slog.Default())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestLoadCSV_MissingColumn(t *testing.T) {
	// Header lacks the loneliness scale column
	path := writeCSV(t, "PARTICIPANT_ID,DEMO_age\nP001,70\n")

	_, err := LoadCSV(path, testSchema(), slog.Default())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
	assert.Contains(t, err.Error(), "LONELY_dejong_emotional_social_loneliness_scale_TOTAL")
}

func TestLoadCSV_HeaderOnly(t *testing.T) {
	path := writeCSV(t, csvHeader)

	ds, err := LoadCSV(path, testSchema(), slog.Default())
	require.NoError(t, err)
	assert.Equal(t, 0, ds.Len())
}

func TestLoadCSV_ShortRowReadsAsMissing(t *testing.T) {
	path := writeCSV(t, csvHeader+"P001,70,4\n")

	ds, err := LoadCSV(path, testSchema(), slog.Default())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "4", ds.Records[0][FieldLoneliness])
	assert.Equal(t, "", ds.Records[0][FieldVolunteering])
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("dataset.parquet", testSchema(), slog.Default())

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// A title row above the table, the way survey exports often arrive
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"GenWell 2024 Cross-Sectional Data"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"PARTICIPANT_ID", "DEMO_age", "LONELY_dejong_emotional_social_loneliness_scale_TOTAL",
		"CONNECTION_social_time_alone", "CONNECTION_activities_face_to_face_convorsation_p3m",
		"WELLNESS_self_rated_physical_health", "WELLNESS_self_rated_mental_health",
		"CONNECTION_activities_volunteered_p3m",
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"P001", 70, 4, 10, "Weekly", "Good", "Good", "Monthly"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	ds, err := LoadXLSX(path, testSchema(), slog.Default())
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "P001", ds.Records[0][FieldParticipantID])
	assert.Equal(t, "70", ds.Records[0][FieldAge])
	assert.Equal(t, "Weekly", ds.Records[0][FieldConversations])
}

func TestLoadXLSX_NoSurveyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "other.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]interface{}{"totally", "unrelated"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadXLSX(path, testSchema(), slog.Default())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeLoad))
}
