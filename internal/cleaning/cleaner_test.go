package cleaning

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genwell/internal/config"
	"genwell/internal/dataset"
	"genwell/internal/errors"
)

func validRecord() dataset.Record {
	return dataset.Record{
		dataset.FieldParticipantID:  "P001",
		dataset.FieldAge:            "70",
		dataset.FieldLoneliness:     "4",
		dataset.FieldHoursAlone:     "10",
		dataset.FieldConversations:  "Weekly",
		dataset.FieldPhysicalHealth: "Good",
		dataset.FieldMentalHealth:   "Very good",
		dataset.FieldVolunteering:   "Monthly",
	}
}

func datasetOf(records ...dataset.Record) *dataset.Dataset {
	return &dataset.Dataset{Records: records}
}

func newTestCleaner() *Cleaner {
	return NewCleaner(config.Default().Cleaning, nil)
}

func TestClean_ValidRow(t *testing.T) {
	rows, report, err := newTestCleaner().Clean(context.Background(), datasetOf(validRecord()))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, 1, report.Loaded)
	assert.Equal(t, 1, report.Kept)
	assert.Equal(t, 0, report.DroppedTotal())

	row := rows[0]
	assert.Equal(t, "P001", row.ParticipantID)
	assert.Equal(t, 70.0, row.Age)
	assert.Equal(t, 4.0, row.Loneliness)
	assert.Equal(t, "0-20", row.HoursAloneBin)
	assert.Equal(t, 0, row.HoursAloneCode)
	assert.Equal(t, 4, row.Conversations)  // Weekly
	assert.Equal(t, 3, row.PhysicalHealth) // Good
	assert.Equal(t, 4, row.MentalHealth)   // Very good
	assert.Equal(t, 2, row.Volunteering)   // Monthly
}

func TestClean_DropRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(dataset.Record)
		reason string
	}{
		{
			name:   "missing sentinel anywhere",
			mutate: func(r dataset.Record) { r[dataset.FieldVolunteering] = "9999" },
			reason: DropMissingValue,
		},
		{
			name:   "non-numeric age",
			mutate: func(r dataset.Record) { r[dataset.FieldAge] = "unknown" },
			reason: DropMissingAge,
		},
		{
			name:   "empty age",
			mutate: func(r dataset.Record) { r[dataset.FieldAge] = "" },
			reason: DropMissingAge,
		},
		{
			name:   "below minimum age",
			mutate: func(r dataset.Record) { r[dataset.FieldAge] = "64" },
			reason: DropAgeOutOfRange,
		},
		{
			name:   "implausibly old",
			mutate: func(r dataset.Record) { r[dataset.FieldAge] = "150" },
			reason: DropAgeOutOfRange,
		},
		{
			name:   "non-numeric loneliness",
			mutate: func(r dataset.Record) { r[dataset.FieldLoneliness] = "n/a" },
			reason: DropMissingLoneliness,
		},
		{
			name:   "non-numeric hours alone",
			mutate: func(r dataset.Record) { r[dataset.FieldHoursAlone] = "lots" },
			reason: DropMissingHoursAlone,
		},
		{
			name:   "more hours than a week holds",
			mutate: func(r dataset.Record) { r[dataset.FieldHoursAlone] = "200" },
			reason: DropHoursAloneOutOfRange,
		},
		{
			name:   "unmapped health label",
			mutate: func(r dataset.Record) { r[dataset.FieldPhysicalHealth] = "Superb" },
			reason: DropUnmappedLabel,
		},
		{
			name:   "unmapped frequency label",
			mutate: func(r dataset.Record) { r[dataset.FieldConversations] = "Sometimes" },
			reason: DropUnmappedLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := validRecord()
			tt.mutate(record)

			rows, report, err := newTestCleaner().Clean(context.Background(), datasetOf(record))
			require.NoError(t, err)

			assert.Empty(t, rows)
			assert.Equal(t, 1, report.Dropped[tt.reason])
			assert.Equal(t, 0, report.Kept)
		})
	}
}

// Mirrors the documented example: ages 70 and 68 stay, 150 is dropped by the
// plausibility rule.
func TestClean_AgePlausibilityExample(t *testing.T) {
	r1 := validRecord()
	r1[dataset.FieldAge] = "70"
	r1[dataset.FieldLoneliness] = "4"

	r2 := validRecord()
	r2[dataset.FieldAge] = "68"
	r2[dataset.FieldLoneliness] = "2"

	r3 := validRecord()
	r3[dataset.FieldAge] = "150"
	r3[dataset.FieldLoneliness] = "3"

	rows, report, err := newTestCleaner().Clean(context.Background(), datasetOf(r1, r2, r3))
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	assert.Equal(t, 1, report.Dropped[DropAgeOutOfRange])
}

func TestClean_NeverGrows(t *testing.T) {
	ds := datasetOf(validRecord(), validRecord(), validRecord())

	rows, report, err := newTestCleaner().Clean(context.Background(), ds)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(rows), ds.Len())
	assert.Equal(t, ds.Len(), report.Kept+report.DroppedTotal())
	assert.Equal(t, 3, ds.Len(), "input dataset is untouched")
}

func TestClean_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestCleaner().Clean(ctx, datasetOf(validRecord()))

	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeCleaning))
}

func TestClean_EmptyDataset(t *testing.T) {
	rows, report, err := newTestCleaner().Clean(context.Background(), datasetOf())
	require.NoError(t, err)

	assert.Empty(t, rows)
	assert.Equal(t, 0, report.Loaded)
	assert.Empty(t, report.Reasons())
}

func TestBinHoursAlone(t *testing.T) {
	tests := []struct {
		hours float64
		label string
		code  int
		ok    bool
	}{
		{0, "0-20", 0, true},
		{10, "0-20", 0, true},
		{20, "0-20", 0, true},
		{20.5, "21-40", 1, true},
		{40, "21-40", 1, true},
		{80, "41-80", 2, true},
		{90, "81-120", 3, true},
		{168, "121-168", 4, true},
		{-1, "", 0, false},
		{169, "", 0, false},
	}

	for _, tt := range tests {
		label, code, ok := BinHoursAlone(tt.hours)
		assert.Equal(t, tt.label, label, "hours=%v", tt.hours)
		assert.Equal(t, tt.code, code, "hours=%v", tt.hours)
		assert.Equal(t, tt.ok, ok, "hours=%v", tt.hours)
	}
}

func TestDecadeBracket(t *testing.T) {
	assert.Equal(t, "60s", DecadeBracket(68))
	assert.Equal(t, "60s", DecadeBracket(70), "boundary ages close the lower bracket")
	assert.Equal(t, "70s", DecadeBracket(71))
	assert.Equal(t, "70s", DecadeBracket(75.5))
	assert.Equal(t, "80s", DecadeBracket(85))
	assert.Equal(t, "", DecadeBracket(0))
}

func TestScaleLabels(t *testing.T) {
	assert.Equal(t, "Poor", HealthLabel(1))
	assert.Equal(t, "Excellent", HealthLabel(5))
	assert.Equal(t, "", HealthLabel(0))
	assert.Equal(t, "", HealthLabel(6))

	assert.Equal(t, "Not in the past three months", FrequencyLabel(0))
	assert.Equal(t, "Daily or almost daily", FrequencyLabel(6))
	assert.Equal(t, "", FrequencyLabel(7))
}
