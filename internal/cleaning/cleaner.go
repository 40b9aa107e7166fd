package cleaning

import (
	"context"
	"log/slog"
	"strconv"

	"genwell/internal/config"
	"genwell/internal/dataset"
	"genwell/internal/errors"
)

// Drop reasons, in the order rules are applied. A row is counted once, under
// the first rule it fails.
const (
	DropMissingValue         = "missing_value"
	DropMissingAge           = "missing_age"
	DropAgeOutOfRange        = "age_out_of_range"
	DropMissingLoneliness    = "missing_loneliness"
	DropMissingHoursAlone    = "missing_hours_alone"
	DropHoursAloneOutOfRange = "hours_alone_out_of_range"
	DropUnmappedLabel        = "unmapped_label"
)

// dropOrder fixes the reporting order of drop reasons
var dropOrder = []string{
	DropMissingValue,
	DropMissingAge,
	DropAgeOutOfRange,
	DropMissingLoneliness,
	DropMissingHoursAlone,
	DropHoursAloneOutOfRange,
	DropUnmappedLabel,
}

// Row is one respondent that survived cleaning. All ordinal responses are
// mapped to their numeric codes and weekly hours alone carries both its raw
// value and its range bin.
type Row struct {
	ParticipantID  string
	Age            float64
	Loneliness     float64
	HoursAlone     float64
	HoursAloneBin  string
	HoursAloneCode int
	Conversations  int
	PhysicalHealth int
	MentalHealth   int
	Volunteering   int
}

// Report accounts for every loaded record: Kept plus all drop counts sum to
// Loaded. Per-reason counts make a shrinking dataset visible instead of
// silently discarded.
type Report struct {
	Loaded  int
	Kept    int
	Dropped map[string]int
}

// DroppedTotal returns the number of rows removed by cleaning
func (r *Report) DroppedTotal() int {
	total := 0
	for _, n := range r.Dropped {
		total += n
	}
	return total
}

// Reasons returns the drop reasons with non-zero counts, in rule order
func (r *Report) Reasons() []string {
	var reasons []string
	for _, reason := range dropOrder {
		if r.Dropped[reason] > 0 {
			reasons = append(reasons, reason)
		}
	}
	return reasons
}

// Cleaner filters a loaded dataset down to the rows usable for analysis.
// Policy is drop-row-on-missing-critical-field; nothing is imputed and the
// input dataset is never modified.
type Cleaner struct {
	cfg    config.CleaningConfig
	logger *slog.Logger
}

// NewCleaner creates a cleaner with the given filtering rules
func NewCleaner(cfg config.CleaningConfig, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{cfg: cfg, logger: logger}
}

// Clean produces the typed analysis rows and a drop report.
// An empty dataset cleans to an empty result; that is not an error.
func (c *Cleaner) Clean(ctx context.Context, ds *dataset.Dataset) ([]Row, *Report, error) {
	report := &Report{
		Loaded:  ds.Len(),
		Dropped: make(map[string]int),
	}

	rows := make([]Row, 0, ds.Len())

	for _, record := range ds.Records {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.NewCleaningError("cleaning interrupted", err)
		}
		row, reason := c.cleanRecord(record)
		if reason != "" {
			report.Dropped[reason]++
			continue
		}
		rows = append(rows, row)
	}

	report.Kept = len(rows)

	c.logger.InfoContext(ctx, "cleaned dataset",
		slog.Int("loaded", report.Loaded),
		slog.Int("kept", report.Kept),
		slog.Int("dropped", report.DroppedTotal()))
	for _, reason := range report.Reasons() {
		c.logger.InfoContext(ctx, "rows dropped",
			slog.String("reason", reason),
			slog.Int("count", report.Dropped[reason]))
	}

	return rows, report, nil
}

// cleanRecord applies the filtering rules to one record. It returns the
// typed row, or the reason the record was dropped.
func (c *Cleaner) cleanRecord(record dataset.Record) (Row, string) {
	// The survey encodes refused/missing answers with a sentinel value
	for _, value := range record {
		if value == c.cfg.MissingSentinel {
			return Row{}, DropMissingValue
		}
	}

	age, err := strconv.ParseFloat(record[dataset.FieldAge], 64)
	if err != nil {
		return Row{}, DropMissingAge
	}
	if age < c.cfg.MinAge || age > c.cfg.MaxAge {
		return Row{}, DropAgeOutOfRange
	}

	loneliness, err := strconv.ParseFloat(record[dataset.FieldLoneliness], 64)
	if err != nil {
		return Row{}, DropMissingLoneliness
	}

	hours, err := strconv.ParseFloat(record[dataset.FieldHoursAlone], 64)
	if err != nil {
		return Row{}, DropMissingHoursAlone
	}
	bin, code, ok := BinHoursAlone(hours)
	if !ok {
		return Row{}, DropHoursAloneOutOfRange
	}

	conversations, ok := frequencyScale[record[dataset.FieldConversations]]
	if !ok {
		return Row{}, DropUnmappedLabel
	}
	physical, ok := healthScale[record[dataset.FieldPhysicalHealth]]
	if !ok {
		return Row{}, DropUnmappedLabel
	}
	mental, ok := healthScale[record[dataset.FieldMentalHealth]]
	if !ok {
		return Row{}, DropUnmappedLabel
	}
	volunteering, ok := frequencyScale[record[dataset.FieldVolunteering]]
	if !ok {
		return Row{}, DropUnmappedLabel
	}

	return Row{
		ParticipantID:  record[dataset.FieldParticipantID],
		Age:            age,
		Loneliness:     loneliness,
		HoursAlone:     hours,
		HoursAloneBin:  bin,
		HoursAloneCode: code,
		Conversations:  conversations,
		PhysicalHealth: physical,
		MentalHealth:   mental,
		Volunteering:   volunteering,
	}, ""
}
