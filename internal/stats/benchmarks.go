package stats

import (
	"genwell/internal/cleaning"
	"genwell/internal/config"
)

// Benchmark holds the population mean and median of one analysis variable.
// The Variable name is the dataset's configured column name so benchmark
// files line up with the columns a reader knows from the survey export.
type Benchmark struct {
	Variable string
	Mean     float64
	Median   float64
	Count    int
}

// Benchmarks computes mean/median benchmarks for the analysis variables of
// the cleaned dataset. Hours alone enters as its ordinal range code (0..4),
// matching how individual survey answers are recorded, so user statistics
// and population benchmarks compare on the same scale.
func Benchmarks(rows []cleaning.Row, cols config.DatasetConfig) []Benchmark {
	variables := []struct {
		name  string
		value func(cleaning.Row) float64
	}{
		{cols.HoursAloneColumn, func(r cleaning.Row) float64 { return float64(r.HoursAloneCode) }},
		{cols.PhysicalHealthColumn, func(r cleaning.Row) float64 { return float64(r.PhysicalHealth) }},
		{cols.MentalHealthColumn, func(r cleaning.Row) float64 { return float64(r.MentalHealth) }},
		{cols.ConversationsColumn, func(r cleaning.Row) float64 { return float64(r.Conversations) }},
		{cols.VolunteeringColumn, func(r cleaning.Row) float64 { return float64(r.Volunteering) }},
	}

	benchmarks := make([]Benchmark, 0, len(variables))
	for _, v := range variables {
		values := make([]float64, 0, len(rows))
		for _, row := range rows {
			values = append(values, v.value(row))
		}
		benchmarks = append(benchmarks, Benchmark{
			Variable: v.name,
			Mean:     Mean(values),
			Median:   Median(values),
			Count:    len(values),
		})
	}

	return benchmarks
}
