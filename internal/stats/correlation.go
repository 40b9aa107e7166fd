package stats

import (
	"genwell/internal/cleaning"
)

// CorrelationMatrix is a symmetric Pearson correlation matrix over a fixed
// set of variables. Values[i][j] correlates Labels[i] with Labels[j].
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// HealthCorrelations correlates the loneliness scale total with self-rated
// physical and mental health.
func HealthCorrelations(rows []cleaning.Row) CorrelationMatrix {
	series := []struct {
		label string
		value func(cleaning.Row) float64
	}{
		{"Loneliness", func(r cleaning.Row) float64 { return r.Loneliness }},
		{"Physical Health", func(r cleaning.Row) float64 { return float64(r.PhysicalHealth) }},
		{"Mental Health", func(r cleaning.Row) float64 { return float64(r.MentalHealth) }},
	}

	columns := make([][]float64, len(series))
	labels := make([]string, len(series))
	for i, s := range series {
		labels[i] = s.label
		columns[i] = make([]float64, 0, len(rows))
		for _, row := range rows {
			columns[i] = append(columns[i], s.value(row))
		}
	}

	values := make([][]float64, len(series))
	for i := range series {
		values[i] = make([]float64, len(series))
		for j := range series {
			if i == j {
				values[i][j] = 1
				continue
			}
			values[i][j] = Pearson(columns[i], columns[j])
		}
	}

	return CorrelationMatrix{Labels: labels, Values: values}
}
