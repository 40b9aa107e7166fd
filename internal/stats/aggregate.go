package stats

import (
	"context"
	"log/slog"
	"sort"

	"github.com/go-playground/validator/v10"

	"genwell/internal/cleaning"
	"genwell/internal/errors"
)

// GroupSpec describes one grouping: which key each row falls under, which
// numeric value is summarized, and the declared order of the group keys.
// Keys not listed in Order sort alphabetically after the listed ones.
type GroupSpec struct {
	Name       string                     `validate:"required"`
	GroupLabel string
	ValueLabel string
	Order      []string
	Key        func(cleaning.Row) string  `validate:"required"`
	Value      func(cleaning.Row) float64 `validate:"required"`
}

// Group holds the summary statistics of one group
type Group struct {
	Key    string
	Count  int
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
}

// Aggregate maps group keys to summary statistics, in deterministic order.
// Groups with zero members are omitted entirely rather than reported as
// zero.
type Aggregate struct {
	Name       string
	GroupLabel string
	ValueLabel string
	Groups     []Group
}

// Empty reports whether the aggregate has no groups
func (a *Aggregate) Empty() bool {
	return len(a.Groups) == 0
}

// TotalCount returns the sum of the per-group counts. It always equals the
// number of rows that went into the aggregation.
func (a *Aggregate) TotalCount() int {
	total := 0
	for _, g := range a.Groups {
		total += g.Count
	}
	return total
}

// Aggregator computes grouped summary statistics over cleaned rows
type Aggregator struct {
	logger   *slog.Logger
	validate *validator.Validate
}

// NewAggregator creates a new aggregator
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{
		logger:   logger,
		validate: validator.New(),
	}
}

// Aggregate groups the rows with the given GroupSpec and summarizes each
// group.
// Output order is deterministic: declared order first, then remaining keys
// sorted, so repeated runs over the same input produce identical results.
func (a *Aggregator) Aggregate(ctx context.Context, rows []cleaning.Row, spec GroupSpec) (*Aggregate, error) {
	if err := a.validate.Struct(spec); err != nil {
		return nil, errors.NewAggregationError("invalid grouping specification", err)
	}

	grouped := make(map[string][]float64)
	for _, row := range rows {
		key := spec.Key(row)
		grouped[key] = append(grouped[key], spec.Value(row))
	}

	agg := &Aggregate{
		Name:       spec.Name,
		GroupLabel: spec.GroupLabel,
		ValueLabel: spec.ValueLabel,
		Groups:     make([]Group, 0, len(grouped)),
	}

	for _, key := range orderedKeys(grouped, spec.Order) {
		values := grouped[key]
		agg.Groups = append(agg.Groups, summarize(key, values))
	}

	a.logger.InfoContext(ctx, "computed aggregate",
		slog.String("name", spec.Name),
		slog.Int("groups", len(agg.Groups)),
		slog.Int("rows", len(rows)))

	return agg, nil
}

// orderedKeys returns the group keys present in the data: declared keys in
// their declared order first, then any undeclared keys sorted.
func orderedKeys(grouped map[string][]float64, declared []string) []string {
	keys := make([]string, 0, len(grouped))
	seen := make(map[string]bool, len(declared))

	for _, key := range declared {
		seen[key] = true
		if _, ok := grouped[key]; ok {
			keys = append(keys, key)
		}
	}

	var rest []string
	for key := range grouped {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)

	return append(keys, rest...)
}

// summarize computes the descriptive statistics of one group. Groups are
// never empty here: a key only exists because at least one row produced it.
func summarize(key string, values []float64) Group {
	mean := Mean(values)
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return Group{
		Key:    key,
		Count:  len(values),
		Mean:   mean,
		Median: Median(values),
		StdDev: StdDev(values, mean),
		Min:    min,
		Max:    max,
	}
}
