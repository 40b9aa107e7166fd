package stats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genwell/internal/cleaning"
	"genwell/internal/errors"
)

func rowsFixture() []cleaning.Row {
	return []cleaning.Row{
		{ParticipantID: "P001", Age: 70, Loneliness: 4, HoursAloneBin: "0-20", Conversations: 4, Volunteering: 2, PhysicalHealth: 3, MentalHealth: 4},
		{ParticipantID: "P002", Age: 68, Loneliness: 2, HoursAloneBin: "0-20", Conversations: 6, Volunteering: 0, PhysicalHealth: 5, MentalHealth: 3},
		{ParticipantID: "P003", Age: 75, Loneliness: 5, HoursAloneBin: "41-80", Conversations: 0, Volunteering: 0, PhysicalHealth: 2, MentalHealth: 2},
		{ParticipantID: "P004", Age: 82, Loneliness: 3, HoursAloneBin: "121-168", Conversations: 2, Volunteering: 4, PhysicalHealth: 1, MentalHealth: 1},
	}
}

func TestAggregate_GroupCountsSumToInput(t *testing.T) {
	rows := rowsFixture()
	agg, err := NewAggregator(nil).Aggregate(context.Background(), rows, LonelinessByHoursAlone())
	require.NoError(t, err)

	assert.Equal(t, len(rows), agg.TotalCount())
}

func TestAggregate_DeclaredOrder(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(context.Background(), rowsFixture(), LonelinessByHoursAlone())
	require.NoError(t, err)

	keys := make([]string, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		keys = append(keys, g.Key)
	}

	// Only the bins that actually occur, in declared bin order
	assert.Equal(t, []string{"0-20", "41-80", "121-168"}, keys)
}

func TestAggregate_ZeroMemberGroupsOmitted(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(context.Background(), rowsFixture(), LonelinessByHoursAlone())
	require.NoError(t, err)

	for _, g := range agg.Groups {
		assert.Greater(t, g.Count, 0)
	}
	assert.Len(t, agg.Groups, 3, "the 21-40 and 81-120 bins have no members")
}

func TestAggregate_Deterministic(t *testing.T) {
	rows := rowsFixture()
	agg1, err := NewAggregator(nil).Aggregate(context.Background(), rows, LonelinessByConversations())
	require.NoError(t, err)
	agg2, err := NewAggregator(nil).Aggregate(context.Background(), rows, LonelinessByConversations())
	require.NoError(t, err)

	assert.Equal(t, agg1, agg2)
}

// The documented decade example: ages 70 and 68 with loneliness 4 and 2
// group into the 60s bracket with mean 3.0 and n=2.
func TestAggregate_DecadeExample(t *testing.T) {
	rows := []cleaning.Row{
		{Age: 70, Loneliness: 4},
		{Age: 68, Loneliness: 2},
	}

	agg, err := NewAggregator(nil).Aggregate(context.Background(), rows, LonelinessByAgeDecade())
	require.NoError(t, err)

	require.Len(t, agg.Groups, 1)
	assert.Equal(t, "60s", agg.Groups[0].Key)
	assert.Equal(t, 2, agg.Groups[0].Count)
	assert.InDelta(t, 3.0, agg.Groups[0].Mean, 1e-9)
}

func TestAggregate_EmptyInput(t *testing.T) {
	agg, err := NewAggregator(nil).Aggregate(context.Background(), nil, LonelinessByHoursAlone())
	require.NoError(t, err)

	assert.True(t, agg.Empty())
	assert.Equal(t, 0, agg.TotalCount())
}

func TestAggregate_GroupStatistics(t *testing.T) {
	rows := []cleaning.Row{
		{HoursAloneBin: "0-20", Loneliness: 1},
		{HoursAloneBin: "0-20", Loneliness: 2},
		{HoursAloneBin: "0-20", Loneliness: 3},
		{HoursAloneBin: "0-20", Loneliness: 6},
	}

	agg, err := NewAggregator(nil).Aggregate(context.Background(), rows, LonelinessByHoursAlone())
	require.NoError(t, err)

	require.Len(t, agg.Groups, 1)
	g := agg.Groups[0]
	assert.Equal(t, 4, g.Count)
	assert.InDelta(t, 3.0, g.Mean, 1e-9)
	assert.InDelta(t, 2.5, g.Median, 1e-9)
	assert.InDelta(t, 1.0, g.Min, 1e-9)
	assert.InDelta(t, 6.0, g.Max, 1e-9)
	assert.InDelta(t, 2.1602468994693, g.StdDev, 1e-9)
}

func TestAggregate_UndeclaredKeysSortAfterDeclared(t *testing.T) {
	spec := GroupSpec{
		Name:  "by_participant",
		Order: []string{"zeta"},
		Key:   func(r cleaning.Row) string { return r.ParticipantID },
		Value: func(r cleaning.Row) float64 { return r.Loneliness },
	}

	rows := []cleaning.Row{
		{ParticipantID: "beta", Loneliness: 1},
		{ParticipantID: "zeta", Loneliness: 2},
		{ParticipantID: "alpha", Loneliness: 3},
	}

	agg, err := NewAggregator(nil).Aggregate(context.Background(), rows, spec)
	require.NoError(t, err)

	keys := []string{agg.Groups[0].Key, agg.Groups[1].Key, agg.Groups[2].Key}
	assert.Equal(t, []string{"zeta", "alpha", "beta"}, keys)
}

func TestAggregate_InvalidSpec(t *testing.T) {
	tests := []struct {
		name string
		spec GroupSpec
	}{
		{
			name: "missing name",
			spec: GroupSpec{
				Key:   func(cleaning.Row) string { return "" },
				Value: func(cleaning.Row) float64 { return 0 },
			},
		},
		{
			name: "missing key func",
			spec: GroupSpec{
				Name:  "x",
				Value: func(cleaning.Row) float64 { return 0 },
			},
		},
		{
			name: "missing value func",
			spec: GroupSpec{
				Name: "x",
				Key:  func(cleaning.Row) string { return "" },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAggregator(nil).Aggregate(context.Background(), rowsFixture(), tt.spec)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeAggregation))
		})
	}
}
