package stats

import (
	"genwell/internal/cleaning"
)

// Standard groupings of the well-being analysis. Each one summarizes the
// De Jong loneliness scale total over a different slice of the respondents.

// LonelinessByHoursAlone groups loneliness by the weekly hours-alone bins
func LonelinessByHoursAlone() GroupSpec {
	return GroupSpec{
		Name:       "loneliness_by_hours_alone",
		GroupLabel: "Time Spent Alone (Hours)",
		ValueLabel: "Loneliness Score",
		Order:      cleaning.HourBinLabels,
		Key:        func(r cleaning.Row) string { return r.HoursAloneBin },
		Value:      func(r cleaning.Row) float64 { return r.Loneliness },
	}
}

// LonelinessByConversations groups loneliness by how often respondents had
// face-to-face conversations in the past three months
func LonelinessByConversations() GroupSpec {
	return GroupSpec{
		Name:       "loneliness_by_conversations",
		GroupLabel: "Frequency of Face-to-Face Conversations",
		ValueLabel: "Loneliness Score",
		Order:      cleaning.FrequencyLabels,
		Key:        func(r cleaning.Row) string { return cleaning.FrequencyLabel(r.Conversations) },
		Value:      func(r cleaning.Row) float64 { return r.Loneliness },
	}
}

// LonelinessByVolunteering groups loneliness by volunteering frequency
func LonelinessByVolunteering() GroupSpec {
	return GroupSpec{
		Name:       "loneliness_by_volunteering",
		GroupLabel: "Volunteering Frequency (Last 3 Months)",
		ValueLabel: "Average Loneliness Score",
		Order:      cleaning.FrequencyLabels,
		Key:        func(r cleaning.Row) string { return cleaning.FrequencyLabel(r.Volunteering) },
		Value:      func(r cleaning.Row) float64 { return r.Loneliness },
	}
}

// LonelinessByAgeDecade groups loneliness by age decade bracket
func LonelinessByAgeDecade() GroupSpec {
	return GroupSpec{
		Name:       "loneliness_by_age_decade",
		GroupLabel: "Age Group",
		ValueLabel: "Loneliness Score",
		Order:      []string{"60s", "70s", "80s", "90s", "100s", "110s"},
		Key:        func(r cleaning.Row) string { return cleaning.DecadeBracket(r.Age) },
		Value:      func(r cleaning.Row) float64 { return r.Loneliness },
	}
}

// AllSpecs returns the standard groupings in report order
func AllSpecs() []GroupSpec {
	return []GroupSpec{
		LonelinessByHoursAlone(),
		LonelinessByConversations(),
		LonelinessByVolunteering(),
		LonelinessByAgeDecade(),
	}
}
