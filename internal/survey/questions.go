package survey

import (
	"crypto/sha256"
	"encoding/hex"

	"genwell/internal/cleaning"
)

// Question is one survey item. Responses are recorded as the zero-based
// index of the chosen option, and the question is asked again only after
// IntervalDays have passed.
type Question struct {
	Text         string
	IntervalDays int
	Options      []string
}

// Questions returns the survey items in presentation order. Weekly items
// repeat every 7 days, quarterly items every 91.
func Questions(weeklyDays, quarterlyDays int) []Question {
	hourOptions := make([]string, len(cleaning.HourBinLabels))
	for i, label := range cleaning.HourBinLabels {
		hourOptions[i] = label + " hours"
	}

	return []Question{
		{
			Text:         "Weekly: How many hours did you spend alone last week?",
			IntervalDays: weeklyDays,
			Options:      hourOptions,
		},
		{
			Text:         "Weekly: How would you rate your physical health?",
			IntervalDays: weeklyDays,
			Options:      cleaning.HealthLabels,
		},
		{
			Text:         "Weekly: How would you rate your mental health?",
			IntervalDays: weeklyDays,
			Options:      cleaning.HealthLabels,
		},
		{
			Text:         "Quarterly: How often have you had face-to-face conversations in the past three months?",
			IntervalDays: quarterlyDays,
			Options:      cleaning.FrequencyLabels,
		},
		{
			Text:         "Quarterly: How often have you volunteered in the past three months?",
			IntervalDays: quarterlyDays,
			Options:      cleaning.FrequencyLabels,
		},
	}
}

// AnonymizeName hashes a respondent's name so the stored user ID cannot be
// traced back to them.
func AnonymizeName(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}
