package cleaning

import "strconv"

// Ordinal scales used by the GenWell survey. The cleaner maps the label
// responses to these numeric codes so downstream statistics can treat every
// analysis variable as numeric.

// HealthLabels lists the self-rated health responses in scale order (1..5)
var HealthLabels = []string{"Poor", "Fair", "Good", "Very good", "Excellent"}

// FrequencyLabels lists the past-three-months activity responses in scale
// order (0..6)
var FrequencyLabels = []string{
	"Not in the past three months",
	"Less than monthly",
	"Monthly",
	"A few times a month",
	"Weekly",
	"A few times a week",
	"Daily or almost daily",
}

var healthScale = map[string]int{
	"Poor":      1,
	"Fair":      2,
	"Good":      3,
	"Very good": 4,
	"Excellent": 5,
}

var frequencyScale = map[string]int{
	"Not in the past three months": 0,
	"Less than monthly":            1,
	"Monthly":                      2,
	"A few times a month":          3,
	"Weekly":                       4,
	"A few times a week":           5,
	"Daily or almost daily":        6,
}

// HealthLabel returns the label for a health code, or "" if out of scale
func HealthLabel(code int) string {
	if code < 1 || code > len(HealthLabels) {
		return ""
	}
	return HealthLabels[code-1]
}

// FrequencyLabel returns the label for a frequency code, or "" if out of scale
func FrequencyLabel(code int) string {
	if code < 0 || code >= len(FrequencyLabels) {
		return ""
	}
	return FrequencyLabels[code]
}

// hourBin describes one weekly-hours-alone range. The first bin includes its
// lower bound; every bin includes its upper bound.
type hourBin struct {
	lo, hi float64
	label  string
}

// HourBinLabels lists the hours-alone bins in ascending order
var HourBinLabels = []string{"0-20", "21-40", "41-80", "81-120", "121-168"}

var hourBins = []hourBin{
	{0, 20, "0-20"},
	{20, 40, "21-40"},
	{40, 80, "41-80"},
	{80, 120, "81-120"},
	{120, 168, "121-168"},
}

// BinHoursAlone maps weekly hours spent alone to its range label and
// ordinal code (0..4). ok is false when the value falls outside 0..168,
// which a week cannot hold.
func BinHoursAlone(hours float64) (label string, code int, ok bool) {
	for i, bin := range hourBins {
		if i == 0 && hours >= bin.lo && hours <= bin.hi {
			return bin.label, i, true
		}
		if hours > bin.lo && hours <= bin.hi {
			return bin.label, i, true
		}
	}
	return "", 0, false
}

// DecadeBracket labels an age with its decade group. Ages sitting exactly on
// a decade boundary close the lower bracket, so 70 groups with the 60s.
func DecadeBracket(age float64) string {
	if age <= 0 {
		return ""
	}
	d := (int(age) - 1) / 10 * 10
	return strconv.Itoa(d) + "s"
}
