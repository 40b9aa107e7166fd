package survey

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"genwell/internal/errors"
	"genwell/internal/report"
	"genwell/internal/stats"
)

// userStatCategories lists the survey categories in report order, each with
// the question fragment that identifies its lines in the export file.
var userStatCategories = []struct {
	name     string
	fragment string
	unit     string
}{
	{"Hours Alone", "how many hours did you spend alone", " hours"},
	{"Physical Health", "physical health", ""},
	{"Mental Health", "mental health", ""},
	{"Face-to-Face Conversations", "face-to-face conversations", ""},
	{"Volunteering", "volunteered", ""},
}

// UserStatistics reads an exported response file and summarizes each survey
// category as mean and median. Categories with no responses are omitted.
func UserStatistics(path string) ([]report.StatLine, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError("open user data file", err).WithContext("path", path)
	}
	defer file.Close()

	values := make(map[string][]float64)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		_, after, found := strings.Cut(line, "Response: ")
		if !found {
			continue
		}
		answer, err := strconv.Atoi(strings.TrimSpace(after))
		if err != nil {
			continue
		}

		lower := strings.ToLower(line)
		for _, cat := range userStatCategories {
			if strings.Contains(lower, cat.fragment) {
				values[cat.name] = append(values[cat.name], float64(answer))
				break
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.NewLoadError("read user data file", err).WithContext("path", path)
	}

	var lines []report.StatLine
	for _, cat := range userStatCategories {
		data := values[cat.name]
		if len(data) == 0 {
			continue
		}
		lines = append(lines, report.StatLine{
			Name:   cat.name,
			Mean:   stats.Mean(data),
			Median: stats.Median(data),
			Unit:   cat.unit,
		})
	}
	return lines, nil
}
