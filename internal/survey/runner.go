package survey

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"genwell/internal/errors"
)

// Runner conducts the survey over a line-based prompt loop. Input and output
// are plain streams so tests can drive a full session.
type Runner struct {
	store  *Store
	in     *bufio.Scanner
	out    io.Writer
	logger *slog.Logger
}

// NewRunner creates a survey runner over the given streams
func NewRunner(store *Store, in io.Reader, out io.Writer, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		store:  store,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger,
	}
}

// Run asks every due question, stores the answers, and exports the full
// response history to exportPath. Questions answered within their interval
// are skipped with a note of when they come due.
func (r *Runner) Run(ctx context.Context, questions []Question, exportPath string) error {
	name, err := r.prompt("Enter your name: ")
	if err != nil {
		return err
	}
	if name == "" {
		return errors.NewValidationError("a name is required to take the survey")
	}
	userID := AnonymizeName(name)

	surveyDate, err := r.promptDate()
	if err != nil {
		return err
	}

	var responses []Response
	for _, q := range questions {
		due, remaining, err := r.store.IsQuestionDue(ctx, userID, q.Text, q.IntervalDays, surveyDate)
		if err != nil {
			return err
		}
		if !due {
			fmt.Fprintf(r.out, "\n%s\n  Not due yet. Please come back after %d days.\n", q.Text, remaining)
			continue
		}

		answer, err := r.ask(q)
		if err != nil {
			return err
		}
		responses = append(responses, Response{
			UserID:     userID,
			SurveyDate: surveyDate.Format(dateLayout),
			Question:   q.Text,
			Answer:     answer,
		})
		if err := r.store.MarkAnswered(ctx, userID, q.Text, q.IntervalDays, surveyDate); err != nil {
			return err
		}
	}

	if len(responses) == 0 {
		fmt.Fprintln(r.out, "\nNo questions are currently due. Please check back later.")
		return nil
	}

	if err := r.store.SaveResponses(ctx, responses); err != nil {
		return err
	}
	if err := r.store.Export(ctx, exportPath); err != nil {
		return err
	}

	fmt.Fprintln(r.out, "\nSurvey completed. Thank you!")
	r.logger.InfoContext(ctx, "survey session finished",
		slog.Int("answered", len(responses)),
		slog.String("export", exportPath))
	return nil
}

func (r *Runner) prompt(text string) (string, error) {
	fmt.Fprint(r.out, text)
	if !r.in.Scan() {
		if err := r.in.Err(); err != nil {
			return "", errors.NewValidationError("read input").WithContext("cause", err.Error())
		}
		return "", errors.NewValidationError("input ended before the survey finished")
	}
	return strings.TrimSpace(r.in.Text()), nil
}

func (r *Runner) promptDate() (time.Time, error) {
	for {
		text, err := r.prompt("Enter the survey date (YYYY-MM-DD): ")
		if err != nil {
			return time.Time{}, err
		}
		date, err := time.Parse(dateLayout, text)
		if err != nil {
			fmt.Fprintln(r.out, "Invalid date. Use the YYYY-MM-DD format.")
			continue
		}
		return date, nil
	}
}

func (r *Runner) ask(q Question) (int, error) {
	fmt.Fprintf(r.out, "\n%s\n", q.Text)
	for i, option := range q.Options {
		fmt.Fprintf(r.out, "  %d: %s\n", i, option)
	}

	for {
		text, err := r.prompt(fmt.Sprintf("Select a number (0-%d): ", len(q.Options)-1))
		if err != nil {
			return 0, err
		}
		answer, err := strconv.Atoi(text)
		if err != nil || answer < 0 || answer >= len(q.Options) {
			fmt.Fprintf(r.out, "Please enter a number between 0 and %d.\n", len(q.Options)-1)
			continue
		}
		return answer, nil
	}
}
