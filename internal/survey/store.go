package survey

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"genwell/internal/errors"
)

const dateLayout = "2006-01-02"

// Response is one stored survey answer
type Response struct {
	UserID     string
	SurveyDate string
	Question   string
	Answer     int
}

// Store keeps survey responses and per-question answer dates in a SQLite
// database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens (or creates) the survey database at path
func OpenStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.NewStorageError("open survey database", err).WithContext("path", path)
	}

	s := &Store{db: db, logger: logger}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS survey_responses (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			survey_date TEXT,
			question TEXT,
			response INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS question_intervals (
			user_id TEXT,
			question TEXT,
			last_answered_date TEXT,
			interval_days INTEGER,
			PRIMARY KEY (user_id, question)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return errors.NewStorageError("create survey tables", err)
		}
	}
	return nil
}

// IsQuestionDue reports whether the interval since the question was last
// answered has elapsed. daysRemaining is positive only when the question is
// not yet due.
func (s *Store) IsQuestionDue(ctx context.Context, userID, question string, intervalDays int, surveyDate time.Time) (due bool, daysRemaining int, err error) {
	var last string
	row := s.db.QueryRowContext(ctx,
		`SELECT last_answered_date FROM question_intervals WHERE user_id = ? AND question = ?`,
		userID, question)
	switch err := row.Scan(&last); err {
	case nil:
	case sql.ErrNoRows:
		return true, 0, nil
	default:
		return false, 0, errors.NewStorageError("query question interval", err)
	}

	lastDate, err := time.Parse(dateLayout, last)
	if err != nil {
		return false, 0, errors.NewStorageError("parse stored answer date", err).WithContext("value", last)
	}

	daysSince := int(surveyDate.Sub(lastDate).Hours() / 24)
	remaining := intervalDays - daysSince
	if remaining > 0 {
		return false, remaining, nil
	}
	return true, 0, nil
}

// MarkAnswered records the survey date as the question's last answered date
func (s *Store) MarkAnswered(ctx context.Context, userID, question string, intervalDays int, surveyDate time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO question_intervals (user_id, question, last_answered_date, interval_days)
		 VALUES (?, ?, ?, ?)`,
		userID, question, surveyDate.Format(dateLayout), intervalDays)
	if err != nil {
		return errors.NewStorageError("update question interval", err)
	}
	return nil
}

// SaveResponses stores a batch of answers in one transaction
func (s *Store) SaveResponses(ctx context.Context, responses []Response) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStorageError("begin transaction", err)
	}

	for _, r := range responses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO survey_responses (user_id, survey_date, question, response)
			 VALUES (?, ?, ?, ?)`,
			r.UserID, r.SurveyDate, r.Question, r.Answer); err != nil {
			tx.Rollback()
			return errors.NewStorageError("insert survey response", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.NewStorageError("commit survey responses", err)
	}

	s.logger.InfoContext(ctx, "saved survey responses", slog.Int("count", len(responses)))
	return nil
}

// AllResponses returns every stored answer in insertion order
func (s *Store) AllResponses(ctx context.Context) ([]Response, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, survey_date, question, response FROM survey_responses ORDER BY id`)
	if err != nil {
		return nil, errors.NewStorageError("query survey responses", err)
	}
	defer rows.Close()

	var responses []Response
	for rows.Next() {
		var r Response
		if err := rows.Scan(&r.UserID, &r.SurveyDate, &r.Question, &r.Answer); err != nil {
			return nil, errors.NewStorageError("scan survey response", err)
		}
		responses = append(responses, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStorageError("iterate survey responses", err)
	}
	return responses, nil
}

// Export writes every stored answer to a plain-text file, one line per
// response.
func (s *Store) Export(ctx context.Context, path string) error {
	responses, err := s.AllResponses(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, r := range responses {
		b.WriteString(fmt.Sprintf("User ID: %s, Survey Date: %s, Question: %s, Response: %d\n",
			r.UserID, r.SurveyDate, r.Question, r.Answer))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.NewStorageError("export survey responses", err).WithContext("path", path)
	}

	s.logger.InfoContext(ctx, "exported survey responses",
		slog.String("path", path),
		slog.Int("count", len(responses)))
	return nil
}
