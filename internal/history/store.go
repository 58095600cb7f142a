// Package history keeps every submission attempt in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/aqscreen/internal/result"
	"github.com/harrison/aqscreen/internal/scoring"
	"github.com/harrison/aqscreen/internal/submission"
)

//go:embed schema.sql
var schemaSQL string

// timeLayout is fixed-width so started_at sorts chronologically as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

var (
	// ErrNotFound is returned when no attempt matches an id prefix.
	ErrNotFound = errors.New("attempt not found")

	// ErrAmbiguous is returned when an id prefix matches several attempts.
	ErrAmbiguous = errors.New("attempt id prefix is ambiguous")
)

// Entry is one stored attempt.
type Entry struct {
	ID         string
	StartedAt  time.Time
	Duration   time.Duration
	Outcome    string
	Request    scoring.PredictRequest
	Prediction *scoring.Prediction
	Message    string
}

// Succeeded reports whether the attempt rendered results.
func (e Entry) Succeeded() bool {
	return e.Outcome == submission.Succeeded.String()
}

// Presentation re-interprets a successful attempt.
func (e Entry) Presentation() (result.Presentation, bool) {
	if !e.Succeeded() || e.Prediction == nil {
		return result.Presentation{}, false
	}
	return result.Interpret(*e.Prediction), true
}

// Store manages the history database
type Store struct {
	db *sql.DB
}

var _ submission.Recorder = (*Store)(nil)

// NewStore opens (creating if needed) the database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA busy_timeout=5000", "PRAGMA journal_mode=WAL"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a settled attempt.
func (s *Store) Record(ctx context.Context, a submission.Attempt) error {
	reqJSON, err := json.Marshal(a.Request)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var predJSON sql.NullString
	var prediction string
	var confidence float64
	var score int
	if a.Prediction != nil {
		data, err := json.Marshal(a.Prediction)
		if err != nil {
			return fmt.Errorf("marshal prediction: %w", err)
		}
		predJSON = sql.NullString{String: string(data), Valid: true}
		prediction, confidence, score = a.Prediction.Prediction, a.Prediction.Confidence, a.Prediction.AQTotalScore
	}

	query := `INSERT INTO attempts
		(id, started_at, duration_ms, outcome, request_json, prediction_json, prediction, confidence, aq_total_score, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = s.db.ExecContext(ctx, query,
		a.ID,
		a.StartedAt.UTC().Format(timeLayout),
		a.Duration.Milliseconds(),
		a.Outcome.String(),
		string(reqJSON),
		predJSON,
		prediction,
		confidence,
		score,
		a.Message,
	)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

const selectColumns = `SELECT id, started_at, duration_ms, outcome, request_json, prediction_json, message FROM attempts`

// List returns the most recent attempts first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectColumns + ` ORDER BY started_at DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Get returns the attempt whose id starts with prefix.
func (s *Store) Get(ctx context.Context, prefix string) (*Entry, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.QueryContext(ctx, selectColumns+` WHERE id LIKE ? ESCAPE '\' LIMIT 2`, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("query attempt: %w", err)
	}
	defer rows.Close()

	var found []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var (
		e          Entry
		startedAt  string
		durationMS int64
		reqJSON    string
		predJSON   sql.NullString
	)
	if err := row.Scan(&e.ID, &startedAt, &durationMS, &e.Outcome, &reqJSON, &predJSON, &e.Message); err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}

	t, err := time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parse started_at of %s: %w", e.ID, err)
	}
	e.StartedAt = t
	e.Duration = time.Duration(durationMS) * time.Millisecond

	if err := json.Unmarshal([]byte(reqJSON), &e.Request); err != nil {
		return nil, fmt.Errorf("unmarshal request of %s: %w", e.ID, err)
	}
	if predJSON.Valid {
		var p scoring.Prediction
		if err := json.Unmarshal([]byte(predJSON.String), &p); err != nil {
			return nil, fmt.Errorf("unmarshal prediction of %s: %w", e.ID, err)
		}
		e.Prediction = &p
	}
	return &e, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
