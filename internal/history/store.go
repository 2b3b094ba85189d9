// Package history keeps an append-only audit log of batch runs in SQLite.
// Nothing in the batch pipeline reads it back.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/codecbatch/internal/batch"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

// Run is a stored run row.
type Run struct {
	ID         string
	Mode       string
	SourceDir  string
	DestDir    string
	Outcome    string
	Error      string
	Discovered int
	Succeeded  int
	Failed     int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Invocation is a stored InvocationResult.
type Invocation struct {
	Seq        int
	InputPath  string
	OutputPath string
	Status     string
	Cause      string
	Duration   time.Duration
}

// Store persists run summaries.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	s, err := NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore applies the schema to db and wraps it.
func NewStore(db *sql.DB) (*Store, error) {
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a finished run and all of its invocation results.
func (s *Store) Record(ctx context.Context, sum batch.Summary) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, source_dir, dest_dir, outcome, error,
			discovered, succeeded, failed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID, sum.Mode.String(), sum.SourceDir, sum.DestDir, string(sum.Outcome), errText(sum.Err),
		sum.Discovered, sum.Succeeded(), sum.Failed(),
		sum.StartedAt.UnixMilli(), sum.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, r := range sum.Results {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invocations (run_id, seq, input_path, output_path, status, cause, duration_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sum.RunID, i+1, r.Task.InputPath, r.Task.OutputPath, r.Status.String(), errText(r.Cause),
			r.Duration.Milliseconds(),
		)
		if err != nil {
			return fmt.Errorf("insert invocation %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, source_dir, dest_dir, outcome, error,
			discovered, succeeded, failed, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			errStr            sql.NullString
			started, finished int64
		)
		if err := rows.Scan(&r.ID, &r.Mode, &r.SourceDir, &r.DestDir, &r.Outcome, &errStr,
			&r.Discovered, &r.Succeeded, &r.Failed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Error = errStr.String
		r.StartedAt = time.UnixMilli(started)
		r.FinishedAt = time.UnixMilli(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Invocations returns the invocation results of one run in execution order.
func (s *Store) Invocations(ctx context.Context, runID string) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, input_path, output_path, status, cause, duration_ms
		FROM invocations
		WHERE run_id = ?
		ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var (
			inv   Invocation
			cause sql.NullString
			ms    int64
		)
		if err := rows.Scan(&inv.Seq, &inv.InputPath, &inv.OutputPath, &inv.Status, &cause, &ms); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		inv.Cause = cause.String
		inv.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, inv)
	}
	return out, rows.Err()
}

func errText(err error) sql.NullString {
	if err == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: err.Error(), Valid: true}
}
