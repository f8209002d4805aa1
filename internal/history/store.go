// Package history keeps a local, append-only log of task runs in SQLite.
// The log is a convenience for `blogbuilder history`; tasks treat it as
// best-effort and never fail because the log could not be written.
package history

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	taskerrors "git.home.luguber.info/inful/blogbuilder/internal/errors"
)

// Run is one recorded task invocation.
type Run struct {
	ID        string
	Task      string
	Profile   string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   string
	Detail    string
}

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the run log at path. Use ":memory:" for an
// ephemeral store.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "create history directory")
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "open history database")
	}
	// SQLite allows one writer; a second pooled connection only buys lock
	// contention (and a separate database entirely for :memory:).
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "initialize history schema")
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		task TEXT NOT NULL,
		profile TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records one run.
func (s *Store) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, task, profile, started_at, duration_ms, outcome, detail) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Task, run.Profile, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Outcome, run.Detail,
	)
	if err != nil {
		return taskerrors.WrapError(err, taskerrors.CategoryHistory, "insert run")
	}
	return nil
}

// Recent returns up to n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, task, profile, started_at, duration_ms, outcome, detail FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMilli, durationMilli int64
		if err := rows.Scan(&r.ID, &r.Task, &r.Profile, &startedMilli, &durationMilli, &r.Outcome, &r.Detail); err != nil {
			return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "scan run")
		}
		r.StartedAt = time.UnixMilli(startedMilli)
		r.Duration = time.Duration(durationMilli) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, taskerrors.WrapError(err, taskerrors.CategoryHistory, "iterate runs")
	}
	return runs, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
