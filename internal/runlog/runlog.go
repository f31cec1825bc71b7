// Package runlog persists script invocation history in SQLite.
package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Log is the run-history database handle. The database lives in the
// vault's .forge directory alongside other tool state.
type Log struct {
	db *sql.DB
}

// Entry records one script invocation.
type Entry struct {
	ID       int64
	Script   string // script slug
	Note     string // vault-relative path of the targeted note, when known
	Status   string
	Detail   string
	Started  time.Time
	Duration time.Duration
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    script      TEXT NOT NULL,
    note        TEXT NOT NULL DEFAULT '',
    status      TEXT NOT NULL,
    detail      TEXT NOT NULL DEFAULT '',
    started_at  TEXT NOT NULL,
    duration_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

// Open opens or creates the run log for a vault.
func Open(vaultPath string) (*Log, error) {
	dir := filepath.Join(vaultPath, ".forge")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create .forge directory: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "runs.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize run log: %w", err)
	}
	return &Log{db: db}, nil
}

func (l *Log) Close() error {
	return l.db.Close()
}

// Record appends one entry.
func (l *Log) Record(e Entry) error {
	_, err := l.db.Exec(
		`INSERT INTO runs (script, note, status, detail, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Script, e.Note, e.Status, e.Detail,
		e.Started.UTC().Format(time.RFC3339), e.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// selects a default of 20.
func (l *Log) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.Query(
		`SELECT id, script, note, status, detail, started_at, duration_ms
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query run log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started string
		var durationMS int64
		if err := rows.Scan(&e.ID, &e.Script, &e.Note, &e.Status, &e.Detail, &started, &durationMS); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		if t, perr := time.Parse(time.RFC3339, started); perr == nil {
			e.Started = t
		}
		e.Duration = time.Duration(durationMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}
	return entries, nil
}

// Prune deletes all but the newest keep entries.
func (l *Log) Prune(keep int) error {
	if keep <= 0 {
		return nil
	}
	_, err := l.db.Exec(
		`DELETE FROM runs WHERE id NOT IN (SELECT id FROM runs ORDER BY id DESC LIMIT ?)`, keep,
	)
	if err != nil {
		return fmt.Errorf("failed to prune run log: %w", err)
	}
	return nil
}
