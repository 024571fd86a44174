// Package history persists completed ranking runs in a local SQLite
// database so past results can be listed and compared. Each run records
// its source file, method, parameters, timing, and top-ranked entries.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.

	"github.com/papapumpkin/linkrank/internal/rank"
)

// schema contains the DDL executed on first open. Using IF NOT EXISTS makes
// it safe to run on every startup.
const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id      TEXT NOT NULL,
    source      TEXT NOT NULL,
    method      TEXT NOT NULL,
    walks       INTEGER NOT NULL DEFAULT 0,
    steps       INTEGER NOT NULL DEFAULT 0,
    iterations  INTEGER NOT NULL DEFAULT 0,
    nodes       INTEGER NOT NULL,
    edges       INTEGER NOT NULL,
    duration_ms INTEGER NOT NULL,
    created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS run_entries (
    run      INTEGER NOT NULL REFERENCES runs(id),
    position INTEGER NOT NULL,
    node     TEXT NOT NULL,
    score    REAL NOT NULL,
    PRIMARY KEY (run, position)
);
`

// Run is one recorded estimator invocation.
type Run struct {
	ID         int64
	RunID      string
	Source     string
	Method     string
	Walks      int
	Steps      int
	Iterations int
	Nodes      int
	Edges      int
	Duration   time.Duration
	CreatedAt  time.Time
	Top        []rank.Entry
}

// Store implements run persistence using a local SQLite database in WAL mode.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at dbPath, enables WAL mode
// and busy timeout, and creates the schema tables if they do not exist.
func Open(ctx context.Context, dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	// Limit to one connection. SQLite only supports a single writer; using
	// one connection avoids SQLITE_BUSY contention between pooled connections
	// that each need their own PRAGMA setup.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a run and its top entries in a single transaction and
// returns the assigned row ID.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("history: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const insertRun = `
		INSERT INTO runs (run_id, source, method, walks, steps, iterations, nodes, edges, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, insertRun,
		r.RunID, r.Source, r.Method, r.Walks, r.Steps, r.Iterations,
		r.Nodes, r.Edges, r.Duration.Milliseconds())
	if err != nil {
		return 0, fmt.Errorf("history: insert run %q: %w", r.RunID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("history: run row id: %w", err)
	}

	const insertEntry = `
		INSERT INTO run_entries (run, position, node, score)
		VALUES (?, ?, ?, ?)`
	stmt, err := tx.PrepareContext(ctx, insertEntry)
	if err != nil {
		return 0, fmt.Errorf("history: prepare entry insert: %w", err)
	}
	defer stmt.Close()
	for i, e := range r.Top {
		if _, err := stmt.ExecContext(ctx, id, i+1, e.Node, e.Score); err != nil {
			return 0, fmt.Errorf("history: insert entry %d of run %q: %w", i+1, r.RunID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("history: commit run %q: %w", r.RunID, err)
	}
	return id, nil
}

// Recent returns the most recent runs, newest first, without their entries.
// A limit < 1 defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit < 1 {
		limit = 20
	}
	const q = `
		SELECT id, run_id, source, method, walks, steps, iterations, nodes, edges, duration_ms, created_at
		FROM runs ORDER BY id DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var durationMS int64
		var ts string
		if err := rows.Scan(&r.ID, &r.RunID, &r.Source, &r.Method,
			&r.Walks, &r.Steps, &r.Iterations, &r.Nodes, &r.Edges,
			&durationMS, &ts); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		createdAt, parseErr := parseTimestamp(ts)
		if parseErr != nil {
			return nil, fmt.Errorf("history: parse run timestamp: %w", parseErr)
		}
		r.CreatedAt = createdAt
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate runs: %w", err)
	}
	return runs, nil
}

// timestampFormats lists the formats SQLite drivers may produce for
// CURRENT_TIMESTAMP. modernc.org/sqlite typically returns RFC 3339
// (with "T" separator and "Z" suffix), while canonical SQLite returns
// the space-separated DateTime format.
var timestampFormats = []string{
	time.RFC3339,
	time.DateTime,
}

// parseTimestamp attempts to parse a SQLite timestamp string using known formats.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %q", s)
}

// Entries returns the recorded top entries for a run in rank order.
func (s *Store) Entries(ctx context.Context, runID int64) ([]rank.Entry, error) {
	const q = `SELECT node, score FROM run_entries WHERE run = ? ORDER BY position`
	rows, err := s.db.QueryContext(ctx, q, runID)
	if err != nil {
		return nil, fmt.Errorf("history: entries for run %d: %w", runID, err)
	}
	defer rows.Close()

	var entries []rank.Entry
	for rows.Next() {
		var e rank.Entry
		if err := rows.Scan(&e.Node, &e.Score); err != nil {
			return nil, fmt.Errorf("history: scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate entries: %w", err)
	}
	return entries, nil
}
