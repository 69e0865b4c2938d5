// Package journal records every edit applied to (or rejected by) a content
// document in SQLite. It is the operator-visible diagnostic channel: mutation
// errors never reach the page, but they always land here.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded edit.
type Entry struct {
	ID       int64
	Session  string
	Revision uint64
	Path     string
	Action   string
	Value    string // JSON text of the edit's value
	Error    string // empty when the edit was applied
	At       time.Time
}

// Failed reports whether the edit was rejected.
func (e Entry) Failed() bool { return e.Error != "" }

// Filter narrows Recent.
type Filter struct {
	Limit        int // default 50
	FailuresOnly bool
	Session      string
}

// Journal is a SQLite-backed edit log. It is safe for concurrent use.
type Journal struct {
	db     *sql.DB
	insert *sql.Stmt
	mu     sync.Mutex
}

// NewSession returns a fresh session id for a process or editing session.
func NewSession() string {
	return uuid.NewString()
}

// Open opens (creating if needed) the journal database at dbPath.
// ":memory:" gives a private in-memory journal.
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	// A single connection keeps ":memory:" databases shared across calls
	// and serializes writers for file databases.
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS edits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session TEXT NOT NULL,
		revision INTEGER NOT NULL,
		path TEXT NOT NULL,
		action TEXT NOT NULL,
		value TEXT,
		error TEXT,
		at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_edits_session ON edits(session, id);
	`
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	insert, err := db.Prepare(`
		INSERT INTO edits (session, revision, path, action, value, error, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare insert: %w", err)
	}

	return &Journal{db: db, insert: insert}, nil
}

// Record appends e. A zero At is stamped with the current time.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if e.At.IsZero() {
		e.At = time.Now()
	}
	var errText *string
	if e.Error != "" {
		errText = &e.Error
	}
	_, err := j.insert.ExecContext(ctx,
		e.Session,
		int64(e.Revision),
		e.Path,
		e.Action,
		e.Value,
		errText,
		e.At.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record edit %s: %w", e.Path, err)
	}
	return nil
}

// Recent returns the newest entries first.
func (j *Journal) Recent(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit <= 0 {
		f.Limit = 50
	}

	var (
		where []string
		args  []any
	)
	if f.FailuresOnly {
		where = append(where, "error IS NOT NULL")
	}
	if f.Session != "" {
		where = append(where, "session = ?")
		args = append(args, f.Session)
	}
	q := "SELECT id, session, revision, path, action, value, error, at FROM edits"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id DESC LIMIT ?"
	args = append(args, f.Limit)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query edits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Entry
	for rows.Next() {
		var (
			e        Entry
			rev      int64
			value    sql.NullString
			errText  sql.NullString
			atNanos  int64
		)
		if err := rows.Scan(&e.ID, &e.Session, &rev, &e.Path, &e.Action, &value, &errText, &atNanos); err != nil {
			return nil, fmt.Errorf("scan edit: %w", err)
		}
		e.Revision = uint64(rev)
		e.Value = value.String
		e.Error = errText.String
		e.At = time.Unix(0, atNanos)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.insert != nil {
		_ = j.insert.Close()
	}
	return j.db.Close()
}
