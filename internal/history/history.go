// Package history records evaluated units of Jolt source in SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	source     TEXT NOT NULL,
	failed     INTEGER NOT NULL DEFAULT 0,
	created_at TIMESTAMP NOT NULL
)`

// Entry is one recorded unit of source.
type Entry struct {
	ID      int64
	Session string
	Source  string
	Failed  bool
	Created time.Time
}

func (e Entry) String() string {
	status := "ok"
	if e.Failed {
		status = "error"
	}
	session := e.Session
	if len(session) > 8 {
		session = session[:8]
	}
	return fmt.Sprintf("%5d  %-8s  %-5s  %-16s  %s", e.ID, session, status, humanize.Time(e.Created), strings.TrimSpace(e.Source))
}

// Recorder is what the REPL and the server need from a Store.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Store is a history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "history: create directory")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "history: open")
	}
	// One writer at a time keeps SQLite out of "database is locked".
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "history: ping %s", path)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "history: create schema")
	}
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Created.IsZero() {
		e.Created = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO history (session, source, failed, created_at) VALUES (?, ?, ?, ?)`,
		e.Session, e.Source, e.Failed, e.Created.UTC())
	if err != nil {
		return errors.Wrap(err, "history: record")
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, source, failed, created_at FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "history: query")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Session, &e.Source, &e.Failed, &e.Created); err != nil {
			return nil, errors.Wrap(err, "history: scan")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "history: rows")
}

// Session returns the entries of one session in the order they were run.
func (s *Store) Session(ctx context.Context, session string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session, source, failed, created_at FROM history WHERE session = ? ORDER BY id`, session)
	if err != nil {
		return nil, errors.Wrap(err, "history: query")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Session, &e.Source, &e.Failed, &e.Created); err != nil {
			return nil, errors.Wrap(err, "history: scan")
		}
		entries = append(entries, e)
	}
	return entries, errors.Wrap(rows.Err(), "history: rows")
}

func (s *Store) Close() error {
	return s.db.Close()
}
