// Package store persists users, assessments, industry insights and LLM
// audit events in SQLite.
//
// Tables are declared with ent's schema types and created by ent's migration
// engine; queries are built with ent's SQL builder and run on database/sql.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// pragmas run on every new connection, busy_timeout first.
var pragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
	"foreign_keys(1)",
	"synchronous(NORMAL)",
}

// withPragmas appends the pragmas to dsn as _pragma query parameters.
func withPragmas(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + url.Values{"_pragma": pragmas}.Encode()
}

// Store owns the database handle and hands out repositories.
type Store struct {
	db  *sql.DB
	drv *entsql.Driver
	seq *sequenceCounter
}

// Open is OpenContext with a background context.
func Open(dsn string) (*Store, error) {
	return OpenContext(context.Background(), dsn)
}

// OpenContext opens the SQLite database at dsn and migrates the schema.
// ":memory:" gives a private in-memory database.
func OpenContext(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps an in-memory database alive and private; SQLite
	// serializes writers regardless.
	db.SetMaxOpenConns(1)

	drv := entsql.OpenDB(dialect.SQLite, db)
	s := &Store{db: db, drv: drv}
	if err := s.init(ctx); err != nil {
		drv.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	if err := migrate(ctx, s.drv); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	seq, err := newSequenceCounter(ctx, s.db)
	if err != nil {
		return err
	}
	s.seq = seq
	return nil
}

// DB exposes the handle for ad hoc queries in tests and tools.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.drv.Close() }

func (s *Store) UserRepo() UserRepo { return &userRepo{db: s.db} }

func (s *Store) AssessmentRepo() AssessmentRepo { return &assessmentRepo{db: s.db} }

func (s *Store) InsightRepo() InsightRepo { return &insightRepo{db: s.db} }

func (s *Store) EventRepo() EventRepo { return &eventRepo{db: s.db, seq: s.seq} }

// DefaultDBPath is prepcoach/prepcoach.db under $XDG_DATA_HOME, or under
// ~/.local/share when that is unset. The directory is created.
func DefaultDBPath() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	p := filepath.Join(base, "prepcoach", "prepcoach.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the directory that will hold the database file.
func EnsureDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
