// Package store owns the embedded SQLite database: schema creation, pragma
// application, and the typed operations the Indexer, Searcher, and Health
// checker use to read and write it. Nothing here treats the content column
// as anything but opaque UTF-8 text.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
)

// execer is satisfied by both *sql.DB and *sql.Conn, letting every typed
// operation below run against either the bare connection pool or a
// dedicated transaction connection without duplicating its SQL.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store wraps a single SQLite connection. It is not safe for concurrent use
// from multiple goroutines without external synchronization; the spec
// supports exactly one writer and the underlying connection pool is capped
// at one connection to match.
type Store struct {
	mu       sync.Mutex
	db       *sql.DB
	conn     *sql.Conn // non-nil only while a transaction is open
	readOnly bool
	path     string
}

// Open opens (creating if absent) the database at path, applies pragmas in
// the declared order, and ensures the schema exists.
func Open(ctx context.Context, path string, pragmas config.PragmaConfig) (*Store, error) {
	if err := pragmas.Validate(); err != nil {
		return nil, ffterrors.InvalidConfig(err.Error())
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, ffterrors.IO(err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ffterrors.Database(err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, path: path}
	if err := s.applyPragmas(ctx, pragmas); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// OpenReadOnly opens path for reading only: no pragma writes, no schema
// creation, no mutation of any kind. Used by Health's fast classification.
func OpenReadOnly(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, ffterrors.Database(err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, ffterrors.Database(err)
	}
	return &Store{db: db, path: path, readOnly: true}, nil
}

func (s *Store) applyPragmas(ctx context.Context, p config.PragmaConfig) error {
	stmts := []string{
		fmt.Sprintf("PRAGMA journal_mode=%s;", p.JournalMode),
		fmt.Sprintf("PRAGMA synchronous=%s;", p.Synchronous),
		fmt.Sprintf("PRAGMA cache_size=-%d;", p.CacheSizeKiB),
		fmt.Sprintf("PRAGMA temp_store=%s;", p.TempStore),
		fmt.Sprintf("PRAGMA mmap_size=%d;", p.MmapSizeBytes),
		fmt.Sprintf("PRAGMA page_size=%d;", p.PageSize),
		fmt.Sprintf("PRAGMA foreign_keys=%s;", boolPragma(p.ForeignKeys)),
		fmt.Sprintf("PRAGMA trusted_schema=%s;", boolPragma(p.TrustedSchema)),
		fmt.Sprintf("PRAGMA application_id=%d;", applicationIDSigned(p.ApplicationID)),
		fmt.Sprintf("PRAGMA busy_timeout=%d;", p.BusyTimeoutMS),
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return ffterrors.Database(fmt.Errorf("apply pragma %s: %w", stmt, err))
		}
	}
	return nil
}

func boolPragma(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// Close releases the underlying connection. Safe to call once.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		_, _ = s.conn.ExecContext(context.Background(), "ROLLBACK;")
		_ = s.conn.Close()
		s.conn = nil
	}
	return s.db.Close()
}

// Path returns the database file path this Store was opened with.
func (s *Store) Path() string { return s.path }

// exec returns the dedicated connection if a transaction is open on it,
// else the pooled connection.
func (s *Store) exec() execer {
	if s.conn != nil {
		return s.conn
	}
	return s.db
}

// requireWritable rejects mutation attempts against a read-only Store,
// surfacing it as the spec's "Database error on any attempted mutation".
func (s *Store) requireWritable() error {
	if s.readOnly {
		return ffterrors.Database(fmt.Errorf("store opened read-only"))
	}
	return nil
}
