package store

import (
	"context"
	"errors"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
)

var errAlreadyInTransaction = errors.New("transaction already open")

// InTransaction reports whether a transaction is currently open. Exposed so
// the Indexer's batcher can drive its conditional-transaction strategy
// without reaching into Store internals.
func (s *Store) InTransaction() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

// BeginImmediate opens a write transaction with BEGIN IMMEDIATE on a single
// dedicated connection (the pool is capped at one connection, so this is
// also the only connection), acquiring the write lock up front rather than
// at the first write statement.
func (s *Store) BeginImmediate(ctx context.Context) error {
	if err := s.requireWritable(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn != nil {
		return ffterrors.Database(errAlreadyInTransaction)
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return ffterrors.Database(err)
	}
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE;"); err != nil {
		_ = conn.Close()
		return ffterrors.Database(err)
	}
	s.conn = conn
	return nil
}

// Commit commits the open transaction, if any. Committing with no open
// transaction is a no-op.
func (s *Store) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	_, err := conn.ExecContext(ctx, "COMMIT;")
	closeErr := conn.Close()
	if err != nil {
		return ffterrors.Database(err)
	}
	if closeErr != nil {
		return ffterrors.Database(closeErr)
	}
	return nil
}

// RollbackOpen rolls back and discards any open transaction without
// committing. Used on fatal errors mid-run so the database is left at its
// last successful commit point.
func (s *Store) RollbackOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.conn == nil {
		return nil
	}
	conn := s.conn
	s.conn = nil
	_, err := conn.ExecContext(context.Background(), "ROLLBACK;")
	closeErr := conn.Close()
	if err != nil {
		return err
	}
	return closeErr
}
