package store

import (
	"context"
	"fmt"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
)

// schemaStatements creates every schema object idempotently, in an order
// that respects the foreign references between them: the files table
// first, then its full-text shadow, then the triggers that keep the two in
// sync, then the secondary indexes.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id INTEGER PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL,
		content_hash INTEGER NOT NULL,
		mtime INTEGER NOT NULL,
		size INTEGER NOT NULL,
		indexed_at INTEGER NOT NULL
	);`,
	`CREATE VIRTUAL TABLE IF NOT EXISTS files_fts USING fts5(
		path,
		content,
		content='',
		content_rowid='id',
		columnsize=0,
		tokenize="porter unicode61 tokenchars '_.:@#$-'"
	);`,
	`CREATE TRIGGER IF NOT EXISTS files_ai AFTER INSERT ON files BEGIN
		INSERT INTO files_fts(rowid, path, content) VALUES (new.id, new.path, new.content);
	END;`,
	`CREATE TRIGGER IF NOT EXISTS files_au AFTER UPDATE ON files BEGIN
		INSERT INTO files_fts(files_fts, rowid, path, content) VALUES('delete', old.id, old.path, old.content);
		INSERT INTO files_fts(rowid, path, content) VALUES (new.id, new.path, new.content);
	END;`,
	`CREATE TRIGGER IF NOT EXISTS files_ad AFTER DELETE ON files BEGIN
		INSERT INTO files_fts(files_fts, rowid, path, content) VALUES('delete', old.id, old.path, old.content);
	END;`,
	`CREATE INDEX IF NOT EXISTS idx_files_mtime ON files(mtime);`,
	`CREATE INDEX IF NOT EXISTS idx_files_path ON files(path);`,
	`CREATE INDEX IF NOT EXISTS idx_files_content_hash ON files(content_hash);`,
}

func (s *Store) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return ffterrors.Database(fmt.Errorf("create schema object: %w", err))
		}
	}
	return nil
}

// SchemaCheck records which of the schema's eight named objects are
// present. The schema is complete iff every field is true.
type SchemaCheck struct {
	FilesTable       bool
	FilesFTSTable    bool
	TriggerInsert    bool
	TriggerUpdate    bool
	TriggerDelete    bool
	IndexMtime       bool
	IndexPath        bool
	IndexContentHash bool
}

// IsComplete reports whether every expected schema object is present.
func (c SchemaCheck) IsComplete() bool {
	return c.FilesTable && c.FilesFTSTable && c.TriggerInsert && c.TriggerUpdate &&
		c.TriggerDelete && c.IndexMtime && c.IndexPath && c.IndexContentHash
}

// Missing returns the names of the objects IsComplete found absent, for use
// in a SchemaInvalid classification.
func (c SchemaCheck) Missing() []string {
	var missing []string
	add := func(present bool, name string) {
		if !present {
			missing = append(missing, name)
		}
	}
	add(c.FilesTable, "files")
	add(c.FilesFTSTable, "files_fts")
	add(c.TriggerInsert, "files_ai")
	add(c.TriggerUpdate, "files_au")
	add(c.TriggerDelete, "files_ad")
	add(c.IndexMtime, "idx_files_mtime")
	add(c.IndexPath, "idx_files_path")
	add(c.IndexContentHash, "idx_files_content_hash")
	return missing
}

// CheckSchema inspects sqlite_master for the presence of each named object.
// It issues only SELECT statements and is safe to call on a read-only Store.
func (s *Store) CheckSchema(ctx context.Context) (SchemaCheck, error) {
	present := make(map[string]bool, 8)
	rows, err := s.exec().QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type IN ('table', 'trigger', 'index') AND name IN (
			'files', 'files_fts', 'files_ai', 'files_au', 'files_ad',
			'idx_files_mtime', 'idx_files_path', 'idx_files_content_hash'
		)`)
	if err != nil {
		return SchemaCheck{}, ffterrors.Database(err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return SchemaCheck{}, ffterrors.Database(err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return SchemaCheck{}, ffterrors.Database(err)
	}
	return SchemaCheck{
		FilesTable:       present["files"],
		FilesFTSTable:    present["files_fts"],
		TriggerInsert:    present["files_ai"],
		TriggerUpdate:    present["files_au"],
		TriggerDelete:    present["files_ad"],
		IndexMtime:       present["idx_files_mtime"],
		IndexPath:        present["idx_files_path"],
		IndexContentHash: present["idx_files_content_hash"],
	}, nil
}

// IntegrityProbeFTS runs the FTS5 'integrity-check' command. A failure here
// is the signal the Health classifier treats as Corrupted.
func (s *Store) IntegrityProbeFTS(ctx context.Context) error {
	if _, err := s.exec().ExecContext(ctx, `INSERT INTO files_fts(files_fts) VALUES('integrity-check')`); err != nil {
		return ffterrors.Database(err)
	}
	return nil
}

// GetApplicationID reads back the pragma, reinterpreting its signed storage
// as the unsigned signature value.
func (s *Store) GetApplicationID(ctx context.Context) (uint32, error) {
	var v int64
	if err := s.exec().QueryRowContext(ctx, "PRAGMA application_id").Scan(&v); err != nil {
		return 0, ffterrors.Database(err)
	}
	return applicationIDFromSigned(v), nil
}

// GetJournalMode reads back the journal_mode pragma.
func (s *Store) GetJournalMode(ctx context.Context) (string, error) {
	var mode string
	if err := s.exec().QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		return "", ffterrors.Database(err)
	}
	return mode, nil
}

// OptimizeFTS runs the advisory, non-fatal optimize hints the Indexer's
// finalization step issues: ANALYZE, the query planner's own optimize
// pragma, and the FTS5 'optimize' command. Each is best-effort; callers
// should log failures rather than abort on them.
func (s *Store) OptimizeFTS(ctx context.Context) error {
	if err := s.requireWritable(); err != nil {
		return err
	}
	if _, err := s.exec().ExecContext(ctx, "ANALYZE;"); err != nil {
		return ffterrors.Database(err)
	}
	if _, err := s.exec().ExecContext(ctx, "PRAGMA optimize;"); err != nil {
		return ffterrors.Database(err)
	}
	if _, err := s.exec().ExecContext(ctx, `INSERT INTO files_fts(files_fts) VALUES('optimize')`); err != nil {
		return ffterrors.Database(err)
	}
	return nil
}

// CheckpointWALResult carries the three columns PRAGMA wal_checkpoint
// returns: whether a checkpoint was blocked, the WAL's frame count, and how
// many frames were actually checkpointed.
type CheckpointWALResult struct {
	Busy         int
	LogFrames    int
	Checkpointed int
}

// CheckpointWAL forces a full WAL checkpoint, truncating the WAL file on
// success.
func (s *Store) CheckpointWAL(ctx context.Context) (CheckpointWALResult, error) {
	var r CheckpointWALResult
	row := s.exec().QueryRowContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE);")
	if err := row.Scan(&r.Busy, &r.LogFrames, &r.Checkpointed); err != nil {
		return CheckpointWALResult{}, ffterrors.Database(err)
	}
	return r, nil
}
