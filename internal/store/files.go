package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/fsutil"
)

// UpsertResult reports what UpsertFile actually did, so a caller can
// distinguish a fresh file from an unchanged one without a second query.
type UpsertResult int

const (
	Unchanged UpsertResult = iota
	Created
	Updated
)

const upsertSQL = `
INSERT INTO files (path, content, content_hash, mtime, size, indexed_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
	content_hash = excluded.content_hash,
	mtime = excluded.mtime,
	size = excluded.size,
	indexed_at = excluded.indexed_at,
	content = excluded.content
WHERE excluded.content_hash <> (SELECT content_hash FROM files WHERE path = excluded.path)
`

// UpsertFile computes the content hash, then performs the lazy-invalidation
// upsert: identical content leaves the row untouched (no trigger fire, no
// FTS rebuild). The returned UpsertResult distinguishes Created, Updated,
// and Unchanged; the Indexer does not use it and counts every successful
// upsert as indexed.
func (s *Store) UpsertFile(ctx context.Context, path, content string, mtime, size int64) (UpsertResult, error) {
	if err := s.requireWritable(); err != nil {
		return Unchanged, err
	}
	hash := fsutil.HashContent([]byte(content))

	var priorHash sql.NullInt64
	err := s.exec().QueryRowContext(ctx, `SELECT content_hash FROM files WHERE path = ?`, path).Scan(&priorHash)
	existed := true
	if errors.Is(err, sql.ErrNoRows) {
		existed = false
	} else if err != nil {
		return Unchanged, ffterrors.Database(err)
	}

	now := time.Now().Unix()
	if _, err := s.exec().ExecContext(ctx, upsertSQL, path, content, int64(hash), mtime, size, now); err != nil {
		return Unchanged, ffterrors.Database(err)
	}

	if !existed {
		return Created, nil
	}
	if priorHash.Valid && uint64(priorHash.Int64) == hash {
		return Unchanged, nil
	}
	return Updated, nil
}

// DeleteFile removes a single row by path; the files_ad trigger cascades
// the corresponding FTS deletion.
func (s *Store) DeleteFile(ctx context.Context, path string) error {
	if err := s.requireWritable(); err != nil {
		return err
	}
	if _, err := s.exec().ExecContext(ctx, `DELETE FROM files WHERE path = ?`, path); err != nil {
		return ffterrors.Database(err)
	}
	return nil
}

// PruneMissingFiles deletes every files row whose path is not present in
// existingPaths, returning the count removed. Triggers cascade the FTS
// deletions. Pruning is done as a walk-then-delete rather than a single
// large NOT IN (...) statement, since existingPaths can be arbitrarily
// large and SQLite's parameter-count limit makes expressing it as bind
// parameters impractical.
func (s *Store) PruneMissingFiles(ctx context.Context, existingPaths map[string]struct{}) (int64, error) {
	if err := s.requireWritable(); err != nil {
		return 0, err
	}
	storedPaths, err := s.GetAllPaths(ctx)
	if err != nil {
		return 0, err
	}
	var removed int64
	for _, p := range storedPaths {
		if _, ok := existingPaths[p]; ok {
			continue
		}
		if err := s.DeleteFile(ctx, p); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// GetFileCount returns the number of rows in files.
func (s *Store) GetFileCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.exec().QueryRowContext(ctx, `SELECT COUNT(*) FROM files`).Scan(&n); err != nil {
		return 0, ffterrors.Database(err)
	}
	return n, nil
}

// GetAllPaths returns every indexed path.
func (s *Store) GetAllPaths(ctx context.Context) ([]string, error) {
	rows, err := s.exec().QueryContext(ctx, `SELECT path FROM files`)
	if err != nil {
		return nil, ffterrors.Database(err)
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, ffterrors.Database(err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, ffterrors.Database(err)
	}
	return paths, nil
}

// SearchResult is one ranked hit: a path and its score, where a smaller
// score means a better match.
type SearchResult struct {
	Path  string
	Score float64
}

// SearchFilenameLike runs phase A: a direct filename-substring match
// (spec §4.3: filename(path) LIKE '%'||query||'%'). The path LIKE filter
// runs in SQL as a cheap pre-filter (using the index on path) to avoid
// pulling every row across for large trees; since SQLite has no built-in
// "basename of path" function, the actual filename-substring test, along
// with the five-level precedence ordering spec.md §4.3 defines, is applied
// in Go over the pre-filtered rows. rawQuery is the sanitized but
// unescaped query (used for the basename test and precedence comparisons);
// escaped is the same query with '%' and '_' escaped with '\' for the LIKE
// pre-filter.
func (s *Store) SearchFilenameLike(ctx context.Context, rawQuery, escaped string, limit int) ([]SearchResult, error) {
	rows, err := s.exec().QueryContext(ctx,
		`SELECT path FROM files WHERE path LIKE '%' || ? || '%' ESCAPE '\'`, escaped)
	if err != nil {
		return nil, ffterrors.Database(err)
	}
	defer rows.Close()

	lowerQuery := strings.ToLower(rawQuery)
	type candidate struct {
		path     string
		filename string
	}
	var candidates []candidate
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, ffterrors.Database(err)
		}
		filename := baseName(p)
		if !strings.Contains(strings.ToLower(filename), lowerQuery) {
			// The path LIKE pre-filter matches on the whole path, so a
			// query contained only in a directory segment still passes
			// it; phase A is the filename-substring phase, so those
			// candidates belong to phase B (content search) instead.
			continue
		}
		candidates = append(candidates, candidate{path: p, filename: filename})
	}
	if err := rows.Err(); err != nil {
		return nil, ffterrors.Database(err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		ra := filenameRank(a.filename, lowerQuery)
		rb := filenameRank(b.filename, lowerQuery)
		if ra != rb {
			return ra < rb
		}
		if len(a.filename) != len(b.filename) {
			return len(a.filename) < len(b.filename)
		}
		return a.path < b.path
	})

	results := make([]SearchResult, 0, len(candidates))
	for i, c := range candidates {
		if limit > 0 && i >= limit {
			break
		}
		results = append(results, SearchResult{Path: c.path, Score: 0})
	}
	return results, nil
}

// filenameRank implements the four ordered tiers of precedence (0: exact,
// 1: prefix, 2: contains, 3: neither — unreachable here, since
// SearchFilenameLike already filters candidates to those whose basename
// contains the query).
func filenameRank(filename, lowerQuery string) int {
	lowerFilename := strings.ToLower(filename)
	switch {
	case lowerFilename == lowerQuery:
		return 0
	case strings.HasPrefix(lowerFilename, lowerQuery):
		return 1
	case strings.Contains(lowerFilename, lowerQuery):
		return 2
	default:
		return 3
	}
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

const ftsQuerySQL = `
SELECT f.path, bm25(files_fts, 100.0, 50.0, 1.0) AS score
FROM files_fts
JOIN files AS f ON f.id = files_fts.rowid
WHERE files_fts MATCH ?
ORDER BY score
LIMIT ?
`

const ftsQueryPathsOnlySQL = `
SELECT f.path, bm25(files_fts, 100.0, 50.0, 1.0) AS score
FROM files_fts
JOIN files AS f ON f.id = files_fts.rowid
WHERE files_fts.path MATCH ?
ORDER BY score
LIMIT ?
`

// SearchFTS runs phase B: a full-text BM25 query. files_fts is contentless,
// so the matched paths are read from files by rowid. The table has two
// columns, path and content, so of the weights (100, 50, 1) path gets 100 and
// content 50; the third weight has no column, and there is no separate
// filename column. When pathsOnly is set, MATCH is restricted to the path
// column.
func (s *Store) SearchFTS(ctx context.Context, ftsQuery string, limit int, pathsOnly bool) ([]SearchResult, error) {
	query := ftsQuerySQL
	if pathsOnly {
		query = ftsQueryPathsOnlySQL
	}
	rows, err := s.exec().QueryContext(ctx, query, ftsQuery, limit)
	if err != nil {
		return nil, ffterrors.Database(fmt.Errorf("fts match %q: %w", ftsQuery, err))
	}
	defer rows.Close()
	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.Score); err != nil {
			return nil, ffterrors.Database(err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, ffterrors.Database(err)
	}
	return results, nil
}
