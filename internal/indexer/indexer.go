// Package indexer walks a project tree, filters candidates, and upserts
// them into the Store using a conditional-transaction strategy, then prunes
// rows for files that no longer exist.
package indexer

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/fsutil"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// IndexStats summarizes one indexing run.
type IndexStats struct {
	RunID         string
	FilesIndexed  uint64
	FilesSkipped  uint64
	BytesIndexed  uint64
	FilesRemoved  uint64
	Elapsed       time.Duration
}

// Indexer enumerates, filters, reads, and upserts files under Root into
// Store according to Config.
type Indexer struct {
	Root   string
	Store  *store.Store
	Config config.Config
}

// New constructs an Indexer. root should already be an absolute,
// canonicalized project directory.
func New(root string, s *store.Store, cfg config.Config) *Indexer {
	return &Indexer{Root: root, Store: s, Config: cfg}
}

// IndexDirectory performs one full walk-filter-upsert-prune-finalize cycle.
func (ix *Indexer) IndexDirectory(ctx context.Context) (IndexStats, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger.Info("indexer: run %s starting at root %s", runID, ix.Root)

	ignore, err := fsutil.LoadIgnoreSet(ix.Root)
	if err != nil {
		return IndexStats{}, ffterrors.IO(err)
	}
	entries, err := fsutil.Walk(ix.Root, ignore, ix.Config.FollowSymlinks)
	if err != nil {
		return IndexStats{}, ffterrors.IO(err)
	}

	b := newBatcher(ix.Store, ix.Config.BatchSize)
	stats := IndexStats{RunID: runID}
	existingPaths := make(map[string]struct{}, len(entries))

	for _, entry := range entries {
		rel := entry.RelPath
		if rel == "" || rel == "." || strings.HasPrefix(rel, "../") || rel == ".." {
			// The walk itself is responsible for keeping every entry within
			// root; an entry that fails this check means the walk's root
			// accounting is broken, which is not a per-file condition.
			_ = b.finalize(ctx)
			return stats, ffterrors.PathTraversal(entry.AbsPath)
		}

		info, err := os.Stat(entry.AbsPath)
		if err != nil {
			logger.Warn("indexer: skip %s: stat failed: %v", rel, err)
			stats.FilesSkipped++
			continue
		}
		if info.Size() > ix.Config.MaxFileSize {
			logger.Warn("indexer: skip %s: size %d exceeds max_file_size %d", rel, info.Size(), ix.Config.MaxFileSize)
			stats.FilesSkipped++
			continue
		}

		content, err := os.ReadFile(entry.AbsPath)
		if err != nil {
			logger.Warn("indexer: skip %s: read failed: %v", rel, err)
			stats.FilesSkipped++
			continue
		}
		if !fsutil.ValidUTF8(content) {
			logger.Warn("indexer: skip %s: not valid UTF-8", rel)
			stats.FilesSkipped++
			continue
		}

		mtime, ok := fsutil.CheckedInt64(uint64(info.ModTime().Unix()))
		if !ok {
			logger.Warn("indexer: skip %s: mtime overflow", rel)
			stats.FilesSkipped++
			continue
		}
		size, ok := fsutil.CheckedInt64(uint64(info.Size()))
		if !ok {
			logger.Warn("indexer: skip %s: size overflow", rel)
			stats.FilesSkipped++
			continue
		}

		_, err = ix.Store.UpsertFile(ctx, rel, string(content), mtime, size)
		if err != nil {
			// Database errors during upsert are fatal: roll back whatever is
			// open and surface it, leaving the database at its last
			// successful commit point.
			_ = b.s.RollbackOpen()
			return stats, err
		}
		if err := b.recordUpsert(ctx); err != nil {
			_ = b.s.RollbackOpen()
			return stats, err
		}

		existingPaths[rel] = struct{}{}
		stats.FilesIndexed++
		stats.BytesIndexed += uint64(size)
	}

	if err := b.finalize(ctx); err != nil {
		return stats, err
	}

	removed, err := ix.Store.PruneMissingFiles(ctx, existingPaths)
	if err != nil {
		return stats, err
	}
	stats.FilesRemoved = uint64(removed)

	// Optimize hints are advisory and non-fatal; a failure here is logged,
	// never surfaced as a run failure.
	if err := ix.Store.OptimizeFTS(ctx); err != nil {
		logger.Warn("indexer: optimize hints failed (non-fatal): %v", err)
	}

	stats.Elapsed = time.Since(start)
	logger.Info("indexer: run %s complete: indexed=%d skipped=%d removed=%d bytes=%d elapsed=%s",
		runID, stats.FilesIndexed, stats.FilesSkipped, stats.FilesRemoved, stats.BytesIndexed, stats.Elapsed)
	return stats, nil
}

// String renders stats for --verbose/stats output without depending on the
// CLI layer.
func (s IndexStats) String() string {
	return fmt.Sprintf("run=%s indexed=%d skipped=%d removed=%d bytes=%d elapsed=%s",
		s.RunID, s.FilesIndexed, s.FilesSkipped, s.FilesRemoved, s.BytesIndexed, s.Elapsed)
}
