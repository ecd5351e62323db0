// Package reindex rebuilds a project's database from scratch into a
// sibling temp file, then atomically replaces the live database with it —
// so a reader or a crash mid-rebuild never observes a partially written
// index.
package reindex

import (
	"context"
	"os"
	"path/filepath"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// Result carries the finished run's stats plus the WAL checkpoint triple
// logged as part of finalizing the temp database.
type Result struct {
	Stats      indexer.IndexStats
	Checkpoint store.CheckpointWALResult
}

// Run performs the full atomic-replace sequence described in spec.md §4.5.
// The caller must hold the only writer for the live database; Run does not
// itself serialize against concurrent reindex/index calls.
func Run(ctx context.Context, projectDir string, pragmas config.PragmaConfig, indexerCfg config.Config) (Result, error) {
	livePath := filepath.Join(projectDir, config.DBFileName)
	tmpPath := filepath.Join(projectDir, config.DBTmpFileName)

	// Step 1: remove any stale temp file; "not found" is not an error.
	if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
		return Result{}, ffterrors.IO(err)
	}

	// Step 2: build the fresh index into the temp file.
	tmp, err := store.Open(ctx, tmpPath, pragmas)
	if err != nil {
		return Result{}, err
	}
	ix := indexer.New(projectDir, tmp, indexerCfg)
	stats, err := ix.IndexDirectory(ctx)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return Result{}, err
	}

	// Step 3: optimize and checkpoint the temp database before handing it
	// over, so the live file that readers see after rename is already
	// compact and fully checkpointed rather than carrying a WAL to replay.
	if err := tmp.OptimizeFTS(ctx); err != nil {
		logger.Warn("reindex: optimize hints failed (non-fatal): %v", err)
	}
	checkpoint, err := tmp.CheckpointWAL(ctx)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return Result{}, err
	}
	logger.Info("reindex: checkpoint busy=%d log=%d checkpointed=%d", checkpoint.Busy, checkpoint.LogFrames, checkpoint.Checkpointed)

	// Step 4: close the temp connection before renaming, so no handle is
	// open on either side of the replace.
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return Result{}, ffterrors.Database(err)
	}

	// Step 5: atomic replace. Any failure here leaves the live database
	// untouched, since the temp file is still a separate, unreferenced
	// path.
	if err := renameAtomic(tmpPath, livePath); err != nil {
		return Result{}, ffterrors.IO(err)
	}

	// Step 6: only after the rename succeeds, drop the live sidecars.
	// Removing them earlier could discard a WAL the kernel still needs to
	// recover the file the rename just retired.
	for _, sidecar := range []string{config.DBShmFileName, config.DBWalFileName} {
		_ = os.Remove(filepath.Join(projectDir, sidecar))
	}

	return Result{Stats: stats, Checkpoint: checkpoint}, nil
}
