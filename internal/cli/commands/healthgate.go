package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// openHealthGated is the state-machine glue spec.md §9 calls for: a tagged
// dispatch over the Health classification, one branch per variant, with
// no_auto_init as the authoritative switch for whether SchemaInvalid/
// Corrupted/Missing/Empty recover automatically or exit.
//
// On success it returns an open, writable Store positioned at Healthy (after
// whatever recovery ran) plus the IndexStats of any recovery index that ran
// (zero value if none did).
func openHealthGated(ctx context.Context, projectDir string, noAutoInit bool) (*store.Store, indexer.IndexStats, error) {
	dbPath := filepath.Join(projectDir, config.DBFileName)
	cfg := config.Default()
	pragmas := cfg.Pragmas

	report := health.CheckHealthFast(ctx, dbPath, config.ApplicationID)
	switch report.Status {
	case health.Healthy:
		s, err := store.Open(ctx, dbPath, pragmas)
		return s, indexer.IndexStats{}, err

	case health.Empty, health.Missing:
		if noAutoInit {
			return nil, indexer.IndexStats{}, withExitCode(int(ffterrors.ExitDataErr),
				fmt.Errorf("database is %s and --no-auto-init was set; run 'ffts init' first", report.Status))
		}
		logger.Info("search: database %s, auto-initializing", report.Status)
		stats, err := health.AutoInit(ctx, projectDir, pragmas, cfg)
		if err != nil {
			return nil, stats, err
		}
		s, err := store.Open(ctx, dbPath, pragmas)
		return s, stats, err

	case health.SchemaInvalid, health.Corrupted:
		if noAutoInit {
			return nil, indexer.IndexStats{}, withExitCode(int(ffterrors.ExitDataErr),
				fmt.Errorf("database is %s and --no-auto-init was set; run 'ffts reindex' first", report.Status))
		}
		logger.Info("search: database %s, backing up and reinitializing", report.Status)
		stats, err := health.BackupAndReinit(ctx, projectDir, time.Now().Unix(), pragmas, cfg)
		if err != nil {
			return nil, stats, err
		}
		s, err := store.Open(ctx, dbPath, pragmas)
		return s, stats, err

	case health.WrongApplicationId:
		return nil, indexer.IndexStats{}, withExitCode(int(ffterrors.ExitDataErr),
			fmt.Errorf("%s is not an ffts index (application_id mismatch)", dbPath))

	case health.Unreadable:
		cause := report.Cause
		if cause == nil {
			cause = fmt.Errorf("database unreadable")
		}
		return nil, indexer.IndexStats{}, withExitCode(int(ffterrors.ExitNoPerm), cause)

	default:
		return nil, indexer.IndexStats{}, withExitCode(int(ffterrors.ExitSoftware),
			fmt.Errorf("unreachable health classification %v", report.Status))
	}
}
