// Package health classifies a project's database file without mutating it,
// and drives the auto-init / backup-and-reinit control flow the CLI's
// search entry point uses to recover from a missing or damaged database.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/store"
)

// Status is the closed classification check_health_fast produces.
type Status int

const (
	Healthy Status = iota
	Missing
	Empty
	SchemaInvalid
	Corrupted
	WrongApplicationId
	Unreadable
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Missing:
		return "missing"
	case Empty:
		return "empty"
	case SchemaInvalid:
		return "schema_invalid"
	case Corrupted:
		return "corrupted"
	case WrongApplicationId:
		return "wrong_application_id"
	case Unreadable:
		return "unreadable"
	default:
		return "unknown"
	}
}

// Report is the result of CheckHealthFast: the classification plus whatever
// extra detail that classification carries.
type Report struct {
	Status        Status
	MissingSchema []string // populated only for SchemaInvalid
	Cause         error    // populated for Unreadable/Corrupted
}

// CheckHealthFast performs the six-step classification in spec order. It
// opens the database read-only and never mutates it or its sidecars (P6):
// not the file's size, not its mtime.
func CheckHealthFast(ctx context.Context, dbPath string, expectedApplicationID uint32) Report {
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return Report{Status: Missing}
		}
		return Report{Status: Unreadable, Cause: err}
	}

	s, err := store.OpenReadOnly(ctx, dbPath)
	if err != nil {
		return Report{Status: Unreadable, Cause: err}
	}
	defer func() { _ = s.Close() }()

	appID, err := s.GetApplicationID(ctx)
	if err != nil {
		return Report{Status: Unreadable, Cause: err}
	}
	if appID != expectedApplicationID {
		return Report{Status: WrongApplicationId}
	}

	schema, err := s.CheckSchema(ctx)
	if err != nil {
		return Report{Status: Unreadable, Cause: err}
	}
	if !schema.IsComplete() {
		return Report{Status: SchemaInvalid, MissingSchema: schema.Missing()}
	}

	if err := s.IntegrityProbeFTS(ctx); err != nil {
		return Report{Status: Corrupted, Cause: err}
	}

	count, err := s.GetFileCount(ctx)
	if err != nil {
		return Report{Status: Unreadable, Cause: err}
	}
	if count == 0 {
		return Report{Status: Empty}
	}
	return Report{Status: Healthy}
}

// AutoInit opens (creating) the database under projectDir, ensures its
// schema, and runs one full index. Used on Missing and Empty.
func AutoInit(ctx context.Context, projectDir string, pragmas config.PragmaConfig, indexerCfg config.Config) (indexer.IndexStats, error) {
	dbPath := filepath.Join(projectDir, config.DBFileName)
	s, err := store.Open(ctx, dbPath, pragmas)
	if err != nil {
		return indexer.IndexStats{}, err
	}
	defer func() { _ = s.Close() }()

	ix := indexer.New(projectDir, s, indexerCfg)
	return ix.IndexDirectory(ctx)
}

// BackupAndReinit renames the live database file and its sidecars to a
// timestamped backup name, then performs AutoInit against a clean slate.
// epochSeconds is supplied by the caller rather than computed here, since
// workflow-style callers may not have access to time.Now().
func BackupAndReinit(ctx context.Context, projectDir string, epochSeconds int64, pragmas config.PragmaConfig, indexerCfg config.Config) (indexer.IndexStats, error) {
	suffix := fmt.Sprintf("%s%d", config.BackupFilePrefx, epochSeconds)
	for name, backupSuffix := range map[string]string{
		config.DBFileName:    "",
		config.DBShmFileName: "-shm",
		config.DBWalFileName: "-wal",
	} {
		src := filepath.Join(projectDir, name)
		if _, err := os.Stat(src); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return indexer.IndexStats{}, ffterrors.IO(err)
		}
		dst := filepath.Join(projectDir, filepath.Base(suffix)+backupSuffix)
		if err := os.Rename(src, dst); err != nil {
			return indexer.IndexStats{}, ffterrors.IO(err)
		}
		logger.Info("health: backed up %s to %s", name, filepath.Base(dst))
	}
	return AutoInit(ctx, projectDir, pragmas, indexerCfg)
}

// DiagnosticReport is an additive, slower diagnostic pass beyond
// CheckHealthFast's six-step classification: it reports WAL state and row
// counts alongside the classification, useful for a "ffts check --verbose"
// style command without changing the fast path's contract.
type DiagnosticReport struct {
	Health      Report
	JournalMode string
	FileCount   int64
}

// Diagnose runs CheckHealthFast, then — only if the database opened cleanly
// enough to be at least SchemaInvalid or better — gathers a few extra
// read-only facts for human troubleshooting.
func Diagnose(ctx context.Context, dbPath string, expectedApplicationID uint32) DiagnosticReport {
	report := CheckHealthFast(ctx, dbPath, expectedApplicationID)
	diag := DiagnosticReport{Health: report}
	if report.Status == Missing || report.Status == Unreadable || report.Status == WrongApplicationId {
		return diag
	}

	s, err := store.OpenReadOnly(ctx, dbPath)
	if err != nil {
		return diag
	}
	defer func() { _ = s.Close() }()

	if mode, err := s.GetJournalMode(ctx); err == nil {
		diag.JournalMode = mode
	}
	if count, err := s.GetFileCount(ctx); err == nil {
		diag.FileCount = count
	}
	return diag
}
