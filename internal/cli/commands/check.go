package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/flags"
	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
)

// RunCheck inspects the project's database without mutating it and reports
// its Health classification, exiting with the corresponding code.
func RunCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	debug := fs.Bool("debug", false, "show debug-level internal logging")
	if err := fs.Parse(args); err != nil {
		return withExitCode(int(ffterrors.ExitDataErr), err)
	}
	if *debug {
		logger.SetLevel(logger.LevelDebug)
	} else if *verbose {
		logger.SetLevel(logger.LevelInfo)
	}

	projectDir, err := resolveProjectDir(*root)
	if err != nil {
		return withExitCode(int(ffterrors.ExitNoInput), err)
	}
	dbPath := filepath.Join(projectDir, config.DBFileName)
	ctx := context.Background()

	if *verbose {
		diag := health.Diagnose(ctx, dbPath, config.ApplicationID)
		fmt.Fprintf(os.Stdout, "status: %s\n", diag.Health.Status)
		if diag.JournalMode != "" {
			fmt.Fprintf(os.Stdout, "journal_mode: %s\n", diag.JournalMode)
		}
		fmt.Fprintf(os.Stdout, "file_count: %d\n", diag.FileCount)
		return checkExitError(diag.Health)
	}

	report := health.CheckHealthFast(ctx, dbPath, config.ApplicationID)
	fmt.Fprintf(os.Stdout, "status: %s\n", report.Status)
	if report.Status == health.SchemaInvalid {
		fmt.Fprintf(os.Stdout, "missing: %v\n", report.MissingSchema)
	}
	return checkExitError(report)
}

// checkExitError returns nil for Healthy/Empty (both queryable states) and
// an appropriately-coded error for anything check doesn't consider fit to
// search against without recovery.
func checkExitError(report health.Report) error {
	switch report.Status {
	case health.Healthy, health.Empty:
		return nil
	case health.Missing:
		return withExitCode(int(ffterrors.ExitDataErr), fmt.Errorf("no index found; run 'ffts init'"))
	default:
		return withExitCode(exitCodeForHealth(report.Status), fmt.Errorf("database is %s", report.Status))
	}
}
