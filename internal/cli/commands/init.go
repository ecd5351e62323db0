package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/flags"
	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
)

// RunInit builds a fresh index for a project that has none, or recovers one
// whose database is damaged. Already-Healthy projects report success
// without reindexing, unless --force is given.
func RunInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	force := flags.AddForceFlag(fs)
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
	ctx := context.Background()
	dbPath := filepath.Join(projectDir, config.DBFileName)
	cfg := config.Default()

	report := health.CheckHealthFast(ctx, dbPath, config.ApplicationID)
	var stats indexer.IndexStats

	switch {
	case report.Status == health.Healthy && !*force:
		fmt.Fprintf(os.Stdout, "already initialized (%s)\n", dbPath)
		return nil
	case report.Status == health.WrongApplicationId:
		return withExitCode(int(ffterrors.ExitDataErr), fmt.Errorf("%s exists and is not an ffts index", dbPath))
	case report.Status == health.SchemaInvalid || report.Status == health.Corrupted || (*force && report.Status != health.Missing):
		stats, err = health.BackupAndReinit(ctx, projectDir, time.Now().Unix(), cfg.Pragmas, cfg)
		if err != nil {
			return err
		}
	default:
		stats, err = health.AutoInit(ctx, projectDir, cfg.Pragmas, cfg)
		if err != nil {
			return err
		}
	}

	if *verbose {
		fmt.Fprintln(os.Stdout, stats.String())
	} else {
		fmt.Fprintf(os.Stdout, "indexed %d files (%s) in %s\n",
			stats.FilesIndexed, humanize.Bytes(stats.BytesIndexed), stats.Elapsed.Round(time.Millisecond))
	}
	return nil
}
