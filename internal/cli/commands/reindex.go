package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/flags"
	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/reindex"
)

// RunReindex rebuilds the project's index from scratch into a temp file
// and atomically replaces the live database, per spec.md §4.5.
func RunReindex(args []string) error {
	fs := flag.NewFlagSet("reindex", flag.ContinueOnError)
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

	cfg := config.Default()
	result, err := reindex.Run(context.Background(), projectDir, cfg.Pragmas, cfg)
	if err != nil {
		return err
	}

	if *verbose {
		fmt.Fprintln(os.Stdout, result.Stats.String())
		fmt.Fprintf(os.Stdout, "checkpoint: busy=%d log=%d checkpointed=%d\n",
			result.Checkpoint.Busy, result.Checkpoint.LogFrames, result.Checkpoint.Checkpointed)
	} else {
		fmt.Fprintf(os.Stdout, "reindexed %d files in %s\n", result.Stats.FilesIndexed, result.Stats.Elapsed.Round(time.Millisecond))
	}
	return nil
}
