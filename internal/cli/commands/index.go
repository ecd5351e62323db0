package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/flags"
	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
)

// RunIndex opens the project's existing database (auto-initializing a
// missing one, recovering a damaged one) and runs one more
// index_directory() cycle over it: the "refresh" operation.
func RunIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	verbose := flags.AddVerboseFlag(fs)
	noAutoInit := fs.Bool("no-auto-init", false, "fail instead of auto-recovering a missing or damaged index")
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
	s, recoveryStats, err := openHealthGated(ctx, projectDir, *noAutoInit)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	cfg := config.Default()

	var stats indexer.IndexStats
	if recoveryStats.FilesIndexed > 0 || recoveryStats.RunID != "" {
		// openHealthGated already ran a full index as part of recovery;
		// running it again immediately would be redundant work against an
		// unchanged tree.
		stats = recoveryStats
	} else {
		ix := indexer.New(projectDir, s, cfg)
		stats, err = ix.IndexDirectory(ctx)
		if err != nil {
			return err
		}
	}

	if *verbose {
		fmt.Fprintln(os.Stdout, stats.String())
	} else {
		fmt.Fprintf(os.Stdout, "indexed=%d skipped=%d removed=%d (%s) in %s\n",
			stats.FilesIndexed, stats.FilesSkipped, stats.FilesRemoved,
			humanize.Bytes(stats.BytesIndexed), stats.Elapsed.Round(time.Millisecond))
	}
	return nil
}
