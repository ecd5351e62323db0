package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/flags"
	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/indexer"
	"github.com/mneves75/ffts-grep-sub001/internal/logger"
	"github.com/mneves75/ffts-grep-sub001/internal/search"
)

// RunSearch runs the health-gated query path: classify, recover if allowed,
// then perform the two-phase search and print results.
func RunSearch(args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	limit := flags.AddLimitFlag(fs, 50)
	jsonOutput := fs.Bool("json", false, "emit {\"results\": [...]} instead of one path per line")
	pathsOnly := fs.Bool("paths-only", false, "restrict the full-text phase to the path column")
	refresh := fs.Bool("refresh", false, "force a full index_directory() before searching")
	noAutoInit := fs.Bool("no-auto-init", false, "fail instead of auto-recovering a missing or damaged index")
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
	if fs.NArg() == 0 {
		return withExitCode(int(ffterrors.ExitDataErr), fmt.Errorf("search requires a query argument"))
	}
	if err := flags.ValidateLimit(*limit); err != nil {
		return withExitCode(int(ffterrors.ExitDataErr), err)
	}
	query := strings.Join(fs.Args(), " ")

	return runSearch(searchRequest{
		root:       *root,
		query:      query,
		limit:      *limit,
		jsonOutput: *jsonOutput,
		pathsOnly:  *pathsOnly,
		refresh:    *refresh,
		noAutoInit: *noAutoInit,
	})
}

// RunStdinQuery answers spec.md §6's stdin JSON adapter: the same
// health-gated query path as RunSearch, but invoked directly with an
// already-parsed query and refresh flag rather than flag.FlagSet argv,
// since empty query with refresh=false is valid here (unlike the
// "search requires a query argument" CLI-flag entry point above).
func RunStdinQuery(root, query string, refresh bool) error {
	if strings.TrimSpace(query) == "" && refresh {
		return withExitCode(int(ffterrors.ExitDataErr), fmt.Errorf("empty query with refresh is invalid"))
	}
	return runSearch(searchRequest{
		root:       root,
		query:      query,
		limit:      50,
		jsonOutput: true,
		refresh:    refresh,
	})
}

type searchRequest struct {
	root       string
	query      string
	limit      int
	jsonOutput bool
	pathsOnly  bool
	refresh    bool
	noAutoInit bool
}

func runSearch(req searchRequest) error {
	if strings.TrimSpace(req.query) == "" && req.refresh {
		return withExitCode(int(ffterrors.ExitDataErr), fmt.Errorf("empty query with refresh is invalid"))
	}

	projectDir, err := resolveProjectDir(req.root)
	if err != nil {
		return withExitCode(int(ffterrors.ExitNoInput), err)
	}

	ctx := context.Background()
	s, _, err := openHealthGated(ctx, projectDir, req.noAutoInit)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if req.refresh {
		ix := indexer.New(projectDir, s, config.Default())
		if _, err := ix.IndexDirectory(ctx); err != nil {
			return err
		}
	}

	if strings.TrimSpace(req.query) == "" {
		return writeResults(nil, req.jsonOutput)
	}

	results, err := search.Search(ctx, s, req.query, search.Options{Limit: req.limit, PathsOnly: req.pathsOnly})
	if err != nil {
		return withExitCode(int(ffterrors.ExitDataErr), err)
	}
	return writeResults(results, req.jsonOutput)
}

func writeResults(results []search.Result, jsonOutput bool) error {
	var err error
	if jsonOutput {
		err = search.WriteJSON(os.Stdout, results)
	} else {
		err = search.WritePlain(os.Stdout, results)
	}
	if err != nil {
		return withExitCode(int(ffterrors.ExitSoftware), err)
	}
	return nil
}
