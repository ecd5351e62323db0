package commands

import (
	"fmt"
	"os"
	"sort"
)

// BuildVersion is the string RunVersion prints. It stays "dev" unless it is
// overridden at link time (go build -ldflags "-X ...BuildVersion=...").
var BuildVersion = "dev"

const usageText = `ffts - per-project full-text code search

Usage:
  ffts init     [--root DIR] [--force] [--verbose] [--debug]
  ffts index    [--root DIR] [--no-auto-init] [--verbose] [--debug]
  ffts search   [--root DIR] [--limit N] [--json] [--paths-only]
                [--refresh] [--no-auto-init] [--verbose] [--debug] QUERY...
  ffts check    [--root DIR] [--verbose] [--debug]
  ffts reindex  [--root DIR] [--verbose] [--debug]
  ffts version
  ffts help [COMMAND]

With no subcommand and stdin attached to a pipe (not a terminal), ffts reads
one JSON line {"query": string, "refresh": bool?} from stdin and answers it
the same way 'ffts search' would.

The project root defaults to $CLAUDE_PROJECT_DIR, then the current
directory, when --root is omitted.
`

// ShowUsage prints the top-level usage text followed by the registered
// command list.
func ShowUsage() error {
	fmt.Fprint(os.Stdout, usageText)
	fmt.Fprintln(os.Stdout, "Commands:")
	cmds := List()
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	for _, cmd := range cmds {
		fmt.Fprintf(os.Stdout, "  %-10s %s\n", cmd.Name, cmd.Description)
	}
	return nil
}

// RunHelp prints either the top-level usage or, if args names a known
// command, that command's name and one-line description. Flags are listed
// only in the top-level usage text.
func RunHelp(args []string) error {
	if len(args) == 0 {
		return ShowUsage()
	}
	if cmd, ok := Get(args[0]); ok {
		fmt.Fprintf(os.Stdout, "%s: %s\n", cmd.Name, cmd.Description)
		return nil
	}
	return ShowUsage()
}

// RunVersion prints the build version.
func RunVersion(args []string) error {
	fmt.Fprintln(os.Stdout, BuildVersion)
	return nil
}
