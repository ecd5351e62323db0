// Package cli is the ffts command-line entry point: argument dispatch, the
// stdin JSON line protocol, and exit-code translation. It is explicitly
// outside the core per spec.md §6 — it only ever consumes or produces
// values at the core's boundary.
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mneves75/ffts-grep-sub001/internal/cli/commands"
	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
)

// Run dispatches args to the matching command and returns an error whose
// concrete type callers should pass to ExitCode for the process exit
// status. With no args and stdin attached to a pipe, it falls through to
// the stdin JSON line protocol instead of printing usage.
func Run(args []string) error {
	if len(args) == 0 {
		if !isatty.IsTerminal(os.Stdin.Fd()) {
			return runStdinProtocol(os.Stdin)
		}
		return commands.ShowUsage()
	}

	name := args[0]
	if cmd, ok := commands.Get(name); ok {
		return cmd.Run(args[1:])
	}
	return fmt.Errorf("unknown command: %s\nRun 'ffts help' for usage", name)
}

// ExitCode maps any error Run returns to the process's stable exit code.
func ExitCode(err error) int {
	if err == nil {
		return int(ffterrors.ExitOk)
	}
	return commands.ExitCodeForError(err)
}

// stdinRequest is the one-line JSON object the stdin protocol accepts.
type stdinRequest struct {
	Query   string `json:"query"`
	Refresh bool   `json:"refresh"`
}

// runStdinProtocol implements spec.md §6's boundary-only adapter: read one
// line, parse it, and answer it the way 'ffts search' would.
func runStdinProtocol(in *os.File) error {
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return nil
	}
	var req stdinRequest
	if err := json.Unmarshal(scanner.Bytes(), &req); err != nil {
		return commands.InvalidArgs(fmt.Errorf("invalid stdin request: %w", err))
	}
	return commands.RunStdinQuery(".", req.Query, req.Refresh)
}
