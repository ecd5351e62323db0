package commands

import (
	"errors"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
)

// exitError pairs an error with an exit code that does not come from the
// ffterrors taxonomy — the health classifications that the CLI boundary (not
// the core) decides how to map, per spec.md §6.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// exitCodeForError maps any error this package produces to one of the six
// stable exit codes in spec.md §6. A *ffterrors.Error carries its own
// mapping; anything else (output encoding, internal invariants) is Software.
func exitCodeForError(err error) int {
	if err == nil {
		return int(ffterrors.ExitOk)
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	var fe *ffterrors.Error
	if errors.As(err, &fe) {
		return int(fe.ExitCode())
	}
	return int(ffterrors.ExitSoftware)
}

// ExitCodeForError is exitCodeForError's exported form, for the cli package
// to use when translating Run's return value to a process exit status.
func ExitCodeForError(err error) int { return exitCodeForError(err) }

// InvalidArgs wraps err as a DataErr-coded failure, for boundary adapters
// (like the stdin protocol) that parse their own input outside flag.FlagSet.
func InvalidArgs(err error) error { return withExitCode(int(ffterrors.ExitDataErr), err) }

// exitCodeForHealth maps a Health classification the CLI decided not to
// recover from (no_auto_init, or a classification recovery itself can't
// fix) to its exit code. WrongApplicationId is a data problem, not an I/O
// one: the file opened fine, it just isn't one of ours. Unreadable means
// the file exists but couldn't be opened — a permissions problem in the
// common case.
func exitCodeForHealth(status health.Status) int {
	switch status {
	case health.WrongApplicationId:
		return int(ffterrors.ExitDataErr)
	case health.Unreadable:
		return int(ffterrors.ExitNoPerm)
	default:
		return int(ffterrors.ExitSoftware)
	}
}
