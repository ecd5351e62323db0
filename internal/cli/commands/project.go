package commands

import (
	"os"
	"path/filepath"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
)

// resolveProjectDir applies spec.md §6's precedence: a --root value other
// than "." (the flag's default) wins; otherwise CLAUDE_PROJECT_DIR;
// otherwise the process's current directory. An explicit "--root ." is
// treated like the default. The result is always made absolute.
func resolveProjectDir(rootFlag string) (string, error) {
	candidate := rootFlag
	if candidate == "" || candidate == "." {
		if env := os.Getenv("CLAUDE_PROJECT_DIR"); env != "" {
			candidate = env
		}
	}
	if candidate == "" {
		candidate = "."
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", ffterrors.IO(err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", ffterrors.IO(err)
	}
	if !info.IsDir() {
		return "", ffterrors.IO(os.ErrInvalid)
	}
	return abs, nil
}
