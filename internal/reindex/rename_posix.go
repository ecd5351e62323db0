//go:build !windows

package reindex

import "os"

// renameAtomic performs a POSIX rename(2), which atomically replaces dst
// with src on every platform this build tag covers.
func renameAtomic(src, dst string) error {
	return os.Rename(src, dst)
}
