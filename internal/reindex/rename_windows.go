//go:build windows

package reindex

import "golang.org/x/sys/windows"

// renameAtomic uses MoveFileExW with REPLACE_EXISTING|WRITE_THROUGH, since
// plain os.Rename on Windows fails when the destination already exists.
func renameAtomic(src, dst string) error {
	srcPtr, err := windows.UTF16PtrFromString(src)
	if err != nil {
		return err
	}
	dstPtr, err := windows.UTF16PtrFromString(dst)
	if err != nil {
		return err
	}
	return windows.MoveFileEx(srcPtr, dstPtr, windows.MOVEFILE_REPLACE_EXISTING|windows.MOVEFILE_WRITE_THROUGH)
}
