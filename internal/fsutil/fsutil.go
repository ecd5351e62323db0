// Package fsutil implements the Indexer's filesystem walk: gitignore-style
// filtering, symlink handling, content hashing, and the checked numeric
// conversions the store layer needs for mtime/size. The walk does not compare
// device IDs, so a filesystem mounted below the root is walked like any other
// directory.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/zeebo/xxh3"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
)

// IgnoreSet is a parsed, ready-to-match pattern set: config.DefaultIgnoreGlobs()
// merged with the project's own .gitignore entries, or the defaults alone
// when no .gitignore file exists.
type IgnoreSet struct {
	Globs []string
}

// LoadIgnoreSet reads "<root>/.gitignore" if present and merges its patterns
// with the built-in fallback set. A missing .gitignore is not an error; the
// Indexer runs with defaults alone in that case.
func LoadIgnoreSet(root string) (IgnoreSet, error) {
	defaults := config.DefaultIgnoreGlobs()
	data, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		if os.IsNotExist(err) {
			return IgnoreSet{Globs: defaults}, nil
		}
		return IgnoreSet{}, err
	}
	var extra []string
	for _, line := range strings.Split(string(data), "\n") {
		extra = append(extra, gitignoreLineToGlob(line))
	}
	return IgnoreSet{Globs: config.MergeGlobs(defaults, extra)}, nil
}

// gitignoreLineToGlob adapts a single .gitignore line to a doublestar glob.
// Negation ("!pattern") is not supported; such lines are dropped rather than
// silently mismatched, since this is a filter, not a full gitignore engine.
func gitignoreLineToGlob(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "!") {
		return ""
	}
	trimmed = strings.TrimPrefix(trimmed, "/")
	if strings.HasSuffix(trimmed, "/") {
		trimmed += "**"
	} else if !strings.Contains(trimmed, "/") {
		// A bare name like "build" should match at any depth, file or dir.
		trimmed = "**/" + trimmed
	}
	return trimmed
}

// Matches reports whether rel (a slash-separated path relative to the
// project root) matches any glob in the set.
func (s IgnoreSet) Matches(rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, g := range s.Globs {
		if g == "" {
			continue
		}
		if ok, err := doublestar.Match(g, normalized); err == nil && ok {
			return true
		}
		// Also try the glob against the path with a leading "**/" segment.
		// This is not a base-name match: a glob without a leading "**/"
		// still has to match the path from the root.
		if ok, err := doublestar.Match(g, "**/"+normalized); err == nil && ok {
			return true
		}
	}
	return false
}

// WalkEntry is one file the walk accepted for indexing consideration. The
// caller (Indexer) still applies size/UTF-8 checks before hashing content.
type WalkEntry struct {
	RelPath string
	AbsPath string
}

// Walk lists every regular file under root that is not skipped by the
// ignore set, reserved sidecar names, or (when followSymlinks is false)
// symlinks. Directories and files are visited in lexical order via
// filepath.WalkDir. Symlinked files are included only if their resolved
// target stays within root; symlinked directories are never followed, to
// keep the walk bounded to a single filesystem subtree.
func Walk(root string, ignore IgnoreSet, followSymlinks bool) ([]WalkEntry, error) {
	sidecars := config.SidecarNames()
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var entries []WalkEntry
	err = filepath.WalkDir(rootAbs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return err
		}
		if path == rootAbs {
			return nil
		}
		rel, err := filepath.Rel(rootAbs, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if _, reserved := sidecars[d.Name()]; reserved {
			return nil
		}
		if ignore.Matches(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			if !followSymlinks {
				return nil
			}
			target, statErr := os.Stat(path)
			if statErr != nil {
				// Broken symlink: skip silently, the caller logs via its own
				// per-file warning path if it wants to.
				return nil
			}
			if target.IsDir() {
				return nil
			}
			resolved, evalErr := filepath.EvalSymlinks(path)
			if evalErr != nil {
				return nil
			}
			if !withinRoot(rootAbs, resolved) {
				return nil
			}
			entries = append(entries, WalkEntry{RelPath: rel, AbsPath: path})
			return nil
		}

		if d.IsDir() {
			return nil
		}
		entries = append(entries, WalkEntry{RelPath: rel, AbsPath: path})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// withinRoot reports whether resolved is root or a descendant of root.
func withinRoot(root, resolved string) bool {
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return false
	}
	return rel == "." || (!strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel))
}

// HashContent returns the 64-bit xxh3 content hash used as content_hash.
// Callers must validate UTF-8 and size before calling this, per spec order
// of operations.
func HashContent(content []byte) uint64 {
	return xxh3.Hash(content)
}

// ValidUTF8 reports whether content is valid UTF-8 text.
func ValidUTF8(content []byte) bool {
	return utf8.Valid(content)
}

// CheckedInt64 converts a non-negative platform size/time value (commonly
// uint64 or int64 already, depending on OS) to int64 for storage, reporting
// ok=false if it would overflow. The caller skips the file and logs a
// warning on overflow rather than aborting the run.
func CheckedInt64(v uint64) (int64, bool) {
	if v > uint64(1<<63-1) {
		return 0, false
	}
	return int64(v), true
}
