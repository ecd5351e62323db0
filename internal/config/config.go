// Package config holds the process-wide configuration passed by reference
// into every core component: file-size and batching limits for the
// Indexer, and the pragma set applied when the Store opens the database.
// Nothing here is stored at package scope; every component receives its
// config explicitly.
package config

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// TransactionThreshold is the fixed number of successful upserts after
// which the Indexer opens its first transaction. It is a design constant,
// not a tunable: below it, per-file transaction overhead dominates; above
// it, batching amortizes that cost. See Config.BatchSize for the batch
// rotation size.
const TransactionThreshold = 50

// ApplicationID is the 32-bit signature stamped into every database this
// tool creates, used to distinguish its files from unrelated SQLite
// databases that happen to share the file name.
const ApplicationID uint32 = 0xA17E6D42

// Sidecar file names that live alongside the live database and must never
// be treated as indexable project files.
const (
	DBFileName      = ".ffts-index.db"
	DBShmFileName   = ".ffts-index.db-shm"
	DBWalFileName   = ".ffts-index.db-wal"
	DBTmpFileName   = ".ffts-index.db.tmp"
	BackupFilePrefx = ".ffts-index.db.backup."
)

// SidecarNames returns the set of reserved filenames the Indexer must skip
// during its walk, regardless of the guardrail/gitignore pattern list.
func SidecarNames() map[string]struct{} {
	return map[string]struct{}{
		DBFileName:    {},
		DBShmFileName: {},
		DBWalFileName: {},
		DBTmpFileName: {},
	}
}

// Config is the Indexer's recognized option set (spec.md §3).
type Config struct {
	// MaxFileSize is the byte cap above which a file is skipped.
	MaxFileSize int64
	// BatchSize is the number of rows committed per transaction once
	// batching is underway.
	BatchSize int
	// FollowSymlinks controls whether symlinked files are resolved and
	// accepted, provided the resolved target stays within the root.
	FollowSymlinks bool
	// Pragmas is the Store's pragma set, applied in declared order on open.
	Pragmas PragmaConfig
}

// Default returns the Indexer configuration with spec.md §3 defaults.
func Default() Config {
	return Config{
		MaxFileSize:    1 << 20, // 1 MiB
		BatchSize:      500,
		FollowSymlinks: true,
		Pragmas:        DefaultPragmaConfig(),
	}
}

// Validate rejects configuration values that cannot be honored, per
// spec.md §7's InvalidConfig kind. It never mutates c.
func (c Config) Validate() error {
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size must be non-negative, got %d", c.MaxFileSize)
	}
	if c.BatchSize <= TransactionThreshold {
		return fmt.Errorf("batch_size must be greater than the transaction threshold (%d), got %d", TransactionThreshold, c.BatchSize)
	}
	return c.Pragmas.Validate()
}

// PragmaConfig is the Store's pragma set (spec.md §3).
type PragmaConfig struct {
	JournalMode   string // "WAL"
	Synchronous   string // "NORMAL"
	CacheSizeKiB  int    // negative-KiB convention; default 32 MiB
	TempStore     string // "MEMORY"
	MmapSizeBytes int64  // 0 on darwin, 256 MiB elsewhere
	PageSize      int    // 4096
	ForeignKeys   bool   // on
	TrustedSchema bool   // off
	ApplicationID uint32 // 0xA17E6D42
	BusyTimeoutMS int    // 5000
}

// DefaultPragmaConfig returns the pragma defaults from spec.md §3,
// including the platform-conditional mmap size.
func DefaultPragmaConfig() PragmaConfig {
	mmap := int64(256 << 20)
	if runtime.GOOS == "darwin" {
		mmap = 0
	}
	return PragmaConfig{
		JournalMode:   "WAL",
		Synchronous:   "NORMAL",
		CacheSizeKiB:  32 * 1024,
		TempStore:     "MEMORY",
		MmapSizeBytes: mmap,
		PageSize:      4096,
		ForeignKeys:   true,
		TrustedSchema: false,
		ApplicationID: ApplicationID,
		BusyTimeoutMS: 5000,
	}
}

var validSynchronous = map[string]struct{}{
	"OFF": {}, "NORMAL": {}, "FULL": {}, "EXTRA": {},
}

// Validate rejects pragma values SQLite would reject or that violate the
// bounds spec.md §3 documents.
func (p PragmaConfig) Validate() error {
	if p.BusyTimeoutMS < 0 {
		return fmt.Errorf("busy timeout must be non-negative, got %d", p.BusyTimeoutMS)
	}
	if _, ok := validSynchronous[strings.ToUpper(p.Synchronous)]; !ok {
		return fmt.Errorf("unsupported synchronous level %q", p.Synchronous)
	}
	if p.PageSize < 512 || p.PageSize > 65536 || p.PageSize&(p.PageSize-1) != 0 {
		return fmt.Errorf("page size must be a power of two between 512 and 65536, got %d", p.PageSize)
	}
	if p.MmapSizeBytes < 0 || p.MmapSizeBytes > 256<<20 {
		return fmt.Errorf("mmap size must be between 0 and 256 MiB, got %d", p.MmapSizeBytes)
	}
	minCache, maxCache := 1024, 1<<20 // 1 MiB .. 1 GiB, expressed in KiB
	if p.CacheSizeKiB < minCache || p.CacheSizeKiB > maxCache {
		return fmt.Errorf("cache size must be between %d KiB and %d KiB, got %d", minCache, maxCache, p.CacheSizeKiB)
	}
	return nil
}

// DefaultIgnoreGlobs is the built-in pattern set the Indexer always matches
// against (via doublestar), merged with the project's .gitignore entries
// when that file exists. These mirror the common ignore conventions across
// ecosystems.
func DefaultIgnoreGlobs() []string {
	return []string{
		".git/**",
		"**/.git/**",
		"node_modules/**",
		"**/node_modules/**",
		"vendor/**",
		"dist/**",
		"build/**",
		"**/build/**",
		"target/**",
		"out/**",
		".idea/**",
		"**/.idea/**",
		".vscode/**",
		"**/.DS_Store",
		"**/*.min.*",
		"**/*.lock",
	}
}

// MergeGlobs deduplicates and normalizes two glob lists, preserving order
// with defaults first. Used when combining built-in ignore patterns with
// the project's own .gitignore entries.
func MergeGlobs(defaults, extra []string) []string {
	seen := make(map[string]struct{})
	var merged []string
	appendIfMissing := func(globs []string) {
		for _, g := range globs {
			norm := normalizeGlob(g)
			if norm == "" {
				continue
			}
			if _, ok := seen[norm]; ok {
				continue
			}
			seen[norm] = struct{}{}
			merged = append(merged, norm)
		}
	}
	appendIfMissing(defaults)
	appendIfMissing(extra)
	return merged
}

func normalizeGlob(g string) string {
	trimmed := strings.TrimSpace(g)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "\\", "/")
	for strings.Contains(trimmed, "//") {
		trimmed = strings.ReplaceAll(trimmed, "//", "/")
	}
	return filepath.ToSlash(trimmed)
}
