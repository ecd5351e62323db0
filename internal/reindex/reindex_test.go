package reindex

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
)

func TestRunReplacesLiveDatabase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main\n"), 0o644))

	ctx := context.Background()
	_, err := health.AutoInit(ctx, dir, config.DefaultPragmaConfig(), config.Default())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.go"), []byte("package main\n// b\n"), 0o644))

	result, err := Run(ctx, dir, config.DefaultPragmaConfig(), config.Default())
	require.NoError(t, err)
	require.Equal(t, uint64(2), result.Stats.FilesIndexed)

	_, err = os.Stat(filepath.Join(dir, config.DBTmpFileName))
	require.True(t, os.IsNotExist(err), "temp file should not survive a successful run")

	report := health.CheckHealthFast(ctx, filepath.Join(dir, config.DBFileName), config.ApplicationID)
	require.Equal(t, health.Healthy, report.Status)
}

// TestRunReplacesStaleTempFile checks that a temp file left behind by an
// interrupted earlier run is discarded at the top of Run: the run still
// succeeds, replaces the live file, and leaves a healthy database.
func TestRunReplacesStaleTempFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package main\n"), 0o644))

	ctx := context.Background()
	_, err := health.AutoInit(ctx, dir, config.DefaultPragmaConfig(), config.Default())
	require.NoError(t, err)

	livePath := filepath.Join(dir, config.DBFileName)
	before, err := os.Stat(livePath)
	require.NoError(t, err)

	// A kill between the temp build and the rename cannot be triggered
	// through the public API. This test covers the other half of that
	// story: a tmp file left over from a prior interrupted run is treated
	// as stale and removed at the top of Run, never mistaken for a
	// completed build.
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DBTmpFileName), []byte("stale"), 0o644))

	_, err = Run(ctx, dir, config.DefaultPragmaConfig(), config.Default())
	require.NoError(t, err)

	after, err := os.Stat(livePath)
	require.NoError(t, err)
	require.NotEqual(t, before.ModTime(), after.ModTime(), "a successful run still replaces the live file")

	report := health.CheckHealthFast(ctx, livePath, config.ApplicationID)
	require.Equal(t, health.Healthy, report.Status)
}
