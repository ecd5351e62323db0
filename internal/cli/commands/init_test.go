package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunInitInvalidFlag(t *testing.T) {
	if err := RunInit([]string{"--invalid-flag"}); err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestRunInitCreatesIndex(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, ".ffts-index.db")); err != nil {
		t.Errorf("expected database file, stat error: %v", err)
	}
}

func TestRunInitAlreadyHealthyWithoutForce(t *testing.T) {
	root := t.TempDir()
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("first RunInit() error: %v", err)
	}
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("second RunInit() error: %v", err)
	}
}

func TestRunInitForceReinitializesHealthyIndex(t *testing.T) {
	root := t.TempDir()
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("first RunInit() error: %v", err)
	}
	if err := RunInit([]string{"--root", root, "--force", "--verbose"}); err != nil {
		t.Fatalf("forced RunInit() error: %v", err)
	}
	matches, err := filepath.Glob(filepath.Join(root, ".ffts-index.db.backup.*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Error("expected a backup file from forced reinit")
	}
}
