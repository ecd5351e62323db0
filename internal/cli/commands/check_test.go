package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunCheckInvalidFlag(t *testing.T) {
	if err := RunCheck([]string{"--invalid-flag"}); err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestRunCheckMissing(t *testing.T) {
	root := t.TempDir()
	if err := RunCheck([]string{"--root", root}); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestRunCheckHealthyAfterInit(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if err := RunCheck([]string{"--root", root}); err != nil {
		t.Errorf("RunCheck() error: %v", err)
	}
}

func TestRunCheckVerboseHealthy(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "main.go"), []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if err := RunCheck([]string{"--root", root, "--verbose"}); err != nil {
		t.Errorf("RunCheck(--verbose) error: %v", err)
	}
}

func TestRunCheckUnreadableFile(t *testing.T) {
	root := t.TempDir()
	dbPath := filepath.Join(root, ".ffts-index.db")
	if err := os.WriteFile(dbPath, []byte("not a sqlite database"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunCheck([]string{"--root", root}); err == nil {
		t.Error("expected error for a file that isn't a valid sqlite database")
	}
}
