package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunSearchInvalidFlag(t *testing.T) {
	if err := RunSearch([]string{"--invalid-flag", "foo"}); err == nil {
		t.Error("expected error for invalid flag")
	}
}

func TestRunSearchRequiresQuery(t *testing.T) {
	root := t.TempDir()
	if err := RunSearch([]string{"--root", root}); err == nil {
		t.Error("expected error when no query argument is given")
	}
}

func TestRunSearchAutoInitsAndFindsMatch(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "widget.go"), []byte("package widget\n\nfunc Frobnicate() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunSearch([]string{"--root", root, "--json", "frobnicate"}); err != nil {
		t.Fatalf("RunSearch() error: %v", err)
	}
}

func TestRunSearchNoAutoInitFailsOnMissing(t *testing.T) {
	root := t.TempDir()
	if err := RunSearch([]string{"--root", root, "--no-auto-init", "anything"}); err == nil {
		t.Error("expected error with --no-auto-init on a missing database")
	}
}

func TestRunStdinQueryEmptyQueryNoRefreshIsValid(t *testing.T) {
	root := t.TempDir()
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if err := RunStdinQuery(root, "", false); err != nil {
		t.Errorf("RunStdinQuery() error: %v", err)
	}
}

func TestRunStdinQueryEmptyQueryWithRefreshIsInvalid(t *testing.T) {
	root := t.TempDir()
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if err := RunStdinQuery(root, "  ", true); err == nil {
		t.Error("expected error for empty query with refresh=true")
	}
}

func TestRunStdinQueryRefreshReindexesThenSearches(t *testing.T) {
	root := t.TempDir()
	if err := RunInit([]string{"--root", root}); err != nil {
		t.Fatalf("RunInit() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "added.go"), []byte("package main\nfunc Gizmo() {}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := RunStdinQuery(root, "gizmo", true); err != nil {
		t.Errorf("RunStdinQuery() error: %v", err)
	}
}
