package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveProjectDirExplicitRoot(t *testing.T) {
	root := t.TempDir()
	got, err := resolveProjectDir(root)
	if err != nil {
		t.Fatalf("resolveProjectDir() error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveProjectDirEnvFallback(t *testing.T) {
	root := t.TempDir()
	t.Setenv("CLAUDE_PROJECT_DIR", root)
	got, err := resolveProjectDir(".")
	if err != nil {
		t.Fatalf("resolveProjectDir() error: %v", err)
	}
	want, _ := filepath.Abs(root)
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestResolveProjectDirRejectsMissingPath(t *testing.T) {
	_, err := resolveProjectDir(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Error("expected error for nonexistent root")
	}
}

func TestResolveProjectDirRejectsFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "notadir")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := resolveProjectDir(file)
	if err == nil {
		t.Error("expected error when root is a regular file")
	}
}
