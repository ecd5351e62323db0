package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mneves75/ffts-grep-sub001/internal/config"
	"github.com/mneves75/ffts-grep-sub001/internal/fsutil"
)

func TestIgnoreSetMatchesDefaults(t *testing.T) {
	set := fsutil.IgnoreSet{Globs: config.DefaultIgnoreGlobs()}

	cases := []struct {
		path string
		want bool
	}{
		{".git/config", true},
		{filepath.Join("nested", ".git", "config"), true},
		{filepath.Join("node_modules", "pkg", "index.js"), true},
		{filepath.Join("vendor", "pkg", "file.go"), true},
		{filepath.Join("app", "visible.go"), false},
		{"app.min.js", true},
	}
	for _, tc := range cases {
		if got := set.Matches(tc.path); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestLoadIgnoreSetFallsBackWithoutGitignore(t *testing.T) {
	dir := t.TempDir()
	set, err := fsutil.LoadIgnoreSet(dir)
	if err != nil {
		t.Fatalf("LoadIgnoreSet: %v", err)
	}
	if len(set.Globs) != len(config.DefaultIgnoreGlobs()) {
		t.Fatalf("expected default globs only, got %v", set.Globs)
	}
}

func TestLoadIgnoreSetMergesGitignore(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nbuild/\n*.tmp\n!keep.tmp\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(content), 0o644); err != nil {
		t.Fatalf("write .gitignore: %v", err)
	}
	set, err := fsutil.LoadIgnoreSet(dir)
	if err != nil {
		t.Fatalf("LoadIgnoreSet: %v", err)
	}
	if !set.Matches("build/output.o") {
		t.Error("expected build/ pattern to match")
	}
	if !set.Matches("a/b/x.tmp") {
		t.Error("expected *.tmp pattern to match at any depth")
	}
}

func TestWalkSkipsGitDirectory(t *testing.T) {
	dir := t.TempDir()
	mustMkdirAll(t, filepath.Join(dir, ".git"))
	mustWriteFile(t, filepath.Join(dir, ".git", "HEAD"), "ref: refs/heads/main")
	mustWriteFile(t, filepath.Join(dir, "main.go"), "package main")

	set := fsutil.IgnoreSet{Globs: config.DefaultIgnoreGlobs()}
	entries, err := fsutil.Walk(dir, set, true)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for _, e := range entries {
		if e.RelPath == ".git/HEAD" {
			t.Fatal("expected .git/HEAD to be skipped")
		}
	}
	found := false
	for _, e := range entries {
		if e.RelPath == "main.go" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected main.go to be listed")
	}
}

func TestWalkSkipsSymlinkedDirectories(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	mustMkdirAll(t, target)
	mustWriteFile(t, filepath.Join(target, "f.go"), "package real")

	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	set := fsutil.IgnoreSet{}
	entries, err := fsutil.Walk(dir, set, true)
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	for _, e := range entries {
		if filepath.Dir(e.RelPath) == "link" {
			t.Fatal("expected symlinked directory to not be followed")
		}
	}
}

func TestHashContentDeterministic(t *testing.T) {
	a := fsutil.HashContent([]byte("hello world"))
	b := fsutil.HashContent([]byte("hello world"))
	c := fsutil.HashContent([]byte("hello world!"))
	if a != b {
		t.Error("same content should hash identically")
	}
	if a == c {
		t.Error("different content should hash differently")
	}
}

func TestValidUTF8(t *testing.T) {
	if !fsutil.ValidUTF8([]byte("hello")) {
		t.Error("expected valid UTF-8")
	}
	if fsutil.ValidUTF8([]byte{0xff, 0xfe, 0x00}) {
		t.Error("expected invalid UTF-8 to be rejected")
	}
}

func TestCheckedInt64(t *testing.T) {
	v, ok := fsutil.CheckedInt64(100)
	if !ok || v != 100 {
		t.Fatalf("got (%d, %v), want (100, true)", v, ok)
	}
	_, ok = fsutil.CheckedInt64(^uint64(0))
	if ok {
		t.Fatal("expected overflow to be rejected")
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
