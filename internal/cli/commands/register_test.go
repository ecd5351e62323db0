package commands

import "testing"

func TestRegisteredCommandsAndAliases(t *testing.T) {
	names := []string{"init", "index", "refresh", "search", "query", "check", "reindex", "version", "help"}
	for _, name := range names {
		if _, ok := Get(name); !ok {
			t.Errorf("expected command %q to be registered", name)
		}
	}
}

func TestListReturnsUniqueCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, cmd := range List() {
		if seen[cmd.Name] {
			t.Errorf("duplicate command %q in List()", cmd.Name)
		}
		seen[cmd.Name] = true
	}
	if !seen["search"] {
		t.Error("expected search in List()")
	}
}
