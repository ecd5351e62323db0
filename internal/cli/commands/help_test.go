package commands

import (
	"testing"
)

func TestRunHelpNoArgsShowsUsage(t *testing.T) {
	if err := RunHelp(nil); err != nil {
		t.Errorf("RunHelp() error: %v", err)
	}
}

func TestRunHelpKnownCommand(t *testing.T) {
	if err := RunHelp([]string{"search"}); err != nil {
		t.Errorf("RunHelp(search) error: %v", err)
	}
}

func TestRunHelpUnknownCommandFallsBackToUsage(t *testing.T) {
	if err := RunHelp([]string{"frobnicate"}); err != nil {
		t.Errorf("RunHelp(frobnicate) error: %v", err)
	}
}

func TestRunVersionPrintsBuildVersion(t *testing.T) {
	if err := RunVersion(nil); err != nil {
		t.Errorf("RunVersion() error: %v", err)
	}
}

func TestShowUsage(t *testing.T) {
	if err := ShowUsage(); err != nil {
		t.Errorf("ShowUsage() error: %v", err)
	}
}
