package commands

import (
	"errors"
	"testing"

	"github.com/mneves75/ffts-grep-sub001/internal/ffterrors"
	"github.com/mneves75/ffts-grep-sub001/internal/health"
)

func TestExitCodeForErrorNil(t *testing.T) {
	if got := exitCodeForError(nil); got != int(ffterrors.ExitOk) {
		t.Errorf("got %d, want ExitOk", got)
	}
}

func TestExitCodeForErrorExitError(t *testing.T) {
	err := withExitCode(int(ffterrors.ExitNoPerm), errors.New("denied"))
	if got := exitCodeForError(err); got != int(ffterrors.ExitNoPerm) {
		t.Errorf("got %d, want ExitNoPerm", got)
	}
}

func TestExitCodeForErrorWrappedExitError(t *testing.T) {
	inner := withExitCode(int(ffterrors.ExitDataErr), errors.New("bad data"))
	wrapped := errors.Join(inner)
	if got := exitCodeForError(wrapped); got != int(ffterrors.ExitDataErr) {
		t.Errorf("got %d, want ExitDataErr", got)
	}
}

func TestExitCodeForErrorFftsError(t *testing.T) {
	err := ffterrors.IO(errors.New("disk gone"))
	if got := exitCodeForError(err); got != int(ffterrors.ExitIoErr) {
		t.Errorf("got %d, want ExitIoErr", got)
	}
}

func TestExitCodeForErrorUnknown(t *testing.T) {
	if got := exitCodeForError(errors.New("mystery")); got != int(ffterrors.ExitSoftware) {
		t.Errorf("got %d, want ExitSoftware", got)
	}
}

func TestWithExitCodeNilPassthrough(t *testing.T) {
	if err := withExitCode(int(ffterrors.ExitDataErr), nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestExitCodeForHealth(t *testing.T) {
	tests := []struct {
		status health.Status
		want   int
	}{
		{health.WrongApplicationId, int(ffterrors.ExitDataErr)},
		{health.Unreadable, int(ffterrors.ExitNoPerm)},
		{health.Corrupted, int(ffterrors.ExitSoftware)},
	}
	for _, tt := range tests {
		if got := exitCodeForHealth(tt.status); got != tt.want {
			t.Errorf("exitCodeForHealth(%v) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestInvalidArgsIsDataErr(t *testing.T) {
	err := InvalidArgs(errors.New("bad json"))
	if got := ExitCodeForError(err); got != int(ffterrors.ExitDataErr) {
		t.Errorf("got %d, want ExitDataErr", got)
	}
}
