package executor

import (
	"context"
	"errors"
	"runtime"
	"testing"
)

func TestExecute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}
	exec := New()

	out, err := exec.Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if out != "hello\n" {
		t.Errorf("stdout = %q, want %q", out, "hello\n")
	}
}

func TestExecuteFailureCarriesStderr(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses POSIX shell")
	}
	exec := New()

	_, err := exec.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %v, want *CommandError", err)
	}
	if cmdErr.Stderr != "boom" {
		t.Errorf("Stderr = %q, want boom", cmdErr.Stderr)
	}
}

func TestAvailable(t *testing.T) {
	exec := New()
	if exec.Available("definitely-not-a-real-binary-xyz") {
		t.Error("Available() = true for missing binary")
	}
}
