package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{
		Workspace: t.TempDir(),
		MaxOutput: 1 << 20,
	}
}

func TestRun_Success(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"echo", "hello"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Success() {
		t.Errorf("Success() = false, want true (exit %d)", res.ExitCode)
	}
	if !strings.Contains(string(res.Stdout), "hello") {
		t.Errorf("Stdout = %q, want to contain 'hello'", res.Stdout)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"sh", "-c", "exit 3"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
	if res.Signaled {
		t.Error("Signaled = true, want false")
	}
	if res.Success() {
		t.Error("Success() = true, want false")
	}
}

func TestRun_Signaled(t *testing.T) {
	r := newTestRunner(t)
	res, err := r.Run(context.Background(), []string{"sh", "-c", "kill -9 $$"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Signaled {
		t.Fatalf("Signaled = false, want true (exit %d)", res.ExitCode)
	}
	if res.Signal != "killed" {
		t.Errorf("Signal = %q, want %q", res.Signal, "killed")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestRun_BinaryNotFound(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Run(context.Background(), []string{"nonexistent-binary-xyz-123"}, "")
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if !errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error = %v, want to wrap exec.ErrNotFound", err)
	}
	if !strings.Contains(err.Error(), "nonexistent-binary-xyz-123") {
		t.Errorf("error = %q, want to mention the binary name", err)
	}
}

func TestRun_PermissionDenied(t *testing.T) {
	r := newTestRunner(t)
	script := filepath.Join(r.Workspace, "not-executable")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nexit 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := r.Run(context.Background(), []string{script}, "")
	if err == nil {
		t.Fatal("expected error for non-executable file")
	}
	if errors.Is(err, exec.ErrNotFound) {
		t.Errorf("error = %v, should not be reported as not found", err)
	}
}

func TestRun_EmptyArgv(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Run(context.Background(), nil, "")
	if err == nil {
		t.Fatal("expected error for empty argv")
	}
}

func TestRun_CWDWithinWorkspace(t *testing.T) {
	r := newTestRunner(t)
	sub := filepath.Join(r.Workspace, "subdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	res, err := r.Run(context.Background(), []string{"pwd"}, "subdir")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(res.Stdout), "subdir") {
		t.Errorf("Stdout = %q, want to contain 'subdir'", res.Stdout)
	}
}

func TestRun_CWDOutsideWorkspace_Relative(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Run(context.Background(), []string{"echo"}, "../")
	if err == nil {
		t.Fatal("expected error for cwd outside workspace")
	}
	if !strings.Contains(err.Error(), "outside workspace") {
		t.Errorf("error = %q, want 'outside workspace'", err)
	}
}

func TestRun_CWDOutsideWorkspace_Absolute(t *testing.T) {
	r := newTestRunner(t)
	_, err := r.Run(context.Background(), []string{"echo"}, "/tmp")
	if err == nil {
		t.Fatal("expected error for absolute cwd outside workspace")
	}
	if !strings.Contains(err.Error(), "outside workspace") {
		t.Errorf("error = %q, want 'outside workspace'", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	r := newTestRunner(t)
	r.Timeout = 100 * time.Millisecond

	start := time.Now()
	res, err := r.Run(context.Background(), []string{"sleep", "10"}, "")
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Run took %s, timeout was not applied", elapsed)
	}
	if err != nil {
		// Some platforms surface the kill as an error rather than a result.
		return
	}
	if res.Success() {
		t.Error("Success() = true after timeout, want false")
	}
}

func TestRun_LiveOutput(t *testing.T) {
	r := newTestRunner(t)
	var live bytes.Buffer
	r.Stderr = &live

	res, err := r.Run(context.Background(), []string{"sh", "-c", "echo warning >&2"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(live.String(), "warning") {
		t.Errorf("live stderr = %q, want to contain 'warning'", live.String())
	}
	if !strings.Contains(string(res.Stderr), "warning") {
		t.Errorf("captured stderr = %q, want to contain 'warning'", res.Stderr)
	}
}

func TestRun_OutputTruncation(t *testing.T) {
	r := newTestRunner(t)
	r.MaxOutput = 100

	res, err := r.Run(context.Background(), []string{"sh", "-c", "dd if=/dev/zero bs=200 count=1 2>/dev/null"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Truncated {
		t.Error("Truncated = false, want true")
	}
	if len(res.Stdout) > r.MaxOutput {
		t.Errorf("len(Stdout) = %d, want <= %d", len(res.Stdout), r.MaxOutput)
	}
}
