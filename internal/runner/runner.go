// Package runner starts external tools within a workspace boundary and
// reports how they terminated.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
)

// DefaultMaxOutput caps captured stdout and stderr when MaxOutput is unset.
const DefaultMaxOutput = 1 << 20

// Runner executes commands within a workspace boundary.
type Runner struct {
	Workspace string
	Timeout   time.Duration // zero means wait for the process indefinitely
	MaxOutput int           // bytes

	// Stdout and Stderr, when set, receive a live copy of the process output
	// in addition to the captured buffers.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes a command with the given argv. The first element is the
// binary name (resolved via PATH), and the rest are arguments.
// cwd is resolved relative to the workspace root and must remain within it.
//
// A process that starts and then exits, for whatever reason, yields a
// Result and a nil error. An error is returned only when the process could
// not be started; it wraps the underlying cause (e.g. exec.ErrNotFound).
func (r *Runner) Run(ctx context.Context, argv []string, cwd string) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	dir, err := r.resolveDir(cwd)
	if err != nil {
		return nil, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	maxOutput := r.MaxOutput
	if maxOutput <= 0 {
		maxOutput = DefaultMaxOutput
	}

	runID := uuid.New().String()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = tee(&limitWriter{buf: &stdout, limit: maxOutput}, r.Stdout)
	cmd.Stderr = tee(&limitWriter{buf: &stderr, limit: maxOutput}, r.Stderr)

	runErr := cmd.Run()

	res := &Result{
		RunID:     runID,
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		Truncated: stdout.Len() >= maxOutput || stderr.Len() >= maxOutput,
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			// Binary not found, permission denied, or another start failure.
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
		res.ExitCode = exitErr.ExitCode()
		if status, ok := exitErr.Sys().(syscall.WaitStatus); ok && status.Signaled() {
			res.Signaled = true
			res.Signal = status.Signal().String()
			res.ExitCode = -1
		}
	}

	return res, nil
}

// resolveDir resolves cwd relative to the workspace and validates it
// is within the workspace boundary.
func (r *Runner) resolveDir(cwd string) (string, error) {
	if cwd == "" {
		return r.Workspace, nil
	}

	var dir string
	if filepath.IsAbs(cwd) {
		dir = filepath.Clean(cwd)
	} else {
		dir = filepath.Clean(filepath.Join(r.Workspace, cwd))
	}

	rel, err := filepath.Rel(r.Workspace, dir)
	if err != nil {
		return "", fmt.Errorf("resolving cwd: %w", err)
	}
	if strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("cwd %q is outside workspace %q", cwd, r.Workspace)
	}
	return dir, nil
}

func tee(capture io.Writer, live io.Writer) io.Writer {
	if live == nil {
		return capture
	}
	return io.MultiWriter(capture, live)
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Report all bytes as consumed to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
