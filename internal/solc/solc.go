// Package solc drives the Solidity compiler as a build step. It compiles
// one contract source into ABI artifacts and fails the build on any
// non-success termination of the compiler.
package solc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"path/filepath"

	"github.com/swishlabsco/witness/internal/config"
	"github.com/swishlabsco/witness/internal/runner"
)

// DirectivePrefix is the cargo build-script instruction that makes the
// enclosing crate rebuild when the named file changes.
const DirectivePrefix = "cargo:rerun-if-changed="

// CommandRunner executes commands within a workspace.
// Implemented by runner.Runner.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, cwd string) (*runner.Result, error)
}

// Compiler holds everything needed to invoke the compiler once.
type Compiler struct {
	Runner    CommandRunner
	Solc      string // compiler binary
	Source    string // contract source, relative to the runner workspace
	OutputDir string // ABI output directory, relative to the runner workspace
}

// New builds a Compiler from cfg, falling back to the default layout for
// anything cfg leaves unset.
func New(cfg *config.Config, r CommandRunner) *Compiler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Compiler{
		Runner:    r,
		Solc:      cfg.SolcBinary(),
		Source:    cfg.SourcePath(),
		OutputDir: cfg.OutputPath(),
	}
}

// Args returns the compiler arguments in invocation order. The order is
// fixed and does not depend on the environment.
func (c *Compiler) Args() []string {
	return []string{
		"--abi",
		"--optimize",
		"--output-dir", c.OutputDir,
		"--overwrite",
		c.Source,
	}
}

// Argv returns the full command line, binary first.
func (c *Compiler) Argv() []string {
	return append([]string{c.Solc}, c.Args()...)
}

// Directive returns the rebuild trigger for the watched contract source.
func (c *Compiler) Directive() string {
	return DirectivePrefix + c.Source
}

// Compile runs the compiler synchronously and classifies how it terminated.
// It never returns a nil Outcome.
func (c *Compiler) Compile(ctx context.Context) *Outcome {
	out := &Outcome{Tool: c.Solc}

	res, err := c.Runner.Run(ctx, c.Argv(), "")
	if err != nil {
		out.Cause = err
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			out.Kind = NotFound
		} else {
			out.Kind = SpawnFailed
		}
		return out
	}

	out.Result = res
	switch {
	case res.Signaled:
		out.Kind = Signaled
		out.Signal = res.Signal
	case res.ExitCode != 0:
		out.Kind = ExitFailure
		out.ExitCode = res.ExitCode
	default:
		out.Kind = Success
	}
	return out
}

// Build is the complete build step: it writes the rebuild directive to w,
// compiles, and returns the error that must fail the build, if any.
func (c *Compiler) Build(ctx context.Context, w io.Writer) error {
	if _, err := fmt.Fprintln(w, c.Directive()); err != nil {
		return fmt.Errorf("writing rebuild directive: %w", err)
	}
	return c.Compile(ctx).Err()
}

// OutputPath resolves the output directory against root unless it is
// already absolute.
func (c *Compiler) OutputPath(root string) string {
	if filepath.IsAbs(c.OutputDir) {
		return c.OutputDir
	}
	return filepath.Join(root, c.OutputDir)
}
