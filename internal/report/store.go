// Package report persists build records so that a compile run can be
// inspected after the fact by run ID.
package report

import (
	"time"

	"github.com/swishlabsco/witness/internal/artifact"
	"github.com/swishlabsco/witness/internal/solc"
)

// Store persists and retrieves build records.
type Store interface {
	Save(rec *Record) error
	Load(runID string) (*Record, error)
}

// Record holds the structured outcome of one compile run.
type Record struct {
	ID        string              `json:"id"`
	Source    string              `json:"source"`
	OutputDir string              `json:"output_dir"`
	Argv      []string            `json:"argv"`
	Directive string              `json:"directive"`
	Outcome   solc.Kind           `json:"outcome"`
	ExitCode  int                 `json:"exit_code,omitempty"`
	Signal    string              `json:"signal,omitempty"`
	Message   string              `json:"message"`
	Stderr    string              `json:"stderr,omitempty"`
	Artifacts []artifact.Artifact `json:"artifacts,omitempty"`
	Started   time.Time           `json:"started"`
	Duration  time.Duration       `json:"duration"`
}

// NewRecord builds a Record from a compiler and the outcome it produced.
// id is used when the process never started and the runner assigned none.
func NewRecord(id string, c *solc.Compiler, out *solc.Outcome, started time.Time) *Record {
	rec := &Record{
		ID:        id,
		Source:    c.Source,
		OutputDir: c.OutputDir,
		Argv:      c.Argv(),
		Directive: c.Directive(),
		Outcome:   out.Kind,
		ExitCode:  out.ExitCode,
		Signal:    out.Signal,
		Message:   out.Message(),
		Started:   started,
		Duration:  time.Since(started),
	}
	if out.Result != nil {
		if out.Result.RunID != "" {
			rec.ID = out.Result.RunID
		}
		rec.Stderr = string(out.Result.Stderr)
	}
	return rec
}

// Succeeded reports whether the compiler exited cleanly.
func (r *Record) Succeeded() bool {
	return r.Outcome == solc.Success
}

// Contract returns the named artifact from the record, or nil.
func (r *Record) Contract(name string) *artifact.Artifact {
	return artifact.Find(r.Artifacts, name)
}
