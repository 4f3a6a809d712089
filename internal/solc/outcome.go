package solc

import "github.com/swishlabsco/witness/internal/runner"

// Kind classifies how a compiler invocation terminated.
type Kind string

const (
	Success     Kind = "success"
	ExitFailure Kind = "exit"
	Signaled    Kind = "signal"
	NotFound    Kind = "not_found"
	SpawnFailed Kind = "spawn_error"
)

// Outcome is the classified result of one compiler invocation.
// Exactly one Kind applies; the remaining fields are set only for the
// kinds that carry them.
type Outcome struct {
	Kind     Kind
	Tool     string
	ExitCode int            // ExitFailure
	Signal   string         // Signaled
	Cause    error          // NotFound, SpawnFailed
	Result   *runner.Result // nil when the process never started
}

// Err converts the outcome into the error that fails the build step.
// It returns nil for Success.
func (o *Outcome) Err() error {
	switch o.Kind {
	case Success:
		return nil
	case ExitFailure:
		e := &ExitError{Name: o.Tool, Code: o.ExitCode}
		if o.Result != nil {
			e.Stderr = o.Result.Stderr
		}
		return e
	case Signaled:
		return &SignalError{Name: o.Tool, Signal: o.Signal}
	case NotFound:
		return newToolNotFoundError(o.Tool, o.Cause)
	default:
		return &SpawnError{Name: o.Tool, Err: o.Cause}
	}
}

// Message returns a human-readable description of the outcome.
func (o *Outcome) Message() string {
	if err := o.Err(); err != nil {
		return err.Error()
	}
	return "`" + o.Tool + "` compiled successfully"
}
