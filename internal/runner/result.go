package runner

// Result holds the output of a command execution.
type Result struct {
	RunID     string // unique identifier for this run
	ExitCode  int    // process exit code; -1 when the process was signaled
	Signaled  bool   // true if the process was terminated by a signal
	Signal    string // signal name when Signaled is set
	Stdout    []byte // captured stdout (may be truncated)
	Stderr    []byte // captured stderr (may be truncated)
	Truncated bool   // true if output exceeded the size cap
}

// Success reports whether the process exited normally with status 0.
func (r *Result) Success() bool {
	return !r.Signaled && r.ExitCode == 0
}
