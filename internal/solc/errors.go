package solc

import (
	"fmt"
	"strings"
)

// toolInfo holds install metadata for a known compiler binary.
type toolInfo struct {
	// Purpose completes the sentence "<tool> is required to ...".
	Purpose string
	// InstallURL points at the upstream install instructions.
	InstallURL string
}

// knownTools maps compiler binary names to their install metadata.
var knownTools = map[string]toolInfo{
	"solc": {
		Purpose:    "compile the bridge contracts",
		InstallURL: "https://solidity.readthedocs.io/en/develop/installing-solidity.html",
	},
	"solcjs": {
		Purpose:    "compile the bridge contracts",
		InstallURL: "https://www.npmjs.com/package/solc",
	},
}

// ToolNotFoundError is returned when the compiler executable cannot be
// located. It includes actionable install instructions when the tool is known.
type ToolNotFoundError struct {
	Name string
	Info *toolInfo
	Err  error
}

func newToolNotFoundError(name string, err error) *ToolNotFoundError {
	e := &ToolNotFoundError{Name: name, Err: err}
	if info, ok := knownTools[toolName(name)]; ok {
		e.Info = &info
	}
	return e
}

func (e *ToolNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "`%s` executable not found in `$PATH`.", e.Name)
	if e.Info == nil {
		return b.String()
	}
	fmt.Fprintf(&b, " `%s` is required to %s. please install it: %s", e.Name, e.Info.Purpose, e.Info.InstallURL)
	return b.String()
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// ExitError is returned when the compiler ran and exited with a non-zero status.
type ExitError struct {
	Name   string
	Code   int
	Stderr []byte
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("`%s` exited with error exit status code `%d`", e.Name, e.Code)
}

// SignalError is returned when the compiler was terminated by a signal and
// therefore has no exit code.
type SignalError struct {
	Name   string
	Signal string
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("`%s` exited because it was terminated by a signal", e.Name)
}

// SpawnError is returned for any other failure to start the compiler,
// such as permission denied.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("an error occurred when trying to spawn `%s`: %v", e.Name, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// toolName strips any directory from a binary path so that "/opt/bin/solc"
// still finds the install hint for "solc".
func toolName(bin string) string {
	if i := strings.LastIndexAny(bin, `/\`); i >= 0 {
		return bin[i+1:]
	}
	return bin
}
