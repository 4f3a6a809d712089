// Package artifact reads the ABI files produced by the compiler and
// checks that each one is a well-formed contract ABI.
package artifact

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Ext is the file extension solc uses for --abi output.
const Ext = ".abi"

// Artifact summarises one compiled contract ABI.
type Artifact struct {
	Contract    string   `json:"contract"`
	Path        string   `json:"path"`
	Constructor bool     `json:"constructor,omitempty"`
	Methods     []string `json:"methods,omitempty"` // method signatures, sorted
	Events      []string `json:"events,omitempty"`  // event signatures, sorted
	Errors      []string `json:"errors,omitempty"`  // custom error signatures, sorted
}

// Load parses every ABI file in dir. Artifacts are returned sorted by
// contract name. A missing directory yields no artifacts and no error.
func Load(dir string) ([]Artifact, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Artifact
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		a, err := Parse(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Contract < out[j].Contract })
	return out, nil
}

// Parse reads and validates a single ABI file.
func Parse(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing ABI %s: %w", path, err)
	}

	a := &Artifact{
		Contract:    strings.TrimSuffix(filepath.Base(path), Ext),
		Path:        path,
		Constructor: len(parsed.Constructor.Inputs) > 0,
	}
	for _, m := range parsed.Methods {
		a.Methods = append(a.Methods, m.Sig)
	}
	for _, ev := range parsed.Events {
		a.Events = append(a.Events, ev.Sig)
	}
	for _, e := range parsed.Errors {
		a.Errors = append(a.Errors, e.Sig)
	}
	sort.Strings(a.Methods)
	sort.Strings(a.Events)
	sort.Strings(a.Errors)
	return a, nil
}

// String renders a compact, human-readable summary of the artifact.
func (a *Artifact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", a.Contract, a.Path)
	if a.Constructor {
		fmt.Fprintln(&b, "  constructor")
	}
	writeGroup(&b, "methods", a.Methods)
	writeGroup(&b, "events", a.Events)
	writeGroup(&b, "errors", a.Errors)
	return b.String()
}

func writeGroup(b *strings.Builder, label string, sigs []string) {
	if len(sigs) == 0 {
		return
	}
	fmt.Fprintf(b, "  %s (%d):\n", label, len(sigs))
	for _, s := range sigs {
		fmt.Fprintf(b, "    %s\n", s)
	}
}

// Find returns the artifact for contract, or nil.
func Find(artifacts []Artifact, contract string) *Artifact {
	for i := range artifacts {
		if artifacts[i].Contract == contract {
			return &artifacts[i]
		}
	}
	return nil
}
