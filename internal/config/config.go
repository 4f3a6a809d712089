// Package config loads and validates the optional .witness-build YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional configuration file at the repo root.
const FileName = ".witness-build"

// Default values. The paths are relative to the repo root and match the
// layout of the bridge repository: contracts live in a sibling directory
// and ABI artifacts land next to the witness crate.
const (
	DefaultSolc      = "solc"
	DefaultSource    = "../ethereum-contracts/contracts/Peggy.sol"
	DefaultOutputDir = "./abi/"
	DefaultMaxOutput = 1 << 20 // 1 MB
)

// Config holds the parsed .witness-build configuration.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int    `yaml:"version"`
	Solc         string `yaml:"solc"`       // compiler binary, resolved via PATH
	Source       string `yaml:"source"`     // contract source file
	OutputDir    string `yaml:"output_dir"` // directory receiving *.abi files
	RawTimeout   string `yaml:"timeout"`    // e.g. "5m"; empty means no limit
	RawMaxOutput int    `yaml:"max_output"` // bytes
}

// SolcBinary returns the configured compiler binary or the default.
func (c *Config) SolcBinary() string {
	if c.Solc != "" {
		return c.Solc
	}
	return DefaultSolc
}

// SourcePath returns the configured contract source or the default.
func (c *Config) SourcePath() string {
	if c.Source != "" {
		return c.Source
	}
	return DefaultSource
}

// OutputPath returns the configured ABI output directory or the default.
func (c *Config) OutputPath() string {
	if c.OutputDir != "" {
		return c.OutputDir
	}
	return DefaultOutputDir
}

// Timeout returns the configured timeout. Zero means the build step waits
// for the compiler for as long as it runs.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// MaxOutputBytes returns the configured max output size or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// Validate rejects configurations that cannot produce a valid solc invocation.
func (c *Config) Validate() error {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.RawTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("invalid timeout %q: must not be negative", c.RawTimeout)
		}
	}
	if c.RawMaxOutput < 0 {
		return fmt.Errorf("invalid max_output %d: must not be negative", c.RawMaxOutput)
	}
	return nil
}

// LoadResult holds the parsed config and the discovered repository root.
type LoadResult struct {
	Config   *Config
	RepoRoot string // directory containing Cargo.toml or go.mod; falls back to workspace
}

// Load reads the .witness-build file from the repository root.
// The repository root is discovered by walking upward from workspace
// looking for Cargo.toml or go.mod. If no config file exists, a default
// Config is returned.
func Load(workspace string) (*LoadResult, error) {
	root, err := findRepoRoot(workspace)
	if err != nil {
		root = workspace
	}

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &LoadResult{Config: &Config{}, RepoRoot: root}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", FileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", FileName, err)
	}
	return &LoadResult{Config: cfg, RepoRoot: root}, nil
}

// rootMarkers are the files that identify a crate or module root.
var rootMarkers = []string{"Cargo.toml", "go.mod"}

// findRepoRoot walks upward from dir looking for a directory containing
// one of rootMarkers.
func findRepoRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, m := range rootMarkers {
			if _, err := os.Stat(filepath.Join(dir, m)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no Cargo.toml or go.mod found")
		}
		dir = parent
	}
}
