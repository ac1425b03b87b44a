// Package workspace creates the on-disk layout of a c2rust project: the hidden
// .c2rust state directory, an optional Git repository inside it, and a seeded
// config.toml. Every historical variant of the procedure is expressed through
// Options so there is exactly one code path.
package workspace

import (
	"fmt"
	"path/filepath"

	"github.com/c2rust/c2rust-init/internal/git"
)

const (
	// StateDirName is the state directory created under the project root.
	StateDirName = ".c2rust"

	// ConfigFileName is the seeded config file inside the state directory.
	ConfigFileName = "config.toml"

	// ProjectRootEnv names the variable that exposes the project root.
	ProjectRootEnv = "C2RUST_PROJECT_ROOT"
)

// ExistingDirPolicy decides what happens when the state directory is already present.
type ExistingDirPolicy string

const (
	// PolicyIdempotent accepts an existing state directory and continues.
	PolicyIdempotent ExistingDirPolicy = "idempotent"
	// PolicyStrict rejects an existing state directory with ErrAlreadyExists.
	PolicyStrict ExistingDirPolicy = "strict"
)

// ParsePolicy converts a config value into an ExistingDirPolicy.
func ParsePolicy(s string) (ExistingDirPolicy, error) {
	switch p := ExistingDirPolicy(s); p {
	case PolicyIdempotent, PolicyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown existing directory policy %q (valid: %s, %s)", s, PolicyIdempotent, PolicyStrict)
	}
}

// Options selects which steps Initialize runs.
type Options struct {
	// InitializeRepository runs `git init` inside the state directory.
	InitializeRepository bool
	// SeedConfig writes config.toml when it does not exist yet.
	SeedConfig bool
	// ExportEnvironment builds the shell hint for C2RUST_PROJECT_ROOT.
	ExportEnvironment bool
	// ExistingDirPolicy applies when .c2rust is already a directory.
	ExistingDirPolicy ExistingDirPolicy
	// Identity is written to the repository-local Git config. Empty fields are skipped.
	Identity git.Identity
	// Template is the config.toml payload. Required when SeedConfig is set.
	Template string
}

// DefaultOptions returns the options used by `c2rust-init init` when nothing is configured.
func DefaultOptions() Options {
	return Options{
		InitializeRepository: true,
		SeedConfig:           true,
		ExportEnvironment:    true,
		ExistingDirPolicy:    PolicyStrict,
	}
}

// StateDir returns the state directory path for a project root.
func StateDir(root string) string {
	return filepath.Join(root, StateDirName)
}

// ConfigPath returns the config.toml path for a project root.
func ConfigPath(root string) string {
	return filepath.Join(root, StateDirName, ConfigFileName)
}
