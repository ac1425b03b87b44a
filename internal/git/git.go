// Package git initializes the Git repository that lives inside the .c2rust
// state directory. It uses the go-git library so no git CLI is required.
package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Identity is the commit attribution written to the repository-local config.
type Identity struct {
	Name  string
	Email string
}

// InitResult describes what InitRepository did.
type InitResult struct {
	// Path is the repository root.
	Path string
	// AlreadyExisted is true when dir already contained a repository.
	AlreadyExisted bool
	// Warnings lists non-fatal problems, such as identity fields that could not be set.
	Warnings []string
}

// Initializer creates repositories with go-git.
type Initializer struct{}

// NewInitializer returns the go-git backed repository initializer.
func NewInitializer() *Initializer {
	return &Initializer{}
}

// InitRepository runs the equivalent of `git init` in dir and applies id.
// A repository that already exists is reused. Identity failures are reported
// as warnings; only a failure to create or open the repository is an error.
func (i *Initializer) InitRepository(dir string, id Identity) (*InitResult, error) {
	result := &InitResult{Path: dir}

	logDebug("[git] initializing repository at %s", dir)
	repo, err := git.PlainInit(dir, false)
	if errors.Is(err, git.ErrRepositoryAlreadyExists) {
		logDebug("[git] repository already exists at %s", dir)
		result.AlreadyExisted = true
		repo, err = openRepo(dir)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing repository at %s: %w", dir, err)
	}

	if id.Name != "" {
		if err := setConfigField(repo, func(cfg *config.Config) { cfg.User.Name = id.Name }); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not set user.name: %v", err))
		}
	}
	if id.Email != "" {
		if err := setConfigField(repo, func(cfg *config.Config) { cfg.User.Email = id.Email }); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("could not set user.email: %v", err))
		}
	}

	return result, nil
}

// IsRepository reports whether dir is the root of a Git repository.
func IsRepository(dir string) bool {
	_, err := openRepo(dir)
	result := err == nil
	logDebug("[git] IsRepository(%s): %v", dir, result)
	return result
}

// LocalIdentity reads user.name and user.email from the repository-local config at dir.
func LocalIdentity(dir string) (Identity, error) {
	repo, err := openRepo(dir)
	if err != nil {
		return Identity{}, err
	}
	cfg, err := repo.Config()
	if err != nil {
		return Identity{}, fmt.Errorf("reading repository config: %w", err)
	}
	return Identity{Name: cfg.User.Name, Email: cfg.User.Email}, nil
}

// openRepo opens the repository rooted exactly at dir.
func openRepo(dir string) (*git.Repository, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", dir, err)
	}
	return repo, nil
}

// setConfigField applies one change to the local config and persists it.
func setConfigField(repo *git.Repository, apply func(cfg *config.Config)) error {
	cfg, err := repo.Config()
	if err != nil {
		return fmt.Errorf("reading repository config: %w", err)
	}
	apply(cfg)
	if err := repo.SetConfig(cfg); err != nil {
		return fmt.Errorf("writing repository config: %w", err)
	}
	return nil
}
