package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"

	"github.com/c2rust/c2rust-init/internal/workspace"
)

// Common error messages for the c2rust-init CLI.

// MissingSubcommand creates an error for running c2rust-init without a subcommand.
func MissingSubcommand() *CLIError {
	return NewArgumentErrorWithUsage(
		"a subcommand is required",
		"c2rust-init init",
		"Run 'c2rust-init init' to set up the .c2rust directory",
		"Run 'c2rust-init --help' to list available commands",
	)
}

// InvalidSettings creates an error for settings that failed to load or validate.
func InvalidSettings(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "failed to load c2rust-init settings",
		"Check ~/.config/c2rust-init/config.yml and C2RUST_INIT_* environment variables",
		"Valid existing_dir_policy values: strict, idempotent",
	)
}

// FromInitError classifies a failure returned by workspace.Initialize.
func FromInitError(err error) *CLIError {
	if err == nil {
		return nil
	}

	path := workspace.StateDirName
	var stepErr *workspace.StepError
	if stderrors.As(err, &stepErr) && stepErr.Path != "" {
		path = stepErr.Path
	}

	switch {
	case stderrors.Is(err, workspace.ErrNotADirectory):
		return WrapWithMessage(err, Conflict, "'.c2rust' exists and is not a directory",
			fmt.Sprintf("Move or delete the file at %s, then run 'c2rust-init init' again", path),
		)
	case stderrors.Is(err, workspace.ErrConfigIsDirectory):
		return WrapWithMessage(err, Conflict, "'.c2rust/config.toml' is a directory",
			fmt.Sprintf("Move or delete the directory at %s, then run 'c2rust-init init' again", path),
		)
	case stderrors.Is(err, workspace.ErrAlreadyExists):
		return WrapWithMessage(err, Conflict, "directory '.c2rust' already exists",
			"The project is already initialized; nothing to do",
			fmt.Sprintf("To start over, delete %s and run 'c2rust-init init' again", path),
			"To re-run on an existing directory, set existing_dir_policy: idempotent",
		)
	case workspace.FailedStep(err) == workspace.StepValidateInput:
		return InvalidSettings(err)
	case workspace.FailedStep(err) == workspace.StepInitRepo:
		remediation := []string{"Check that the directory is writable and the disk is not full"}
		if stepErr.CleanupErr != nil {
			remediation = append(remediation, fmt.Sprintf("Delete the directory manually: %s", stepErr.CleanupPath))
		}
		return WrapWithMessage(err, Repository, "failed to initialize Git repository", remediation...)
	case stderrors.Is(err, fs.ErrPermission):
		return WrapWithMessage(err, Filesystem, "permission denied",
			"Check that you have write permission in the current directory",
		)
	default:
		return WrapWithMessage(err, Filesystem, "initialization failed")
	}
}
