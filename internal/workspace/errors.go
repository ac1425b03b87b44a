package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned in strict mode when .c2rust is already a directory.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotADirectory is returned when .c2rust exists but is not a directory.
	ErrNotADirectory = errors.New("path exists and is not a directory")
	// ErrConfigIsDirectory is returned when .c2rust/config.toml is a directory.
	ErrConfigIsDirectory = errors.New("config path is a directory")
)

// Step identifies a stage of the initialization procedure.
type Step string

const (
	StepResolveRoot   Step = "resolve project root"
	StepCreateDir     Step = "create state directory"
	StepInitRepo      Step = "initialize git repository"
	StepSeedConfig    Step = "seed config file"
	StepValidateInput Step = "validate options"
)

// StepError reports the step that failed, the path it operated on and the cause.
type StepError struct {
	Step Step
	Path string
	Err  error
	// CleanupErr is set when undoing the failed step's changes failed.
	CleanupErr error
	// CleanupPath is what the user has to delete by hand when CleanupErr is set.
	CleanupPath string
}

func (e *StepError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Step, e.Path, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep returns the step of a *StepError in err's chain, or "" if there is none.
func FailedStep(err error) Step {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}
