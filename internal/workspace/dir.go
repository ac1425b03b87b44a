package workspace

import (
	"errors"
	"io/fs"
	"os"
)

// createStateDir creates dir and classifies an already occupied path.
// It reports whether this call created the directory.
func createStateDir(dir string, policy ExistingDirPolicy) (created bool, err error) {
	logDebug("[workspace] creating %s", dir)

	err = os.Mkdir(dir, 0o755)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return false, &StepError{Step: StepCreateDir, Path: dir, Err: err}
	}

	info, statErr := os.Stat(dir)
	if statErr != nil {
		return false, &StepError{Step: StepCreateDir, Path: dir, Err: statErr}
	}
	if !info.IsDir() {
		return false, &StepError{Step: StepCreateDir, Path: dir, Err: ErrNotADirectory}
	}
	if policy == PolicyStrict {
		return false, &StepError{Step: StepCreateDir, Path: dir, Err: ErrAlreadyExists}
	}

	logDebug("[workspace] %s already exists, continuing (%s)", dir, policy)
	return false, nil
}

// removeStateDir undoes createStateDir after a later step failed.
func removeStateDir(dir string) error {
	logDebug("[workspace] rolling back %s", dir)
	return os.RemoveAll(dir)
}
