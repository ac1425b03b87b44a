package workspace

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// createConfigFile opens a new config file; it fails if path already exists.
// Tests replace it to simulate write failures.
var createConfigFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// seedConfig writes template to path unless something already lives there.
// It reports whether the file was written. An existing file or symlink counts
// as the user's config; a directory is a conflict.
func seedConfig(path, template string) (written bool, err error) {
	info, err := os.Lstat(path)
	switch {
	case err == nil && info.IsDir():
		return false, &StepError{Step: StepSeedConfig, Path: path, Err: ErrConfigIsDirectory}
	case err == nil:
		logDebug("[workspace] %s exists, leaving it untouched", path)
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, &StepError{Step: StepSeedConfig, Path: path, Err: err}
	}

	// O_EXCL keeps a file that appeared after the check from being clobbered.
	f, err := createConfigFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &StepError{Step: StepSeedConfig, Path: path, Err: err}
	}

	// A half-written file would be treated as user config on the next run.
	if err := writeTemplate(f, template); err != nil {
		os.Remove(path)
		return false, &StepError{Step: StepSeedConfig, Path: path, Err: err}
	}

	logDebug("[workspace] wrote %d bytes to %s", len(template), path)
	return true, nil
}

func writeTemplate(f io.WriteCloser, template string) error {
	if _, err := io.WriteString(f, template); err != nil {
		f.Close()
		return fmt.Errorf("writing template: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}
	return nil
}
