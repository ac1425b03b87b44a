package config

import (
	"os"
	"path/filepath"
)

const appName = "c2rust-init"

// UserConfigDir returns the path to the user-level config directory.
// This follows the XDG Base Directory Specification via os.UserConfigDir.
func UserConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}

// UserConfigPath returns the path to the user-level YAML config file.
//   - Linux: ~/.config/c2rust-init/config.yml
//   - macOS: ~/Library/Application Support/c2rust-init/config.yml
//   - Windows: %APPDATA%\c2rust-init\config.yml
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return UserConfigPathIn(dir), nil
}

// UserConfigPathIn returns config.yml inside dir.
func UserConfigPathIn(dir string) string {
	return filepath.Join(dir, "config.yml")
}

// UserJSONConfigPathIn returns config.json inside dir.
func UserJSONConfigPathIn(dir string) string {
	return filepath.Join(dir, "config.json")
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
