// Package testutil provides test utilities and helpers for c2rust-init tests.
package testutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	// binaryPath caches the built c2rust-init binary path.
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// E2EEnv provides an isolated environment for E2E testing: a temp project
// directory, a private HOME so user settings never leak in, and a copy of
// the c2rust-init binary.
type E2EEnv struct {
	t          *testing.T
	tempDir    string
	projectDir string
	homeDir    string
	binDir     string
	extraEnv   []string
}

// CommandResult captures the result of running a c2rust-init command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// NewE2EEnv creates a new E2E test environment.
func NewE2EEnv(t *testing.T) *E2EEnv {
	t.Helper()

	env := &E2EEnv{t: t}
	env.setup()
	return env
}

func (e *E2EEnv) setup() {
	e.t.Helper()

	e.tempDir = e.t.TempDir()
	e.projectDir = filepath.Join(e.tempDir, "project")
	e.homeDir = filepath.Join(e.tempDir, "home")
	e.binDir = filepath.Join(e.tempDir, "bin")

	for _, dir := range []string{e.projectDir, e.homeDir, e.binDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			e.t.Fatalf("creating %s: %v", dir, err)
		}
	}

	e.installBinary()
}

func (e *E2EEnv) installBinary() {
	e.t.Helper()

	// Build the binary once per test session
	buildOnce.Do(func() {
		binaryPath, buildErr = doBuild()
	})
	if buildErr != nil {
		e.t.Fatalf("building c2rust-init: %v", buildErr)
	}

	content, err := os.ReadFile(binaryPath)
	if err != nil {
		e.t.Fatalf("reading c2rust-init binary: %v", err)
	}
	if err := os.WriteFile(e.binaryName(), content, 0o755); err != nil {
		e.t.Fatalf("writing c2rust-init binary: %v", err)
	}
}

func (e *E2EEnv) binaryName() string {
	name := filepath.Join(e.binDir, "c2rust-init")
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return name
}

func doBuild() (string, error) {
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("determining current file location")
	}
	// Navigate from internal/testutil/ to repo root
	repoRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")

	tmpDir, err := os.MkdirTemp("", "c2rust-init-build-*")
	if err != nil {
		return "", fmt.Errorf("creating temp dir for build: %w", err)
	}

	out := filepath.Join(tmpDir, "c2rust-init")
	cmd := exec.Command("go", "build", "-o", out, "./cmd/c2rust-init")
	cmd.Dir = repoRoot
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("building c2rust-init: %w\nOutput: %s", err, output)
	}
	return out, nil
}

// Setenv adds a variable to the environment of subsequent Run calls.
func (e *E2EEnv) Setenv(key, value string) {
	e.extraEnv = append(e.extraEnv, key+"="+value)
}

// Run executes c2rust-init with args inside the project directory.
func (e *E2EEnv) Run(args ...string) CommandResult {
	e.t.Helper()

	start := time.Now()

	cmd := exec.Command(e.binaryName(), args...)
	cmd.Dir = e.projectDir
	cmd.Env = e.buildIsolatedEnv()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = 1
		}
	}

	return result
}

func (e *E2EEnv) buildIsolatedEnv() []string {
	env := []string{
		"HOME=" + e.homeDir,
		"XDG_CONFIG_HOME=" + filepath.Join(e.homeDir, ".config"),
		"APPDATA=" + e.homeDir,
	}

	// Add safe environment variables from original environment
	for _, key := range []string{"PATH", "LANG", "LC_ALL", "TMPDIR", "TMP", "TEMP", "SYSTEMROOT"} {
		if val, ok := os.LookupEnv(key); ok {
			env = append(env, key+"="+val)
		}
	}

	return append(env, e.extraEnv...)
}

// ProjectDir returns the working directory used by Run.
func (e *E2EEnv) ProjectDir() string {
	return e.projectDir
}

// StatePath joins elem onto the project's .c2rust directory.
func (e *E2EEnv) StatePath(elem ...string) string {
	return filepath.Join(append([]string{e.projectDir, ".c2rust"}, elem...)...)
}
