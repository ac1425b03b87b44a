package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/c2rust/c2rust-init/internal/envhint"
	"github.com/c2rust/c2rust-init/internal/git"
)

// gitDirName is the repository metadata directory go-git creates inside .c2rust.
const gitDirName = ".git"

// debugLogger is a no-op until SetDebugLogger installs one.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for workspace operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// RepositoryInitializer creates a Git repository in an existing directory.
// *git.Initializer is the production implementation.
type RepositoryInitializer interface {
	InitRepository(dir string, id git.Identity) (*git.InitResult, error)
}

// Result describes the state Initialize left behind. It is returned even on
// failure so callers can report warnings gathered before the error.
type Result struct {
	// ProjectRoot is the absolute root captured at invocation start.
	ProjectRoot string
	StateDir    string
	ConfigPath  string

	DirCreated bool
	DirExisted bool

	RepoInitialized bool
	RepoExisted     bool

	ConfigCreated bool
	ConfigExisted bool

	// EnvHint is set when ExportEnvironment is enabled and every filesystem step succeeded.
	EnvHint *envhint.Hint

	Warnings []string
}

// Initializer runs the initialization procedure.
type Initializer struct {
	repo RepositoryInitializer
	goos string
}

// Option customizes an Initializer.
type Option func(*Initializer)

// WithRepositoryInitializer replaces the go-git initializer, mainly for fault injection in tests.
func WithRepositoryInitializer(r RepositoryInitializer) Option {
	return func(i *Initializer) {
		i.repo = r
	}
}

// WithGOOS overrides the platform used to pick shell syntax for the env hint.
func WithGOOS(goos string) Option {
	return func(i *Initializer) {
		i.goos = goos
	}
}

// New returns an Initializer backed by go-git.
func New(opts ...Option) *Initializer {
	i := &Initializer{
		repo: git.NewInitializer(),
		goos: runtime.GOOS,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Initialize is shorthand for New().Initialize(root, opts).
func Initialize(root string, opts Options) (*Result, error) {
	return New().Initialize(root, opts)
}

// Initialize creates the workspace under root. Steps run strictly in order and
// the first failure aborts the rest. Only a repository failure undoes earlier
// work, and only when this call created the state directory.
func (i *Initializer) Initialize(root string, opts Options) (*Result, error) {
	result := &Result{}

	if err := validateOptions(opts); err != nil {
		return result, &StepError{Step: StepValidateInput, Err: err}
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return result, &StepError{Step: StepResolveRoot, Path: root, Err: err}
	}
	result.ProjectRoot = abs
	result.StateDir = StateDir(abs)
	result.ConfigPath = ConfigPath(abs)

	created, err := createStateDir(result.StateDir, opts.ExistingDirPolicy)
	if err != nil {
		return result, err
	}
	result.DirCreated = created
	result.DirExisted = !created

	if opts.InitializeRepository {
		if err := i.initRepository(result, opts.Identity); err != nil {
			return result, err
		}
	}

	if opts.SeedConfig {
		written, err := seedConfig(result.ConfigPath, opts.Template)
		if err != nil {
			return result, err
		}
		result.ConfigCreated = written
		result.ConfigExisted = !written
	}

	if opts.ExportEnvironment {
		hint := envhint.Build(ProjectRootEnv, abs, i.goos)
		result.EnvHint = &hint
	}

	return result, nil
}

func (i *Initializer) initRepository(result *Result, id git.Identity) error {
	gitDir := filepath.Join(result.StateDir, gitDirName)
	_, statErr := os.Lstat(gitDir)
	hadGitDir := statErr == nil

	repo, err := i.repo.InitRepository(result.StateDir, id)
	if err == nil {
		result.RepoInitialized = true
		result.RepoExisted = repo != nil && repo.AlreadyExisted
		if repo != nil {
			result.Warnings = append(result.Warnings, repo.Warnings...)
		}
		return nil
	}

	stepErr := &StepError{Step: StepInitRepo, Path: result.StateDir, Err: err}
	if !result.DirCreated {
		// The directory belongs to the user, but a .git left half-written by
		// this run would break the next idempotent run.
		if !hadGitDir {
			removePartialRepository(result, gitDir, stepErr)
		}
		return stepErr
	}

	if cleanupErr := removeStateDir(result.StateDir); cleanupErr != nil {
		stepErr.CleanupErr = cleanupErr
		stepErr.CleanupPath = result.StateDir
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("failed to clean up %s: %v", result.StateDir, cleanupErr),
			fmt.Sprintf("please delete the directory manually: %s", result.StateDir))
		return stepErr
	}
	result.DirCreated = false
	return stepErr
}

func removePartialRepository(result *Result, gitDir string, stepErr *StepError) {
	if _, err := os.Lstat(gitDir); err != nil {
		return
	}
	logDebug("[workspace] removing partial repository %s", gitDir)
	if err := os.RemoveAll(gitDir); err != nil {
		stepErr.CleanupErr = err
		stepErr.CleanupPath = gitDir
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("failed to clean up %s: %v", gitDir, err),
			fmt.Sprintf("please delete the directory manually: %s", gitDir))
	}
}

func validateOptions(opts Options) error {
	if _, err := ParsePolicy(string(opts.ExistingDirPolicy)); err != nil {
		return err
	}
	if opts.SeedConfig && opts.Template == "" {
		return errors.New("seed_config is enabled but no config template was provided")
	}
	return nil
}
