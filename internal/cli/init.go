package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/c2rust/c2rust-init/internal/config"
	"github.com/c2rust/c2rust-init/internal/envhint"
	clierrors "github.com/c2rust/c2rust-init/internal/errors"
	"github.com/c2rust/c2rust-init/internal/workspace"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Color helper functions for init command output
var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
	cBold  = color.New(color.Bold).SprintFunc()
	cCyan  = color.New(color.FgCyan).SprintFunc()
)

// newInitializer builds the workspace initializer; tests swap it to inject faults.
var newInitializer = func() *workspace.Initializer {
	return workspace.New()
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the .c2rust directory",
		Long: `Initialize the .c2rust directory in the current working directory.

This command:
  1. Creates the .c2rust state directory
  2. Initializes a Git repository inside .c2rust
  3. Creates .c2rust/config.toml from the default template

An existing config.toml is never overwritten. If .c2rust already exists the
command fails unless existing_dir_policy is set to idempotent. When Git
initialization fails, a .c2rust directory created by this run is removed again.`,
		Example: `  c2rust-init init`,
		Args:    cobra.NoArgs,
		RunE:    runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	settings, err := config.Load()
	if err != nil {
		return clierrors.InvalidSettings(err)
	}
	if settings.Debug {
		enableDebugLogging(errOut)
	}

	// The root is captured once; every step works relative to it.
	root, err := os.Getwd()
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Filesystem, "cannot determine current directory")
	}

	result, err := newInitializer().Initialize(root, settings.WorkspaceOptions())
	for _, w := range result.Warnings {
		clierrors.FprintWarning(errOut, w, isTerminal(errOut))
	}
	if err != nil {
		return clierrors.FromInitError(err)
	}

	printSummary(out, result)
	return nil
}

// printSummary reports every completed step. It only runs after the whole
// procedure succeeded so a rolled-back run never claims to have created anything.
func printSummary(out io.Writer, result *workspace.Result) {
	check := cGreen("✓")
	stateDir := workspace.StateDirName

	if result.DirCreated {
		fmt.Fprintf(out, "%s %s: %s\n", check, cBold("Created directory"), stateDir)
	} else {
		fmt.Fprintf(out, "%s %s: %s already exists\n", check, cBold("Directory"), stateDir)
	}

	if result.RepoInitialized {
		if result.RepoExisted {
			fmt.Fprintf(out, "%s %s: already initialized in %s\n", check, cBold("Git repository"), stateDir)
		} else {
			fmt.Fprintf(out, "%s %s: initialized in %s\n", check, cBold("Git repository"), stateDir)
		}
	}

	configRel := filepath.Join(stateDir, workspace.ConfigFileName)
	switch {
	case result.ConfigCreated:
		fmt.Fprintf(out, "%s %s: created at %s\n", check, cBold("Config"), configRel)
	case result.ConfigExisted:
		fmt.Fprintf(out, "%s %s: exists at %s (unchanged)\n", check, cBold("Config"), configRel)
	}

	fmt.Fprintf(out, "\nc2rust project initialized, project root: %s\n", displayPath(result.ProjectRoot))

	if result.EnvHint != nil {
		printEnvHint(out, *result.EnvHint)
	}
}

// displayPath quotes a path that is not valid UTF-8 so raw bytes never reach the terminal.
func displayPath(p string) string {
	if utf8.ValidString(p) {
		return p
	}
	return strconv.Quote(p)
}

func printEnvHint(out io.Writer, hint envhint.Hint) {
	if !hint.Representable {
		fmt.Fprintf(out, "Note: the project path contains non-UTF-8 characters, so no shell command was generated.\n")
		fmt.Fprintf(out, "Set %s to the project root in your shell manually.\n", hint.Var)
		return
	}

	fmt.Fprintf(out, "To use %s in the current shell session, run:\n", hint.Var)
	multi := len(hint.Commands) > 1
	for _, c := range hint.Commands {
		if multi {
			fmt.Fprintf(out, "  %s\n", cDim("In "+string(c.Shell)+":"))
		}
		fmt.Fprintf(out, "    %s\n", cCyan(c.Command))
	}
}
