// Package cli wires the c2rust-init cobra commands.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	clierrors "github.com/c2rust/c2rust-init/internal/errors"
	"github.com/c2rust/c2rust-init/internal/git"
	"github.com/c2rust/c2rust-init/internal/version"
	"github.com/c2rust/c2rust-init/internal/workspace"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "c2rust-init",
		Short: "Initialize c2rust project structure",
		Long: `Initialize c2rust project structure.

c2rust-init prepares the current directory for the c2rust translation tools.
It creates the hidden .c2rust state directory, initializes a Git repository
inside it and seeds .c2rust/config.toml with default settings.

Settings are read from ~/.config/c2rust-init/config.yml and can be overridden
with C2RUST_INIT_* environment variables.`,
		Example: `  # Set up the current directory
  c2rust-init init

  # Re-run on an already initialized project
  C2RUST_INIT_EXISTING_DIR_POLICY=idempotent c2rust-init init`,
		Version:       version.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return clierrors.MissingSubcommand()
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("c2rust-init %s (commit %s, built %s)\n",
		version.Version, version.Commit, version.BuildDate))

	root.AddCommand(newInitCmd())
	return root
}

// Execute runs the CLI with os.Args and reports any error on stderr.
func Execute() error {
	return execute(newRootCmd(), os.Args[1:])
}

func execute(root *cobra.Command, args []string) error {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// printError renders err on w. Errors that did not come from our commands
// (unknown command, bad flags) are reported as argument errors.
func printError(w io.Writer, err error) {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		cliErr = clierrors.NewArgumentErrorWithUsage(err.Error(), "c2rust-init init",
			"Run 'c2rust-init --help' for the list of commands")
	}
	clierrors.FprintError(w, cliErr, isTerminal(w))
}

// isTerminal reports whether w is a terminal, so colors are only used on a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// enableDebugLogging routes the git and workspace debug hooks into a slog text handler on w.
func enableDebugLogging(w io.Writer) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logf := func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}
	git.SetDebugLogger(logf)
	workspace.SetDebugLogger(logf)
}
