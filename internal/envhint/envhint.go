// Package envhint turns the project root into copyable shell commands.
// A child process cannot change its parent shell's environment, so the root
// is only ever printed, never exported.
package envhint

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Shell identifies a shell family.
type Shell string

const (
	ShellPOSIX      Shell = "posix"
	ShellCmd        Shell = "cmd.exe"
	ShellPowerShell Shell = "PowerShell"
)

// ShellCommand is a single copyable line for one shell.
type ShellCommand struct {
	Shell   Shell
	Command string
}

// Hint is the projection of an environment variable onto the operator's shells.
type Hint struct {
	Var   string
	Value string
	// Representable is false when Value is not valid UTF-8; Commands is empty then.
	Representable bool
	Commands      []ShellCommand
}

// Build returns the hint for setting name=value. goos selects the shell syntax:
// "windows" yields cmd.exe and PowerShell commands, anything else POSIX sh.
func Build(name, value, goos string) Hint {
	h := Hint{Var: name, Value: value}
	if !utf8.ValidString(value) {
		return h
	}
	h.Representable = true

	if goos == "windows" {
		h.Commands = []ShellCommand{
			{Shell: ShellCmd, Command: fmt.Sprintf(`set "%s=%s"`, name, value)},
			{Shell: ShellPowerShell, Command: fmt.Sprintf("$env:%s = %s", name, QuotePowerShell(value))},
		}
		return h
	}

	h.Commands = []ShellCommand{
		{Shell: ShellPOSIX, Command: fmt.Sprintf("export %s=%s", name, QuotePOSIX(value))},
	}
	return h
}

// QuotePOSIX single-quotes s for sh, closing and reopening the quote around each '.
func QuotePOSIX(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// QuotePowerShell single-quotes s for PowerShell, doubling embedded quotes.
func QuotePowerShell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
