package errors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errorLabel   = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg     = color.New(color.FgRed).SprintFunc()
	warningLabel = color.New(color.FgYellow, color.Bold).SprintFunc()
	fixLabel     = color.New(color.FgGreen, color.Bold).SprintFunc()
	usageLabel   = color.New(color.FgCyan, color.Bold).SprintFunc()
	usageText    = color.New(color.FgCyan).SprintFunc()
	bullet       = color.New(color.FgGreen).SprintFunc()
	categoryFmt  = color.New(color.FgYellow).SprintFunc()
)

// FormatError formats a CLIError for a color terminal.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, true)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, false)
}

func formatError(err *CLIError, useColors bool) string {
	paint := func(f func(a ...interface{}) string, s string) string {
		if useColors {
			return f(s)
		}
		return s
	}

	var sb strings.Builder

	sb.WriteString(paint(errorLabel, "Error"))
	sb.WriteString(" [")
	sb.WriteString(paint(categoryFmt, err.Category.String()))
	sb.WriteString("]: ")
	sb.WriteString(paint(errorMsg, err.Message))
	sb.WriteString("\n")

	if err.Usage != "" {
		sb.WriteString("\n")
		sb.WriteString(paint(usageLabel, "Usage: "))
		sb.WriteString(paint(usageText, err.Usage))
		sb.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		sb.WriteString(paint(fixLabel, "To fix this:"))
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			sb.WriteString("  ")
			sb.WriteString(paint(bullet, "•"))
			sb.WriteString(" ")
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// FprintError prints a formatted CLIError to w, colored only when useColors is set.
func FprintError(w io.Writer, err *CLIError, useColors bool) {
	if err == nil {
		return
	}
	fmt.Fprint(w, formatError(err, useColors))
}

// FprintWarning prints a single warning line to w.
func FprintWarning(w io.Writer, message string, useColors bool) {
	label := "Warning"
	if useColors {
		label = warningLabel(label)
	}
	fmt.Fprintf(w, "%s: %s\n", label, message)
}
