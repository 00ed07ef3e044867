// Package output prints tablekit's non-protocol diagnostics: errors,
// warnings, info lines. It is never used for the
// command language's own output (headers, rows, the fixed result lines of
// spec.md §6), which always goes through plain fmt.Fprint* so a scripted
// session's output is byte-for-byte stable.
//
// Ported from the teacher's cmd/pebble/output package, gated on
// golang.org/x/term.IsTerminal so piping tablekit's stderr to a file or
// another process yields undecorated text instead of raw escape codes.
package output

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
)

// isTTY reports whether stderr (the diagnostics stream) is an interactive
// terminal. Checked lazily rather than once at init so tests that swap
// os.Stderr still see the right answer.
func isTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func render(style lipgloss.Style, icon string) string {
	if !isTTY() {
		return icon
	}
	return style.Render(icon)
}

// Success prints a diagnostic success line to stderr.
func Success(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, render(successStyle, "✓"), " ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Warning prints a diagnostic warning line to stderr.
func Warning(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, render(warningStyle, "⚠"), " ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Error prints a diagnostic error line to stderr.
func Error(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, render(errorStyle, "✗"), " ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Info prints a diagnostic info line to stderr.
func Info(format string, args ...interface{}) {
	fmt.Fprint(os.Stderr, render(infoStyle, "ℹ"), " ")
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

// Muted prints a low-emphasis diagnostic line to stderr.
func Muted(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isTTY() {
		msg = mutedStyle.Render(msg)
	}
	fmt.Fprintln(os.Stderr, msg)
}
