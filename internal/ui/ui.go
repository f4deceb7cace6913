// Package ui handles user-facing terminal output: color detection, ANSI
// styling, and stderr warnings/errors. Operation dialogue is printed by the
// flows themselves; ui is for decoration and out-of-band messages.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// style is an SGR code applied when color is enabled.
type style string

const (
	styleBold   style = "1"
	styleDim    style = "2"
	styleRed    style = "31"
	styleGreen  style = "32"
	styleYellow style = "33"
)

var (
	writer   io.Writer = os.Stderr
	colorOut           = terminalColors(os.Stdout)
	colorErr           = terminalColors(os.Stderr)
)

// terminalColors reports whether f supports ANSI styling. NO_COLOR wins over
// terminal detection.
func terminalColors(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func paint(enabled bool, st style, s string) string {
	if !enabled {
		return s
	}
	return "\033[" + string(st) + "m" + s + "\033[0m"
}

// SetWriter overrides the output writer (for testing).
func SetWriter(w io.Writer) { writer = w }

// SetColorEnabled overrides color detection (for testing).
func SetColorEnabled(enabled bool) {
	colorOut = enabled
	colorErr = enabled
}

// ColorEnabled reports whether stdout styling is on.
func ColorEnabled() bool { return colorOut }

// Bold styles s for stdout.
func Bold(s string) string { return paint(colorOut, styleBold, s) }

// Dim styles s for stdout.
func Dim(s string) string { return paint(colorOut, styleDim, s) }

// Green styles s for stdout.
func Green(s string) string { return paint(colorOut, styleGreen, s) }

// Yellow styles s for stdout.
func Yellow(s string) string { return paint(colorOut, styleYellow, s) }

// OKTag is the marker printed after an operation completes.
func OKTag() string { return Green("✓") }

// WarnTag is the marker printed before destructive-path warnings.
func WarnTag() string { return Yellow("⚠") }

// Warn prints a warning line to stderr.
func Warn(msg string) { Warnf("%s", msg) }

// Warnf prints a formatted warning line to stderr.
func Warnf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", paint(colorErr, styleYellow, "Warning:"), fmt.Sprintf(format, args...))
}

// Error prints an error line to stderr.
func Error(msg string) { Errorf("%s", msg) }

// Errorf prints a formatted error line to stderr.
func Errorf(format string, args ...any) {
	fmt.Fprintf(writer, "%s %s\n", paint(colorErr, styleRed, "Error:"), fmt.Sprintf(format, args...))
}
