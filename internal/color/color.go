// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
)

// Code represents an ANSI control code for text formatting.
type Code int

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
	Italic
	Underline
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var (
	stdout bool
	stderr bool
)

func init() {
	stdout = isColorEnabled(os.Stdout)
	stderr = isColorEnabled(os.Stderr)
}

// Wrap surrounds str with the given codes and a trailing reset, unconditionally.
func Wrap(str string, codes ...Code) string {
	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range codes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Colorize colours str for standard output, or returns it unchanged when
// standard output does not want colour.
func Colorize(str string, codes ...Code) string {
	if !stdout {
		return str
	}

	return Wrap(str, codes...)
}

// Enabled reports whether colour output is enabled for standard output.
func Enabled() bool {
	return stdout
}

// EnabledStderr reports whether colour output is enabled for standard error.
func EnabledStderr() bool {
	return stderr
}

func isColorEnabled(f *os.File) bool {
	if !isColorCapable() {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(f.Fd()))
}

// isColorCapable applies the environment overrides. It returns true unless NO_COLOR is set.
func isColorCapable() bool {
	return os.Getenv(NoColor) == ""
}
