package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Filled part of usage bars
	colorBar = color.New(color.FgCyan)

	// Application names in listen output
	colorApp = color.New(color.FgBlue)

	// Status lines such as "daemon started"
	colorOK = color.New(color.FgGreen, color.Bold)

	// Idle warnings
	colorIdle = color.New(color.FgRed)

	// Environment and detector names
	colorEnv = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
