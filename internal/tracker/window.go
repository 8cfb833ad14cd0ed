// Package tracker samples the focused window and records focused time.
package tracker

import (
	"context"
	"os/exec"
	"strings"
)

// Window is the currently focused top-level window.
type Window struct {
	AppID string
	Title string
	PID   int
}

// Detector reports the focused window. A nil window with a nil error means
// nothing is focused.
type Detector interface {
	FocusedWindow(ctx context.Context) (*Window, error)
	Name() string
	Close() error
}

// IdleChecker reports whether the user is away.
type IdleChecker interface {
	Idle(ctx context.Context) bool
}

// Runner executes an external command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Detect picks the detector for the running session: Hyprland when
// HYPRLAND_INSTANCE_SIGNATURE is set, X11 otherwise.
func Detect(getenv func(string) string) (Detector, error) {
	if strings.TrimSpace(getenv("HYPRLAND_INSTANCE_SIGNATURE")) != "" {
		return NewHyprland(ExecRunner), nil
	}
	return NewX11()
}
