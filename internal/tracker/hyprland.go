package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Hyprland asks hyprctl for the active window.
type Hyprland struct {
	run Runner
}

// NewHyprland creates a Hyprland detector using run to invoke hyprctl.
func NewHyprland(run Runner) *Hyprland {
	return &Hyprland{run: run}
}

type hyprWindow struct {
	Class string `json:"class"`
	Title string `json:"title"`
	PID   int    `json:"pid"`
}

// FocusedWindow implements Detector.
func (h *Hyprland) FocusedWindow(ctx context.Context) (*Window, error) {
	out, err := h.run(ctx, "hyprctl", "activewindow", "-j")
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, fmt.Errorf("running hyprctl: %w", err)
	}

	out = bytes.TrimSpace(out)
	if len(out) == 0 || bytes.Equal(out, []byte("{}")) {
		return nil, nil
	}

	var w hyprWindow
	if err := json.Unmarshal(out, &w); err != nil {
		return nil, fmt.Errorf("decoding hyprctl output: %w", err)
	}
	if strings.TrimSpace(w.Class) == "" && w.PID <= 0 {
		return nil, nil
	}

	return &Window{AppID: strings.TrimSpace(w.Class), Title: w.Title, PID: w.PID}, nil
}

// Name implements Detector.
func (h *Hyprland) Name() string { return "hyprland" }

// Close implements Detector.
func (h *Hyprland) Close() error { return nil }
