// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/revanthlol/focusd/internal/dashboard"
	"github.com/revanthlol/focusd/internal/usage"
)

// DashboardMsg carries the result of one poll. Gen identifies the polling
// session that issued it.
type DashboardMsg struct {
	Gen       int
	Request   usage.Request
	Dashboard *usage.Dashboard
	Err       error
	At        time.Time
}

// TickMsg fires when the next poll is due.
type TickMsg struct {
	Gen int
}

// StatusMsg is sent for temporary status messages.
type StatusMsg struct {
	Msg string
}

// ErrMsg is sent when an error occurs outside polling.
type ErrMsg struct {
	Err error
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// WriteClipboard is the clipboard writer; tests replace it.
var WriteClipboard = clipboard.WriteAll

// Fetch polls source once. The request is bounded by timeout.
func Fetch(ctx context.Context, source dashboard.Source, req usage.Request, gen int, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		if ctx == nil {
			ctx = context.Background()
		}
		fctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		d, err := source.Fetch(fctx, req)
		return DashboardMsg{Gen: gen, Request: req, Dashboard: d, Err: err, At: time.Now()}
	}
}

// Tick schedules the next poll for gen after interval.
func Tick(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Gen: gen}
	})
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := WriteClipboard(text); err != nil {
			return ErrMsg{Err: err}
		}
		return StatusMsg{Msg: "Copied summary to clipboard"}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
