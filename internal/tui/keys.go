package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/revanthlol/focusd/internal/tui/commands"
	"github.com/revanthlol/focusd/internal/usage"
)

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.logger.Debug().Str("key", msg.String()).Msg("key press")

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		return m.switchView(m.view.Toggle())
	case "left", "h", "1":
		return m.switchView(usage.ViewToday)
	case "right", "l", "2":
		return m.switchView(usage.ViewWeek)
	case "[":
		return m.shiftPeriod(-1)
	case "]":
		return m.shiftPeriod(1)
	case "t":
		if m.ref.IsZero() {
			return m, nil
		}
		m.ref = time.Time{}
		return m.restartPolling()
	case "r":
		return m.restartPolling()
	case "y":
		return m.copySummary()
	}

	var cmd tea.Cmd
	m.activity, cmd = m.activity.Update(msg)
	return m, cmd
}

// switchView changes the view and restarts polling for it.
func (m Model) switchView(v usage.View) (tea.Model, tea.Cmd) {
	if v == m.view {
		return m, nil
	}
	m.view = v
	if !m.ref.IsZero() {
		m.setRef(m.ref)
	}
	m.activity.GotoTop()
	return m.restartPolling()
}

// shiftPeriod steps one day or week in dir, never past today.
func (m Model) shiftPeriod(dir int) (tea.Model, tea.Cmd) {
	cur := m.periodRef()
	next := usage.Shift(m.view, cur, dir, m.nowFunc())
	if next.Equal(cur) {
		return m, nil
	}
	m.setRef(next)
	m.activity.GotoTop()
	return m.restartPolling()
}

// copySummary puts a plain-text summary of the shown period on the clipboard.
func (m Model) copySummary() (tea.Model, tea.Cmd) {
	if m.data == nil {
		m.statusMsg = "Nothing to copy yet"
		m.statusErr = false
		return m, commands.ClearStatusAfter(statusTimeout)
	}
	now := m.nowFunc()
	start, end := usage.Range(m.view, m.periodRef(), now)
	return m, commands.CopyToClipboard(usage.Summary(m.data, m.view, start, end, now))
}
