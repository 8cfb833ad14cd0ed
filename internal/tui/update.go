package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/revanthlol/focusd/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.activity, cmd = m.activity.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeActivity()
		return m, nil

	case commands.TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m, tea.Batch(m.fetchCmd(), commands.Tick(m.refresh, m.gen))

	case commands.DashboardMsg:
		if msg.Gen != m.gen {
			m.logger.Debug().Int("gen", msg.Gen).Int("current", m.gen).Msg("dropping stale response")
			return m, nil
		}
		if msg.Err != nil {
			m.logger.Error().Err(msg.Err).
				Str("view", string(msg.Request.View)).
				Msg("dashboard fetch failed")
			m.stale = true
			m.statusMsg = "Fetch failed: " + msg.Err.Error()
			m.statusErr = true
			return m, nil
		}
		m.data = msg.Dashboard
		m.lastUpdate = msg.At
		if m.stale {
			m.logger.Info().Msg("dashboard source recovered")
		}
		m.stale = false
		if m.statusErr {
			m.statusMsg = ""
			m.statusErr = false
		}
		m.refreshActivity()
		return m, nil

	case spinner.TickMsg:
		if m.data != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.StatusMsg:
		m.statusMsg = msg.Msg
		m.statusErr = false
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ErrMsg:
		m.logger.Warn().Err(msg.Err).Msg("command failed")
		m.statusMsg = "Error: " + msg.Err.Error()
		m.statusErr = true
		return m, commands.ClearStatusAfter(statusTimeout)

	case commands.ClearStatusMsg:
		if !m.stale {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}
