package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/revanthlol/focusd/internal/tui/theme"
)

// Styles holds all lipgloss styles for the dashboard.
type Styles struct {
	palette *theme.Palette

	colorBg      lipgloss.Color
	colorPanel   lipgloss.Color
	colorFg      lipgloss.Color
	colorMuted   lipgloss.Color
	colorAccent  lipgloss.Color
	colorBorder  lipgloss.Color
	colorLive    lipgloss.Color
	colorStale   lipgloss.Color
	colorOnAccnt lipgloss.Color
	colorTrack   lipgloss.Color

	Fill lipgloss.Style

	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LiveStyle     lipgloss.Style
	StaleStyle    lipgloss.Style

	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	PeriodStyle      lipgloss.Style

	CardFrame      lipgloss.Style
	CardTitleStyle lipgloss.Style
	TotalStyle     lipgloss.Style
	QuoteStyle     lipgloss.Style
	MutedStyle     lipgloss.Style

	LabelStyle    lipgloss.Style
	DurationStyle lipgloss.Style
	TrackStyle    lipgloss.Style

	ChartLabelStyle lipgloss.Style
	ChartValueStyle lipgloss.Style

	SpinnerStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
}

// NewStyles creates styles from a palette.
func NewStyles(p *theme.Palette) *Styles {
	if p == nil {
		p = theme.NewPalette(nil)
	}
	s := &Styles{
		palette:      p,
		colorBg:      p.Bg,
		colorPanel:   p.BgPanel,
		colorFg:      p.Fg,
		colorMuted:   p.FgMuted,
		colorAccent:  p.Accent,
		colorBorder:  p.Border,
		colorLive:    p.Live,
		colorStale:   p.Stale,
		colorOnAccnt: p.TextOnAccent,
		colorTrack:   p.Track,
	}

	base := lipgloss.NewStyle().Background(s.colorBg)
	s.Fill = base

	s.TitleStyle = base.Foreground(s.colorAccent).Bold(true)
	s.SubtitleStyle = base.Foreground(s.colorMuted)
	s.LiveStyle = base.Foreground(s.colorLive).Bold(true)
	s.StaleStyle = base.Foreground(s.colorStale).Bold(true)

	s.TabActiveStyle = lipgloss.NewStyle().
		Background(s.colorAccent).
		Foreground(s.colorOnAccnt).
		Bold(true)
	s.TabInactiveStyle = lipgloss.NewStyle().
		Background(s.colorPanel).
		Foreground(s.colorMuted)
	s.PeriodStyle = base.Foreground(s.colorFg)

	s.CardFrame = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.colorBorder).
		BorderBackground(s.colorBg).
		Background(s.colorBg).
		Padding(0, 1)
	s.CardTitleStyle = base.Foreground(s.colorMuted).Bold(true)
	s.TotalStyle = base.Foreground(s.colorFg).Bold(true)
	s.QuoteStyle = base.Foreground(s.colorMuted).Italic(true)
	s.MutedStyle = base.Foreground(s.colorMuted)

	s.LabelStyle = base.Foreground(s.colorFg)
	s.DurationStyle = base.Foreground(s.colorMuted)
	s.TrackStyle = base.Foreground(s.colorTrack)

	s.ChartLabelStyle = base.Foreground(s.colorMuted)
	s.ChartValueStyle = base.Foreground(s.colorFg)

	s.SpinnerStyle = base.Foreground(s.colorAccent)
	s.StatusStyle = base.Foreground(s.colorFg)
	s.ErrorStyle = base.Foreground(s.colorStale)
	s.HelpStyle = base.Foreground(s.colorMuted)
	s.HelpKeyStyle = base.Foreground(s.colorAccent)

	return s
}

// BarColor returns the gradient color for a bar filled to pct percent.
func (s *Styles) BarColor(pct float64) lipgloss.Color {
	return s.palette.BarColor(pct)
}
