package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revanthlol/focusd/internal/tui/view"
	"github.com/revanthlol/focusd/internal/usage"
)

var tabLabels = []string{usage.ViewToday.Title(), usage.ViewWeek.Title()}

const helpText = "tab view · [ ] period · t today · y copy · j/k scroll · q quit"

// View renders the model.
func (m Model) View() string {
	return view.Render(view.ViewState{
		Width:       m.width,
		Height:      m.height,
		BaseContent: m.renderBase(),
	})
}

func (m Model) renderBase() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	l, ok := computeLayout(m.width, m.height)
	if !ok {
		msg := m.styles.MutedStyle.Render("Terminal too small")
		return view.PlaceBox(m.width, m.height, lipgloss.Center, view.Center(msg, m.width), m.styles.colorBg)
	}

	s := m.styles
	header := view.RenderHeader(view.HeaderState{
		Width:         l.innerW,
		Title:         "FOCUSD",
		Subtitle:      "Analytics",
		Live:          !m.stale,
		TitleStyle:    s.TitleStyle,
		SubtitleStyle: s.SubtitleStyle,
		LiveStyle:     s.LiveStyle,
		StaleStyle:    s.StaleStyle,
		Fill:          s.Fill,
	})

	active := 0
	if m.view == usage.ViewWeek {
		active = 1
	}
	tabs := view.RenderTabs(view.TabsState{
		Width:         l.innerW,
		Labels:        tabLabels,
		Active:        active,
		ActiveStyle:   s.TabActiveStyle,
		InactiveStyle: s.TabInactiveStyle,
	})

	body := m.renderBody(l)

	footer := view.RenderFooter(view.FooterViewState{
		InnerW:     l.innerW,
		FooterH:    footerH,
		StatusLine: m.statusLine(),
		HelpLine:   s.HelpStyle.Render(helpText),
		VAlign:     lipgloss.Bottom,
		Bg:         s.colorBg,
	})

	content := strings.Join([]string{header, "", tabs, "", body, "", footer}, "\n")
	return view.PlaceBox(m.width, m.height, lipgloss.Top, indent(content, s.Fill), s.colorBg)
}

func (m Model) renderBody(l layout) string {
	total := m.renderTotal(l.leftW)
	activity := m.renderActivityCard(l.rightW, l.activityH)

	var left string
	if l.panelH > 0 {
		left = lipgloss.JoinVertical(lipgloss.Left, total, m.renderPanel(l.leftW, l.panelH))
	} else {
		left = total
	}

	if l.stacked {
		return lipgloss.JoinVertical(lipgloss.Left, left, activity)
	}
	gap := view.PadLinesWithBackground("", columnGap, l.bodyH, m.styles.colorBg)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, gap, activity)
}

func (m Model) renderTotal(width int) string {
	s := m.styles
	now := m.nowFunc()
	start, end := usage.Range(m.view, m.periodRef(), now)
	body := s.TotalStyle.Render(view.TotalText(m.data)) + "\n" +
		s.MutedStyle.Render(usage.PeriodLabel(m.view, start, end, now))

	return view.RenderCard(view.CardState{
		Width:      width,
		Height:     totalH,
		Title:      "TOTAL TIME",
		Body:       body,
		Frame:      s.CardFrame,
		TitleStyle: s.CardTitleStyle,
	})
}

// renderPanel shows the week chart, or the quote in the today view.
func (m Model) renderPanel(width, height int) string {
	s := m.styles
	innerW, innerH := view.InnerSize(s.CardFrame, width, height)

	if m.view != usage.ViewWeek {
		quote := s.QuoteStyle.Width(innerW).Render(m.config.UI.Quote)
		return view.RenderCard(view.CardState{
			Width:      width,
			Height:     height,
			Title:      "FOCUS",
			Body:       quote,
			Frame:      s.CardFrame,
			TitleStyle: s.CardTitleStyle,
		})
	}

	var entries []usage.Entry
	if m.data != nil {
		entries = m.data.Chart
	}
	chart := view.RenderChart(view.ChartState{
		Width:      innerW,
		Height:     innerH - 1,
		Entries:    entries,
		BarColor:   s.BarColor,
		LabelStyle: s.ChartLabelStyle,
		ValueStyle: s.ChartValueStyle,
		EmptyText:  s.MutedStyle.Render("No data"),
	})
	return view.RenderCard(view.CardState{
		Width:      width,
		Height:     height,
		Title:      "DAILY",
		Body:       chart,
		Frame:      s.CardFrame,
		TitleStyle: s.CardTitleStyle,
	})
}

func (m Model) renderActivityCard(width, height int) string {
	s := m.styles
	body := m.activity.View()
	if m.data == nil {
		body = m.spinner.View() + s.MutedStyle.Render(" Connecting...")
	}
	return view.RenderCard(view.CardState{
		Width:      width,
		Height:     height,
		Title:      "ACTIVITY LOG",
		Body:       body,
		Frame:      s.CardFrame,
		TitleStyle: s.CardTitleStyle,
	})
}

// activityContent renders the full activity list for the viewport.
func (m Model) activityContent(width int) string {
	if m.data == nil {
		return ""
	}
	s := m.styles
	return view.RenderActivity(view.ActivityState{
		Width:         width,
		Entries:       m.data.Apps,
		LabelStyle:    s.LabelStyle,
		DurationStyle: s.DurationStyle,
		TrackStyle:    s.TrackStyle,
		BarColor:      s.BarColor,
		EmptyText:     s.MutedStyle.Render("No activity recorded."),
	})
}

// resizeActivity fits the activity viewport to the current layout.
func (m *Model) resizeActivity() {
	l, ok := computeLayout(m.width, m.height)
	if !ok {
		m.activity.Width, m.activity.Height = 0, 0
		return
	}
	w, h := view.InnerSize(m.styles.CardFrame, l.rightW, l.activityH)
	m.activity.Width = w
	m.activity.Height = h - 1 // title row
	m.refreshActivity()
}

func (m *Model) refreshActivity() {
	m.activity.SetContent(m.activityContent(m.activity.Width))
}

func (m Model) statusLine() string {
	s := m.styles
	switch {
	case m.statusMsg != "" && m.statusErr:
		return s.ErrorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		return s.StatusStyle.Render(m.statusMsg)
	case !m.lastUpdate.IsZero():
		return s.MutedStyle.Render("Updated " + m.lastUpdate.Format("15:04:05"))
	}
	return ""
}

func indent(content string, fill lipgloss.Style) string {
	pad := fill.Render(" ")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
