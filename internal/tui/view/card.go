package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardState describes a bordered panel with an optional title row.
type CardState struct {
	Width  int
	Height int
	Title  string
	Body   string

	Frame      lipgloss.Style
	TitleStyle Renderer
}

// InnerSize returns the content area of a card of the given outer size.
func InnerSize(frame lipgloss.Style, width, height int) (int, int) {
	return width - frame.GetHorizontalFrameSize(), height - frame.GetVerticalFrameSize()
}

// RenderCard renders the card. Body lines beyond the content area are cut.
func RenderCard(s CardState) string {
	innerW, innerH := InnerSize(s.Frame, s.Width, s.Height)
	if innerW < 1 || innerH < 1 {
		return ""
	}

	var lines []string
	if s.Title != "" {
		lines = append(lines, Truncate(orPlain(s.TitleStyle).Render(s.Title), innerW))
	}
	if s.Body != "" {
		for _, l := range strings.Split(s.Body, "\n") {
			lines = append(lines, Truncate(l, innerW))
		}
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return s.Frame.
		Width(innerW + s.Frame.GetHorizontalPadding()).
		Height(innerH + s.Frame.GetVerticalPadding()).
		Render(strings.Join(lines, "\n"))
}
