package view

import "strings"

// TabsState describes the view switcher.
type TabsState struct {
	Width  int
	Labels []string
	Active int

	ActiveStyle   Renderer
	InactiveStyle Renderer
}

// RenderTabs splits the width evenly between the tabs and highlights the
// active one.
func RenderTabs(s TabsState) string {
	n := len(s.Labels)
	if n == 0 || s.Width <= 0 {
		return ""
	}
	base := s.Width / n
	var b strings.Builder
	for i, label := range s.Labels {
		w := base
		if i == n-1 {
			w = s.Width - base*(n-1)
		}
		style := orPlain(s.InactiveStyle)
		if i == s.Active {
			style = orPlain(s.ActiveStyle)
		}
		b.WriteString(style.Render(Center(label, w)))
	}
	return b.String()
}
