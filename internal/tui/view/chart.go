package view

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revanthlol/focusd/internal/usage"
)

// eighths are the partial block glyphs for one to seven eighths of a cell.
var eighths = []string{" ", "▁", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

// ChartState describes the weekly bar chart.
type ChartState struct {
	Width   int
	Height  int
	Entries []usage.Entry

	BarColor   func(pct float64) lipgloss.Color
	LabelStyle Renderer
	ValueStyle Renderer
	EmptyText  string
}

// BarHeight returns how many eighth-cells a bar of value gets out of rows
// full cells.
func BarHeight(value, peak int64, rows int) int {
	if rows <= 0 || value <= 0 {
		return 0
	}
	pct := usage.Percent(value, peak)
	return int(math.Round(pct / 100 * float64(rows*8)))
}

// RenderChart draws one vertical bar per entry with its duration above the
// day label. Heights are relative to the tallest bar.
func RenderChart(s ChartState) string {
	if len(s.Entries) == 0 || s.Width <= 0 || s.Height < 3 {
		return s.EmptyText
	}

	n := len(s.Entries)
	colW := s.Width / n
	if colW < 1 {
		colW = 1
	}
	barW := colW - 2
	if barW < 1 {
		barW = 1
	}
	rows := s.Height - 2
	peak := usage.MaxSeconds(s.Entries)

	heights := make([]int, n)
	styles := make([]lipgloss.Style, n)
	for i, e := range s.Entries {
		heights[i] = BarHeight(e.Seconds, peak, rows)
		style := lipgloss.NewStyle()
		if s.BarColor != nil {
			style = style.Foreground(s.BarColor(usage.Percent(e.Seconds, peak)))
		}
		styles[i] = style
	}

	lines := make([]string, 0, s.Height)
	for r := rows - 1; r >= 0; r-- {
		var b strings.Builder
		for i := range s.Entries {
			level := heights[i] - r*8
			if level > 8 {
				level = 8
			}
			if level < 0 {
				level = 0
			}
			cell := Center(strings.Repeat(eighths[level], barW), colW)
			if level > 0 {
				cell = styles[i].Render(cell)
			}
			b.WriteString(cell)
		}
		lines = append(lines, b.String())
	}

	var values, labels strings.Builder
	for _, e := range s.Entries {
		values.WriteString(orPlain(s.ValueStyle).Render(Center(usage.FormatDurationShort(e.Seconds), colW)))
		labels.WriteString(orPlain(s.LabelStyle).Render(Center(e.Label, colW)))
	}
	lines = append(lines, values.String(), labels.String())

	return strings.Join(lines, "\n")
}
