package view

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/revanthlol/focusd/internal/usage"
)

// Bar glyphs for the activity list.
const (
	BarFull  = "█"
	BarTrack = "░"
)

// ActivityState describes the per-app activity list.
type ActivityState struct {
	Width   int
	Entries []usage.Entry

	LabelStyle    Renderer
	DurationStyle Renderer
	TrackStyle    Renderer
	BarColor      func(pct float64) lipgloss.Color
	EmptyText     string
}

// BarWidth returns the filled cells of a bar width cells wide whose value is
// value out of peak.
func BarWidth(value, peak int64, width int) int {
	if width <= 0 {
		return 0
	}
	filled := int(math.Round(usage.Percent(value, peak) / 100 * float64(width)))
	if filled > width {
		filled = width
	}
	return filled
}

// RenderActivity lists each entry as a label and duration row followed by a
// proportional bar. Bars are relative to the largest entry.
func RenderActivity(s ActivityState) string {
	if len(s.Entries) == 0 {
		return s.EmptyText
	}
	if s.Width <= 0 {
		return ""
	}

	peak := usage.MaxSeconds(s.Entries)
	blocks := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		dur := orPlain(s.DurationStyle).Render(usage.FormatDuration(e.Seconds))
		labelW := s.Width - lipgloss.Width(dur) - 1
		label := orPlain(s.LabelStyle).Render(Truncate(e.Label, labelW))
		row := JoinEnds(label, dur, s.Width, nil)

		filled := BarWidth(e.Seconds, peak, s.Width)
		fill := lipgloss.NewStyle()
		if s.BarColor != nil {
			fill = fill.Foreground(s.BarColor(usage.Percent(e.Seconds, peak)))
		}
		bar := fill.Render(strings.Repeat(BarFull, filled))
		if rest := s.Width - filled; rest > 0 {
			bar += orPlain(s.TrackStyle).Render(strings.Repeat(BarTrack, rest))
		}

		blocks = append(blocks, row+"\n"+bar)
	}
	return strings.Join(blocks, "\n\n")
}

// TotalText renders the headline total, or a placeholder before data arrives.
func TotalText(d *usage.Dashboard) string {
	if d == nil {
		return "--"
	}
	return usage.FormatDuration(d.TotalSeconds)
}
