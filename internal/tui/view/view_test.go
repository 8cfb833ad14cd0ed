package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/revanthlol/focusd/internal/usage"
)

type testRenderer struct {
	prefix string
}

func (t testRenderer) Render(parts ...string) string {
	return t.prefix + strings.Join(parts, "")
}

func asciiProfile(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prev)
	})
}

func TestRender_Placeholder(t *testing.T) {
	if got := Render(ViewState{}); got != "Loading..." {
		t.Errorf("Render() = %q", got)
	}
	if got := Render(ViewState{EmptyPlaceholder: "wait"}); got != "wait" {
		t.Errorf("Render() = %q", got)
	}
	if got := Render(ViewState{Width: 1, Height: 1, BaseContent: "x"}); got != "x" {
		t.Errorf("Render() = %q", got)
	}
}

func TestRenderHeader(t *testing.T) {
	state := HeaderState{
		Width:      30,
		Title:      "FOCUSD",
		Subtitle:   "Analytics",
		Live:       true,
		LiveStyle:  testRenderer{prefix: "L:"},
		StaleStyle: testRenderer{prefix: "S:"},
	}

	out := RenderHeader(state)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
	if !strings.HasPrefix(lines[0], "FOCUSD") || !strings.HasSuffix(lines[0], "L:"+LiveLabel) {
		t.Errorf("unexpected title row %q", lines[0])
	}
	if lipgloss.Width(lines[0]) != 30 {
		t.Errorf("title row width = %d, want 30", lipgloss.Width(lines[0]))
	}
	if lines[1] != "Analytics" {
		t.Errorf("subtitle = %q", lines[1])
	}

	state.Live = false
	if out := RenderHeader(state); !strings.Contains(out, "S:"+StaleLabel) {
		t.Errorf("expected stale badge, got %q", out)
	}
}

func TestRenderTabs(t *testing.T) {
	out := RenderTabs(TabsState{
		Width:         21,
		Labels:        []string{"Today", "This Week"},
		Active:        1,
		ActiveStyle:   testRenderer{prefix: "A:"},
		InactiveStyle: testRenderer{prefix: "I:"},
	})

	if !strings.HasPrefix(out, "I:") || !strings.Contains(out, "A:") {
		t.Fatalf("unexpected tabs %q", out)
	}
	parts := strings.SplitN(strings.TrimPrefix(out, "I:"), "A:", 2)
	if len(parts[0]) != 10 || len(parts[1]) != 11 {
		t.Errorf("tab widths = %d/%d, want 10/11", len(parts[0]), len(parts[1]))
	}
	if strings.TrimSpace(parts[1]) != "This Week" {
		t.Errorf("active tab = %q", parts[1])
	}

	if RenderTabs(TabsState{Width: 10}) != "" {
		t.Error("no labels should render nothing")
	}
}

func TestRenderCard_CutsBody(t *testing.T) {
	asciiProfile(t)

	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	body := strings.Repeat("line\n", 9) + "last"
	out := RenderCard(CardState{Width: 20, Height: 5, Title: "TOTAL", Body: body, Frame: frame})

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 20 {
			t.Errorf("line %d width = %d, want 20", i, w)
		}
	}
	if !strings.Contains(lines[1], "TOTAL") {
		t.Errorf("expected title in first content row, got %q", lines[1])
	}
	if strings.Contains(out, "last") {
		t.Error("overflowing body lines should be cut")
	}

	if RenderCard(CardState{Width: 2, Height: 2, Frame: frame}) != "" {
		t.Error("card without content area should render nothing")
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		value, peak int64
		width, want int
	}{
		{value: 50, peak: 100, width: 10, want: 5},
		{value: 100, peak: 100, width: 10, want: 10},
		{value: 0, peak: 100, width: 10, want: 0},
		{value: 1, peak: 3, width: 10, want: 3},
		{value: 200, peak: 100, width: 10, want: 10},
		{value: 5, peak: 5, width: 0, want: 0},
	}
	for _, tt := range tests {
		if got := BarWidth(tt.value, tt.peak, tt.width); got != tt.want {
			t.Errorf("BarWidth(%d, %d, %d) = %d, want %d", tt.value, tt.peak, tt.width, got, tt.want)
		}
	}
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		value, peak int64
		rows, want  int
	}{
		{value: 100, peak: 100, rows: 4, want: 32},
		{value: 50, peak: 100, rows: 4, want: 16},
		{value: 1, peak: 100, rows: 4, want: 0},
		{value: 0, peak: 100, rows: 4, want: 0},
		{value: 10, peak: 10, rows: 0, want: 0},
	}
	for _, tt := range tests {
		if got := BarHeight(tt.value, tt.peak, tt.rows); got != tt.want {
			t.Errorf("BarHeight(%d, %d, %d) = %d, want %d", tt.value, tt.peak, tt.rows, got, tt.want)
		}
	}
}

func TestRenderActivity(t *testing.T) {
	asciiProfile(t)

	out := RenderActivity(ActivityState{
		Width: 30,
		Entries: []usage.Entry{
			{Label: "Firefox", Seconds: 3600},
			{Label: "Code", Seconds: 1800},
		},
		BarColor: func(float64) lipgloss.Color { return lipgloss.Color("#ff0000") },
	})

	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "Firefox") || !strings.HasSuffix(lines[0], "1h 0m 0s") {
		t.Errorf("unexpected first row %q", lines[0])
	}
	if lines[1] != strings.Repeat(BarFull, 30) {
		t.Errorf("largest entry should fill the bar, got %q", lines[1])
	}
	if lines[2] != "" {
		t.Errorf("expected blank separator, got %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "30m 0s") {
		t.Errorf("unexpected second row %q", lines[3])
	}
	if lines[4] != strings.Repeat(BarFull, 15)+strings.Repeat(BarTrack, 15) {
		t.Errorf("half entry should fill half the bar, got %q", lines[4])
	}
}

func TestRenderActivity_TruncatesLongLabels(t *testing.T) {
	asciiProfile(t)

	out := RenderActivity(ActivityState{
		Width:   20,
		Entries: []usage.Entry{{Label: "a-very-long-application-name", Seconds: 5}},
	})
	row := strings.Split(out, "\n")[0]
	if w := lipgloss.Width(row); w > 20 {
		t.Errorf("row width = %d, want <= 20: %q", w, row)
	}
	if !strings.Contains(row, "…") || !strings.HasSuffix(row, "5s") {
		t.Errorf("expected truncated label and duration, got %q", row)
	}
}

func TestRenderActivity_Empty(t *testing.T) {
	if got := RenderActivity(ActivityState{Width: 10, EmptyText: "No activity"}); got != "No activity" {
		t.Errorf("RenderActivity() = %q", got)
	}
}

func TestRenderChart(t *testing.T) {
	asciiProfile(t)

	entries := []usage.Entry{
		{Label: "Mon", Seconds: 3600},
		{Label: "Tue", Seconds: 1800},
		{Label: "Wed"}, {Label: "Thu"}, {Label: "Fri"}, {Label: "Sat"}, {Label: "Sun"},
	}
	out := RenderChart(ChartState{Width: 35, Height: 6, Entries: entries})

	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], " "+strings.Repeat("█", 3)) {
		t.Errorf("tallest bar should reach the top row, got %q", lines[0])
	}
	if strings.Contains(lines[1][len(" ███ "):], "█") {
		t.Errorf("half-height bar should not reach the second row, got %q", lines[1])
	}
	if !strings.Contains(lines[3], "███") {
		t.Errorf("bottom row should contain both bars, got %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "1h 0m") || !strings.Contains(lines[4], "30m") {
		t.Errorf("unexpected value row %q", lines[4])
	}
	for _, day := range []string{"Mon", "Wed", "Sun"} {
		if !strings.Contains(lines[5], day) {
			t.Errorf("label row missing %s: %q", day, lines[5])
		}
	}
}

func TestRenderChart_Empty(t *testing.T) {
	if got := RenderChart(ChartState{Width: 10, Height: 5, EmptyText: "none"}); got != "none" {
		t.Errorf("RenderChart() = %q", got)
	}
}

func TestTotalText(t *testing.T) {
	if got := TotalText(nil); got != "--" {
		t.Errorf("TotalText(nil) = %q", got)
	}
	if got := TotalText(&usage.Dashboard{TotalSeconds: 65}); got != "1m 5s" {
		t.Errorf("TotalText() = %q", got)
	}
}

func TestJoinEndsAndCenter(t *testing.T) {
	if got := JoinEnds("ab", "cd", 8, nil); got != "ab    cd" {
		t.Errorf("JoinEnds() = %q", got)
	}
	if got := JoinEnds("abcdef", "xyz", 7, nil); got != "abcdef" {
		t.Errorf("JoinEnds() without room = %q", got)
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center() = %q", got)
	}
	if got := Center("abcdef", 4); lipgloss.Width(got) != 4 {
		t.Errorf("Center() should truncate, got %q", got)
	}
}

func TestPlaceBox_WhitespaceBackground(t *testing.T) {
	prevProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(prevProfile)
	})

	out := PlaceBox(5, 2, lipgloss.Top, "x", lipgloss.Color("#112233"))
	if !strings.Contains(out, "\x1b[48;2;17;34;51m") {
		t.Fatalf("expected background sequence in %q", out)
	}
	if lines := strings.Split(out, "\n"); len(lines) != 2 {
		t.Errorf("expected 2 lines, got %d", len(lines))
	}
}

func TestRenderFooter(t *testing.T) {
	if RenderFooter(FooterViewState{FooterH: 0}) != "" {
		t.Error("zero height footer should be empty")
	}
	out := RenderFooter(FooterViewState{InnerW: 12, FooterH: 2, StatusLine: "ok", HelpLine: "q quit"})
	if !strings.Contains(out, "ok") || !strings.Contains(out, "q quit") {
		t.Errorf("unexpected footer %q", out)
	}
}
