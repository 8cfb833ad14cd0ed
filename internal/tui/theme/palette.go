package theme

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette holds precomputed colors derived from a Theme.
type Palette struct {
	Bg      lipgloss.Color
	BgPanel lipgloss.Color
	Fg      lipgloss.Color
	FgMuted lipgloss.Color
	Accent  lipgloss.Color
	Bar     lipgloss.Color
	Border  lipgloss.Color
	Live    lipgloss.Color
	Stale   lipgloss.Color

	// TextOnAccent is readable on an Accent background (the active tab).
	TextOnAccent lipgloss.Color
	// Track is the unfilled part of a bar.
	Track lipgloss.Color

	gradientFrom colorful.Color
	gradientTo   colorful.Color
	isLight      bool
}

// NewPalette derives a Palette from the provided Theme.
func NewPalette(t *Theme) *Palette {
	if t == nil {
		t, _ = Load(DefaultName)
	}

	bg := parse(t.Bg)
	light := isLight(bg)

	return &Palette{
		Bg:           lipgloss.Color(t.Bg),
		BgPanel:      lipgloss.Color(t.BgPanel),
		Fg:           lipgloss.Color(t.Fg),
		FgMuted:      lipgloss.Color(t.FgMuted),
		Accent:       lipgloss.Color(t.Accent),
		Bar:          lipgloss.Color(t.Bar),
		Border:       lipgloss.Color(t.Border),
		Live:         lipgloss.Color(t.Live),
		Stale:        lipgloss.Color(t.Stale),
		TextOnAccent: lipgloss.Color(chooseTextColor(t.Accent, t.Bg, t.Fg)),
		Track:        lipgloss.Color(blend(t.Border, t.Bg, 0.25)),
		gradientFrom: parse(t.Bar),
		gradientTo:   parse(t.Accent),
		isLight:      light,
	}
}

// IsLight reports whether the background is light.
func (p *Palette) IsLight() bool { return p.isLight }

// BarColor returns the gradient color for a bar filled to pct percent:
// short bars take the bar color and full bars the accent.
func (p *Palette) BarColor(pct float64) lipgloss.Color {
	t := pct / 100
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return lipgloss.Color(p.gradientFrom.BlendLab(p.gradientTo, t).Clamped().Hex())
}

// Gradient returns n evenly spaced colors from the bar color to the accent.
func (p *Palette) Gradient(n int) []lipgloss.Color {
	if n <= 0 {
		return nil
	}
	out := make([]lipgloss.Color, n)
	for i := range out {
		t := 1.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		out[i] = lipgloss.Color(p.gradientFrom.BlendLab(p.gradientTo, t).Clamped().Hex())
	}
	return out
}

func parse(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

func isLight(c colorful.Color) bool {
	l, _, _ := c.Lab()
	return l > 0.6
}

func blend(a, b string, ratio float64) string {
	ca, errA := colorful.Hex(a)
	cb, errB := colorful.Hex(b)
	if errA != nil || errB != nil {
		return a
	}
	return ca.BlendRgb(cb, ratio).Clamped().Hex()
}

func chooseTextColor(bg, a, b string) string {
	cbg := parse(bg)
	if contrast(cbg, parse(a)) >= contrast(cbg, parse(b)) {
		return a
	}
	return b
}

func contrast(x, y colorful.Color) float64 {
	lx, _, _ := x.Lab()
	ly, _, _ := y.Lab()
	if lx < ly {
		lx, ly = ly, lx
	}
	return lx - ly
}
