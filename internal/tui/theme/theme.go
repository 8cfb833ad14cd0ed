// Package theme provides color themes for the TUI.
package theme

import (
	"embed"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed embedded/*.toml
var embeddedThemes embed.FS

// DefaultName is used when no theme is configured.
const DefaultName = "dark"

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name    string `toml:"name"`
	Bg      string `toml:"bg"`       // Base background
	BgPanel string `toml:"bg_panel"` // Cards, inactive tabs
	Fg      string `toml:"fg"`       // Primary foreground
	FgMuted string `toml:"fg_muted"` // Labels, durations, placeholders
	Accent  string `toml:"accent"`   // Title, active tab, bar gradient end
	Bar     string `toml:"bar"`      // Bar gradient start
	Border  string `toml:"border"`   // Card borders
	Live    string `toml:"live"`     // LIVE indicator
	Stale   string `toml:"stale"`    // STALE indicator, errors
}

// Load loads a theme by name from embedded files.
// Falls back to DefaultName if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = DefaultName
	}
	name = strings.ToLower(name)

	data, err := embeddedThemes.ReadFile("embedded/" + name + ".toml")
	if err != nil {
		if name != DefaultName {
			return Load(DefaultName)
		}
		return nil, fmt.Errorf("loading theme %q: %w", name, err)
	}

	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()

	return &t, nil
}

func (t *Theme) applyDefaults() {
	t.BgPanel = coalesce(t.BgPanel, t.Bg)
	t.FgMuted = coalesce(t.FgMuted, t.Fg)
	t.Accent = coalesce(t.Accent, t.Fg)
	t.Bar = coalesce(t.Bar, t.Accent)
	t.Border = coalesce(t.Border, t.FgMuted)
	t.Live = coalesce(t.Live, t.Accent)
	t.Stale = coalesce(t.Stale, t.Accent)
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	entries, err := embeddedThemes.ReadDir("embedded")
	if err != nil {
		return []string{DefaultName}
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	return names
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	name = strings.ToLower(name)
	for _, themeName := range Available() {
		if themeName == name {
			return true
		}
	}
	return false
}
