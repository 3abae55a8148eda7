package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/handspin/internal/render"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Warning lipgloss.Color

	// Scene colors.
	Blue    lipgloss.Color
	Red     lipgloss.Color
	Primary lipgloss.Color
	Corner  lipgloss.Color
	Trace   lipgloss.Color
}

// Color maps a scene color name to the theme.
func (t Theme) Color(name string) lipgloss.Color {
	switch name {
	case render.Blue:
		return t.Blue
	case render.Red:
		return t.Red
	case render.Magenta:
		return t.Primary
	case render.LightGrey:
		return t.Trace
	}
	return t.Corner
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Accent:  lipgloss.Color("#ff00ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Warning: lipgloss.Color("#ff8800"),
		Blue:    lipgloss.Color("#3b6cff"),
		Red:     lipgloss.Color("#ff3b3b"),
		Primary: lipgloss.Color("#ff00ff"),
		Corner:  lipgloss.Color("#e0e0e0"),
		Trace:   lipgloss.Color("#5a5a5a"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Warning: lipgloss.Color("#ffff00"),
		Blue:    lipgloss.Color("#00cc00"),
		Red:     lipgloss.Color("#88ff88"),
		Primary: lipgloss.Color("#ffffff"),
		Corner:  lipgloss.Color("#00ff00"),
		Trace:   lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Warning: lipgloss.Color("#ffcc00"),
		Blue:    lipgloss.Color("#00a8cc"),
		Red:     lipgloss.Color("#ff6b6b"),
		Primary: lipgloss.Color("#ffd700"),
		Corner:  lipgloss.Color("#e0f0ff"),
		Trace:   lipgloss.Color("#24506e"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Accent:  lipgloss.Color("#ff9ff3"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Warning: lipgloss.Color("#ffc048"),
		Blue:    lipgloss.Color("#feca57"),
		Red:     lipgloss.Color("#ff6b6b"),
		Primary: lipgloss.Color("#ff9ff3"),
		Corner:  lipgloss.Color("#fff5f5"),
		Trace:   lipgloss.Color("#5a3d5b"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
