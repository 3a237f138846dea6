package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/orbsim/internal/render"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	LobeA      lipgloss.Color
	LobeB      lipgloss.Color
	Warning    lipgloss.Color
}

var (
	ThemeOrbital = Theme{
		Name:       "orbital",
		Primary:    lipgloss.Color("#00ccff"),
		Accent:     lipgloss.Color("#ffffff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#555577"),
		LobeA:      lipgloss.Color(render.LobeAColor.Hex()),
		LobeB:      lipgloss.Color(render.LobeBColor.Hex()),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Primary:    lipgloss.Color("#ff00ff"),
		Accent:     lipgloss.Color("#ffff00"),
		Background: lipgloss.Color("#0a0a0a"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
		LobeA:      lipgloss.Color("#ff00ff"),
		LobeB:      lipgloss.Color("#00ffff"),
		Warning:    lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		LobeA:      lipgloss.Color("#88ff88"),
		LobeB:      lipgloss.Color("#00aa00"),
		Warning:    lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		LobeA:      lipgloss.Color("#ffffff"),
		LobeB:      lipgloss.Color("#999999"),
		Warning:    lipgloss.Color("#ffaa00"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		LobeA:      lipgloss.Color("#ff6b6b"),
		LobeB:      lipgloss.Color("#feca57"),
		Warning:    lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeOrbital,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to the orbital theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOrbital
}

// NextTheme returns the theme after name in Themes, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
