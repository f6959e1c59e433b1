package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Bar     lipgloss.Color
	Compare lipgloss.Color
	Mutate  lipgloss.Color
	Sorted  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
}

// Available themes
var (
	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"),
		Bar:     lipgloss.Color("#00ffff"),
		Compare: lipgloss.Color("#ffff00"),
		Mutate:  lipgloss.Color("#ff0055"),
		Sorted:  lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Bar:     lipgloss.Color("#00aa00"),
		Compare: lipgloss.Color("#88ff88"),
		Mutate:  lipgloss.Color("#ffff00"),
		Sorted:  lipgloss.Color("#ccffcc"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Bar:     lipgloss.Color("#cccccc"),
		Compare: lipgloss.Color("#0088ff"),
		Mutate:  lipgloss.Color("#ff0000"),
		Sorted:  lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Bar:     lipgloss.Color("#00a8cc"),
		Compare: lipgloss.Color("#ffd700"),
		Mutate:  lipgloss.Color("#ff4444"),
		Sorted:  lipgloss.Color("#00ff88"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"), // Coral
		Bar:     lipgloss.Color("#feca57"),
		Compare: lipgloss.Color("#ff9ff3"),
		Mutate:  lipgloss.Color("#ff4757"),
		Sorted:  lipgloss.Color("#5fd068"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	CurrentTheme = ThemeCyberpunk

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
