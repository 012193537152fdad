package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Primary lipgloss.Color
	BodyA   lipgloss.Color
	BodyB   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

var (
	// ThemeClassic follows the desktop colors.
	ThemeClassic = Theme{
		Name:    "classic",
		Primary: lipgloss.Color("#ffffff"),
		BodyA:   lipgloss.Color("#0096ff"),
		BodyB:   lipgloss.Color("#ff5050"),
		Accent:  lipgloss.Color("#ffc800"),
		Text:    lipgloss.Color("#eeeeee"),
		Muted:   lipgloss.Color("#888888"),
		Success: lipgloss.Color("#00ff78"),
		Warning: lipgloss.Color("#ffc800"),
		Error:   lipgloss.Color("#ff5050"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"),
		BodyA:   lipgloss.Color("#00ffff"),
		BodyB:   lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#ffff00"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Success: lipgloss.Color("#00ff00"),
		Warning: lipgloss.Color("#ff8800"),
		Error:   lipgloss.Color("#ff0000"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		BodyA:   lipgloss.Color("#88ff88"),
		BodyB:   lipgloss.Color("#00cc00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Success: lipgloss.Color("#88ff88"),
		Warning: lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
	}
)

// GetTheme returns a theme by name, falling back to the classic one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
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
