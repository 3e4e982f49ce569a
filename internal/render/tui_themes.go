package render

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThemeName is the theme used when none is configured
const DefaultThemeName = "amber"

// Theme is the colour scheme of the chat view
type Theme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	// Brand colours the header, the send control and the welcome panel
	Brand       lipgloss.Color
	BrandStrong lipgloss.Color

	// Client and Consultant colour the message bubbles of each role
	Client     lipgloss.Color
	Consultant lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color
}

var (
	// AmberTheme follows the consultancy brand: amber on warm greys
	AmberTheme = Theme{
		Name:        "amber",
		Description: "Amber - brand colours on a warm dark background",

		Surface: lipgloss.Color("#292524"),
		Border:  lipgloss.Color("#57534e"),

		Brand:       lipgloss.Color("#f59e0b"),
		BrandStrong: lipgloss.Color("#b45309"),

		Client:     lipgloss.Color("#fbbf24"),
		Consultant: lipgloss.Color("#a8a29e"),

		Success: lipgloss.Color("#84cc16"),
		Error:   lipgloss.Color("#ef4444"),

		Text:     lipgloss.Color("#f5f5f4"),
		TextDim:  lipgloss.Color("#a8a29e"),
		TextMute: lipgloss.Color("#78716c"),
	}

	TokyoNightTheme = Theme{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark theme with blue accents",

		Surface: lipgloss.Color("#24283b"),
		Border:  lipgloss.Color("#414868"),

		Brand:       lipgloss.Color("#e0af68"),
		BrandStrong: lipgloss.Color("#ff9e64"),

		Client:     lipgloss.Color("#9ece6a"),
		Consultant: lipgloss.Color("#7aa2f7"),

		Success: lipgloss.Color("#9ece6a"),
		Error:   lipgloss.Color("#f7768e"),

		Text:     lipgloss.Color("#c0caf5"),
		TextDim:  lipgloss.Color("#565f89"),
		TextMute: lipgloss.Color("#3b4261"),
	}

	CatppuccinTheme = Theme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - pastel dark theme",

		Surface: lipgloss.Color("#313244"),
		Border:  lipgloss.Color("#45475a"),

		Brand:       lipgloss.Color("#f9e2af"), // yellow
		BrandStrong: lipgloss.Color("#fab387"), // peach

		Client:     lipgloss.Color("#a6e3a1"), // green
		Consultant: lipgloss.Color("#89b4fa"), // blue

		Success: lipgloss.Color("#a6e3a1"),
		Error:   lipgloss.Color("#f38ba8"),

		Text:     lipgloss.Color("#cdd6f4"),
		TextDim:  lipgloss.Color("#6c7086"),
		TextMute: lipgloss.Color("#45475a"),
	}

	NordTheme = Theme{
		Name:        "nord",
		Description: "Nord - arctic theme with cool tones",

		Surface: lipgloss.Color("#3b4252"),
		Border:  lipgloss.Color("#4c566a"),

		Brand:       lipgloss.Color("#ebcb8b"), // aurora yellow
		BrandStrong: lipgloss.Color("#d08770"), // aurora orange

		Client:     lipgloss.Color("#a3be8c"), // aurora green
		Consultant: lipgloss.Color("#88c0d0"), // frost

		Success: lipgloss.Color("#a3be8c"),
		Error:   lipgloss.Color("#bf616a"),

		Text:     lipgloss.Color("#eceff4"),
		TextDim:  lipgloss.Color("#7b88a1"),
		TextMute: lipgloss.Color("#4c566a"),
	}
)

var (
	themeMu      sync.RWMutex
	currentTheme = AmberTheme
)

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// SetTheme activates the theme called name. Unknown names are ignored
// and reported as false.
func SetTheme(name string) bool {
	theme, ok := ThemeByName(name)
	if !ok {
		return false
	}
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
	return true
}

// ThemeByName looks up a built-in theme
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Themes returns the built-in themes, default first
func Themes() []Theme {
	return []Theme{
		AmberTheme,
		TokyoNightTheme,
		CatppuccinTheme,
		NordTheme,
	}
}

// ThemeNames returns the names of the built-in themes
func ThemeNames() []string {
	themes := Themes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// NextThemeName returns the theme after name, wrapping around.
// Unknown names yield the default theme.
func NextThemeName(name string) string {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return names[(i+1)%len(names)]
		}
	}
	return DefaultThemeName
}
