package render

import (
	"testing"
)

func TestCurrentTheme_DefaultIsAmber(t *testing.T) {
	defer SetTheme(DefaultThemeName)
	SetTheme(DefaultThemeName)

	theme := CurrentTheme()
	if theme.Name != "amber" {
		t.Errorf("expected default theme 'amber', got '%s'", theme.Name)
	}
	if Themes()[0].Name != DefaultThemeName {
		t.Error("default theme should be listed first")
	}
}

func TestSetTheme(t *testing.T) {
	defer SetTheme(DefaultThemeName)

	t.Run("sets valid theme", func(t *testing.T) {
		if !SetTheme("catppuccin") {
			t.Error("should return true for valid theme")
		}
		if got := CurrentTheme().Name; got != "catppuccin" {
			t.Errorf("expected theme 'catppuccin', got '%s'", got)
		}
	})

	t.Run("returns false for invalid theme", func(t *testing.T) {
		SetTheme("nord")

		if SetTheme("nonexistent") {
			t.Error("should return false for invalid theme")
		}
		if got := CurrentTheme().Name; got != "nord" {
			t.Errorf("theme should remain 'nord', got '%s'", got)
		}
	})
}

func TestThemeByName(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"amber", true},
		{"tokyonight", true},
		{"catppuccin", true},
		{"nord", true},
		{"dracula", false},
		{"", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			theme, ok := ThemeByName(tc.name)

			if ok != tc.expected {
				t.Errorf("ThemeByName(%q) ok = %v, want %v", tc.name, ok, tc.expected)
			}
			if ok && theme.Name != tc.name {
				t.Errorf("ThemeByName(%q) returned theme with name %q", tc.name, theme.Name)
			}
		})
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	themes := Themes()

	if len(names) != len(themes) {
		t.Fatalf("names count (%d) != themes count (%d)", len(names), len(themes))
	}
	for i, name := range names {
		if name != themes[i].Name {
			t.Errorf("name[%d] = %q, themes[%d].Name = %q", i, name, i, themes[i].Name)
		}
	}
}

func TestNextThemeName(t *testing.T) {
	names := ThemeNames()

	for i, name := range names {
		want := names[(i+1)%len(names)]
		if got := NextThemeName(name); got != want {
			t.Errorf("NextThemeName(%q) = %q, want %q", name, got, want)
		}
	}

	if got := NextThemeName("unknown"); got != DefaultThemeName {
		t.Errorf("NextThemeName(unknown) = %q, want %q", got, DefaultThemeName)
	}
}

func TestThemeColors_AreValidHex(t *testing.T) {
	for _, theme := range Themes() {
		t.Run(theme.Name, func(t *testing.T) {
			if theme.Description == "" {
				t.Error("description should not be empty")
			}

			colors := map[string]string{
				"Surface":     string(theme.Surface),
				"Border":      string(theme.Border),
				"Brand":       string(theme.Brand),
				"BrandStrong": string(theme.BrandStrong),
				"Client":      string(theme.Client),
				"Consultant":  string(theme.Consultant),
				"Success":     string(theme.Success),
				"Error":       string(theme.Error),
				"Text":        string(theme.Text),
				"TextDim":     string(theme.TextDim),
				"TextMute":    string(theme.TextMute),
			}

			for name, color := range colors {
				if len(color) != 7 || color[0] != '#' {
					t.Errorf("%s color %q should be #RRGGBB", name, color)
				}
			}
		})
	}
}
