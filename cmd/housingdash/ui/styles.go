// Package ui is the housingdash terminal dashboard: a sidebar of pages over
// the aggregated funding data, with charts drawn from chart geometry into
// terminal cells.
package ui

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared with the chart palette (turquoise and soft blue).
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#f8f9fa")
	LightForeground = lipgloss.Color("#1d3557")
	LightPrimary    = lipgloss.Color("#457b9d") // Soft blue
	LightAccent     = lipgloss.Color("#a8dadc") // Turquoise
	LightMuted      = lipgloss.Color("#8d99ae")
	LightBorder     = lipgloss.Color("#d6dae0")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#141d2b")
	DarkForeground = lipgloss.Color("#f1faee")
	DarkPrimary    = lipgloss.Color("#a8dadc") // Turquoise (flipped)
	DarkAccent     = lipgloss.Color("#457b9d") // Soft blue (flipped)
	DarkMuted      = lipgloss.Color("#5c6b80")
	DarkBorder     = lipgloss.Color("#2a3850")
	DarkCard       = lipgloss.Color("#1a2536")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#e63946")
	Success     = lipgloss.Color("#93c572")
	Warning     = lipgloss.Color("#e6be8a")
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// ThemeByName resolves a config theme name; "auto" and unknown names detect.
func ThemeByName(name string) Theme {
	switch strings.ToLower(name) {
	case "dark":
		return DarkTheme()
	case "light":
		return LightTheme()
	default:
		return DetectTheme()
	}
}

// DetectTheme guesses the terminal background from COLORFGBG, falling back
// to light mode.
func DetectTheme() Theme {
	// Format is usually "foreground;background"; indexes 0-6 and 8 are dark.
	if parts := strings.Split(os.Getenv("COLORFGBG"), ";"); len(parts) == 2 {
		if bg, err := strconv.Atoi(parts[1]); err == nil {
			if (bg >= 0 && bg <= 6) || bg == 8 {
				return DarkTheme()
			}
		}
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style
	Sidebar lipgloss.Style

	// Sidebar entries
	NavItem   lipgloss.Style
	NavActive lipgloss.Style

	// Text
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style

	// Status
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Stat cards
	Card      lipgloss.Style
	CardLabel lipgloss.Style
	CardValue lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Divider lipgloss.Style
	Badge   lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Sidebar: lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(1, 1),

		NavItem: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		NavActive: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(theme.Foreground).
			Padding(0, 1).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Card: lipgloss.NewStyle().
			Background(theme.Card).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 2).
			MarginRight(1),

		CardLabel: lipgloss.NewStyle().
			Foreground(theme.Muted),

		CardValue: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Primary),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),

		Badge: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),
	}
}

// DefaultStyles returns styles for the detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 0)))
}

// hexColor converts a chart palette color for lipgloss.
func hexColor(c color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
