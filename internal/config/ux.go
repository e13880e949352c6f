package config

import "fmt"

// UIConfig holds terminal dashboard configuration.
type UIConfig struct {
	// Theme is "auto", "dark" or "light". Auto follows the terminal background.
	Theme string `yaml:"theme"`

	// SidebarWidth is the width of the page list in cells.
	SidebarWidth int `yaml:"sidebar_width"`

	// Sort is the initial city list order: default, name or funding.
	Sort string `yaml:"sort"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:        "auto",
		SidebarWidth: 22,
		Sort:         "default",
	}
}

// ValidThemes lists the accepted theme names.
var ValidThemes = []string{"auto", "dark", "light"}

// Validate checks the theme name and sidebar width.
func (c *UIConfig) Validate() error {
	valid := false
	for _, t := range ValidThemes {
		if c.Theme == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.Theme, ValidThemes)
	}
	if c.SidebarWidth < 0 {
		return fmt.Errorf("ui.sidebar_width must be >= 0")
	}
	return nil
}
