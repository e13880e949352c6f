// Package ui layout constants for consistent spacing and dimensions
package ui

// Layout constants for panel sizing
const (
	// Chrome around the page content
	HeaderHeight = 1
	FooterHeight = 1
	ContentPadH  = 2
	ContentPadV  = 1

	// Sidebar
	DefaultSidebarWidth = 22
	SidebarBorderWidth  = 1

	// Stat cards
	CardHeight = 4

	// Charts drawn into terminal cells
	ChartMargin     = 1
	ChartLabelBand  = 1
	ChartBarGap     = 1
	ChartGridLines  = 4
	LegendMinHeight = 3

	// Responsive breakpoints
	MinimumTerminalWidth  = 60
	MinimumTerminalHeight = 16
	CompactModeWidth      = 100
)

// LayoutConfig provides computed layout dimensions based on terminal size
type LayoutConfig struct {
	TerminalWidth  int
	TerminalHeight int
	SidebarWidth   int
	IsCompact      bool
}

// NewLayoutConfig creates a layout configuration for the given terminal size.
// Compact terminals hide the sidebar.
func NewLayoutConfig(width, height, sidebar int) LayoutConfig {
	if sidebar <= 0 {
		sidebar = DefaultSidebarWidth
	}
	l := LayoutConfig{
		TerminalWidth:  width,
		TerminalHeight: height,
		SidebarWidth:   sidebar,
		IsCompact:      width < CompactModeWidth,
	}
	if l.IsCompact {
		l.SidebarWidth = 0
	}
	return l
}

// TooSmall reports whether the terminal is below the minimum usable size.
func (l LayoutConfig) TooSmall() bool {
	return l.TerminalWidth < MinimumTerminalWidth || l.TerminalHeight < MinimumTerminalHeight
}

// ContentWidth returns the usable width right of the sidebar
func (l LayoutConfig) ContentWidth() int {
	w := l.TerminalWidth - l.SidebarWidth - 2*ContentPadH
	if l.SidebarWidth > 0 {
		w -= SidebarBorderWidth
	}
	return max(w, 1)
}

// ContentHeight returns the usable height between header and footer
func (l LayoutConfig) ContentHeight() int {
	return max(l.TerminalHeight-HeaderHeight-FooterHeight-2*ContentPadV, 1)
}
