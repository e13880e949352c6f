package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static rows with aligned columns. Columns listed in
// RightAlign are right-justified (amounts).
type SimpleTable struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool
	// Swatches, when set, prefixes row i with a colored block.
	Swatches []lipgloss.Color
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:      title,
		Headers:    headers,
		Rows:       make([][]string, 0),
		RightAlign: map[int]bool{},
	}
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	colWidths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		colWidths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(colWidths) {
				colWidths[i] = max(colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	// lipgloss Width includes padding
	for i := range colWidths {
		colWidths[i] += 2
	}

	headerStyle := styles.Bold.Padding(0, 1)
	rowStyle := styles.Body.Padding(0, 1)
	sepStyle := styles.Muted
	swatch := len(t.Swatches) > 0
	lead := ""
	if swatch {
		lead = "  "
	}

	sb.WriteString(lead)
	for i, h := range t.Headers {
		sb.WriteString(t.align(headerStyle, i).Width(colWidths[i]).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(sepStyle.Render("│"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1
	for _, w := range colWidths {
		totalWidth += w
	}
	sb.WriteString(lead + sepStyle.Render(strings.Repeat("─", totalWidth)) + "\n")

	for r, row := range t.Rows {
		if swatch {
			c := t.Swatches[r%len(t.Swatches)]
			sb.WriteString(lipgloss.NewStyle().Foreground(c).Render("■") + " ")
		}
		for i, cell := range row {
			if i >= len(colWidths) {
				break
			}
			sb.WriteString(t.align(rowStyle, i).Width(colWidths[i]).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(sepStyle.Render("│"))
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (t *SimpleTable) align(s lipgloss.Style, col int) lipgloss.Style {
	if t.RightAlign[col] {
		return s.Align(lipgloss.Right)
	}
	return s
}
