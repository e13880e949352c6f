package ui

import (
	"fmt"
	"strconv"
	"strings"

	"housingdash/internal/funding"
	"housingdash/internal/money"
	"housingdash/internal/report"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// OverviewPageModel shows the headline cards and a searchable city list.
type OverviewPageModel struct {
	table   table.Model
	search  textinput.Model
	styles  Styles
	summary funding.Summary
	cities  []funding.City
	shown   []funding.City
	order   funding.SortOrder
	width   int
	height  int
}

// NewOverviewPageModel creates the overview page.
func NewOverviewPageModel(styles Styles, order funding.SortOrder) OverviewPageModel {
	ti := textinput.New()
	ti.Placeholder = "search cities"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	t := table.New(
		table.WithColumns(cityColumns(60)),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(styles.Theme.Foreground).
		Background(styles.Theme.Accent).
		Bold(false)
	t.SetStyles(ts)

	return OverviewPageModel{
		table:  t,
		search: ti,
		styles: styles,
		order:  order,
	}
}

func cityColumns(width int) []table.Column {
	rest := max(width-6-16-10-8, 12)
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "City", Width: rest},
		{Title: "Province", Width: 8},
		{Title: "Funding", Width: 16},
		{Title: "Homes", Width: 10},
	}
}

// SetData replaces the page contents with a freshly loaded report.
func (m *OverviewPageModel) SetData(r report.Report) {
	m.summary = r.Summary
	m.cities = r.Cities
	m.refresh()
}

// SetSize updates the table and search widths.
func (m *OverviewPageModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.Width = max(w-4, 10)
	m.table.SetColumns(cityColumns(w))
	m.table.SetWidth(w)
	// cards, search line and table header
	m.table.SetHeight(max(h-CardHeight-4, 3))
}

// Searching reports whether the search box has focus.
func (m OverviewPageModel) Searching() bool {
	return m.search.Focused()
}

// Order returns the current sort order.
func (m OverviewPageModel) Order() funding.SortOrder {
	return m.order
}

// Shown returns the cities currently listed, after search and sort.
func (m OverviewPageModel) Shown() []funding.City {
	return m.shown
}

func (m *OverviewPageModel) refresh() {
	m.shown = funding.SortCities(funding.Search(m.cities, m.search.Value()), m.order)
	rows := make([]table.Row, len(m.shown))
	for i, c := range m.shown {
		rows[i] = table.Row{
			strconv.Itoa(c.Index + 1),
			c.Name,
			c.Province,
			money.Format(c.Funding),
			strconv.FormatInt(c.Homes, 10),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// Update handles messages.
func (m OverviewPageModel) Update(msg tea.Msg) (OverviewPageModel, tea.Cmd) {
	var cmd tea.Cmd
	if km, ok := msg.(tea.KeyMsg); ok {
		if m.search.Focused() {
			switch km.String() {
			case "esc":
				m.search.Blur()
				m.search.SetValue("")
				m.refresh()
				return m, nil
			case "enter":
				m.search.Blur()
				return m, nil
			}
			m.search, cmd = m.search.Update(msg)
			m.refresh()
			return m, cmd
		}

		switch km.String() {
		case "/":
			return m, m.search.Focus()
		case "s":
			m.order = m.order.Next()
			m.refresh()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the page.
func (m OverviewPageModel) View() string {
	var sb strings.Builder

	largest := "n/a"
	if m.summary.Cities > 0 {
		largest = m.summary.Largest.Name
	}
	cards := []string{
		m.card("Total Funding", money.Humanize(m.summary.TotalFunding)),
		m.card("Homes", humanize.Comma(m.summary.TotalHomes)),
		m.card("Cities", strconv.Itoa(m.summary.Cities)),
		m.card("Largest", largest),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n")

	status := m.styles.Muted.Render(fmt.Sprintf("sort: %s · %d of %d", m.order, len(m.shown), len(m.cities)))
	if m.search.Focused() || m.search.Value() != "" {
		sb.WriteString(m.search.View() + "  " + status)
	} else {
		sb.WriteString(m.styles.Muted.Render("/ search · s sort  ") + status)
	}
	sb.WriteString("\n")

	if len(m.shown) == 0 {
		sb.WriteString(m.styles.Muted.Render("No matching cities."))
		return sb.String()
	}
	sb.WriteString(m.table.View())
	return sb.String()
}

func (m OverviewPageModel) card(label, value string) string {
	body := m.styles.CardLabel.Render(label) + "\n" + m.styles.CardValue.Render(value)
	return m.styles.Card.Render(body)
}
