package ui

import (
	"errors"
	"fmt"
	"strings"

	"housingdash/internal/dataset"
	"housingdash/internal/funding"
	"housingdash/internal/geometry"
	"housingdash/internal/logging"
	"housingdash/internal/records"
	"housingdash/internal/report"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// Page identifies a dashboard page.
type Page int

const (
	PageOverview Page = iota
	PageCityFunding
	PageProvinces
	PageCumulative
)

var pageTitles = []string{"Overview", "City Funding", "Provinces", "Cumulative"}

func (p Page) String() string {
	if int(p) < len(pageTitles) {
		return pageTitles[p]
	}
	return fmt.Sprintf("Page(%d)", int(p))
}

// Pages lists every page in sidebar order.
func Pages() []Page {
	return []Page{PageOverview, PageCityFunding, PageProvinces, PageCumulative}
}

// LoadFunc reads the dataset. It runs off the UI loop and may be called
// again on reload.
type LoadFunc func() (*dataset.Dataset, []dataset.RowParseWarning, error)

// Options configures the dashboard.
type Options struct {
	Load         LoadFunc
	Columns      funding.Columns
	Sort         funding.SortOrder
	Theme        string
	SidebarWidth int
	Logger       *zap.Logger
}

// loadedMsg carries one finished load cycle.
type loadedMsg struct {
	ds       *dataset.Dataset
	warnings []dataset.RowParseWarning
	err      error
}

// Model is the root dashboard model.
type Model struct {
	opts     Options
	logger   *zap.Logger
	styles   Styles
	layout   LayoutConfig
	page     Page
	loading  bool
	spinner  spinner.Model
	chart    viewport.Model
	overview OverviewPageModel

	err    error
	report report.Report
	labels []string
	values []int64
	xs, ys []float64
}

// New builds the dashboard model. The first load starts from Init.
func New(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Columns == (funding.Columns{}) {
		opts.Columns = funding.DefaultColumns()
	}
	styles := NewStyles(ThemeByName(opts.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	return Model{
		opts:     opts,
		logger:   logger.Named(string(logging.CategoryUI)),
		styles:   styles,
		layout:   NewLayoutConfig(80, 24, opts.SidebarWidth),
		loading:  true,
		spinner:  sp,
		chart:    viewport.New(40, 10),
		overview: NewOverviewPageModel(styles, opts.Sort),
	}
}

// Init starts the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	fn := m.opts.Load
	return func() tea.Msg {
		if fn == nil {
			return loadedMsg{err: errors.New("no data source configured")}
		}
		ds, warnings, err := fn()
		return loadedMsg{ds: ds, warnings: warnings, err: err}
	}
}

// Page returns the active page.
func (m Model) Page() Page { return m.page }

// Loading reports whether a load is in flight.
func (m Model) Loading() bool { return m.loading }

// Err returns the error of the last load, if any.
func (m Model) Err() error { return m.err }

// Report returns the aggregated data of the last load.
func (m Model) Report() report.Report { return m.report }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayoutConfig(msg.Width, msg.Height, m.opts.SidebarWidth)
		m.resize()
		return m, nil

	case loadedMsg:
		m.apply(msg)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.page == PageOverview && m.overview.Searching() {
		var cmd tea.Cmd
		m.overview, cmd = m.overview.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.setPage((m.page + 1) % Page(len(pageTitles)))
		return m, nil
	case "shift+tab":
		m.setPage((m.page + Page(len(pageTitles)) - 1) % Page(len(pageTitles)))
		return m, nil
	case "1", "2", "3", "4":
		m.setPage(Page(msg.String()[0] - '1'))
		return m, nil
	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.logger.Debug("reload requested")
		return m, tea.Batch(m.spinner.Tick, m.load())
	}

	var cmd tea.Cmd
	if m.page == PageOverview {
		m.overview, cmd = m.overview.Update(msg)
	} else {
		m.chart, cmd = m.chart.Update(msg)
	}
	return m, cmd
}

func (m *Model) setPage(p Page) {
	if p == m.page {
		return
	}
	m.page = p
	m.chart.GotoTop()
	m.refreshChart()
}

// apply replaces everything derived from the previous load.
func (m *Model) apply(msg loadedMsg) {
	m.loading = false
	m.err = msg.err
	ds := msg.ds
	if ds == nil {
		ds = dataset.Empty("", nil)
	}

	cols := m.opts.Columns
	m.report = report.New(ds, cols, len(msg.warnings))
	m.labels, m.values = funding.CityFunding(ds, cols)
	m.xs, m.ys = funding.CumulativeFunding(ds, cols)
	m.overview.SetData(m.report)
	m.refreshChart()

	if msg.err != nil {
		m.logger.Warn("dataset unavailable", zap.Error(msg.err))
		return
	}
	m.logger.Info("dataset loaded",
		zap.String("load_id", ds.LoadID.String()),
		zap.Int("rows", ds.Len()),
		zap.Int("warnings", len(msg.warnings)))
}

func (m *Model) resize() {
	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	// page title and its margin
	m.overview.SetSize(w, max(h-2, 1))
	m.chart.Width = w
	m.chart.Height = max(h-2, 1)
	m.refreshChart()
}

func (m *Model) refreshChart() {
	if m.page == PageOverview {
		return
	}
	w, h := m.chart.Width, m.chart.Height
	var (
		out string
		err error
	)
	switch m.page {
	case PageCityFunding:
		out, err = BarView(m.labels, m.values, w, h, m.styles)
	case PageProvinces:
		out, err = PieView(m.report.Provinces, w, h, m.styles)
	case PageCumulative:
		out, err = LineView(m.xs, m.ys, w, h, m.styles)
	}
	if err != nil {
		out = m.chartError(err)
	}
	m.chart.SetContent(out)
}

func (m *Model) chartError(err error) string {
	var ise *geometry.InvalidSeriesError
	switch {
	case errors.As(err, &ise) && ise.Chart == "pie":
		return m.styles.Muted.Render("No provincial funding to chart.")
	case errors.Is(err, geometry.ErrAreaTooSmall):
		return m.styles.Muted.Render("Window too small for this chart.")
	}
	m.logger.Warn("chart unavailable", zap.Stringer("page", m.page), zap.Error(err))
	return m.styles.Error.Render("Chart unavailable: " + err.Error())
}

// View renders the dashboard.
func (m Model) View() string {
	if m.layout.TooSmall() {
		return m.styles.Warning.Render(fmt.Sprintf(
			"Terminal too small (%dx%d). Need at least %dx%d.",
			m.layout.TerminalWidth, m.layout.TerminalHeight,
			MinimumTerminalWidth, MinimumTerminalHeight))
	}

	header := m.styles.Header.Width(m.layout.TerminalWidth).Render(m.headerText())
	footer := m.styles.Footer.Width(m.layout.TerminalWidth).Render(m.footerText())

	contentH := m.layout.TerminalHeight - HeaderHeight - FooterHeight
	content := m.styles.Content.
		Width(m.layout.ContentWidth() + 2*ContentPadH).
		Height(contentH).
		Render(m.contentView())

	body := content
	if m.layout.SidebarWidth > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebarView(contentH), content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) headerText() string {
	title := "Housing Funding Dashboard"
	if m.layout.IsCompact {
		title += " · " + m.page.String()
	}
	if m.report.Source != "" {
		title += " · " + m.report.Source
	}
	return title
}

func (m Model) footerText() string {
	keys := "tab/1-4 pages · r reload · q quit"
	if m.page == PageOverview {
		keys = "/ search · s sort · " + keys
	}
	if m.report.Warnings > 0 {
		keys += fmt.Sprintf(" · %d row warnings", m.report.Warnings)
	}
	return keys
}

func (m Model) sidebarView(h int) string {
	var sb strings.Builder
	for i, p := range Pages() {
		label := fmt.Sprintf("%d %s", i+1, p)
		style := m.styles.NavItem
		if p == m.page {
			style = m.styles.NavActive
		}
		sb.WriteString(style.Width(m.layout.SidebarWidth - 2).Render(label))
		sb.WriteString("\n")
	}
	// sidebar padding is one row at each end
	return m.styles.Sidebar.Height(max(h-2, 1)).Render(sb.String())
}

func (m Model) contentView() string {
	if m.loading && m.report.Source == "" {
		return m.spinner.View() + " Loading funding data..."
	}
	if m.err != nil {
		return m.placeholder()
	}

	title := m.styles.Title.Render(m.page.String())
	if m.loading {
		title += " " + m.spinner.View()
	}
	if m.page == PageOverview {
		return title + "\n" + m.overview.View()
	}
	return title + "\n" + m.chart.View()
}

// placeholder replaces every page when the source could not be read.
func (m Model) placeholder() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("No data"))
	sb.WriteString("\n")
	if records.IsReadError(m.err) {
		sb.WriteString(m.styles.Error.Render(m.err.Error()))
	} else {
		sb.WriteString(m.styles.Error.Render("Load failed: " + m.err.Error()))
	}
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Muted.Render("Fix the input file and press r to reload."))
	return sb.String()
}

// Run starts the dashboard in the alternate screen and blocks until quit.
func Run(opts Options) error {
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
