package ui

import (
	"fmt"
	"math"
	"strconv"

	"housingdash/internal/funding"
	"housingdash/internal/geometry"
	"housingdash/internal/money"
	"housingdash/internal/report"

	"github.com/charmbracelet/lipgloss"
)

// cellOptions sizes chart geometry in terminal cells.
func cellOptions(w, h int) geometry.Options {
	return geometry.Options{
		Width:        w,
		Height:       h,
		Padding:      ChartMargin,
		LabelPadding: ChartLabelBand,
		BarGap:       ChartBarGap,
		GridLines:    ChartGridLines,
	}
}

// beside joins legend to the right of chart.
func beside(chart, legend string) string {
	if legend == "" {
		return chart
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chart, "  ", legend)
}

// legendWidth reserves room for a legend right of the chart, or 0 when the
// chart would get too narrow.
func legendWidth(legend string, w int) int {
	lw := lipgloss.Width(legend) + 2
	if w-lw < 24 {
		return 0
	}
	return lw
}

// BarView draws the per-city funding bar chart with a numbered legend.
func BarView(labels []string, values []int64, w, h int, s Styles) (string, error) {
	if len(labels) != len(values) {
		return "", &geometry.InvalidSeriesError{
			Chart:  "bar",
			Reason: fmt.Sprintf("%d labels for %d values", len(labels), len(values)),
		}
	}

	legend := NewSimpleTable("", []string{"#", "City", "Funding"})
	legend.RightAlign[0] = true
	legend.RightAlign[2] = true
	swatches := make([]lipgloss.Color, len(labels))
	for i, l := range labels {
		legend.AddRow(strconv.Itoa(i+1), l, money.Humanize(values[i]))
		swatches[i] = hexColor(geometry.ColorAt(i))
	}
	legend.Swatches = swatches
	legendView := legend.View(s)

	lw := legendWidth(legendView, w)
	chartW, chartH := w-lw, h
	if lw == 0 {
		chartH = max(h-lipgloss.Height(legendView)-1, 6)
	}

	chart, err := geometry.NewBarChart(labels, values, cellOptions(chartW, chartH))
	if err != nil {
		return "", err
	}

	c := newCellCanvas(chartW, chartH, 1)
	for _, g := range chart.Grid {
		c.line(g.Segment, '·', s.Theme.Border)
	}
	c.line(chart.YAxis, '│', s.Theme.Muted)
	c.line(chart.XAxis, '─', s.Theme.Muted)
	for i, b := range chart.Bars {
		c.fillRect(b.Rect, '█', hexColor(b.Fill.From))
		num := geometry.Text{At: b.LabelText.At, Value: strconv.Itoa(i + 1), Align: geometry.AlignCenter}
		num.At.Y = float64(chart.Plot.Y + chart.Plot.H)
		c.text(num, s.Theme.Foreground)
	}
	c.text(geometry.Text{
		At:    geometry.Point{X: float64(chart.Plot.X), Y: 0},
		Value: "max " + money.Humanize(chart.Max),
	}, s.Theme.Muted)

	if lw == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, c.String(), "", legendView), nil
	}
	return beside(c.String(), legendView), nil
}

// pieMinLabelSweep is the smallest slice, in degrees, that gets its
// percentage drawn inside the pie.
const pieMinLabelSweep = 24

// PieView draws the provincial funding pie with a share legend.
func PieView(totals funding.ProvinceTotals, w, h int, s Styles) (string, error) {
	legend := NewSimpleTable("", []string{"Province", "Funding", "Share"})
	legend.RightAlign[1] = true
	legend.RightAlign[2] = true
	var swatches []lipgloss.Color
	total := totals.Total()
	for i, p := range totals.Entries() {
		share := 0.0
		if total > 0 {
			share = 100 * float64(p.Total) / float64(total)
		}
		legend.AddRow(report.ProvinceName(p.Code), money.Humanize(p.Total), fmt.Sprintf("%.1f%%", share))
		swatches = append(swatches, hexColor(geometry.ColorAt(i)))
	}
	legend.Swatches = swatches
	legendView := legend.View(s)

	// Rows are two geometry units tall, so a square of side d fits in d/2
	// rows.
	lw := legendWidth(legendView, w)
	d := min(w-lw, 2*h)
	chart, err := geometry.NewPieChart(totals.Weights(), totals.Codes(), geometry.Options{Width: d, Height: d, Padding: ChartMargin})
	if err != nil {
		return "", err
	}

	c := newCellCanvas(d, d/2, 2)
	r2 := chart.Radius * chart.Radius
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			dx := float64(x) + 0.5 - chart.Center.X
			dy := chart.Center.Y - (float64(y)+0.5)*c.yScale
			if dx*dx+dy*dy > r2 {
				continue
			}
			if i := sliceAt(chart.Slices, math.Atan2(dy, dx)*180/math.Pi); i >= 0 {
				c.set(x, y, '█', hexColor(chart.Slices[i].Color))
			}
		}
	}
	for _, sl := range chart.Slices {
		if sl.Sweep >= pieMinLabelSweep {
			c.text(sl.PercentText, s.Theme.Foreground)
		}
	}
	if lw == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, c.String(), "", legendView), nil
	}
	return beside(c.String(), legendView), nil
}

// sliceAt returns the index of the slice containing angle deg, or -1.
func sliceAt(slices []geometry.Slice, deg float64) int {
	if deg < 0 {
		deg += 360
	}
	for i, sl := range slices {
		if sl.Sweep > 0 && deg >= sl.Start && deg < sl.Start+sl.Sweep {
			return i
		}
	}
	// Rounding can leave the last sliver just short of 360.
	for i := len(slices) - 1; i >= 0; i-- {
		if slices[i].Sweep > 0 {
			return i
		}
	}
	return -1
}

// LineView draws cumulative funding against row position.
func LineView(xs, ys []float64, w, h int, s Styles) (string, error) {
	chart, err := geometry.NewLineChart(xs, ys, cellOptions(w, h))
	if err != nil {
		return "", err
	}

	c := newCellCanvas(w, h, 1)
	for _, g := range chart.HGrid {
		c.line(g.Segment, '·', s.Theme.Border)
	}
	for _, g := range chart.VGrid {
		c.line(g.Segment, '·', s.Theme.Border)
	}
	c.line(chart.YAxis, '│', s.Theme.Muted)
	c.line(chart.XAxis, '─', s.Theme.Muted)
	for _, seg := range chart.Segments {
		c.line(seg, '•', s.Theme.Primary)
	}
	for _, p := range chart.Points {
		c.set(int(math.Round(p.X)), int(math.Round(p.Y)), '●', s.Theme.Accent)
	}
	c.text(geometry.Text{
		At:    geometry.Point{X: float64(chart.Plot.X), Y: 0},
		Value: "total " + money.Humanize(int64(chart.MaxY)),
	}, s.Theme.Muted)
	c.text(geometry.Text{
		At:    geometry.Point{X: float64(chart.Plot.X + chart.Plot.W), Y: 0},
		Value: fmt.Sprintf("%d cities", len(xs)),
		Align: geometry.AlignRight,
	}, s.Theme.Muted)
	return c.String(), nil
}
