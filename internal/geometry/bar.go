package geometry

import (
	"math"
	"strconv"
)

// valueLabelOffset lifts a bar's value label above its top edge.
const valueLabelOffset = 8

// BarRect is one bar with its labels.
type BarRect struct {
	Label     string
	Value     int64
	Rect      Rect
	Fill      Gradient
	LabelText Text
	ValueText Text
}

// BarChart is the geometry of a bar graph.
type BarChart struct {
	Plot  Rect
	Max   int64
	Scale float64
	Bars  []BarRect
	Grid  []GridLine
	XAxis Segment
	YAxis Segment
}

// NewBarChart lays bars out left to right in input order. Each bar takes an
// equal share of the plot width minus BarGap; heights scale linearly so the
// largest value fills the plot height. When the maximum is not positive the
// scale is 0 and every bar is flat. Negative values draw as flat bars.
func NewBarChart(labels []string, values []int64, opts Options) (BarChart, error) {
	if len(labels) != len(values) {
		return BarChart{}, mismatch("bar", len(labels), len(values), "labels", "values")
	}
	plot, err := opts.Plot()
	if err != nil {
		return BarChart{}, err
	}

	base := plot.Y + plot.H
	chart := BarChart{
		Plot:  plot,
		XAxis: Segment{From: Point{float64(plot.X), float64(base)}, To: Point{float64(plot.X + plot.W), float64(base)}},
		YAxis: Segment{From: Point{float64(plot.X), float64(base)}, To: Point{float64(plot.X), float64(plot.Y)}},
	}

	for _, v := range values {
		if v > chart.Max {
			chart.Max = v
		}
	}
	if chart.Max > 0 {
		chart.Scale = float64(plot.H) / float64(chart.Max)
	}

	chart.Grid = barGrid(plot, chart.Max, opts)

	if len(values) == 0 {
		chart.Bars = []BarRect{}
		return chart, nil
	}

	slot := plot.W / len(values)
	width := slot - opts.BarGap
	if width < 1 {
		width = slot
	}

	chart.Bars = make([]BarRect, len(values))
	for i, v := range values {
		h := barHeight(v, chart.Max, plot.H)
		x := plot.X + i*slot
		center := float64(x) + float64(slot)/2
		top := base - h

		chart.Bars[i] = BarRect{
			Label: labels[i],
			Value: v,
			Rect:  Rect{X: x + (slot-width)/2, Y: top, W: width, H: h},
			Fill:  GradientAt(i),
			LabelText: Text{
				At:    Point{X: center, Y: float64(base + opts.LabelPadding/2)},
				Value: labels[i],
				Align: AlignCenter,
			},
			ValueText: Text{
				At:    Point{X: center, Y: float64(top - valueLabelOffset)},
				Value: strconv.FormatInt(v, 10),
				Align: AlignCenter,
			},
		}
	}
	return chart, nil
}

// barHeight scales v against peak over span pixels, rounding to the nearest
// pixel. It is computed as v*span/peak so the largest value maps to span
// exactly.
func barHeight(v, peak int64, span int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	return int(math.Round(float64(v) * float64(span) / float64(peak)))
}

func barGrid(plot Rect, peak int64, opts Options) []GridLine {
	n := opts.gridLines()
	base := plot.Y + plot.H
	grid := make([]GridLine, 0, n+1)
	for i := 0; i <= n; i++ {
		y := float64(base - i*plot.H/n)
		value := math.Round(float64(peak) * float64(i) / float64(n))
		grid = append(grid, GridLine{
			Segment: Segment{From: Point{float64(plot.X), y}, To: Point{float64(plot.X + plot.W), y}},
			Value:   value,
			Label: Text{
				At:    Point{X: float64(plot.X - opts.LabelPadding), Y: y + 5},
				Value: strconv.FormatFloat(value, 'f', 0, 64),
				Align: AlignRight,
			},
		})
	}
	return grid
}
