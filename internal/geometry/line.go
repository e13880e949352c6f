package geometry

import "strconv"

// LineChart is the geometry of a line graph.
type LineChart struct {
	Plot     Rect
	MaxX     float64
	MaxY     float64
	ScaleX   float64
	ScaleY   float64
	Points   []Point
	Segments []Segment
	// HGrid holds horizontal lines at equal steps of y, VGrid vertical
	// lines at equal steps of x.
	HGrid []GridLine
	VGrid []GridLine
	XAxis Segment
	YAxis Segment
}

// NewLineChart scales each axis independently from its own series maximum
// and connects the points in input order. No sorting, interpolation or
// smoothing is applied. A non-positive maximum gives that axis scale 0.
func NewLineChart(xs, ys []float64, opts Options) (LineChart, error) {
	if len(xs) != len(ys) {
		return LineChart{}, mismatch("line", len(xs), len(ys), "x values", "y values")
	}
	plot, err := opts.Plot()
	if err != nil {
		return LineChart{}, err
	}

	left := float64(plot.X)
	base := float64(plot.Y + plot.H)
	chart := LineChart{
		Plot:  plot,
		MaxX:  seriesMax(xs),
		MaxY:  seriesMax(ys),
		XAxis: Segment{From: Point{left, base}, To: Point{left + float64(plot.W), base}},
		YAxis: Segment{From: Point{left, base}, To: Point{left, float64(plot.Y)}},
	}
	if chart.MaxX > 0 {
		chart.ScaleX = float64(plot.W) / chart.MaxX
	}
	if chart.MaxY > 0 {
		chart.ScaleY = float64(plot.H) / chart.MaxY
	}

	chart.Points = make([]Point, len(xs))
	for i := range xs {
		chart.Points[i] = Point{
			X: left + xs[i]*chart.ScaleX,
			Y: base - ys[i]*chart.ScaleY,
		}
	}

	chart.Segments = make([]Segment, 0, max(len(xs)-1, 0))
	for i := 1; i < len(chart.Points); i++ {
		chart.Segments = append(chart.Segments, Segment{From: chart.Points[i-1], To: chart.Points[i]})
	}

	n := opts.gridLines()
	for i := 0; i <= n; i++ {
		frac := float64(i) / float64(n)

		y := base - frac*float64(plot.H)
		yv := chart.MaxY * frac
		chart.HGrid = append(chart.HGrid, GridLine{
			Segment: Segment{From: Point{left, y}, To: Point{left + float64(plot.W), y}},
			Value:   yv,
			Label:   Text{At: Point{X: left - float64(opts.LabelPadding), Y: y + 5}, Value: formatTick(yv), Align: AlignRight},
		})

		x := left + frac*float64(plot.W)
		xv := chart.MaxX * frac
		chart.VGrid = append(chart.VGrid, GridLine{
			Segment: Segment{From: Point{x, base}, To: Point{x, float64(plot.Y)}},
			Value:   xv,
			Label:   Text{At: Point{X: x, Y: base + float64(opts.LabelPadding)/2}, Value: formatTick(xv), Align: AlignCenter},
		})
	}
	return chart, nil
}

func seriesMax(vs []float64) float64 {
	var m float64
	for _, v := range vs {
		if v > m {
			m = v
		}
	}
	return m
}

// formatTick prints whole numbers without decimals and everything else with
// one decimal place.
func formatTick(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}
