package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"housingdash/internal/geometry"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
)

const (
	labelSize = vg.Length(10)
	tickSize  = vg.Length(9)
	pointSize = 3.0
)

// Bar paints a bar chart and writes it to w.
func (r *Renderer) Bar(w io.Writer, chart geometry.BarChart, title string) error {
	c := r.newCanvas()
	c.title(title, r.opts.Width, r.opts.Padding/2)

	for _, g := range chart.Grid {
		c.line(g.Segment, gridInk, 1)
		c.text(g.Label, tickSize)
	}
	c.line(chart.XAxis, ink, 1)
	c.line(chart.YAxis, ink, 1)

	for _, b := range chart.Bars {
		c.fillGradient(b.Rect, b.Fill)
		c.text(b.ValueText, labelSize)
		c.text(b.LabelText, labelSize)
	}
	return r.finish(c, w, "bar", len(chart.Bars))
}

// Pie paints a pie chart and writes it to w.
func (r *Renderer) Pie(w io.Writer, chart geometry.PieChart, title string) error {
	c := r.newCanvas()
	c.title(title, r.opts.Width, r.opts.Padding/2)

	center := c.pt(chart.Center)
	radius := vg.Length(chart.Radius)
	for _, s := range chart.Slices {
		if s.Sweep == 0 {
			continue
		}
		var p vg.Path
		p.Move(center)
		p.Arc(center, radius, radians(s.Start), radians(s.Sweep))
		p.Close()

		c.SetColor(s.Color)
		c.Fill(p)
		c.SetColor(background)
		c.SetLineWidth(1)
		c.Stroke(p)
	}
	for _, s := range chart.Slices {
		if s.Sweep == 0 {
			continue
		}
		c.text(s.PercentText, labelSize)
		c.text(s.LabelText, labelSize)
	}
	return r.finish(c, w, "pie", len(chart.Slices))
}

// Line paints a line graph and writes it to w.
func (r *Renderer) Line(w io.Writer, chart geometry.LineChart, title string) error {
	c := r.newCanvas()
	c.title(title, r.opts.Width, r.opts.Padding/2)

	for _, g := range chart.HGrid {
		c.line(g.Segment, gridInk, 1)
		c.text(g.Label, tickSize)
	}
	for _, g := range chart.VGrid {
		c.line(g.Segment, gridInk, 1)
		c.text(g.Label, tickSize)
	}
	c.line(chart.XAxis, ink, 1)
	c.line(chart.YAxis, ink, 1)

	for _, s := range chart.Segments {
		c.line(s, lineInk, 2)
	}
	for _, p := range chart.Points {
		c.dot(p, lineInk)
	}
	return r.finish(c, w, "line", len(chart.Points))
}

func (c *canvas) dot(p geometry.Point, clr color.Color) {
	var path vg.Path
	at := c.pt(p)
	path.Move(vg.Point{X: at.X + pointSize, Y: at.Y})
	path.Arc(at, pointSize, 0, 2*math.Pi)
	path.Close()
	c.SetColor(clr)
	c.Fill(path)
}

func (r *Renderer) finish(c *canvas, w io.Writer, chart string, n int) error {
	if err := c.encode(w); err != nil {
		return fmt.Errorf("encode %s chart as %s: %w", chart, r.format, err)
	}
	r.logger.Debug("chart rendered",
		zap.String("chart", chart),
		zap.String("format", r.format.String()),
		zap.Int("elements", n))
	return nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
