package geometry

import (
	"fmt"
	"image/color"
	"math"
)

// Label radii as fractions of the pie radius.
const (
	percentRadius  = 0.65
	categoryRadius = 1.15
)

// Slice is one pie wedge. Angles are in degrees, counter-clockwise from the
// positive x axis (3 o'clock).
type Slice struct {
	Label       string
	Weight      float64
	Percent     float64
	Start       float64
	Sweep       float64
	Color       color.NRGBA
	PercentText Text
	LabelText   Text
}

// Mid returns the angle halfway through the slice.
func (s Slice) Mid() float64 { return s.Start + s.Sweep/2 }

// PieChart is the geometry of a pie chart.
type PieChart struct {
	Center Point
	Radius float64
	Total  float64
	Slices []Slice
}

// NewPieChart lays slices out in input order starting at 0 degrees, each
// sweeping 360*weight/total. Weights must be non-negative and sum to more
// than zero.
func NewPieChart(weights []float64, labels []string, opts Options) (PieChart, error) {
	if len(weights) != len(labels) {
		return PieChart{}, mismatch("pie", len(weights), len(labels), "weights", "labels")
	}

	var total float64
	for i, w := range weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return PieChart{}, &InvalidSeriesError{
				Chart:  "pie",
				Reason: fmt.Sprintf("weight %d (%q) is %v", i, labels[i], w),
			}
		}
		total += w
	}
	if total == 0 {
		return PieChart{}, &InvalidSeriesError{Chart: "pie", Reason: "weights sum to zero"}
	}

	radius := float64(min(opts.Width, opts.Height))/2 - float64(opts.Padding)
	if radius <= 0 {
		return PieChart{}, fmt.Errorf("%w: radius %.1f", ErrAreaTooSmall, radius)
	}

	chart := PieChart{
		Center: Point{X: float64(opts.Width) / 2, Y: float64(opts.Height) / 2},
		Radius: radius,
		Total:  total,
		Slices: make([]Slice, len(weights)),
	}

	start := 0.0
	for i, w := range weights {
		s := Slice{
			Label:   labels[i],
			Weight:  w,
			Percent: 100 * w / total,
			Start:   start,
			Sweep:   360 * w / total,
			Color:   ColorAt(i),
		}
		s.PercentText = Text{
			At:    polar(chart.Center, radius*percentRadius, s.Mid()),
			Value: fmt.Sprintf("%.1f%%", s.Percent),
			Align: AlignCenter,
		}
		s.LabelText = Text{
			At:    polar(chart.Center, radius*categoryRadius, s.Mid()),
			Value: labels[i],
			Align: AlignCenter,
		}
		chart.Slices[i] = s
		start += s.Sweep
	}
	return chart, nil
}

// polar returns the point at distance r from c in direction deg, with y
// flipped for screen coordinates.
func polar(c Point, r, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: c.X + r*math.Cos(rad),
		Y: c.Y - r*math.Sin(rad),
	}
}
