// Package geometry turns numeric series into drawable chart geometry: bar
// rectangles with gradient fills, pie slices with label anchors, and line
// polylines with grid overlays.
//
// Builders are pure: they perform no I/O, keep no state between calls and
// return identical output for identical input. Screen coordinates are used
// throughout, with the origin at the top-left and y growing downward.
package geometry

import (
	"errors"
	"fmt"
	"image/color"
)

// Point is a position in drawing coordinates.
type Point struct {
	X, Y float64
}

// Rect is an integer pixel rectangle; (X, Y) is its top-left corner.
type Rect struct {
	X, Y, W, H int
}

// Min returns the top-left corner.
func (r Rect) Min() Point { return Point{X: float64(r.X), Y: float64(r.Y)} }

// Max returns the bottom-right corner.
func (r Rect) Max() Point { return Point{X: float64(r.X + r.W), Y: float64(r.Y + r.H)} }

// Segment is a straight line between two points.
type Segment struct {
	From, To Point
}

// Align says which part of a label sits on its anchor: the left edge, the
// center or the right edge.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Text is a label placed at an anchor point (baseline).
type Text struct {
	At    Point
	Value string
	Align Align
}

// Gradient is a vertical fill from the top color to the bottom color.
type Gradient struct {
	From, To color.NRGBA
}

// GridLine is a reference line with its axis label.
type GridLine struct {
	Segment
	Value float64
	Label Text
}

// Palette is the pastel series palette; series element i uses
// Palette[i%len(Palette)].
var Palette = []color.NRGBA{
	{R: 168, G: 218, B: 220, A: 255}, // turquoise
	{R: 69, G: 123, B: 157, A: 255},  // soft blue
	{R: 241, G: 180, B: 187, A: 255}, // soft pink
	{R: 171, G: 219, B: 227, A: 255}, // light blue
	{R: 147, G: 197, B: 114, A: 255}, // sage
	{R: 230, G: 190, B: 138, A: 255}, // soft orange
	{R: 177, G: 156, B: 217, A: 255}, // lavender
	{R: 255, G: 179, B: 186, A: 255}, // peach
	{R: 152, G: 206, B: 180, A: 255}, // mint
	{R: 215, G: 189, B: 226, A: 255}, // light purple
	{R: 255, G: 214, B: 165, A: 255}, // light orange
	{R: 176, G: 191, B: 226, A: 255}, // powder blue
}

// gradientAlpha is the alpha at the bottom of a bar's gradient.
const gradientAlpha = 245

// ColorAt returns the palette color for series index i.
func ColorAt(i int) color.NRGBA {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// GradientAt returns the bar fill for series index i.
func GradientAt(i int) Gradient {
	base := ColorAt(i)
	bottom := base
	bottom.A = gradientAlpha
	return Gradient{From: base, To: bottom}
}

// Options describe the target drawing area. Margins are fixed per call.
type Options struct {
	Width  int
	Height int
	// Padding surrounds the plot area on every side.
	Padding int
	// LabelPadding is reserved between the plot top and the padding for
	// value labels, and is the offset of category labels below the axis.
	LabelPadding int
	// BarGap is the horizontal space between adjacent bars.
	BarGap int
	// GridLines is the number of equal intervals between 0 and the maximum.
	GridLines int
}

// DefaultOptions is a 500x500 canvas with the dashboard's margins.
func DefaultOptions() Options {
	return Options{
		Width:        500,
		Height:       500,
		Padding:      60,
		LabelPadding: 30,
		BarGap:       15,
		GridLines:    5,
	}
}

// ErrAreaTooSmall is returned when the margins leave no room to plot.
var ErrAreaTooSmall = errors.New("geometry: drawing area too small for margins")

// Plot returns the drawable area: the canvas minus padding on every side and
// the label band above the plot.
func (o Options) Plot() (Rect, error) {
	r := Rect{
		X: o.Padding,
		Y: o.Padding + o.LabelPadding,
		W: o.Width - 2*o.Padding,
		H: o.Height - 2*o.Padding - o.LabelPadding,
	}
	if r.W <= 0 || r.H <= 0 {
		return Rect{}, fmt.Errorf("%w: %dx%d with padding %d and label padding %d",
			ErrAreaTooSmall, o.Width, o.Height, o.Padding, o.LabelPadding)
	}
	return r, nil
}

func (o Options) gridLines() int {
	if o.GridLines <= 0 {
		return 1
	}
	return o.GridLines
}

// InvalidSeriesError reports a series a builder cannot draw: mismatched
// lengths, or pie weights that are negative or sum to zero.
type InvalidSeriesError struct {
	Chart  string
	Reason string
}

func (e *InvalidSeriesError) Error() string {
	return fmt.Sprintf("geometry: invalid %s series: %s", e.Chart, e.Reason)
}

// IsInvalidSeries reports whether err carries an *InvalidSeriesError.
func IsInvalidSeries(err error) bool {
	var ise *InvalidSeriesError
	return errors.As(err, &ise)
}

func mismatch(chart string, a, b int, an, bn string) error {
	return &InvalidSeriesError{
		Chart:  chart,
		Reason: fmt.Sprintf("%d %s for %d %s", a, an, b, bn),
	}
}
