// Package render paints chart geometry onto gonum vg canvases and encodes
// the result as PNG or SVG.
package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"housingdash/internal/geometry"
	"housingdash/internal/logging"

	"go.uber.org/zap"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Format is an output encoding.
type Format int

const (
	PNG Format = iota
	SVG
)

func (f Format) String() string {
	if f == SVG {
		return "svg"
	}
	return "png"
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string { return "." + f.String() }

// ParseFormat accepts "png" or "svg" in any case.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return PNG, nil
	case "svg":
		return SVG, nil
	}
	return PNG, fmt.Errorf("unknown render format %q (want png or svg)", s)
}

var (
	background = color.White
	ink        = color.NRGBA{R: 60, G: 60, B: 60, A: 255}
	gridInk    = color.NRGBA{R: 220, G: 220, B: 220, A: 255}
	lineInk    = color.NRGBA{R: 69, G: 123, B: 157, A: 255}

	fonts       = font.NewCache(liberation.Collection())
	textHandler = text.Plain{Fonts: fonts}
)

// Renderer encodes chart geometry in one format at one canvas size. Its
// canvas size must match the geometry.Options the charts were built with.
type Renderer struct {
	format Format
	opts   geometry.Options
	logger *zap.Logger
}

// New returns a Renderer. A nil logger is replaced by zap.NewNop.
func New(format Format, opts geometry.Options, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{format: format, opts: opts, logger: logger.Named(string(logging.CategoryRender))}
}

// Format returns the renderer's output encoding.
func (r *Renderer) Format() Format { return r.format }

// canvas wraps a draw.Canvas and translates screen coordinates (origin
// top-left) into vg coordinates (origin bottom-left).
type canvas struct {
	draw.Canvas
	height float64
	encode func(io.Writer) error
}

func (r *Renderer) newCanvas() *canvas {
	w, h := vg.Length(r.opts.Width), vg.Length(r.opts.Height)
	c := &canvas{height: float64(r.opts.Height)}

	switch r.format {
	case SVG:
		sc := vgsvg.New(w, h)
		c.Canvas = draw.New(sc)
		c.encode = func(out io.Writer) error {
			_, err := sc.WriteTo(out)
			return err
		}
	default:
		ic := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(72))
		c.Canvas = draw.New(ic)
		c.encode = func(out io.Writer) error {
			_, err := vgimg.PngCanvas{Canvas: ic}.WriteTo(out)
			return err
		}
	}

	c.FillPolygon(background, []vg.Point{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}})
	return c
}

func (c *canvas) pt(p geometry.Point) vg.Point {
	return vg.Point{X: vg.Length(p.X), Y: vg.Length(c.height - p.Y)}
}

func (c *canvas) rect(x, y, w, h float64, clr color.Color) {
	c.FillPolygon(clr, []vg.Point{
		c.pt(geometry.Point{X: x, Y: y}),
		c.pt(geometry.Point{X: x + w, Y: y}),
		c.pt(geometry.Point{X: x + w, Y: y + h}),
		c.pt(geometry.Point{X: x, Y: y + h}),
	})
}

func (c *canvas) line(s geometry.Segment, clr color.Color, width vg.Length) {
	c.StrokeLines(draw.LineStyle{Color: clr, Width: width}, []vg.Point{c.pt(s.From), c.pt(s.To)})
}

func (c *canvas) text(t geometry.Text, size vg.Length) {
	if t.Value == "" {
		return
	}
	sty := draw.TextStyle{
		Color:   ink,
		Font:    font.Font{Typeface: "Liberation", Variant: "Sans", Size: size},
		XAlign:  xAlign(t.Align),
		YAlign:  draw.YBottom,
		Handler: textHandler,
	}
	c.FillText(sty, c.pt(t.At), t.Value)
}

func (c *canvas) title(s string, width int, top int) {
	c.text(geometry.Text{At: geometry.Point{X: float64(width) / 2, Y: float64(top)}, Value: s, Align: geometry.AlignCenter}, 14)
}

func xAlign(a geometry.Align) draw.XAlignment {
	switch a {
	case geometry.AlignCenter:
		return draw.XCenter
	case geometry.AlignRight:
		return draw.XRight
	default:
		return draw.XLeft
	}
}

// gradientBand is the height in pixels of one step of a bar gradient.
const gradientBand = 2

// fillGradient approximates a vertical gradient with horizontal bands.
func (c *canvas) fillGradient(r geometry.Rect, g geometry.Gradient) {
	if r.H <= 0 || r.W <= 0 {
		return
	}
	bands := (r.H + gradientBand - 1) / gradientBand
	for i := 0; i < bands; i++ {
		y := r.Y + i*gradientBand
		h := min(gradientBand, r.Y+r.H-y)
		t := 0.0
		if bands > 1 {
			t = float64(i) / float64(bands-1)
		}
		c.rect(float64(r.X), float64(y), float64(r.W), float64(h), lerp(g.From, g.To, t))
	}
}

func lerp(a, b color.NRGBA, t float64) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
