package ui

import (
	"math"
	"strings"

	"housingdash/internal/geometry"

	"github.com/charmbracelet/lipgloss"
)

type cell struct {
	r  rune
	fg lipgloss.Color
}

// cellCanvas rasterizes chart geometry into a grid of terminal cells. One
// geometry unit is one column; rows are scaled by yScale so a pie stays round
// even though cells are about twice as tall as they are wide.
type cellCanvas struct {
	w, h   int
	yScale float64
	cells  [][]cell
}

func newCellCanvas(w, h int, yScale float64) *cellCanvas {
	if yScale <= 0 {
		yScale = 1
	}
	c := &cellCanvas{w: w, h: h, yScale: yScale, cells: make([][]cell, h)}
	for y := range c.cells {
		row := make([]cell, w)
		for x := range row {
			row[x] = cell{r: ' '}
		}
		c.cells[y] = row
	}
	return c
}

func (c *cellCanvas) row(y float64) int { return int(math.Floor(y / c.yScale)) }

func (c *cellCanvas) set(x, y int, r rune, fg lipgloss.Color) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, fg: fg}
}

// fillRect fills the cells covered by r, in geometry units.
func (c *cellCanvas) fillRect(r geometry.Rect, ch rune, fg lipgloss.Color) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	top := c.row(float64(r.Y))
	bottom := c.row(float64(r.Y+r.H) - 0.001)
	for y := top; y <= bottom; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, ch, fg)
		}
	}
}

// line draws s with a simple DDA walk.
func (c *cellCanvas) line(s geometry.Segment, ch rune, fg lipgloss.Color) {
	x0, y0 := s.From.X, s.From.Y/c.yScale
	x1, y1 := s.To.X, s.To.Y/c.yScale
	steps := int(math.Ceil(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))))
	if steps == 0 {
		c.set(int(x0), int(y0), ch, fg)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.set(int(math.Round(x0+(x1-x0)*t)), int(math.Round(y0+(y1-y0)*t)), ch, fg)
	}
}

// text writes s anchored at p. Text that would cross the canvas edge is
// shifted back inside.
func (c *cellCanvas) text(t geometry.Text, fg lipgloss.Color) {
	runes := []rune(t.Value)
	n := len(runes)
	x := int(math.Round(t.At.X))
	switch t.Align {
	case geometry.AlignCenter:
		x -= n / 2
	case geometry.AlignRight:
		x -= n
	}
	x = max(0, min(x, c.w-n))
	y := c.row(t.At.Y)
	for i, r := range runes {
		c.set(x+i, y, r, fg)
	}
}

// String renders the grid, grouping runs of equal color into one style.
func (c *cellCanvas) String() string {
	var sb strings.Builder
	for y, row := range c.cells {
		var run strings.Builder
		var fg lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if fg == "" {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(lipgloss.NewStyle().Foreground(fg).Render(run.String()))
			}
			run.Reset()
		}
		for _, cl := range row {
			if cl.fg != fg {
				flush()
				fg = cl.fg
			}
			run.WriteRune(cl.r)
		}
		flush()
		if y < len(c.cells)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
