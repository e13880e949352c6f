package ui

import (
	"strings"
	"testing"

	"housingdash/internal/dataset"
	"housingdash/internal/funding"
	"housingdash/internal/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellCanvasText(t *testing.T) {
	c := newCellCanvas(5, 2, 1)
	c.text(geometry.Text{At: geometry.Point{X: 4, Y: 0}, Value: "abc"}, "")
	c.text(geometry.Text{At: geometry.Point{X: 2, Y: 1}, Value: "x", Align: geometry.AlignCenter}, "")

	assert.Equal(t, "  abc\n  x  ", c.String())
}

func TestCellCanvasFillAndLine(t *testing.T) {
	c := newCellCanvas(4, 4, 2)
	c.fillRect(geometry.Rect{X: 1, Y: 2, W: 2, H: 4}, '#', "")
	c.line(geometry.Segment{From: geometry.Point{X: 0, Y: 0}, To: geometry.Point{X: 3, Y: 0}}, '-', "")

	assert.Equal(t, "----\n ## \n ## \n    ", c.String())
}

func TestSliceAt(t *testing.T) {
	slices := []geometry.Slice{
		{Start: 0, Sweep: 90},
		{Start: 90, Sweep: 0},
		{Start: 90, Sweep: 270},
	}
	assert.Equal(t, 0, sliceAt(slices, 45))
	assert.Equal(t, 2, sliceAt(slices, -45))
	assert.Equal(t, 2, sliceAt(slices, 360))
	assert.Equal(t, -1, sliceAt(nil, 10))
}

func TestBarView(t *testing.T) {
	out, err := BarView(
		[]string{"London, Ontario", "Calgary, Alberta", "Whitehorse"},
		[]int64{74000000, 228000000, 1000000},
		80, 16, DefaultStyles())
	require.NoError(t, err)

	for _, want := range []string{"max $228 Million", "Calgary, Alberta", "$74 Million", "█"} {
		assert.Contains(t, out, want)
	}
}

func TestBarViewMismatch(t *testing.T) {
	_, err := BarView([]string{"a"}, []int64{1, 2}, 80, 16, DefaultStyles())
	assert.True(t, geometry.IsInvalidSeries(err))
}

func TestPieView(t *testing.T) {
	ds := chartDataset(t)
	totals := funding.ProvincialFunding(ds, funding.DefaultColumns())

	out, err := PieView(totals, 80, 20, DefaultStyles())
	require.NoError(t, err)
	assert.Contains(t, out, "Alberta")
	assert.Contains(t, out, "75.2%")
	assert.Contains(t, out, "█")
}

func TestPieViewZeroTotal(t *testing.T) {
	totals := funding.ProvincialFunding(dataset.Empty("empty.csv", nil), funding.DefaultColumns())
	_, err := PieView(totals, 80, 20, DefaultStyles())
	assert.True(t, geometry.IsInvalidSeries(err))
}

func TestLineView(t *testing.T) {
	out, err := LineView(
		[]float64{1, 2, 3},
		[]float64{74000000, 302000000, 303000000},
		60, 16, DefaultStyles())
	require.NoError(t, err)

	first := strings.SplitN(out, "\n", 2)[0]
	assert.Contains(t, first, "total $303 Million")
	assert.Contains(t, first, "3 cities")
	assert.Contains(t, out, "●")
}
