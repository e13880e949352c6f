package render

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"housingdash/internal/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

func charts(t *testing.T) Charts {
	t.Helper()
	opts := geometry.DefaultOptions()

	bar, err := geometry.NewBarChart([]string{"London", "Calgary"}, []int64{74000000, 228000000}, opts)
	require.NoError(t, err)
	pie, err := geometry.NewPieChart([]float64{3, 1, 0}, []string{"AB", "ON", "Other"}, opts)
	require.NoError(t, err)
	line, err := geometry.NewLineChart([]float64{1, 2, 3}, []float64{10, 15, 15}, opts)
	require.NoError(t, err)
	return Charts{Bar: &bar, Pie: &pie, Line: &line}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, SVG, f)
	assert.Equal(t, ".svg", f.Ext())

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, PNG, f)

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestRenderPNG(t *testing.T) {
	c := charts(t)
	r := New(PNG, geometry.DefaultOptions(), zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, r.Bar(&buf, *c.Bar, "City Funding"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	buf.Reset()
	require.NoError(t, r.Pie(&buf, *c.Pie, "Provincial Funding"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))

	buf.Reset()
	require.NoError(t, r.Line(&buf, *c.Line, "Cumulative Funding"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestRenderSVG(t *testing.T) {
	c := charts(t)
	r := New(SVG, geometry.DefaultOptions(), nil)

	var buf bytes.Buffer
	require.NoError(t, r.Bar(&buf, *c.Bar, "City Funding"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderEmptyBarChart(t *testing.T) {
	bar, err := geometry.NewBarChart(nil, nil, geometry.DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, New(PNG, geometry.DefaultOptions(), nil).Bar(&buf, bar, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngSignature))
}

func TestWriteAll(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := filepath.Join(t.TempDir(), "charts")
	r := New(PNG, geometry.DefaultOptions(), zap.NewNop())

	paths, err := r.WriteAll(context.Background(), dir, charts(t))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "city_funding.png"),
		filepath.Join(dir, "cumulative_funding.png"),
		filepath.Join(dir, "provincial_funding.png"),
	}, paths)

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, pngSignature), p)
	}
}

func TestWriteAllSkipsNil(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := charts(t)
	paths, err := New(SVG, geometry.DefaultOptions(), nil).WriteAll(context.Background(), t.TempDir(), Charts{Pie: c.Pie})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, "provincial_funding.svg", filepath.Base(paths[0]))
}

func TestWriteAllCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(PNG, geometry.DefaultOptions(), nil).WriteAll(ctx, t.TempDir(), charts(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLerp(t *testing.T) {
	a := geometry.Palette[0]
	b := a
	b.A = 245
	assert.Equal(t, a, lerp(a, b, 0))
	assert.Equal(t, b, lerp(a, b, 1))
}
