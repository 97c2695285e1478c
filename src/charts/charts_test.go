package charts

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

func parse(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tb, err := dataset.Parse(strings.NewReader(csv), dataset.Options{})
	require.NoError(t, err)
	return tb
}

const numericCSV = "name,a,b\nx,1,10\ny,2,11\nz,3,12\nw,4,40\nv,5,13\n"

func TestRenderHistogram_Size(t *testing.T) {
	img, err := RenderHistogram(parse(t, numericCSV), Options{Width: 640, Height: 320, Bins: 5})
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 320, img.Bounds().Dy())
}

func TestRenderHistogram_NamedColumn(t *testing.T) {
	tb := parse(t, numericCSV)
	c, err := HistogramColumn(tb, "b")
	require.NoError(t, err)
	assert.Equal(t, "b", c.Name)

	_, err = HistogramColumn(tb, "name")
	assert.ErrorIs(t, err, ErrNoNumeric)

	first, err := HistogramColumn(tb, "")
	require.NoError(t, err)
	assert.Equal(t, "a", first.Name)
}

func TestRenderBoxPlot_Renders(t *testing.T) {
	img, err := RenderBoxPlot(parse(t, numericCSV), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestRender_NoNumericColumnsIsWarning(t *testing.T) {
	tb := parse(t, "a,b\nx,y\nz,w\n")
	for _, k := range []Kind{KindHistogram, KindBoxPlot} {
		img, err := Render(k, tb, DefaultOptions())
		assert.Nil(t, img)
		assert.True(t, errors.Is(err, ErrNoNumeric), "kind %s: %v", k, err)
	}
}

func TestRender_NilTable(t *testing.T) {
	for _, k := range []Kind{KindHistogram, KindBoxPlot} {
		_, err := Render(k, nil, DefaultOptions())
		assert.ErrorIs(t, err, ErrNoData)
	}
}

func TestRenderHistogram_ConstantColumn(t *testing.T) {
	_, err := RenderHistogram(parse(t, "v\n3\n3\n3\n"), DefaultOptions())
	assert.NoError(t, err)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("histogram")
	require.NoError(t, err)
	assert.Equal(t, KindHistogram, k)
	k, err = ParseKind("box")
	require.NoError(t, err)
	assert.Equal(t, KindBoxPlot, k)
	_, err = ParseKind("pie")
	assert.Error(t, err)
}

func TestNiceTicks_WithinRange(t *testing.T) {
	ticks := niceTicks(0.3, 9.7, 6)
	require.GreaterOrEqual(t, len(ticks), 2)
	for _, tk := range ticks {
		assert.GreaterOrEqual(t, tk.Value, 0.3)
		assert.LessOrEqual(t, tk.Value, 9.7)
	}
	assert.Nil(t, niceTicks(0, 1, 1))
}

func TestNiceAxisBounds_Expands(t *testing.T) {
	lo, hi := niceAxisBounds(12, 87)
	assert.LessOrEqual(t, lo, 12.0)
	assert.GreaterOrEqual(t, hi, 87.0)
	lo, hi = niceAxisBounds(5, 5)
	assert.Less(t, lo, hi)
}

func TestDrawMessage_PaintsPixels(t *testing.T) {
	base := Blank(200, 80)
	out := DrawMessage(base, "Load a CSV file first!")
	require.NotNil(t, out)
	assert.Equal(t, base.Bounds(), out.Bounds())
	// Just below the baseline the band is darkened and no glyph is drawn.
	r, g, b, _ := out.At(100, 42).RGBA()
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	wr, wg, wb, _ := white.RGBA()
	assert.False(t, r == wr && g == wg && b == wb, "expected overlay at center")
	assert.Equal(t, base, DrawMessage(base, " "))
}

func TestRender_InfiniteCells(t *testing.T) {
	tb := parse(t, "v,w\n1,2\ninf,3\n3,-inf\n")
	for _, k := range []Kind{KindHistogram, KindBoxPlot} {
		img, err := Render(k, tb, Options{Width: 400, Height: 200})
		require.NoError(t, err, "kind %s", k)
		assert.Equal(t, 400, img.Bounds().Dx())
	}

	_, err := HistogramColumn(parse(t, "v\ninf\n-inf\n"), "")
	assert.ErrorIs(t, err, ErrNoNumeric)
}
