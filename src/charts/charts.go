// Package charts renders the histogram and boxplot views of a table into images
// using go-chart, ready to be placed in a canvas or written as PNG.
package charts

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/melanieyorbovay/data-analyzer-app/src/analysis"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

var (
	// ErrNoData is returned when no table is loaded.
	ErrNoData = errors.New("load a CSV file first")
	// ErrNoNumeric is returned when the table has no numeric column with values.
	ErrNoNumeric = errors.New("no numeric column found")
)

// Kind names a chart type.
type Kind string

const (
	KindHistogram Kind = "hist"
	KindBoxPlot   Kind = "box"
)

// ParseKind accepts "hist"/"histogram" and "box"/"boxplot".
func ParseKind(s string) (Kind, error) {
	switch s {
	case "hist", "histogram":
		return KindHistogram, nil
	case "box", "boxplot":
		return KindBoxPlot, nil
	}
	return "", fmt.Errorf("unknown chart %q (want hist|box)", s)
}

// Options controls chart size and content.
type Options struct {
	Width  int
	Height int
	// Bins for the histogram; analysis.DefaultBins when <= 0.
	Bins int
	// Column is the histogram column; the first numeric column with finite values when empty.
	Column string
}

// DefaultOptions matches an 8x4 inch figure at 100 dpi.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Bins: analysis.DefaultBins}
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 400
	}
	return w, h
}

var (
	colorSkyBlue = drawing.Color{R: 135, G: 206, B: 235, A: 255}
	colorBoxFill = drawing.Color{R: 135, G: 206, B: 235, A: 110}
	colorBoxLine = drawing.Color{R: 31, G: 119, B: 180, A: 255}
	colorMedian  = drawing.Color{R: 255, G: 127, B: 14, A: 255}
	colorGrid    = drawing.Color{R: 0, G: 0, B: 0, A: 40}
)

// Render dispatches on kind.
func Render(kind Kind, t *dataset.Table, opt Options) (image.Image, error) {
	switch kind {
	case KindHistogram:
		return RenderHistogram(t, opt)
	case KindBoxPlot:
		return RenderBoxPlot(t, opt)
	}
	return nil, fmt.Errorf("unknown chart %q", kind)
}

// HistogramColumn picks the column the histogram will show.
func HistogramColumn(t *dataset.Table, name string) (*dataset.Column, error) {
	if t == nil {
		return nil, ErrNoData
	}
	if name != "" {
		c, ok := t.Column(name)
		if !ok || !c.IsNumeric() {
			return nil, fmt.Errorf("%w: %q", ErrNoNumeric, name)
		}
		if len(analysis.Finite(c.Values())) == 0 {
			return nil, fmt.Errorf("%w: %q has no values", ErrNoNumeric, name)
		}
		return c, nil
	}
	for _, c := range t.NumericColumns() {
		if len(analysis.Finite(c.Values())) > 0 {
			return c, nil
		}
	}
	return nil, ErrNoNumeric
}

// RenderHistogram draws the distribution of one numeric column as filled bars.
func RenderHistogram(t *dataset.Table, opt Options) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render histogram")
	col, err := HistogramColumn(t, opt.Column)
	if err != nil {
		return nil, err
	}
	bins := analysis.Histogram(col.Values(), opt.Bins)
	// Outline every bar down to the baseline so adjacent bins stay visually separate.
	xs := make([]float64, 0, len(bins)*4)
	ys := make([]float64, 0, len(bins)*4)
	maxCount := 1
	for _, b := range bins {
		xs = append(xs, b.Start, b.Start, b.End, b.End)
		ys = append(ys, 0, float64(b.Count), float64(b.Count), 0)
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}
	xMin, xMax := bins[0].Start, bins[len(bins)-1].End
	_, yMax := niceAxisBounds(0, float64(maxCount))
	yTicks := niceTicks(0, yMax, 6)
	xTicks := niceTicks(xMin, xMax, 8)

	w, h := opt.size()
	ch := chart.Chart{
		Title:      "Histogram",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           col.Name,
			Range:          &chart.ContinuousRange{Min: xMin, Max: xMax},
			Ticks:          xTicks,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridLines:      gridLines(xTicks),
		},
		YAxis: chart.YAxis{
			Name:           "count",
			Range:          &chart.ContinuousRange{Min: 0, Max: yMax},
			Ticks:          yTicks,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridLines:      gridLines(yTicks),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    col.Name,
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: colorBoxLine,
					StrokeWidth: 1,
					FillColor:   colorSkyBlue,
				},
			},
		},
	}
	return renderPNG(&ch)
}

// RenderBoxPlot draws one box-and-whisker glyph per numeric column with values.
func RenderBoxPlot(t *dataset.Table, opt Options) (image.Image, error) {
	defer logging.TimeTrack(time.Now(), "render boxplot")
	if t == nil {
		return nil, ErrNoData
	}
	type box struct {
		name  string
		stats analysis.BoxStats
	}
	var boxes []box
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, c := range t.NumericColumns() {
		b, ok := analysis.BoxPlot(c.Values(), analysis.DefaultWhiskerCoef)
		if !ok {
			continue
		}
		boxes = append(boxes, box{name: c.Name, stats: b})
		lo, hi := b.LowerWhisker, b.UpperWhisker
		for _, o := range b.Outliers {
			lo = math.Min(lo, o)
			hi = math.Max(hi, o)
		}
		yMin = math.Min(yMin, lo)
		yMax = math.Max(yMax, hi)
	}
	if len(boxes) == 0 {
		return nil, ErrNoNumeric
	}

	const half = 0.25
	boxStyle := chart.Style{StrokeColor: colorBoxLine, StrokeWidth: 1.5, FillColor: colorBoxFill}
	lineStyle := chart.Style{StrokeColor: colorBoxLine, StrokeWidth: 1.5}
	medianStyle := chart.Style{StrokeColor: colorMedian, StrokeWidth: 2}
	var series []chart.Series
	xTicks := make([]chart.Tick, 0, len(boxes))
	for i, b := range boxes {
		x := float64(i + 1)
		s := b.stats
		xTicks = append(xTicks, chart.Tick{Value: x, Label: b.name})
		series = append(series,
			chart.ContinuousSeries{Name: b.name, Style: boxStyle,
				XValues: []float64{x - half, x + half, x + half, x - half, x - half},
				YValues: []float64{s.Q1, s.Q1, s.Q3, s.Q3, s.Q1}},
			chart.ContinuousSeries{Style: medianStyle,
				XValues: []float64{x - half, x + half}, YValues: []float64{s.Median, s.Median}},
			chart.ContinuousSeries{Style: lineStyle,
				XValues: []float64{x, x}, YValues: []float64{s.LowerWhisker, s.Q1}},
			chart.ContinuousSeries{Style: lineStyle,
				XValues: []float64{x, x}, YValues: []float64{s.Q3, s.UpperWhisker}},
			chart.ContinuousSeries{Style: lineStyle,
				XValues: []float64{x - half/2, x + half/2}, YValues: []float64{s.LowerWhisker, s.LowerWhisker}},
			chart.ContinuousSeries{Style: lineStyle,
				XValues: []float64{x - half/2, x + half/2}, YValues: []float64{s.UpperWhisker, s.UpperWhisker}},
		)
		if len(s.Outliers) > 0 {
			ox := make([]float64, len(s.Outliers))
			for k := range ox {
				ox[k] = x
			}
			oy := append([]float64(nil), s.Outliers...)
			// Pad to at least two points for go-chart.
			if len(oy) == 1 {
				ox = append(ox, x)
				oy = append(oy, oy[0])
			}
			series = append(series, chart.ContinuousSeries{Style: pointStyle(colorBoxLine), XValues: ox, YValues: oy})
		}
	}
	lo, hi := niceAxisBounds(yMin, yMax)
	yTicks := niceTicks(lo, hi, 6)

	w, h := opt.size()
	ch := chart.Chart{
		Title:      "Boxplot",
		Width:      w,
		Height:     h,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.5, Max: float64(len(boxes)) + 0.5},
			Ticks: xTicks,
		},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: lo, Max: hi},
			Ticks:          yTicks,
			GridMajorStyle: chart.Style{StrokeColor: colorGrid, StrokeWidth: 1},
			GridLines:      gridLines(yTicks),
		},
		Series: series,
	}
	return renderPNG(&ch)
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    3,
		DotColor:    col,
	}
}

func renderPNG(ch *chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", ch.Title, err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ch.Title, err)
	}
	return img, nil
}
