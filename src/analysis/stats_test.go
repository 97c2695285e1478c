package analysis

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

func mustParse(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	tb, err := dataset.Parse(strings.NewReader(csv), dataset.Options{})
	require.NoError(t, err)
	tb.Name = "test.csv"
	return tb
}

func TestSummarize_KnownColumn(t *testing.T) {
	tb := mustParse(t, "label,v\na,2\nb,4\nc,4\nd,4\ne,5\nf,5\ng,7\nh,9\ni,\n")
	col, ok := tb.Column("v")
	require.True(t, ok)
	s, ok := Summarize(col)
	require.True(t, ok)
	assert.Equal(t, "v", s.Name)
	assert.Equal(t, 8, s.Count)
	assert.InDelta(t, 5.0, s.Mean, 1e-12)
	assert.Equal(t, 2.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, math.Sqrt(32.0/7.0), s.Std, 1e-12)
	assert.InDelta(t, 4.0, s.Q1, 1e-12)
	assert.InDelta(t, 4.5, s.Median, 1e-12)
	assert.InDelta(t, 5.5, s.Q3, 1e-12)
}

func TestSummarize_NonNumericOrEmpty(t *testing.T) {
	tb := mustParse(t, "name,empty\nx,\ny,\n")
	name, _ := tb.Column("name")
	_, ok := Summarize(name)
	assert.False(t, ok)
	empty, _ := tb.Column("empty")
	_, ok = Summarize(empty)
	assert.False(t, ok)
	assert.Empty(t, Describe(tb))
}

func TestQuantile_Edges(t *testing.T) {
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
	s := []float64{1, 3}
	assert.Equal(t, 1.0, Quantile(s, 0))
	assert.Equal(t, 3.0, Quantile(s, 1))
	assert.Equal(t, 2.0, Quantile(s, 0.5))
}

func TestHistogram_EqualWidthBins(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	bins := Histogram(vals, 3)
	require.Len(t, bins, 3)
	assert.Equal(t, []int{3, 3, 4}, []int{bins[0].Count, bins[1].Count, bins[2].Count})
	assert.Equal(t, 1.0, bins[0].Start)
	assert.Equal(t, 10.0, bins[2].End)
}

func TestHistogram_CountsSumToValues(t *testing.T) {
	vals := []float64{-3.2, 0, 0.1, 7, 7, 7, 12.5, 99}
	bins := Histogram(vals, 0)
	require.Len(t, bins, DefaultBins)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, len(vals), total)
}

func TestHistogram_ConstantSeries(t *testing.T) {
	bins := Histogram([]float64{5, 5}, 4)
	require.Len(t, bins, 4)
	assert.Equal(t, 4.5, bins[0].Start)
	assert.Equal(t, 5.5, bins[3].End)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 2, total)
	assert.Nil(t, Histogram(nil, 10))
}

func TestBoxPlot_WhiskersAndOutliers(t *testing.T) {
	b, ok := BoxPlot([]float64{9, 2, 4, 4, 4, 5, 5, 7}, 0)
	require.True(t, ok)
	assert.InDelta(t, 4.0, b.Q1, 1e-12)
	assert.InDelta(t, 4.5, b.Median, 1e-12)
	assert.InDelta(t, 5.5, b.Q3, 1e-12)
	assert.Equal(t, 2.0, b.LowerWhisker)
	assert.Equal(t, 7.0, b.UpperWhisker)
	assert.Equal(t, []float64{9}, b.Outliers)

	_, ok = BoxPlot(nil, 1.5)
	assert.False(t, ok)
}

func TestFormatStats(t *testing.T) {
	assert.Equal(t, NoDataHint, FormatStats(nil))

	tb := mustParse(t, "name,score,weight\na,1,10\nb,2,20\nc,6,\n")
	out := FormatStats(tb)
	for _, want := range []string{
		"ROWS: 3\n",
		"COLUMNS: 3\n",
		"  1. name\n",
		"  3. weight\n",
		"(2 numeric columns)",
		" score:\n Values: 3\n Mean: 3.0\n Min: 1.0\n Max: 6.0\n",
		" weight:\n Values: 2\n Mean: 15.0\n Min: 10.0\n Max: 20.0\n",
	} {
		assert.Contains(t, out, want)
	}

	text := mustParse(t, "a,b\nx,y\n")
	assert.Contains(t, FormatStats(text), "No numeric columns")
}

func TestFormatCount_Thousands(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "12", FormatCount(12))
}

func TestReport_Formats(t *testing.T) {
	tb := mustParse(t, "name,score\na,1\nb,3\n")
	r := NewReport(tb)
	require.Len(t, r.Numeric, 1)
	assert.Equal(t, 2.0, r.Numeric[0].Mean)

	var js bytes.Buffer
	require.NoError(t, r.Write(&js, "json"))
	var back Report
	require.NoError(t, json.Unmarshal(js.Bytes(), &back))
	assert.Equal(t, 2, back.Rows)
	assert.Equal(t, []ColumnInfo{{Name: "name", Kind: "text"}, {Name: "score", Kind: "numeric"}}, back.Columns)

	var ym bytes.Buffer
	require.NoError(t, r.Write(&ym, "yaml"))
	var m map[string]any
	require.NoError(t, yaml.Unmarshal(ym.Bytes(), &m))
	assert.Equal(t, "test.csv", m["file"])

	var txt bytes.Buffer
	require.NoError(t, r.Write(&txt, "text"))
	assert.Contains(t, txt.String(), "Quick Analysis")

	assert.Error(t, r.Write(&txt, "xml"))
}

func TestInfiniteCells(t *testing.T) {
	tb := mustParse(t, "v\n1\ninf\n3\n")
	c := tb.Columns[0]
	require.True(t, c.IsNumeric())

	s, ok := Summarize(&c)
	require.True(t, ok)
	assert.Equal(t, 3, s.Count)
	assert.True(t, math.IsInf(s.Mean, 1), "mean %v", s.Mean)
	assert.True(t, math.IsInf(s.Max, 1))
	assert.Equal(t, 1.0, s.Min)
	assert.Contains(t, FormatStats(tb), " Mean: +Inf\n")

	bins := Histogram(c.Values(), 4)
	require.Len(t, bins, 4)
	total := 0
	for _, b := range bins {
		assert.False(t, math.IsNaN(b.Start) || math.IsInf(b.End, 0), "bin %+v", b)
		total += b.Count
	}
	assert.Equal(t, 2, total, "infinite values are left out of the bins")

	box, ok := BoxPlot(c.Values(), DefaultWhiskerCoef)
	require.True(t, ok)
	assert.Equal(t, 2.0, box.Median)

	var js bytes.Buffer
	require.NoError(t, NewReport(tb).Write(&js, "json"))
	assert.Contains(t, js.String(), `"max": null`)
}

func TestOnlyInfiniteValues(t *testing.T) {
	assert.Nil(t, Histogram([]float64{math.Inf(1), math.Inf(-1)}, 10))
	_, ok := BoxPlot([]float64{math.Inf(1)}, DefaultWhiskerCoef)
	assert.False(t, ok)
	assert.True(t, math.IsInf(Quantile([]float64{1, math.Inf(1), math.Inf(1)}, 0.75), 1))
}
