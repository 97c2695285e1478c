package analysis

import "math"

// DefaultBins is the histogram bin count used when none is configured.
const DefaultBins = 10

// DefaultWhiskerCoef is the Tukey fence multiplier for boxplot whiskers.
const DefaultWhiskerCoef = 1.5

// Bin is one histogram bucket covering [Start, End); the last bin is closed.
type Bin struct {
	Start float64
	End   float64
	Count int
}

// Histogram splits the finite entries of vals into equal-width bins between
// their min and max. A constant series is centered in a span of width 1.
func Histogram(vals []float64, bins int) []Bin {
	vals = Finite(vals)
	if len(vals) == 0 {
		return nil
	}
	if bins <= 0 {
		bins = DefaultBins
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Start = lo + float64(i)*width
		out[i].End = lo + float64(i+1)*width
	}
	out[bins-1].End = hi
	for _, v := range vals {
		idx := int((v - lo) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		out[idx].Count++
	}
	return out
}

// BoxStats are the components of one box-and-whisker glyph.
type BoxStats struct {
	Q1, Median, Q3 float64
	// LowerWhisker and UpperWhisker are the most extreme values inside the fences.
	LowerWhisker float64
	UpperWhisker float64
	Outliers     []float64
}

// BoxPlot computes quartiles, whiskers at coef*IQR and the outliers beyond them.
// Non-finite values are ignored.
func BoxPlot(vals []float64, coef float64) (BoxStats, bool) {
	var b BoxStats
	vals = Finite(vals)
	if len(vals) == 0 {
		return b, false
	}
	if coef <= 0 {
		coef = DefaultWhiskerCoef
	}
	sorted := sortedCopy(vals)
	b.Q1 = Quantile(sorted, 0.25)
	b.Median = Quantile(sorted, 0.5)
	b.Q3 = Quantile(sorted, 0.75)
	iqr := b.Q3 - b.Q1
	loFence := b.Q1 - coef*iqr
	hiFence := b.Q3 + coef*iqr
	b.LowerWhisker = b.Q1
	b.UpperWhisker = b.Q3
	for _, v := range sorted {
		if v >= loFence {
			b.LowerWhisker = math.Min(v, b.Q1)
			break
		}
	}
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] <= hiFence {
			b.UpperWhisker = math.Max(sorted[i], b.Q3)
			break
		}
	}
	for _, v := range sorted {
		if v < loFence || v > hiFence {
			b.Outliers = append(b.Outliers, v)
		}
	}
	return b, true
}
