// Package analysis computes descriptive statistics and chart-ready aggregates
// (histogram bins, boxplot quartiles) over the numeric columns of a dataset.Table.
package analysis

import (
	"encoding/json"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

// ColumnStats summarizes one numeric column after dropping missing values.
type ColumnStats struct {
	Name   string  `json:"name" yaml:"name"`
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Std    float64 `json:"std" yaml:"std"`
	Q1     float64 `json:"q1" yaml:"q1"`
	Median float64 `json:"median" yaml:"median"`
	Q3     float64 `json:"q3" yaml:"q3"`
}

// Summarize computes statistics for a numeric column. ok is false when the
// column is not numeric or has no values.
func Summarize(col *dataset.Column) (ColumnStats, bool) {
	if !col.IsNumeric() {
		return ColumnStats{}, false
	}
	s, ok := SummarizeValues(col.Values())
	s.Name = col.Name
	return s, ok
}

// SummarizeValues computes statistics over vals. NaN entries must already be
// removed; infinities are kept, so a column holding inf has an infinite mean.
func SummarizeValues(vals []float64) (ColumnStats, bool) {
	var s ColumnStats
	if len(vals) == 0 {
		return s, false
	}
	s.Count = len(vals)
	s.Min = floats.Min(vals)
	s.Max = floats.Max(vals)
	s.Mean = stat.Mean(vals, nil)
	if s.Count > 1 {
		s.Std = stat.StdDev(vals, nil)
	}
	sorted := sortedCopy(vals)
	s.Q1 = Quantile(sorted, 0.25)
	s.Median = Quantile(sorted, 0.5)
	s.Q3 = Quantile(sorted, 0.75)
	return s, true
}

// jsonFloat encodes non-finite values as null.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// MarshalJSON writes NaN and ±Inf statistics as null.
func (s ColumnStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string    `json:"name"`
		Count  int       `json:"count"`
		Mean   jsonFloat `json:"mean"`
		Min    jsonFloat `json:"min"`
		Max    jsonFloat `json:"max"`
		Std    jsonFloat `json:"std"`
		Q1     jsonFloat `json:"q1"`
		Median jsonFloat `json:"median"`
		Q3     jsonFloat `json:"q3"`
	}{s.Name, s.Count, jsonFloat(s.Mean), jsonFloat(s.Min), jsonFloat(s.Max),
		jsonFloat(s.Std), jsonFloat(s.Q1), jsonFloat(s.Median), jsonFloat(s.Q3)})
}

// Finite returns the finite entries of vals in order.
func Finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}

// Describe summarizes every numeric column with at least one value, in table order.
func Describe(t *dataset.Table) []ColumnStats {
	var out []ColumnStats
	for _, c := range t.NumericColumns() {
		if s, ok := Summarize(c); ok {
			out = append(out, s)
		}
	}
	return out
}

// Quantile returns the q-th quantile (0..1) of sorted using linear interpolation
// between closest ranks (numpy's default method).
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi || sorted[lo] == sorted[hi] {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

func sortedCopy(a []float64) []float64 {
	cp := append([]float64(nil), a...)
	sort.Float64s(cp)
	return cp
}
