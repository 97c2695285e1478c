// Package dataset holds the in-memory table produced by loading a CSV file.
//
// A Table is replaced wholesale on every load; nothing in here is mutated after
// the loader returns it.
package dataset

import (
	"math"
	"unicode/utf8"
)

// Kind is the inferred type of a column.
type Kind int

const (
	KindText Kind = iota
	KindNumeric
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// Column is one named column. Cells keeps the raw text for every row; Floats is
// only populated for numeric columns and carries NaN for missing cells.
type Column struct {
	Name   string
	Kind   Kind
	Cells  []string
	Floats []float64
}

// IsNumeric reports whether the column was inferred as integer or float.
func (c *Column) IsNumeric() bool { return c != nil && c.Kind == KindNumeric }

// Values returns the non-missing numeric values in row order. Nil for non-numeric columns.
func (c *Column) Values() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Table is the loaded CSV: ordered, uniquely named columns sharing one row count.
type Table struct {
	Name    string // file base name
	Path    string
	Engine  string
	Rows    int
	Columns []Column
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	if t == nil {
		return 0
	}
	return len(t.Columns)
}

// ColumnNames returns the column names in file order.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Columns))
	for i := range t.Columns {
		out[i] = t.Columns[i].Name
	}
	return out
}

// Column looks a column up by exact name.
func (t *Table) Column(name string) (*Column, bool) {
	if t == nil {
		return nil, false
	}
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// NumericColumns returns pointers to the numeric columns in table order.
func (t *Table) NumericColumns() []*Column {
	if t == nil {
		return nil
	}
	var out []*Column
	for i := range t.Columns {
		if t.Columns[i].IsNumeric() {
			out = append(out, &t.Columns[i])
		}
	}
	return out
}

// Preview is the header and leading rows shown in the data preview grid.
type Preview struct {
	Header []string
	Rows   [][]string
}

// Preview returns at most rows x cols cells, each truncated to width runes.
// A width <= 0 disables truncation.
func (t *Table) Preview(rows, cols, width int) Preview {
	var p Preview
	if t == nil {
		return p
	}
	if cols <= 0 || cols > len(t.Columns) {
		cols = len(t.Columns)
	}
	if rows < 0 || rows > t.Rows {
		rows = t.Rows
	}
	p.Header = make([]string, cols)
	for j := 0; j < cols; j++ {
		p.Header[j] = t.Columns[j].Name
	}
	p.Rows = make([][]string, rows)
	for i := 0; i < rows; i++ {
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			row[j] = Truncate(t.Columns[j].Cells[i], width)
		}
		p.Rows[i] = row
	}
	return p
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
