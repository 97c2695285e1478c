package analysis

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

// NoDataHint is shown in the statistics panel before any file is loaded.
const NoDataHint = "Load a CSV file first!"

var rule = strings.Repeat("=", 30)

var printer = message.NewPrinter(language.English)

// FormatCount renders n with thousands separators (1234 -> "1,234").
func FormatCount(n int) string { return printer.Sprintf("%d", n) }

// FormatStats renders the statistics panel text: dimensions, every column name
// and count/mean/min/max for each numeric column that has values.
func FormatStats(t *dataset.Table) string {
	if t == nil {
		return NoDataHint
	}
	var b strings.Builder
	fmt.Fprintf(&b, " Quick Analysis\n%s\nDIMENSIONS\n\n", rule)
	fmt.Fprintf(&b, "ROWS: %s\n", FormatCount(t.Rows))
	fmt.Fprintf(&b, "COLUMNS: %d\n\n", t.NumCols())
	b.WriteString("COLUMN NAMES:\n")
	for i, name := range t.ColumnNames() {
		fmt.Fprintf(&b, " %2d. %s\n", i+1, name)
	}

	numeric := t.NumericColumns()
	if len(numeric) == 0 {
		b.WriteString("\n No numeric columns\n")
		return b.String()
	}
	fmt.Fprintf(&b, "\n  (%d numeric columns)\n%s\n", len(numeric), rule)
	for _, c := range numeric {
		s, ok := Summarize(c)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "\n %s:\n", s.Name)
		fmt.Fprintf(&b, " Values: %s\n", FormatCount(s.Count))
		fmt.Fprintf(&b, " Mean: %.1f\n", s.Mean)
		fmt.Fprintf(&b, " Min: %.1f\n", s.Min)
		fmt.Fprintf(&b, " Max: %.1f\n", s.Max)
	}
	return b.String()
}
