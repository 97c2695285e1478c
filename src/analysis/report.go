package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

// ColumnInfo names a column and its inferred kind.
type ColumnInfo struct {
	Name string `json:"name" yaml:"name"`
	Kind string `json:"kind" yaml:"kind"`
}

// Report is the structured form of the statistics panel used for export.
type Report struct {
	File    string        `json:"file" yaml:"file"`
	Engine  string        `json:"engine,omitempty" yaml:"engine,omitempty"`
	Rows    int           `json:"rows" yaml:"rows"`
	Columns []ColumnInfo  `json:"columns" yaml:"columns"`
	Numeric []ColumnStats `json:"numeric" yaml:"numeric"`

	table *dataset.Table
}

// NewReport builds a Report for t.
func NewReport(t *dataset.Table) *Report {
	r := &Report{File: t.Name, Engine: t.Engine, Rows: t.Rows, table: t}
	for _, c := range t.Columns {
		r.Columns = append(r.Columns, ColumnInfo{Name: c.Name, Kind: c.Kind.String()})
	}
	r.Numeric = Describe(t)
	if r.Numeric == nil {
		r.Numeric = []ColumnStats{}
	}
	return r
}

// Write encodes the report as "text", "yaml" or "json".
func (r *Report) Write(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "", "text":
		_, err := io.WriteString(w, FormatStats(r.table))
		return err
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("unsupported format %q (want text|yaml|json)", format)
	}
}
