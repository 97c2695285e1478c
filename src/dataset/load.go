package dataset

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

const (
	EngineNative = "native"
	EngineDuckDB = "duckdb"
)

// Options controls how a CSV file is loaded.
type Options struct {
	// Engine selects the loader: EngineNative (default) or EngineDuckDB.
	Engine string
	// Delimiter for CSV. If 0, auto-detects among ',', ';', '\t'.
	Delimiter rune
	// MaxRows stops reading after this many data rows; 0 means unlimited.
	MaxRows int
}

// DefaultOptions returns the loader defaults.
func DefaultOptions() Options {
	return Options{Engine: EngineNative}
}

// Load reads path with the engine named in opt.
func Load(ctx context.Context, path string, opt Options) (*Table, error) {
	switch strings.ToLower(strings.TrimSpace(opt.Engine)) {
	case "", EngineNative:
		return LoadCSV(path, opt)
	case EngineDuckDB:
		return LoadDuckDB(ctx, path, opt)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opt.Engine)
	}
}

// LoadCSV opens path and parses it with the native loader.
func LoadCSV(path string, opt Options) (*Table, error) {
	defer logging.TimeTrack(time.Now(), "load "+filepath.Base(path))
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	t, err := Parse(f, opt)
	if err != nil {
		return nil, err
	}
	t.Name = filepath.Base(path)
	t.Path = path
	logging.Infof("loaded %s rows=%d cols=%d numeric=%d", t.Name, t.Rows, len(t.Columns), len(t.NumericColumns()))
	return t, nil
}

// Parse reads CSV from r. The first record is the header.
func Parse(r io.Reader, opt Options) (*Table, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	skipBOM(br)
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(br)
	}
	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("%w: read header: %w", ErrMalformed, err)
	}
	names := uniqueNames(header)
	ncol := len(names)
	cells := make([][]string, ncol)

	rows := 0
	for {
		if opt.MaxRows > 0 && rows >= opt.MaxRows {
			break
		}
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if len(rec) > ncol {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d", ErrMalformed, line, ncol, len(rec))
		}
		for j := 0; j < ncol; j++ {
			v := ""
			if j < len(rec) {
				v = rec[j]
			}
			cells[j] = append(cells[j], v)
		}
		rows++
	}

	t := &Table{Engine: EngineNative, Rows: rows, Columns: make([]Column, ncol)}
	for j := range names {
		t.Columns[j] = inferColumn(names[j], cells[j], rows)
	}
	return t, nil
}

func skipBOM(br *bufio.Reader) {
	if b, err := br.Peek(3); err == nil && bytes.Equal(b, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
}

// sniffDelimiter counts candidate separators in the first line outside quotes.
func sniffDelimiter(br *bufio.Reader) rune {
	peek, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(peek, '\n'); i >= 0 {
		peek = peek[:i]
	}
	counts := map[rune]int{}
	inQuote := false
	for _, r := range string(peek) {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ',' || r == ';' || r == '\t'):
			counts[r]++
		}
	}
	best, bestN := ',', 0
	for _, c := range []rune{',', ';', '\t'} {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best
}

// uniqueNames trims header names, names blank headers "Unnamed: <i>" and
// suffixes repeats with ".1", ".2", ...
func uniqueNames(header []string) []string {
	out := make([]string, len(header))
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		cand := name
		for n := 1; seen[cand]; n++ {
			cand = fmt.Sprintf("%s.%d", name, n)
		}
		seen[cand] = true
		out[i] = cand
	}
	return out
}

var missingTokens = map[string]struct{}{
	"": {}, "NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "#N/A": {}, "<NA>": {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// ParseNumber parses an integer or float cell. Hex floats are rejected.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseBool(s string) bool {
	switch strings.TrimSpace(s) {
	case "true", "false", "True", "False", "TRUE", "FALSE":
		return true
	}
	return false
}

// inferColumn decides the column kind. Numeric wins when every non-missing
// cell parses as a number; an all-missing column is numeric with only NaN.
// Columns of a header-only file are text.
func inferColumn(name string, cells []string, rows int) Column {
	if cells == nil {
		cells = make([]string, rows)
	}
	if rows == 0 {
		return Column{Name: name, Cells: cells, Kind: KindText}
	}
	col := Column{Name: name, Cells: cells, Kind: KindNumeric}
	floats := make([]float64, len(cells))
	allBool, present := true, 0
	for i, c := range cells {
		if IsMissing(c) {
			floats[i] = math.NaN()
			continue
		}
		present++
		if !parseBool(c) {
			allBool = false
		}
		if col.Kind != KindNumeric {
			continue
		}
		v, ok := ParseNumber(c)
		if !ok {
			col.Kind = KindText
			continue
		}
		floats[i] = v
	}
	switch {
	case col.Kind == KindNumeric:
		col.Floats = floats
	case present > 0 && allBool:
		col.Kind = KindBool
	}
	return col
}
