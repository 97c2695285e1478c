package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	duckdb "github.com/duckdb/duckdb-go/v2"

	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

// LoadDuckDB loads path through DuckDB's read_csv with type auto-detection and
// maps the detected SQL types onto column kinds.
func LoadDuckDB(ctx context.Context, path string, opt Options) (*Table, error) {
	defer logging.TimeTrack(time.Now(), "duckdb load "+filepath.Base(path))
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	if fi.Size() == 0 {
		return nil, ErrEmpty
	}
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	defer db.Close()

	src := readCSVExpr(path, opt.Delimiter)
	kinds, err := describeKinds(ctx, db, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(kinds) == 0 {
		return nil, ErrEmpty
	}

	query := "SELECT * FROM " + src
	if opt.MaxRows > 0 {
		query += " LIMIT " + strconv.Itoa(opt.MaxRows)
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	names = uniqueNames(names)
	ncol := len(names)
	cells := make([][]string, ncol)
	floats := make([][]float64, ncol)
	vals := make([]any, ncol)
	ptrs := make([]any, ncol)
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	n := 0
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", n+1, err)
		}
		for j, v := range vals {
			cells[j] = append(cells[j], formatValue(v))
			floats[j] = append(floats[j], floatValue(v))
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	t := &Table{Name: filepath.Base(path), Path: path, Engine: EngineDuckDB, Rows: n, Columns: make([]Column, ncol)}
	for j := range names {
		kind := KindText
		if j < len(kinds) {
			kind = kinds[j]
		}
		col := Column{Name: names[j], Kind: kind, Cells: cells[j]}
		if col.Cells == nil {
			col.Cells = []string{}
		}
		if kind == KindNumeric {
			col.Floats = floats[j]
			if col.Floats == nil {
				col.Floats = []float64{}
			}
		}
		t.Columns[j] = col
	}
	logging.Infof("duckdb loaded %s rows=%d cols=%d numeric=%d", t.Name, t.Rows, len(t.Columns), len(t.NumericColumns()))
	return t, nil
}

func readCSVExpr(path string, delim rune) string {
	args := []string{quoteLiteral(path), "header = true", "auto_detect = true", "nullstr = " + nullList()}
	if delim != 0 {
		args = append(args, "delim = "+quoteLiteral(string(delim)))
	}
	return "read_csv(" + strings.Join(args, ", ") + ")"
}

// nullList renders the missing-value tokens as a DuckDB list literal so both
// engines agree on what is missing.
func nullList() string {
	toks := make([]string, 0, len(missingTokens))
	for tok := range missingTokens {
		toks = append(toks, quoteLiteral(tok))
	}
	sort.Strings(toks)
	return "[" + strings.Join(toks, ", ") + "]"
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func describeKinds(ctx context.Context, db *sql.DB, src string) ([]Kind, error) {
	rows, err := db.QueryContext(ctx, "DESCRIBE SELECT * FROM "+src)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var kinds []Kind
	for rows.Next() {
		var name, typ string
		var null, key, def, extra sql.NullString
		if err := rows.Scan(&name, &typ, &null, &key, &def, &extra); err != nil {
			return nil, err
		}
		kinds = append(kinds, kindForSQLType(typ))
	}
	return kinds, rows.Err()
}

// kindForSQLType maps a DuckDB logical type name onto a column kind.
func kindForSQLType(typ string) Kind {
	t := strings.ToUpper(strings.TrimSpace(typ))
	if strings.HasPrefix(t, "DECIMAL") {
		return KindNumeric
	}
	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT",
		"FLOAT", "DOUBLE", "REAL":
		return KindNumeric
	case "BOOLEAN":
		return KindBool
	}
	return KindText
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	case duckdb.Decimal:
		return strconv.FormatFloat(x.Float64(), 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func floatValue(v any) float64 {
	switch x := v.(type) {
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	case *big.Int:
		f, _ := new(big.Float).SetInt(x).Float64()
		return f
	case duckdb.Decimal:
		return x.Float64()
	}
	return math.NaN()
}
