package dataset

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDuckDB_MatchesNativeShape(t *testing.T) {
	path := writeCSV(t, sample)
	tb, err := Load(context.Background(), path, Options{Engine: EngineDuckDB})
	require.NoError(t, err)
	assert.Equal(t, EngineDuckDB, tb.Engine)
	assert.Equal(t, 4, tb.Rows)
	assert.Equal(t, []string{"city", "population", "area", "coastal"}, tb.ColumnNames())

	pop, ok := tb.Column("population")
	require.True(t, ok)
	assert.True(t, pop.IsNumeric())
	assert.Equal(t, []float64{513275, 342669, 320732, 236234}, pop.Values())

	city, _ := tb.Column("city")
	assert.Equal(t, KindText, city.Kind)
	assert.Equal(t, "Lyon", city.Cells[0])
}

func TestLoadDuckDB_MissingPath(t *testing.T) {
	_, err := LoadDuckDB(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), Options{})
	assert.Error(t, err)
}

func TestKindForSQLType(t *testing.T) {
	assert.Equal(t, KindNumeric, kindForSQLType("BIGINT"))
	assert.Equal(t, KindNumeric, kindForSQLType("DECIMAL(18,3)"))
	assert.Equal(t, KindNumeric, kindForSQLType("double"))
	assert.Equal(t, KindBool, kindForSQLType("BOOLEAN"))
	assert.Equal(t, KindText, kindForSQLType("VARCHAR"))
	assert.Equal(t, KindText, kindForSQLType("DATE"))
}

func TestLoadDuckDB_MissingTokensStayNumeric(t *testing.T) {
	path := writeCSV(t, "name,score\na,1.5\nb,NA\nc,N/A\nd,4.5\n")
	tb, err := Load(context.Background(), path, Options{Engine: EngineDuckDB})
	require.NoError(t, err)
	score, ok := tb.Column("score")
	require.True(t, ok)
	assert.True(t, score.IsNumeric(), "kind %s", score.Kind)
	assert.Equal(t, []float64{1.5, 4.5}, score.Values())

	native, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	nscore, _ := native.Column("score")
	assert.Equal(t, nscore.Kind, score.Kind)
}

func TestLoadDuckDB_EmptyFile(t *testing.T) {
	_, err := Load(context.Background(), writeCSV(t, ""), Options{Engine: EngineDuckDB})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestNullList(t *testing.T) {
	l := nullList()
	assert.Contains(t, l, "'NA'")
	assert.Contains(t, l, "''")
	assert.Contains(t, l, "'#N/A'")
}
