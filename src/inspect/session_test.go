package inspect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melanieyorbovay/data-analyzer-app/src/analysis"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestSession_InitialState(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	assert.False(t, s.Loaded())
	assert.Equal(t, StatusReady, s.Status())
	assert.Equal(t, analysis.NoDataHint, s.StatsText())
	assert.Empty(t, s.Preview(10, 4, 10).Rows)
}

func TestSession_LoadPopulatesShape(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	tb, err := s.Load(context.Background(), writeFile(t, "m.csv", "id,temp,site\n1,20.5,a\n2,21.5,b\n3,19.0,c\n"))
	require.NoError(t, err)
	assert.True(t, s.Loaded())
	assert.Equal(t, 3, tb.Rows)
	assert.Equal(t, 3, tb.NumCols())
	assert.Equal(t, "3 rows loaded", s.Status())
	assert.Equal(t, "3 rows × 3 columns", LoadSummary(tb))
	assert.Contains(t, s.StatsText(), " temp:\n Values: 3\n Mean: 20.3\n Min: 19.0\n Max: 21.5\n")
}

func TestSession_FailedLoadKeepsPreviousTable(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	good, err := s.Load(context.Background(), writeFile(t, "good.csv", "a\n1\n2\n"))
	require.NoError(t, err)

	_, err = s.Load(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.False(t, IsWarning(err))
	assert.Same(t, good, s.Table())

	_, err = s.Load(context.Background(), writeFile(t, "bad.csv", "a,b\n1,2,3\n"))
	assert.ErrorIs(t, err, dataset.ErrMalformed)
	assert.Same(t, good, s.Table())
	assert.Equal(t, "2 rows loaded", s.Status())
}

func TestSession_PlotBeforeLoadWarns(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	img, err := s.Plot(charts.KindHistogram, charts.DefaultOptions())
	assert.Nil(t, img)
	assert.True(t, IsWarning(err))
	assert.Equal(t, WarnNoData, WarningText(err))
}

func TestSession_PlotWithoutNumericColumnsWarns(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	_, err := s.Load(context.Background(), writeFile(t, "t.csv", "name,city\nann,Paris\nbob,Lyon\n"))
	require.NoError(t, err)
	for _, k := range []charts.Kind{charts.KindHistogram, charts.KindBoxPlot} {
		img, err := s.Plot(k, charts.DefaultOptions())
		assert.Nil(t, img)
		assert.True(t, IsWarning(err))
		assert.Equal(t, WarnNoNumeric, WarningText(err))
	}
	assert.Equal(t, "2 rows loaded", s.Status(), "status unchanged when nothing rendered")
}

func TestSession_PlotSetsStatus(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	_, err := s.Load(context.Background(), writeFile(t, "n.csv", "x,y\n1,5\n2,6\n4,9\n"))
	require.NoError(t, err)
	img, err := s.Plot(charts.KindBoxPlot, charts.Options{Width: 400, Height: 200})
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, "Chart 'box' generated", s.Status())
}

func TestSession_Reload(t *testing.T) {
	s := NewSession(dataset.DefaultOptions())
	_, err := s.Reload(context.Background())
	assert.True(t, errors.Is(err, charts.ErrNoData))

	p := writeFile(t, "r.csv", "a\n1\n")
	_, err = s.Load(context.Background(), p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(p, []byte("a\n1\n2\n3\n"), 0o644))
	tb, err := s.Reload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, tb.Rows)
}

func TestWarningText_PassesThroughErrors(t *testing.T) {
	assert.Equal(t, "", WarningText(nil))
	assert.Equal(t, "boom", WarningText(errors.New("boom")))
}
