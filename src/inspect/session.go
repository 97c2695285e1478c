// Package inspect holds the viewer's state: at most one loaded table plus the
// status line, and the guarded operations the UI buttons call.
package inspect

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/melanieyorbovay/data-analyzer-app/src/analysis"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

// Status lines shown in the viewer's status bar.
const (
	StatusReady = "Ready to load a CSV file"
)

// Warning messages for user mistakes that are not failures.
const (
	WarnNoData    = "Load a CSV file first!"
	WarnNoNumeric = "No numeric column found!"
)

// Session is the single-table state machine: empty until the first successful
// Load, then holding the most recent table.
type Session struct {
	opts   dataset.Options
	table  *dataset.Table
	status string
}

// NewSession returns an empty session that loads with opts.
func NewSession(opts dataset.Options) *Session {
	return &Session{opts: opts, status: StatusReady}
}

// SetOptions changes the loader options used by subsequent loads.
func (s *Session) SetOptions(opts dataset.Options) { s.opts = opts }

// Table returns the loaded table or nil.
func (s *Session) Table() *dataset.Table { return s.table }

// Loaded reports whether a table is present.
func (s *Session) Loaded() bool { return s.table != nil }

// Status returns the last status line.
func (s *Session) Status() string { return s.status }

// Load parses path and replaces the current table. On failure the previous
// table is kept and the error is returned unchanged.
func (s *Session) Load(ctx context.Context, path string) (*dataset.Table, error) {
	t, err := dataset.Load(ctx, path, s.opts)
	if err != nil {
		logging.Warnf("load %s failed: %v", path, err)
		return nil, err
	}
	s.table = t
	s.status = fmt.Sprintf("%s rows loaded", analysis.FormatCount(t.Rows))
	return t, nil
}

// Reload loads the current table's file again. Without a table it returns ErrNoData.
func (s *Session) Reload(ctx context.Context) (*dataset.Table, error) {
	if s.table == nil {
		return nil, charts.ErrNoData
	}
	return s.Load(ctx, s.table.Path)
}

// StatsText is the statistics panel content for the current state.
func (s *Session) StatsText() string { return analysis.FormatStats(s.table) }

// Preview returns the preview grid for the current table.
func (s *Session) Preview(rows, cols, width int) dataset.Preview {
	return s.table.Preview(rows, cols, width)
}

// Plot renders kind for the current table. Missing data and tables without
// numeric columns return warnings (see IsWarning) and render nothing.
func (s *Session) Plot(kind charts.Kind, opt charts.Options) (image.Image, error) {
	if s.table == nil {
		return nil, charts.ErrNoData
	}
	img, err := charts.Render(kind, s.table, opt)
	if err != nil {
		return nil, err
	}
	s.status = fmt.Sprintf("Chart '%s' generated", kind)
	return img, nil
}

// IsWarning reports whether err should be shown as a warning rather than an error.
func IsWarning(err error) bool {
	return errors.Is(err, charts.ErrNoData) || errors.Is(err, charts.ErrNoNumeric)
}

// WarningText maps a warning error onto its dialog message.
func WarningText(err error) string {
	switch {
	case errors.Is(err, charts.ErrNoData):
		return WarnNoData
	case errors.Is(err, charts.ErrNoNumeric):
		return WarnNoNumeric
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// LoadSummary is the confirmation shown after a successful load.
func LoadSummary(t *dataset.Table) string {
	return fmt.Sprintf("%s rows × %d columns", analysis.FormatCount(t.Rows), t.NumCols())
}
