package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/melanieyorbovay/data-analyzer-app/src/analysis"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/config"
	"github.com/melanieyorbovay/data-analyzer-app/src/inspect"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

// RunExportMode loads filePath and writes both charts, the statistics text and
// a YAML summary under outDir. It runs headlessly without creating a UI window.
// Charts are skipped with a warning when the table has no numeric column.
func RunExportMode(cfg *config.Config, filePath, outDir string) error {
	if filePath == "" {
		return errors.New("export mode needs --file")
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	s := inspect.NewSession(cfg.LoadOptions())
	t, err := s.Load(context.Background(), filePath)
	if err != nil {
		return err
	}

	toRender := []struct {
		name string
		kind charts.Kind
	}{
		{"histogram.png", charts.KindHistogram},
		{"boxplot.png", charts.KindBoxPlot},
	}
	for _, item := range toRender {
		img, err := s.Plot(item.kind, cfg.ChartOptions())
		if inspect.IsWarning(err) {
			logging.Warnf("skip %s: %s", item.name, inspect.WarningText(err))
			continue
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", item.name, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return fmt.Errorf("encode %s: %w", item.name, err)
		}
		if err := os.WriteFile(filepath.Join(outDir, item.name), buf.Bytes(), 0o644); err != nil {
			return err
		}
		logging.Infof("wrote %s", filepath.Join(outDir, item.name))
	}

	if err := os.WriteFile(filepath.Join(outDir, "stats.txt"), []byte(s.StatsText()), 0o644); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := analysis.NewReport(t).Write(&buf, "yaml"); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(outDir, "summary.yaml"), buf.Bytes(), 0o644)
}
