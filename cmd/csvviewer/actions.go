package main

import (
	"context"
	"fmt"
	"image/png"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"

	"github.com/melanieyorbovay/data-analyzer-app/cmd/csvviewer/uihelpers"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/inspect"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	var items []*fyne.MenuItem
	for _, f := range recentFiles(state) {
		f := f
		items = append(items, fyne.NewMenuItem(uihelpers.TruncatePath(f, 60), func() { loadFile(state, f) }))
	}
	clearRecent := fyne.NewMenuItem("Clear Recent", func() { clearRecentFiles(state); buildMenus(state) })
	recentMenu := fyne.NewMenu("Open Recent", append(items, clearRecent)...)
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", func() { reloadFile(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Chart…", func() { exportChartPNG(state) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	chartMenu := fyne.NewMenu("Charts",
		fyne.NewMenuItem("Histogram", func() { plot(state, charts.KindHistogram) }),
		fyne.NewMenuItem("Boxplot", func() { plot(state, charts.KindBoxPlot) }),
	)
	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Toggle Dark Theme", func() {
			state.dark = !state.dark
			state.darkFromFlag = false
			state.app.Settings().SetTheme(themeFor(state.dark))
			savePrefs(state)
		}),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu, recentMenu, chartMenu, viewMenu))

	canv := state.window.Canvas()
	if canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { reloadFile(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { reloadFile(state) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierSuper}, func(fyne.Shortcut) { state.window.Close() })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}
}

// file open dialog, restricted to .csv files
func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		loadFile(state, path)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".CSV"}))
	d.Show()
}

// loadFile replaces the session table with path. Failures leave the previous
// table and its widgets untouched.
func loadFile(state *uiState, path string) {
	defer logging.TimeTrack(time.Now(), "loadFile")
	t, err := state.session.Load(context.Background(), path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("could not load file: %w", err), state.window)
		return
	}
	state.filePath = path
	addRecentFile(state, path)
	savePrefs(state)
	buildMenus(state)
	refreshData(state)
	dialog.ShowInformation("Success", inspect.LoadSummary(t), state.window)
}

func reloadFile(state *uiState) {
	if !state.session.Loaded() {
		if state.filePath != "" {
			loadFile(state, state.filePath)
			return
		}
		showProblem(state, charts.ErrNoData)
		return
	}
	if _, err := state.session.Reload(context.Background()); err != nil {
		showProblem(state, err)
		return
	}
	kind := state.lastKind
	refreshData(state)
	if kind != "" {
		plot(state, kind)
	}
}

// refreshData pushes the session table into the statistics, preview and
// column selector widgets and resets the chart.
func refreshData(state *uiState) {
	pc := state.cfg.Preview
	state.preview = state.session.Preview(pc.Rows, pc.Cols, pc.CellWidth)
	state.statsLabel.SetText(state.session.StatsText())
	state.fileLabel.SetText(uihelpers.TruncatePath(state.filePath, 60))
	state.statusLabel.SetText(state.session.Status())

	// clear lastKind first so select callbacks do not re-plot
	state.lastKind = ""
	var names []string
	for _, c := range state.session.Table().NumericColumns() {
		names = append(names, c.Name)
	}
	state.columnSelect.Options = names
	keep := false
	for _, n := range names {
		if n == state.histColumn {
			keep = true
			break
		}
	}
	if keep {
		state.columnSelect.SetSelected(state.histColumn)
	} else {
		state.columnSelect.ClearSelected()
		state.histColumn = ""
	}
	state.columnSelect.Refresh()

	state.chartImg.Image = charts.DrawMessage(charts.Blank(800, 400), "Pick Histogram or Boxplot")
	state.chartImg.Refresh()
	state.table.Refresh()
	resizePreviewColumns(state)
}

// chartOptions sizes the chart to the right pane of the window.
func chartOptions(state *uiState) charts.Options {
	opt := state.cfg.ChartOptions()
	opt.Bins = state.bins
	opt.Column = state.histColumn
	if c := state.window.Canvas(); c != nil && state.split != nil {
		if winW := c.Size().Width; winW > 0 {
			opt.Width, opt.Height = uihelpers.ComputeChartDimensions(uihelpers.ChartPaneWidth(winW, state.split.Offset))
		}
	}
	return opt
}

func plot(state *uiState, kind charts.Kind) {
	img, err := state.session.Plot(kind, chartOptions(state))
	if err != nil {
		showProblem(state, err)
		return
	}
	state.lastKind = kind
	state.chartImg.Image = img
	state.chartImg.Refresh()
	state.statusLabel.SetText(state.session.Status())
}

// showProblem reports warnings in an information dialog and anything else as an error.
func showProblem(state *uiState, err error) {
	if inspect.IsWarning(err) {
		dialog.ShowInformation("Warning", inspect.WarningText(err), state.window)
		return
	}
	logging.Errorf("%v", err)
	dialog.ShowError(err, state.window)
}

func resizePreviewColumns(state *uiState) {
	if state.table == nil || state.split == nil || state.window.Canvas() == nil {
		return
	}
	paneW := float32(uihelpers.ChartPaneWidth(state.window.Canvas().Size().Width, state.split.Offset))
	for i, w := range uihelpers.ComputePreviewColumnWidths(paneW, len(state.preview.Header)) {
		state.table.SetColumnWidth(i, w)
	}
}

// export PNG
func exportChartPNG(state *uiState) {
	if state == nil || state.window == nil {
		return
	}
	if state.lastKind == "" || state.chartImg == nil || state.chartImg.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	img := state.chartImg.Image
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img); err != nil {
			dialog.ShowError(err, state.window)
		}
	}, state.window)
	fs.SetFileName(exportName(state.lastKind))
	fs.Show()
}

func exportName(kind charts.Kind) string {
	if kind == charts.KindBoxPlot {
		return "boxplot.png"
	}
	return "histogram.png"
}
