package main

import (
	"fmt"
	"image/color"
	"os"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/pflag"

	"github.com/melanieyorbovay/data-analyzer-app/cmd/csvviewer/uihelpers"
	"github.com/melanieyorbovay/data-analyzer-app/src/charts"
	"github.com/melanieyorbovay/data-analyzer-app/src/config"
	"github.com/melanieyorbovay/data-analyzer-app/src/dataset"
	"github.com/melanieyorbovay/data-analyzer-app/src/inspect"
	"github.com/melanieyorbovay/data-analyzer-app/src/logging"
)

type uiState struct {
	app      fyne.App
	window   fyne.Window
	cfg      *config.Config
	session  *inspect.Session
	filePath string

	// chart settings
	bins       int
	histColumn string // "" means first numeric column
	lastKind   charts.Kind
	dark       bool

	// set on the command line; preferences do not override them
	binsFromFlag bool
	darkFromFlag bool

	// widgets
	statsLabel   *widget.Label
	statusLabel  *widget.Label
	fileLabel    *widget.Label
	table        *widget.Table
	preview      dataset.Preview
	chartImg     *canvas.Image
	columnSelect *widget.Select
	binsSelect   *widget.Select
	split        *container.Split
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	variant fyne.ThemeVariant
}

func (v *variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, v.variant)
}

func (v *variantTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (v *variantTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (v *variantTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}

func themeFor(dark bool) fyne.Theme {
	if dark {
		return &variantTheme{variant: theme.VariantDark}
	}
	return &variantTheme{variant: theme.VariantLight}
}

func main() {
	fs := pflag.NewFlagSet("csvviewer", pflag.ExitOnError)
	fileFlag := fs.String("file", "", "CSV file to open at startup")
	configFlag := fs.String("config", "", "Path to config file (default: ./csvanalyzer.yaml or user config dir)")
	exportDir := fs.String("export-dir", "", "Render histogram.png, boxplot.png and stats for --file into this directory and exit")
	fs.String("log-level", "info", "Log level (debug|info|warn|error)")
	fs.String("engine", dataset.EngineNative, "CSV engine (native|duckdb)")
	fs.Int("bins", 10, "Histogram bins")
	fs.Bool("dark", true, "Use the dark theme")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*configFlag, fs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	logging.SetLogLevel(cfg.Log.Level)

	if *exportDir != "" {
		if err := RunExportMode(cfg, *fileFlag, *exportDir); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.csvanalyzer.viewer")
	w := a.NewWindow("CSV Data Analyzer")
	w.Resize(fyne.NewSize(900, 600))

	state := &uiState{
		app:     a,
		window:  w,
		cfg:     cfg,
		session: inspect.NewSession(cfg.LoadOptions()),
		bins:    cfg.Chart.Bins,
		dark:    cfg.UI.Dark,

		binsFromFlag: fs.Changed("bins"),
		darkFromFlag: fs.Changed("dark"),
	}
	loadPrefs(state)
	a.Settings().SetTheme(themeFor(state.dark))

	w.SetContent(buildContent(state))
	buildMenus(state)
	watchResize(state)

	if *fileFlag != "" {
		loadFile(state, *fileFlag)
	}
	w.ShowAndRun()
}

func buildContent(state *uiState) fyne.CanvasObject {
	title := widget.NewLabelWithStyle("CSV Data Analyzer", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	heading := func(s string) *widget.Label {
		return widget.NewLabelWithStyle(s, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	}

	// left column: load button, statistics, chart controls
	loadBtn := widget.NewButtonWithIcon("Load CSV file", theme.FolderOpenIcon(), func() { openFileDialog(state) })
	loadBtn.Importance = widget.HighImportance
	state.statsLabel = widget.NewLabelWithStyle(state.session.StatsText(), fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	statsScroll := container.NewScroll(state.statsLabel)

	state.columnSelect = widget.NewSelect(nil, func(v string) {
		state.histColumn = v
		if state.lastKind == charts.KindHistogram {
			plot(state, charts.KindHistogram)
		}
	})
	state.columnSelect.PlaceHolder = "(first numeric)"
	state.binsSelect = widget.NewSelect(uihelpers.BinChoices, nil)
	state.binsSelect.SetSelected(fmt.Sprintf("%d", state.bins))
	state.binsSelect.OnChanged = func(v string) {
		state.bins = uihelpers.ParseBins(v, state.cfg.Chart.Bins)
		state.binsFromFlag = false
		savePrefs(state)
		if state.lastKind == charts.KindHistogram {
			plot(state, charts.KindHistogram)
		}
	}
	histBtn := widget.NewButton("Histogram", func() { plot(state, charts.KindHistogram) })
	boxBtn := widget.NewButton("Boxplot", func() { plot(state, charts.KindBoxPlot) })
	chartControls := container.NewVBox(
		heading("Charts"),
		histBtn,
		boxBtn,
		widget.NewForm(
			widget.NewFormItem("Column", state.columnSelect),
			widget.NewFormItem("Bins", state.binsSelect),
		),
	)
	left := container.NewBorder(
		container.NewVBox(loadBtn, heading("Statistics")),
		chartControls, nil, nil,
		statsScroll,
	)

	// right column: data preview above the chart
	state.table = widget.NewTable(
		func() (int, int) {
			cols := len(state.preview.Header)
			if cols == 0 {
				return 1, 1
			}
			return len(state.preview.Rows) + 1, cols
		},
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			lbl := o.(*widget.Label)
			lbl.TextStyle = fyne.TextStyle{Bold: id.Row == 0}
			lbl.SetText(previewCell(state.preview, id.Row, id.Col))
		},
	)
	state.chartImg = canvas.NewImageFromImage(charts.DrawMessage(charts.Blank(800, 400), "Load a CSV file, then pick a chart"))
	state.chartImg.FillMode = canvas.ImageFillContain
	state.chartImg.SetMinSize(fyne.NewSize(400, 220))
	right := container.NewVSplit(
		container.NewBorder(heading("Data preview"), nil, nil, nil, state.table),
		container.NewBorder(heading("Charts"), nil, nil, nil, state.chartImg),
	)
	right.Offset = 0.4

	state.split = container.NewHSplit(left, right)
	state.split.Offset = 0.33

	state.fileLabel = widget.NewLabel(uihelpers.TruncatePath(state.filePath, 60))
	state.statusLabel = widget.NewLabel(state.session.Status())
	status := container.NewBorder(nil, nil, nil, state.fileLabel, state.statusLabel)
	return container.NewBorder(title, container.NewVBox(widget.NewSeparator(), status), nil, nil, state.split)
}

// previewCell returns the header for row 0 and data cells below it.
func previewCell(p dataset.Preview, row, col int) string {
	if col < 0 || col >= len(p.Header) {
		return ""
	}
	if row == 0 {
		return p.Header[col]
	}
	r := row - 1
	if r < 0 || r >= len(p.Rows) || col >= len(p.Rows[r]) {
		return ""
	}
	return p.Rows[r][col]
}

// watchResize redraws the current chart when the window width changes so it
// keeps filling the pane.
func watchResize(state *uiState) {
	w := state.window
	if w.Canvas() == nil {
		return
	}
	prevW := int(w.Canvas().Size().Width)
	done := make(chan struct{})
	w.SetOnClosed(func() {
		savePrefs(state)
		close(done)
	})
	go func() {
		t := time.NewTicker(300 * time.Millisecond)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				curW := int(w.Canvas().Size().Width)
				if curW != prevW {
					prevW = curW
					fyne.Do(func() {
						if state.lastKind != "" && state.session.Loaded() {
							plot(state, state.lastKind)
						}
						resizePreviewColumns(state)
					})
				}
			}
		}
	}()
}
