package uihelpers

import (
	"path/filepath"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: the width available to the chart pane. Returns clamped width & height
// at roughly a 2:1 aspect ratio.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 480 {
		w = 480
	}
	if w > 1600 {
		w = 1600
	}
	h := w / 2
	if h < 240 {
		h = 240
	}
	if h > 520 {
		h = 520
	}
	return w, h
}

// ChartPaneWidth estimates the chart pane width from the window width given the
// left/right split offset (0..1), minus padding for scrollbars.
func ChartPaneWidth(winW float32, splitOffset float64) int {
	if splitOffset < 0 || splitOffset > 1 {
		splitOffset = 0.33
	}
	return int(float64(winW)*(1-splitOffset)) - 24
}

// ComputePreviewColumnWidths returns one width per preview column. Columns share
// the pane width equally, never narrower than 60 nor wider than 220.
func ComputePreviewColumnWidths(paneW float32, ncols int) []float32 {
	if ncols <= 0 {
		return nil
	}
	w := (paneW - 16) / float32(ncols)
	if w < 60 {
		w = 60
	}
	if w > 220 {
		w = 220
	}
	out := make([]float32, ncols)
	for i := range out {
		out[i] = w
	}
	return out
}

// BinChoices are the histogram bin counts offered in the selector.
var BinChoices = []string{"5", "10", "15", "20", "30", "50"}

// ParseBins converts a selector value; invalid or non-positive input returns fallback.
func ParseBins(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// TruncatePath shortens p to about n characters keeping the file name intact.
func TruncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
