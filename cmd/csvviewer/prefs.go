package main

import (
	"os"
	"strings"
)

const maxRecentFiles = 10

// recent files helpers
func recentFiles(state *uiState) []string {
	if state == nil || state.app == nil {
		return nil
	}
	raw := state.app.Preferences().StringWithFallback("recentFiles", "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}

func addRecentFile(state *uiState, path string) {
	if state == nil || state.app == nil || path == "" {
		return
	}
	list := recentFiles(state)
	filtered := []string{path}
	for _, f := range list {
		if f != path && len(filtered) < maxRecentFiles {
			filtered = append(filtered, f)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(filtered, "\n"))
}

func clearRecentFiles(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	state.app.Preferences().SetString("recentFiles", "")
}

// prefs; values pinned by command-line flags are neither saved nor restored
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetString("histColumn", state.histColumn)
	if !state.binsFromFlag {
		prefs.SetInt("bins", state.bins)
	}
	if !state.darkFromFlag {
		prefs.SetBool("dark", state.dark)
	}
}

// loadPrefs restores chart settings saved by a previous session. Config values
// in state act as fallbacks.
func loadPrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	state.filePath = prefs.StringWithFallback("lastFile", state.filePath)
	state.histColumn = prefs.StringWithFallback("histColumn", state.histColumn)
	if !state.binsFromFlag {
		if n := prefs.IntWithFallback("bins", state.bins); n > 0 {
			state.bins = n
		}
	}
	if !state.darkFromFlag {
		state.dark = prefs.BoolWithFallback("dark", state.dark)
	}
}
