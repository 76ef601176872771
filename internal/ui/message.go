package ui

import (
	"chanlist/internal/collector"
)

// fetchProgressMsg carries one collector progress update into the TUI loop.
type fetchProgressMsg collector.ProgressUpdate

// fetchCompleteMsg signals the end of a collector run.
type fetchCompleteMsg struct {
	result *collector.Result
	err    error
}

// reportSavedMsg carries the outcome of a save-report action.
type reportSavedMsg struct {
	path string
	err  error
}

// browserOpenedMsg carries the outcome of an open-in-browser action.
type browserOpenedMsg struct {
	err error
}
