// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing a channel's playlists:
//  1. [FetchView] : Watch collector progress while playlists are enumerated
//  2. [ListView] : Browse the collected playlists
//  3. [DetailView] : Inspect one playlist's metadata
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the collector, providing non-blocking
// status reporting while yt-dlp runs.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, o, s, q) with contextual
// help displayed via charmbracelet/bubbles/help.
package ui
