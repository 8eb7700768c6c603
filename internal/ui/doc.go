// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the recommendation batch:
//  1. [BrowseView] : Browse the current batch, switch profile/intent, anchor, rate, and manage the watchlist
//  2. [DetailView] : Inspect a single show with its streaming availability
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// All state transitions happen on the update loop; network calls run as commands
// and report back carrying the fetch ticket they were issued with, so a stale
// completion can never clobber a newer batch.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, p/i/s/w, 1-3, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
