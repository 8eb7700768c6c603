package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	anchor    key.Binding
	back      key.Binding
	profile   key.Binding
	intent    key.Binding
	shuffle   key.Binding
	watchlist key.Binding
	detail    key.Binding
	rateBad   key.Binding
	rateOK    key.Binding
	rateGood  key.Binding
	refresh   key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		anchor:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "more like this")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear anchor/back")),
		profile:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		intent:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "intent")),
		shuffle:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "shuffle")),
		watchlist: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "watchlist")),
		detail:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "details")),
		rateBad:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "rate bad")),
		rateOK:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "rate ok")),
		rateGood:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "rate great")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.anchor, k.back},
		{k.profile, k.intent, k.shuffle, k.refresh},
		{k.watchlist, k.detail, k.rateBad, k.rateGood},
		{k.quit},
	}
}
