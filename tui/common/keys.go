package common

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines shared key bindings across all views.
type KeyMap struct {
	Quit     key.Binding
	Refresh  key.Binding
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding // enter — open thread
	Back     key.Binding // esc — leave thread / cancel
	Compose  key.Binding // p — top-level comment
	Reply    key.Binding // c — reply to selected comment
	Delete   key.Binding // d — delete selected comment
	Collapse key.Binding // tab — collapse/expand subtree
	Submit   key.Binding // ctrl+d — send comment
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open thread"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Compose: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "comment"),
		),
		Reply: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "reply"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "fold"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "send"),
		),
	}
}
