package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the watchface host.
type KeyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	ToggleClock key.Binding
	Help        key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		ToggleClock: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "12/24h"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FullHelp implements help.KeyMap for the application key bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Refresh, k.ToggleClock},
		{k.Help, k.Quit},
	}
}
