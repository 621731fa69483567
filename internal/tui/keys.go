package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings with built-in help text.
type KeyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Submit    key.Binding
	Back      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "backspace"),
			key.WithHelp("esc/b", "back"),
		),
	}
}

// homeHelp lists the bindings usable while typing a code.
func (k KeyMap) homeHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ForceQuit}
}

func (k KeyMap) resultHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}
