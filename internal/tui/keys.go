package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPane key.Binding
	PrevPane key.Binding
	PageDown key.Binding
	PageUp   key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextPane: key.NewBinding(key.WithKeys("tab", "l", "right"), key.WithHelp("tab", "next view")),
		PrevPane: key.NewBinding(key.WithKeys("shift+tab", "h", "left"), key.WithHelp("shift+tab", "prev view")),
		PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "scroll down")),
		PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "scroll up")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.PrevPane, k.PageDown, k.PageUp, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
