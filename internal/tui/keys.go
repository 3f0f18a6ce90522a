package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Focus     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Sync      key.Binding
	Connector key.Binding
	Theme     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup", "b"), key.WithHelp("b", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown", "f", " "), key.WithHelp("f", "page down")),
	Top:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Focus:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "pane")),
	Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Prev:      key.NewBinding(key.WithKeys("p", "N"), key.WithHelp("p", "prev")),
	Sync:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
	Connector: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "ribbons")),
	Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// helpLine lists the bindings shown in the status bar.
func (k keyMap) helpLine() string {
	var out string
	for i, b := range []key.Binding{k.Focus, k.Next, k.Prev, k.Sync, k.Connector, k.Theme, k.Quit} {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
