package widget

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add    key.Binding
	Done   key.Binding
	Focus  key.Binding
	Up     key.Binding
	Down   key.Binding
	Quit   key.Binding
	Toggle key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Done:   key.NewBinding(key.WithKeys("enter", "d", "x"), key.WithHelp("enter/d", "done")),
		Focus:  key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "save & quit")),
		Toggle: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	}
}

// inputKeys is the help shown while typing.
type inputKeys keyMap

func (k inputKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Focus, k.Quit}
}

func (k inputKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Add, k.Focus, k.Quit}}
}

// listKeys is the help shown while a row is selected.
type listKeys keyMap

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Done, k.Up, k.Down, k.Focus, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Done, k.Up, k.Down}, {k.Focus, k.Toggle, k.Quit}}
}
