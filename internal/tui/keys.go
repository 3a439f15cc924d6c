package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle   key.Binding
	Up       key.Binding
	Down     key.Binding
	MoveTop  key.Binding
	MoveUp   key.Binding
	MoveDown key.Binding
	Remove   key.Binding
	PrevPick key.Binding
	NextPick key.Binding
	Add      key.Binding
	Refresh  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "expand/collapse"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		MoveTop: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "move to top"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "move down"),
		),
		Remove: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "remove"),
		),
		PrevPick: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "prev scene"),
		),
		NextPick: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "next scene"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add scene"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Remove, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.MoveTop, k.MoveUp, k.MoveDown, k.Remove},
		{k.PrevPick, k.NextPick, k.Add},
		{k.Refresh, k.Help, k.Quit},
	}
}
