package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Board     key.Binding
	Timeline  key.Binding
	Dashboard key.Binding

	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Open      key.Binding
	Back      key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	Toggle    key.Binding
	Reload    key.Binding

	Help key.Binding
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Board:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "board")),
		Timeline:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Dashboard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),

		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column right")),

		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open task")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		MoveLeft:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "move to previous column")),
		MoveRight: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "move to next column")),
		Toggle:    key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle subtask")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),

		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Board, k.Timeline, k.Dashboard, k.Open, k.MoveRight, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Board, k.Timeline, k.Dashboard},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.Back, k.MoveLeft, k.MoveRight, k.Toggle},
		{k.Reload, k.Help, k.Quit},
	}
}
