package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Enter   key.Binding
	NewGame key.Binding
	Undo    key.Binding
	Redo    key.Binding
	Focus   key.Binding
	Quit    key.Binding
	Escape  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		NewGame: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Redo:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "redo")),
		Focus:   key.NewBinding(key.WithKeys("f", "tab"), key.WithHelp("f", "focus game")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Escape:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// gameAction is an in-game action affordance and the key it types into the
// game.
type gameAction struct {
	binding key.Binding
	send    string
}

func (k keyMap) actions() []gameAction {
	return []gameAction{
		{k.NewGame, "n"},
		{k.Undo, "u"},
		{k.Redo, "r"},
	}
}
