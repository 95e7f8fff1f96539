package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Add    key.Binding
	Edit   key.Binding
	Done   key.Binding
	Delete key.Binding
	Grab   key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Find   key.Binding
	Jump   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Done:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "done")),
		Delete: key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Grab:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "grab")),
		Drop:   key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "drop")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Find:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "find")),
		Jump:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "jump")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindings returns the keys shown in the help line for the current mode.
func (a *App) bindings() []key.Binding {
	k := a.keys
	switch {
	case a.finding:
		return []key.Binding{k.Jump, k.Cancel}
	case a.dragging:
		return []key.Binding{k.Up, k.Down, k.Drop, k.Cancel}
	case a.editing:
		return []key.Binding{k.Up, k.Down, k.Delete, k.Grab, k.Done, k.Find, k.Quit}
	default:
		return []key.Binding{k.Up, k.Down, k.Select, k.Delete, k.Add, k.Edit, k.Find, k.Quit}
	}
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, "["+h.Key+"] "+h.Desc)
	}
	return strings.Join(parts, "  ")
}
