package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"calnote/internal/config"
)

type keyMap struct {
	Quit      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Add       key.Binding
	Today     key.Binding
	Save      key.Binding
	Cancel    key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys(k.Quit, "ctrl+c"), key.WithHelp(label(k.Quit), "quit")),
		PrevMonth: key.NewBinding(key.WithKeys(k.PrevMonth, "pgup"), key.WithHelp(label(k.PrevMonth), "prev month")),
		NextMonth: key.NewBinding(key.WithKeys(k.NextMonth, "pgdown"), key.WithHelp(label(k.NextMonth), "next month")),
		Left:      key.NewBinding(key.WithKeys(k.Left, "left"), key.WithHelp("←/"+label(k.Left), "day")),
		Right:     key.NewBinding(key.WithKeys(k.Right, "right"), key.WithHelp("→/"+label(k.Right), "day")),
		Up:        key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp("↑/"+label(k.Up), "week")),
		Down:      key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp("↓/"+label(k.Down), "week")),
		Select:    key.NewBinding(key.WithKeys(k.Select, k.Confirm), key.WithHelp(label(k.Select), "select")),
		Add:       key.NewBinding(key.WithKeys(k.Add), key.WithHelp(label(k.Add), "add task")),
		Today:     key.NewBinding(key.WithKeys(k.Today), key.WithHelp(label(k.Today), "today")),
		Save:      key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(label(k.Confirm), "save")),
		Cancel:    key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(label(k.Cancel), "cancel")),
	}
}

func label(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func (k keyMap) gridHelp(hasSelection bool) []key.Binding {
	b := []key.Binding{k.Left, k.Up, k.PrevMonth, k.NextMonth, k.Select}
	if hasSelection {
		b = append(b, k.Add)
	}
	return append(b, k.Today, k.Quit)
}

func (k keyMap) draftHelp() []key.Binding {
	return []key.Binding{k.Save, k.Cancel}
}
