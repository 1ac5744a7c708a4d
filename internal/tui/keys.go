package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the key bindings for the matrix TUI.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	NextQuadrant key.Binding
	Add          key.Binding
	Edit         key.Binding
	Toggle       key.Binding
	Drop         key.Binding
	Push         key.Binding
	ToggleDate   key.Binding
	Chat         key.Binding
	Focus        key.Binding
	Skip         key.Binding
	Reset        key.Binding
	Help         key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "jump up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "jump down"),
		),
		NextQuadrant: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next quadrant"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("d", "enter"),
			key.WithHelp("d/enter", "done"),
		),
		Drop: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "drop"),
		),
		Push: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "push to next day"),
		),
		ToggleDate: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today/tomorrow"),
		),
		Chat: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "chat"),
		),
		Focus: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "focus"),
		),
		Skip: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "skip"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset timer"),
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

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Drop, k.Edit, k.Chat, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PageUp, k.PageDown},
		{k.NextQuadrant, k.ToggleDate, k.Push, k.Focus},
		{k.Add, k.Edit, k.Toggle, k.Drop},
		{k.Chat, k.Help, k.Quit},
	}
}

func keyIs(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}
