package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	New      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Complete key.Binding
	Export   key.Binding
	Today    key.Binding
	Prev     key.Binding
	Next     key.Binding
	PrevItem key.Binding
	NextItem key.Binding
	Picker   key.Binding
	Sidebar  key.Binding
	Panel    key.Binding
	Focus    key.Binding
	Rename   key.Binding
	Toggle   key.Binding
	Refresh  key.Binding
	View1    key.Binding
	View2    key.Binding
	View3    key.Binding
	View4    key.Binding
	View5    key.Binding
	View6    key.Binding
	Tab      key.Binding
	Help     key.Binding
	Enter    key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new"),
	),
	Edit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Complete: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "complete task"),
	),
	Export: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "export"),
	),
	Today: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "today"),
	),
	Prev: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "previous page"),
	),
	Next: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "next page"),
	),
	PrevItem: key.NewBinding(
		key.WithKeys(","),
		key.WithHelp(",", "previous item"),
	),
	NextItem: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "next item"),
	),
	Picker: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to date"),
	),
	Sidebar: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sidebar"),
	),
	Panel: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "calendars/tasks"),
	),
	Focus: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "focus sidebar"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rename"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	View1: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "day"),
	),
	View2: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "week"),
	),
	View3: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "4 days"),
	),
	View4: key.NewBinding(
		key.WithKeys("4"),
		key.WithHelp("4", "month"),
	),
	View5: key.NewBinding(
		key.WithKeys("5"),
		key.WithHelp("5", "year"),
	),
	View6: key.NewBinding(
		key.WithKeys("6"),
		key.WithHelp("6", "schedule"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
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
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.New, k.Edit, k.Prev, k.Next, k.Today, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.New, k.Edit, k.Delete, k.Complete},
		{k.Prev, k.Next, k.Today, k.Picker, k.PrevItem, k.NextItem},
		{k.View1, k.View2, k.View3, k.View4, k.View5, k.View6, k.Tab},
		{k.Sidebar, k.Panel, k.Focus, k.Export, k.Refresh},
		{k.Up, k.Down, k.Left, k.Right, k.Back, k.Quit},
	}
}
