package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the global keybindings. Views handle their own keys.
type KeyMap struct {
	// Views
	DashboardView key.Binding
	TasksView     key.Binding
	DueView       key.Binding
	CompletedView key.Binding
	InboxView     key.Binding
	NextView      key.Binding

	Help       key.Binding
	ThemeCycle key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		DashboardView: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		TasksView: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tasks"),
		),
		DueView: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "due"),
		),
		CompletedView: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "completed"),
		),
		InboxView: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "inbox"),
		),
		NextView: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "next view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ThemeCycle, k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.DashboardView, k.TasksView, k.DueView, k.CompletedView, k.InboxView},
		{k.NextView, k.ThemeCycle, k.Help, k.Quit},
	}
}
