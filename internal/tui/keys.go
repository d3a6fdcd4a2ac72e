package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the dashboard.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding

	// Task management
	New    key.Binding // Create new task
	Done   key.Binding // Toggle completed/pending
	Delete key.Binding // Delete task
	Clear  key.Binding // Delete every task

	// Filtering
	Search        key.Binding // Enter search mode
	CycleStatus   key.Binding // Cycle status filter
	CyclePriority key.Binding // Cycle priority filter
	ResetFilters  key.Binding // Drop all filters
	Refresh       key.Binding // Reload from the server

	// General
	Help    key.Binding // Show help
	Quit    key.Binding // Quit application
	Escape  key.Binding // Cancel/back
	Confirm key.Binding // Confirm action (in confirm mode)
	Enter   key.Binding // Submit input
}

// DefaultKeyMap returns the default keybindings.
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
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Done: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "toggle done"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status filter"),
		),
		CyclePriority: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "priority filter"),
		),
		ResetFilters: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "reset filters"),
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
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
	}
}

// ShortHelp returns keybindings to show in the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.New, k.Done, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},                                       // Navigation
		{k.New, k.Done, k.Delete, k.Clear},                   // Task management
		{k.Search, k.CycleStatus, k.CyclePriority, k.ResetFilters, k.Refresh}, // Filtering
		{k.Help, k.Quit},                                     // General
	}
}
