package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Colors defines the color palette for the dashboard.
var Colors = struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Background lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color

	Pending   lipgloss.Color
	Completed lipgloss.Color
	Overdue   lipgloss.Color

	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color
}{
	Primary:    lipgloss.Color("#6C5CE7"), // Purple
	Secondary:  lipgloss.Color("#A29BFE"), // Lavender
	Muted:      lipgloss.Color("#636E72"), // Gray
	Error:      lipgloss.Color("#D63031"), // Red
	Success:    lipgloss.Color("#00B894"), // Green
	Warning:    lipgloss.Color("#FDCB6E"), // Yellow
	Background: lipgloss.Color("#2D3436"), // Dark gray

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray

	Pending:   lipgloss.Color("#74B9FF"), // Light blue
	Completed: lipgloss.Color("#00B894"), // Green
	Overdue:   lipgloss.Color("#D63031"), // Red

	PriorityLow:    lipgloss.Color("#636E72"), // Gray
	PriorityMedium: lipgloss.Color("#FDCB6E"), // Yellow
	PriorityHigh:   lipgloss.Color("#D63031"), // Red
}

// Styles contains all the lipgloss styles for the dashboard.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	TaskTitle          lipgloss.Style
	TaskTitleSelected  lipgloss.Style
	TaskDesc           lipgloss.Style
	TaskID             lipgloss.Style
	SelectionIndicator lipgloss.Style

	StatusPending   lipgloss.Style
	StatusCompleted lipgloss.Style
	DueNormal       lipgloss.Style
	DueOverdue      lipgloss.Style

	PriorityLow    lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityHigh   lipgloss.Style

	FilterBar  lipgloss.Style
	ErrorBar   lipgloss.Style
	Help       lipgloss.Style
	Dialog     lipgloss.Style
	InputLabel lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App:    lipgloss.NewStyle().Padding(1, 2),
		Header: lipgloss.NewStyle().Foreground(Colors.Primary).Bold(true),

		TaskTitle:          lipgloss.NewStyle().Foreground(Colors.TitleNormal),
		TaskTitleSelected:  lipgloss.NewStyle().Foreground(Colors.TitleSelected),
		TaskDesc:           lipgloss.NewStyle().Foreground(Colors.DescNormal),
		TaskID:             lipgloss.NewStyle().Foreground(Colors.Muted),
		SelectionIndicator: lipgloss.NewStyle().Foreground(Colors.Primary),

		StatusPending:   lipgloss.NewStyle().Foreground(Colors.Pending),
		StatusCompleted: lipgloss.NewStyle().Foreground(Colors.Completed),
		DueNormal:       lipgloss.NewStyle().Foreground(Colors.Muted),
		DueOverdue:      lipgloss.NewStyle().Foreground(Colors.Overdue).Bold(true),

		PriorityLow:    lipgloss.NewStyle().Foreground(Colors.PriorityLow),
		PriorityMedium: lipgloss.NewStyle().Foreground(Colors.PriorityMedium),
		PriorityHigh:   lipgloss.NewStyle().Foreground(Colors.PriorityHigh),

		FilterBar: lipgloss.NewStyle().Foreground(Colors.Secondary),
		ErrorBar:  lipgloss.NewStyle().Foreground(Colors.Error).Bold(true),
		Help:      lipgloss.NewStyle().Foreground(Colors.Muted),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(1, 2),
		InputLabel: lipgloss.NewStyle().Foreground(Colors.Secondary).Bold(true),
	}
}

// StatusStyle returns the style for a task status.
func (s Styles) StatusStyle(status domain.Status) lipgloss.Style {
	if status == domain.StatusCompleted {
		return s.StatusCompleted
	}
	return s.StatusPending
}

// PriorityStyle returns the style for a task priority.
func (s Styles) PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityHigh:
		return s.PriorityHigh
	case domain.PriorityLow:
		return s.PriorityLow
	default:
		return s.PriorityMedium
	}
}

// StatusIcon returns the icon for a task status.
func StatusIcon(status domain.Status) string {
	if status == domain.StatusCompleted {
		return "✓"
	}
	return "○"
}
