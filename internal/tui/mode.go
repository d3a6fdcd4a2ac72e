// Package tui provides the interactive dashboard for taskdeck.
package tui

// Mode represents the current UI mode.
type Mode int

const (
	ModeNormal     Mode = iota // Default navigation mode
	ModeSearch                 // Search input mode
	ModeInputTitle             // Title input mode (for new task)
	ModeInputDesc              // Description input mode (for new task)
	ModeInputDue               // Due date input mode (for new task)
	ModeConfirm                // Confirmation dialog mode
	ModeHelp                   // Help overlay mode
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeInputTitle:
		return "input_title"
	case ModeInputDesc:
		return "input_desc"
	case ModeInputDue:
		return "input_due"
	case ModeConfirm:
		return "confirm"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// IsInputMode returns true if the mode accepts text input.
func (m Mode) IsInputMode() bool {
	switch m {
	case ModeSearch, ModeInputTitle, ModeInputDesc, ModeInputDue:
		return true
	case ModeNormal, ModeConfirm, ModeHelp:
		return false
	}
	return false
}

// ConfirmAction represents the type of action requiring confirmation.
type ConfirmAction int

const (
	ConfirmNone   ConfirmAction = iota
	ConfirmDelete               // Delete the selected task
	ConfirmClear                // Delete every task
)

// String returns a human-readable description of the action.
func (a ConfirmAction) String() string {
	switch a {
	case ConfirmNone:
		return ""
	case ConfirmDelete:
		return "delete"
	case ConfirmClear:
		return "clear"
	}
	return ""
}
