package tui

import "github.com/taskdeck/taskdeck/internal/domain"

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when the task collection has been loaded.
type MsgTasksLoaded struct {
	Tasks []*domain.Task
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskCreated is sent when a new task is created.
type MsgTaskCreated struct {
	Task *domain.Task
}

func (MsgTaskCreated) sealed() {}

// MsgTaskUpdated is sent when a task is updated.
type MsgTaskUpdated struct {
	Task *domain.Task
}

func (MsgTaskUpdated) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID int
}

func (MsgTaskDeleted) sealed() {}

// MsgTasksCleared is sent when every task has been deleted.
type MsgTasksCleared struct{}

func (MsgTasksCleared) sealed() {}

// MsgSearchDebounce is sent after the search debounce interval. Gen is
// compared against the model's current generation so that only the latest
// keystroke applies the filter.
type MsgSearchDebounce struct {
	Gen int
}

func (MsgSearchDebounce) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
