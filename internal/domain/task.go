// Package domain contains core business entities and interfaces.
package domain

import "time"

// Validation bounds for task fields, enforced before any network call.
const (
	TitleMaxLen       = 30
	DescriptionMinLen = 10
)

// Task represents a single task owned by the authenticated user.
// The ID is assigned by the server; a task has no ID before creation.
// Fields are ordered to minimize memory padding.
type Task struct {
	Created     time.Time `json:"created_at,omitzero"` // Server-side creation time
	Title       string    `json:"title"`               // Title (required, 1-30 chars)
	Description string    `json:"description"`         // Description (required, >= 10 chars)
	DueDate     Date      `json:"due_date"`            // Due date (required, calendar date)
	Priority    Priority  `json:"priority"`            // low / medium / high
	Status      Status    `json:"status"`              // pending / completed
	ID          int       `json:"id,omitempty"`        // Server-assigned identifier
}

// IsCompleted returns true if the task has been marked completed.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsOverdue returns true if the task is pending and its due date is before today.
func (t *Task) IsOverdue(today Date) bool {
	return t.Status == StatusPending && t.DueDate.Before(today)
}

// Clone returns a copy of the task. Callers receive clones so the cached
// collection can never be mutated from outside the task cache manager.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}

// TaskPatch describes a partial update. Nil fields are left unchanged
// server-side; the JSON body contains only the set fields.
type TaskPatch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	DueDate     *Date     `json:"due_date,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}

// IsEmpty returns true if no field is set.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Priority == nil && p.Status == nil
}
