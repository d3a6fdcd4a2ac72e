package domain

import "strings"

// TaskFilter selects the visible subset of a task collection. Zero values
// mean "no constraint" for that dimension; all set dimensions must match.
type TaskFilter struct {
	Status   Status   // Empty = any status
	Priority Priority // Empty = any priority
	Search   string   // Case-insensitive substring over title or description
}

// IsEmpty returns true if the filter constrains nothing.
func (f TaskFilter) IsEmpty() bool {
	return f.Status == "" && f.Priority == "" && f.Search == ""
}

// Matches reports whether a task satisfies every set dimension of the filter.
func (f TaskFilter) Matches(t *Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// Visible computes the visible subset of tasks under the filter, preserving
// collection order. It is a pure function: the result is recomputed from its
// inputs on every call and never cached.
func Visible(tasks []*Task, filter TaskFilter) []*Task {
	if filter.IsEmpty() {
		return tasks
	}
	visible := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.Matches(t) {
			visible = append(visible, t)
		}
	}
	return visible
}
