package domain

// Status represents the completion state of a task.
type Status string

const (
	StatusPending   Status = "pending"   // Not yet done
	StatusCompleted Status = "completed" // Done
)

// AllStatuses returns all valid status values.
func AllStatuses() []Status {
	return []Status{StatusPending, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Display returns a human-readable representation of the status.
func (s Status) Display() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Priority represents the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities returns all valid priority values, lowest first.
func AllPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Display returns a human-readable representation of the priority.
func (p Priority) Display() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// Rank returns a sortable weight for the priority (higher is more urgent).
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
