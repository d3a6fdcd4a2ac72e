package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTask_IsCompleted(t *testing.T) {
	assert.False(t, (&Task{Status: StatusPending}).IsCompleted())
	assert.True(t, (&Task{Status: StatusCompleted}).IsCompleted())
}

func TestTask_IsOverdue(t *testing.T) {
	today := NewDate(2026, time.September, 1)

	overdue := &Task{Status: StatusPending, DueDate: NewDate(2026, time.August, 1)}
	assert.True(t, overdue.IsOverdue(today))

	upcoming := &Task{Status: StatusPending, DueDate: NewDate(2026, time.October, 1)}
	assert.False(t, upcoming.IsOverdue(today))

	// Completed tasks are never overdue.
	done := &Task{Status: StatusCompleted, DueDate: NewDate(2026, time.August, 1)}
	assert.False(t, done.IsOverdue(today))
}

func TestTask_Clone(t *testing.T) {
	original := &Task{ID: 1, Title: "Pay rent"}
	clone := original.Clone()

	clone.Title = "changed"
	assert.Equal(t, "Pay rent", original.Title)
}

func TestTaskPatch_IsEmpty(t *testing.T) {
	assert.True(t, TaskPatch{}.IsEmpty())

	status := StatusCompleted
	assert.False(t, TaskPatch{Status: &status}.IsEmpty())
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusCompleted.IsValid())
	assert.False(t, Status("archived").IsValid())
}

func TestPriority_Rank(t *testing.T) {
	assert.Greater(t, PriorityHigh.Rank(), PriorityMedium.Rank())
	assert.Greater(t, PriorityMedium.Rank(), PriorityLow.Rank())
}

func TestValidationError_Error(t *testing.T) {
	verr := NewValidationError()
	verr.Add("title", "title is required")
	verr.Add("description", "description must be at least 10 characters")

	// Stable field order regardless of insertion order.
	assert.Equal(t, "description: description must be at least 10 characters; title: title is required", verr.Error())
}

func TestConflictError_Error(t *testing.T) {
	withField := &ConflictError{Field: "email", Message: "already in use"}
	assert.Equal(t, "email: already in use", withField.Error())

	withoutField := &ConflictError{Message: "registration failed"}
	assert.Equal(t, "registration failed", withoutField.Error())
}

func TestIdentity_DisplayName(t *testing.T) {
	assert.Equal(t, "Demo User", Identity{Username: "demo", Name: "Demo User"}.DisplayName())
	assert.Equal(t, "demo", Identity{Username: "demo", Email: "demo@example.com"}.DisplayName())
	assert.Equal(t, "demo@example.com", Identity{Email: "demo@example.com"}.DisplayName())
}
