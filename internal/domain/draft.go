package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// TaskDraft is user input for creating or fully replacing a task.
// Fields are validated locally before any request is issued.
type TaskDraft struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	DueDate     Date     `json:"due_date" yaml:"due_date"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Status      Status   `json:"status" yaml:"status"`
}

// ApplyDefaults fills unset priority and status with their defaults.
func (d *TaskDraft) ApplyDefaults() {
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	if d.Status == "" {
		d.Status = StatusPending
	}
}

// Validate checks the draft against the field rules. today is the current
// calendar date; a due date before it is rejected. Returns nil when valid.
func (d *TaskDraft) Validate(today Date) *ValidationError {
	verr := NewValidationError()

	title := strings.TrimSpace(d.Title)
	if title == "" {
		verr.Add("title", "title is required")
	} else if utf8.RuneCountInString(title) > TitleMaxLen {
		verr.Add("title", fmt.Sprintf("title must be at most %d characters", TitleMaxLen))
	}

	if utf8.RuneCountInString(strings.TrimSpace(d.Description)) < DescriptionMinLen {
		verr.Add("description", fmt.Sprintf("description must be at least %d characters", DescriptionMinLen))
	}

	switch {
	case d.DueDate.IsZero():
		verr.Add("due_date", "due date is required")
	case d.DueDate.Before(today):
		verr.Add("due_date", "due date must not be in the past")
	}

	if !d.Priority.IsValid() {
		verr.Add("priority", fmt.Sprintf("priority must be one of %v", AllPriorities()))
	}
	if !d.Status.IsValid() {
		verr.Add("status", fmt.Sprintf("status must be one of %v", AllStatuses()))
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// ParseTaskDrafts parses a YAML document containing one or more task drafts.
//
// Format:
//
//	- title: Pay rent
//	  description: Send the monthly payment
//	  due_date: 2099-01-01
//	  priority: high
//
//	- title: Water plants
//	  description: Both balcony planters
//	  due_date: 2099-02-01
//
// Priority and status fall back to their defaults when omitted.
// Drafts are not validated here; callers validate before submission.
func ParseTaskDrafts(content []byte) ([]TaskDraft, error) {
	var drafts []TaskDraft
	if err := yaml.Unmarshal(content, &drafts); err != nil {
		return nil, fmt.Errorf("parse draft file: %w", err)
	}
	if len(drafts) == 0 {
		return nil, ErrEmptyDraftFile
	}
	for i := range drafts {
		drafts[i].ApplyDefaults()
	}
	return drafts, nil
}
