package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors.
var (
	ErrNotAuthenticated   = errors.New("not authenticated (run 'taskdeck login' first)")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidResponse    = errors.New("invalid server response")
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
	ErrNoSession          = errors.New("no stored session")
	ErrServer             = errors.New("server error")
	ErrNetwork            = errors.New("network error")
	ErrEmptyDraftFile     = errors.New("draft file contains no tasks")
)

// ValidationError reports per-field validation failures. The map key is the
// field name as it appears on the wire (title, description, due_date, ...).
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty ValidationError.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a failure message for a field.
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors returns true if any field failed validation.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// Error joins the field messages in a stable order.
func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return strings.Join(parts, "; ")
}

// ConflictError reports a registration conflict, carrying the server's
// field-specific message when one was present.
type ConflictError struct {
	Field   string // Conflicting field (username, email), may be empty
	Message string
}

// Error returns the conflict message.
func (e *ConflictError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}
