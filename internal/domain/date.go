package domain

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the wire format for calendar dates ("YYYY-MM-DD").
const dateLayout = "2006-01-02"

// Date is a calendar date without a time component.
// It marshals to and from the API's "YYYY-MM-DD" string form.
type Date struct {
	t time.Time
}

// NewDate creates a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return Date{t: t}, nil
}

// IsZero returns true if the date is unset.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is an earlier calendar date than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// Equal reports whether two dates are the same calendar date.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String returns the "YYYY-MM-DD" form, or "" for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

// MarshalJSON encodes the date as a JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a JSON string or null.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalYAML encodes the date as its string form.
func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

// UnmarshalYAML decodes a "YYYY-MM-DD" scalar.
func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
