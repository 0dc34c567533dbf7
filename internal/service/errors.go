package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrUnauthenticated is returned when no user identity accompanies a request.
	ErrUnauthenticated = errors.New("authentication credentials were not provided")

	// ErrNotFound is returned when a record is missing or owned by someone else.
	ErrNotFound = errors.New("not found")
)

// NonFieldErrorsKey is the key under which cross-field validation messages are reported.
const NonFieldErrorsKey = "non_field_errors"

// Field-level validation messages.
const (
	MsgRequired   = "This field is required."
	MsgNull       = "This field may not be null."
	MsgDateFormat = "Date has wrong format. Use one of these formats instead: YYYY-MM-DD."
	MsgEmail      = "Enter a valid email address."
)

// ValidationError collects input problems. Field errors are keyed by field name;
// errors that concern a combination of fields go under NonFieldErrorsKey.
type ValidationError struct {
	Errors map[string][]string
}

// NewNonFieldError returns a ValidationError carrying a single cross-field message.
func NewNonFieldError(msg string) *ValidationError {
	v := &ValidationError{}
	v.Add(NonFieldErrorsKey, msg)
	return v
}

// Add records msg against field.
func (v *ValidationError) Add(field, msg string) {
	if v.Errors == nil {
		v.Errors = make(map[string][]string)
	}
	v.Errors[field] = append(v.Errors[field], msg)
}

// HasErrors reports whether any message was recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// NonField returns the cross-field messages.
func (v *ValidationError) NonField() []string {
	return v.Errors[NonFieldErrorsKey]
}

func (v *ValidationError) Error() string {
	if msgs := v.NonField(); len(msgs) > 0 {
		return strings.Join(msgs, " ")
	}

	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(v.Errors[field], " "))
	}
	return strings.Join(parts, "; ")
}
