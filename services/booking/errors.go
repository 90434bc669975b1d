package booking

import (
	"errors"
	"fmt"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrPastDate              = errors.New("date is in the past")
	ErrAdvanceWindowExceeded = errors.New("date is beyond the advance booking window")
	ErrNotFound              = errors.New("not found")
)

// ValidationError reports a missing or malformed request parameter.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func newValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

type PastDateError struct {
	Date  string
	Today string
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("date %s is before today (%s)", e.Date, e.Today)
}

func (e *PastDateError) Is(target error) bool { return target == ErrPastDate }

type AdvanceWindowExceededError struct {
	Date    string
	MaxDays int
}

func (e *AdvanceWindowExceededError) Error() string {
	return fmt.Sprintf("date %s is more than %d days ahead", e.Date, e.MaxDays)
}

func (e *AdvanceWindowExceededError) Is(target error) bool { return target == ErrAdvanceWindowExceeded }

// NotFoundError names the missing staff, vendor or package.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
