package timeentry

import "errors"

// ErrDailyCapExceeded is returned when an entry would push a date's total past MaxHoursPerDay.
var ErrDailyCapExceeded = errors.New("Total hours per date cannot exceed 24.")

// ValidationError carries a single user-facing message for a rejected input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) *ValidationError { return &ValidationError{Message: msg} }
