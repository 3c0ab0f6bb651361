package form

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired     = errors.New("title is required")
	ErrTimeRequired      = errors.New("start and end time are required")
	ErrStartDateRequired = errors.New("start date is required")
	ErrEndBeforeStart    = errors.New("end is before start")
	ErrInvalidTime       = errors.New("time is not a selectable option")
	ErrNotEditing        = errors.New("no task is being edited")
)

// ValidationError reports which form field blocked a submission.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
