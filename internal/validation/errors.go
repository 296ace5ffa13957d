package validation

import (
	"errors"
	"fmt"
)

var (
	ErrZoneRequired          = errors.New("a zone must be selected")
	ErrUnknownType           = errors.New("unknown rule type")
	ErrMissingWindow         = errors.New("rule window is missing")
	ErrNoDays                = errors.New("at least one day must be selected")
	ErrInvalidDay            = errors.New("invalid weekday")
	ErrTimeOutOfRange        = errors.New("time of day out of range")
	ErrNonAdjacentContinuous = errors.New("continuous mode requires consecutive days")
	ErrEndNotAfterStart      = errors.New("end must be after start")
	ErrEndInPast             = errors.New("end is in the past")
)

// ValidationError ties a rejected field to the sentinel describing why.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
