package campaign

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is matched by a FieldError without a Reason.
	ErrMissingField = errors.New("missing required field")
	// ErrInvalidField is matched by a FieldError whose value is present
	// but unusable.
	ErrInvalidField = errors.New("invalid field")
)

// FieldError names the aggregate field that made a campaign unusable.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Field, ErrMissingField)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool {
	if e.Reason == "" {
		return target == ErrMissingField
	}
	return target == ErrInvalidField
}

func missing(field string) error {
	return &FieldError{Field: field}
}
