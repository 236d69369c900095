package pulse

import (
	"errors"
)

// CaptureValidation runs fn and reports any error it returns as a
// ValidationError. Every wgpu call that creates, encodes or writes
// resources checks its own work in a validation error scope and returns
// what the scope reported, so fn only has to pass those errors on.
// Errors joined with errors.Join end up in a single ValidationError.
func CaptureValidation(fn func() error) error {
	err := fn()
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	return &ValidationError{Message: err.Error(), Err: err}
}
