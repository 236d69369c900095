package pulse

import (
	"errors"
	"fmt"
)

var (
	// ErrAdapterUnavailable is returned if no adapter can present to the surface.
	ErrAdapterUnavailable = errors.New("no compatible gpu adapter found")

	// ErrDeviceRequestFailed is returned if the adapter refused to create a device.
	ErrDeviceRequestFailed = errors.New("request gpu device")

	// ErrSurfaceConfiguration is returned if the surface could not be configured
	// with the selected format and size.
	ErrSurfaceConfiguration = errors.New("configure surface")

	// ErrSurfaceSuspended is returned by AcquireFrame while the window has
	// no drawable area, e.g. when it is minimised.
	ErrSurfaceSuspended = errors.New("surface is suspended")

	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("gpu validation failed")
)

// ValidationError is an error the backend reported for a gpu call.
type ValidationError struct {
	// message as reported by the backend
	Message string

	// the error returned by the failing call
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, e.Message)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrValidation}
	}

	return []error{ErrValidation, e.Err}
}
