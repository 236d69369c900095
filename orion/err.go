package orion

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hikari/glimpse"
)

var (
	// ErrMissingWindow is the cause of a MissingWindowError.
	ErrMissingWindow = errors.New("event for unregistered window")

	// ErrDuplicateWindow signals that a window identity was registered twice.
	ErrDuplicateWindow = errors.New("window is already registered")

	// ErrLoopNotRunning is returned by Loop.Register before the first window
	// was created.
	ErrLoopNotRunning = errors.New("event loop has no first window yet")

	// ErrLoopDraining is returned by Loop.Register once the loop is shutting down.
	ErrLoopDraining = errors.New("event loop is shutting down")
)

// MissingWindowError is raised as a panic if the platform delivers an event
// for a window that was never registered, or that was already destroyed.
type MissingWindowError struct {
	Window glimpse.WindowID
	Event  glimpse.WindowEvent
}

func (e *MissingWindowError) Error() string {
	return fmt.Sprintf("%s: %T for %s", ErrMissingWindow, e.Event, e.Window)
}

func (e *MissingWindowError) Unwrap() error {
	return ErrMissingWindow
}

// Handle panics if err is not nil. Use it for errors that indicate a bug.
func Handle(err error, desc string, args ...any) {
	if err != nil {
		text := fmt.Sprintf(desc, args...)
		panic(fmt.Errorf("%s: %w", text, err))
	}
}

func logError(msg string, err error, attrs ...any) {
	attrs = append(attrs, slog.String("err", err.Error()))
	slog.Warn(msg, attrs...)
}
