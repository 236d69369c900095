package orion

import (
	"github.com/oliverbestmann/hikari/glimpse"
)

// Loop is passed to every callback. It gives access to the platform and
// to the windows managed by the dispatcher.
type Loop struct {
	platform   glimpse.EventLoop
	dispatcher *Dispatcher
}

// CreateWindow opens a new native window. The window receives no events
// until a Window using it is registered.
func (l *Loop) CreateWindow(opts glimpse.WindowOptions) (glimpse.NativeWindow, error) {
	return l.platform.CreateWindow(opts)
}

// Register adds another window to the loop.
func (l *Loop) Register(win Window) error {
	return l.dispatcher.register(win)
}

func (l *Loop) RequestRedraw(id glimpse.WindowID) {
	l.platform.RequestRedraw(id)
}

// Windows returns the number of registered windows.
func (l *Loop) Windows() int {
	return l.dispatcher.windows.len()
}

func (l *Loop) State() State {
	return l.dispatcher.state
}
