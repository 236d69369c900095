package glimpse

// WindowEvent is one of the event types defined in this package.
type WindowEvent interface {
	windowEvent()
}

type RedrawRequested struct{}

type CursorMoved struct {
	Device   DeviceID
	Position PhysicalPosition
}

type TouchPhase uint8

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

type Touch struct {
	Device   DeviceID
	Phase    TouchPhase
	Location PhysicalPosition

	// identifies the finger for the duration of a touch
	Finger uint64
}

type ModifiersChanged struct {
	Modifiers Modifiers
}

type KeyboardInput struct {
	Device DeviceID
	Event  KeyEvent

	// true if the event was generated by the platform, e.g. for keys
	// that were already held down when a window gained focus
	Synthetic bool
}

// Resized carries the new size of the framebuffer.
type Resized struct {
	Size PhysicalSize
}

type CloseRequested struct{}

// Destroyed is the last event delivered for a window.
type Destroyed struct{}

func (RedrawRequested) windowEvent()  {}
func (CursorMoved) windowEvent()      {}
func (Touch) windowEvent()            {}
func (ModifiersChanged) windowEvent() {}
func (KeyboardInput) windowEvent()    {}
func (Resized) windowEvent()          {}
func (CloseRequested) windowEvent()   {}
func (Destroyed) windowEvent()        {}

// EventLoop is the view of a running Platform that a Handler gets to see.
type EventLoop interface {
	CreateWindow(opts WindowOptions) (NativeWindow, error)

	RequestRedraw(id WindowID)

	// Exit stops the event loop. No further events are delivered
	// after the currently running callback returns, except for
	// the final call to Handler.Exiting.
	Exit()

	Exiting() bool
}

// Handler receives the events of a Platform. All methods are called
// on the same goroutine, one after another.
type Handler interface {
	// Init is called exactly once before the first call to Resumed.
	Init(loop EventLoop)

	// Resumed signals that the platform is ready to create windows.
	Resumed(loop EventLoop)

	WindowEvent(loop EventLoop, id WindowID, event WindowEvent)

	// AboutToWait is called after all pending events were delivered
	// and before the platform blocks waiting for new events.
	AboutToWait(loop EventLoop)

	// Exiting is called once when the loop stops.
	Exiting(loop EventLoop)
}

// Platform drives a Handler with the events of the native window system.
type Platform interface {
	// Run blocks until the event loop exits.
	Run(handler Handler) error
}
