package orion

import "github.com/oliverbestmann/hikari/glimpse"

// Window is implemented by the application for every window it shows.
// Embed WindowDefaults to only implement the callbacks you need.
type Window interface {
	ID() glimpse.WindowID

	// Redraw paints the next frame. An error is fatal and stops the loop.
	Redraw(loop *Loop) (Signal, error)

	CursorMoved(loop *Loop, device glimpse.DeviceID, pos glimpse.PhysicalPosition) Signal
	Touch(loop *Loop, touch glimpse.Touch) Signal
	ModifiersChanged(loop *Loop, mods glimpse.Modifiers) Signal
	KeyboardInput(loop *Loop, device glimpse.DeviceID, event glimpse.KeyEvent, synthetic bool) Signal

	// Resized is called with the new framebuffer size. An error is fatal
	// and stops the loop.
	Resized(loop *Loop, size glimpse.PhysicalSize) (Signal, error)

	CloseRequested(loop *Loop) Signal

	// Destroyed is called exactly once, after which the window is not
	// used by the loop anymore. Release GPU resources here.
	Destroyed(loop *Loop) error
}

// WindowDefaults implements every callback of Window except ID.
type WindowDefaults struct{}

func (WindowDefaults) Redraw(*Loop) (Signal, error) {
	return None, nil
}

func (WindowDefaults) CursorMoved(*Loop, glimpse.DeviceID, glimpse.PhysicalPosition) Signal {
	return None
}

func (WindowDefaults) Touch(*Loop, glimpse.Touch) Signal {
	return None
}

func (WindowDefaults) ModifiersChanged(*Loop, glimpse.Modifiers) Signal {
	return None
}

func (WindowDefaults) KeyboardInput(_ *Loop, _ glimpse.DeviceID, event glimpse.KeyEvent, _ bool) Signal {
	return DefaultKeyboardInput(event)
}

func (WindowDefaults) Resized(*Loop, glimpse.PhysicalSize) (Signal, error) {
	return None, nil
}

// CloseRequested stops the loop.
func (WindowDefaults) CloseRequested(*Loop) Signal {
	return Exit(nil)
}

func (WindowDefaults) Destroyed(*Loop) error {
	return nil
}

// DefaultKeyboardInput stops the loop on Escape or "q".
func DefaultKeyboardInput(event glimpse.KeyEvent) Signal {
	if event.IsNamed(glimpse.KeyEscape) || event.IsCharacter("q") {
		return Exit(nil)
	}

	return None
}
