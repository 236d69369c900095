package glimpse

import (
	"fmt"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
)

// WindowID identifies a native window for the lifetime of the process.
// A platform never hands out the same id twice.
type WindowID uint64

func (id WindowID) String() string {
	return fmt.Sprintf("Window(%d)", uint64(id))
}

// DeviceID identifies the input device that produced an event. Platforms
// that can not tell devices apart always report zero.
type DeviceID uint64

// PhysicalSize is a size in actual pixels of the framebuffer.
type PhysicalSize struct {
	Width, Height uint32
}

// IsZero reports whether one of the dimensions is zero, as it happens
// when a window gets minimised.
func (s PhysicalSize) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

func (s PhysicalSize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// LogicalSize is a size in screen coordinates, independent of the scale
// factor of the monitor the window is shown on.
type LogicalSize struct {
	Width, Height float64
}

func (s LogicalSize) ToPhysical(scaleFactor float64) PhysicalSize {
	return PhysicalSize{
		Width:  uint32(math.Round(s.Width * scaleFactor)),
		Height: uint32(math.Round(s.Height * scaleFactor)),
	}
}

type PhysicalPosition struct {
	X, Y float64
}

type LogicalPosition struct {
	X, Y float64
}

type WindowOptions struct {
	Title string

	// initial inner size of the window
	Size LogicalSize

	// initial position of the window. The platform decides
	// if this is nil.
	Position *LogicalPosition

	// do not allow the user to resize the window
	FixedSize bool
}

// NativeWindow is a window created by a Platform.
type NativeWindow interface {
	ID() WindowID

	// InnerSize returns the current size of the drawable area in pixels
	InnerSize() PhysicalSize

	ScaleFactor() float64

	// RequestRedraw asks the platform to deliver a RedrawRequested event
	// for this window during the next iteration of the event loop.
	RequestRedraw()

	// SurfaceDescriptor describes the native handle of this window. The handle
	// stays valid until the Destroyed event for this window was delivered.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// Destroy closes the window. The platform delivers a Destroyed event and
	// releases the native handle afterward. Calling Destroy more than once
	// is a no-op.
	Destroy()
}
