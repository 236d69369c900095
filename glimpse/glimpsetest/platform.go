// Package glimpsetest provides a scripted glimpse.Platform for tests of
// code that handles window events.
package glimpsetest

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hikari/glimpse"
)

// Step is one iteration of the scripted event loop. Events queued
// by a step are delivered before AboutToWait is called.
type Step func(p *Platform, handler glimpse.Handler)

// Platform runs a fixed script instead of waiting for native events.
// Windows get ids starting at 1 in the order they are created.
type Platform struct {
	Script []Step

	// scale factor of newly created windows, defaults to 1
	ScaleFactor float64

	// CreateWindow fails with this error if set
	CreateWindowErr error

	// Run returns this error after the loop stopped
	RunErr error

	Windows []*Window

	// true if the script ran out of steps before Exit was called
	Exhausted bool

	AboutToWaitCalls int
	ExitingCalls     int

	queue   glimpse.EventQueue
	running bool
	exit    bool
}

func (p *Platform) Run(handler glimpse.Handler) error {
	if p.running {
		return errors.New("platform is already running")
	}

	p.running = true
	defer func() { p.running = false }()

	handler.Init(p)

	if !p.exit {
		handler.Resumed(p)
	}

	steps := p.Script

	for !p.exit {
		p.deliver(handler)
		if p.exit {
			break
		}

		p.AboutToWaitCalls += 1
		handler.AboutToWait(p)

		if p.exit || len(steps) == 0 {
			break
		}

		step := steps[0]
		steps = steps[1:]

		step(p, handler)
	}

	p.Exhausted = !p.exit

	p.ExitingCalls += 1
	handler.Exiting(p)

	return p.RunErr
}

func (p *Platform) deliver(handler glimpse.Handler) {
	for !p.exit {
		ev, ok := p.queue.Pop()
		if !ok {
			break
		}

		handler.WindowEvent(p, ev.Window, ev.Event)

		if _, ok := ev.Event.(glimpse.Destroyed); ok {
			p.Window(ev.Window).Released = true
		}
	}

	for _, id := range p.queue.TakeRedraws() {
		if p.exit {
			return
		}

		win := p.Window(id)
		if win == nil || win.DestroyCalled {
			continue
		}

		handler.WindowEvent(p, id, glimpse.RedrawRequested{})
	}
}

func (p *Platform) CreateWindow(opts glimpse.WindowOptions) (glimpse.NativeWindow, error) {
	if !p.running {
		return nil, glimpse.ErrNotRunning
	}

	if p.CreateWindowErr != nil {
		return nil, p.CreateWindowErr
	}

	scale := p.ScaleFactor
	if scale == 0 {
		scale = 1
	}

	win := &Window{
		platform: p,
		id:       glimpse.WindowID(len(p.Windows) + 1),
		Options:  opts,
		Size:     opts.Size.ToPhysical(scale),
		Scale:    scale,
	}

	p.Windows = append(p.Windows, win)

	return win, nil
}

func (p *Platform) RequestRedraw(id glimpse.WindowID) {
	if win := p.Window(id); win != nil && !win.DestroyCalled {
		p.queue.RequestRedraw(id)
	}
}

func (p *Platform) Exit() {
	p.exit = true
}

func (p *Platform) Exiting() bool {
	return p.exit
}

// Window returns the window with the given id or nil.
func (p *Platform) Window(id glimpse.WindowID) *Window {
	idx := int(id) - 1
	if idx < 0 || idx >= len(p.Windows) {
		return nil
	}

	return p.Windows[idx]
}

// Send queues an event for the window.
func Send(id glimpse.WindowID, event glimpse.WindowEvent) Step {
	return func(p *Platform, _ glimpse.Handler) {
		p.queue.Push(id, event)
	}
}

// Resize changes the size of the window and queues the matching Resized event.
func Resize(id glimpse.WindowID, width, height uint32) Step {
	return func(p *Platform, _ glimpse.Handler) {
		size := glimpse.PhysicalSize{Width: width, Height: height}
		p.Window(id).Size = size
		p.queue.Push(id, glimpse.Resized{Size: size})
	}
}

// Redraw requests a redraw of the window.
func Redraw(id glimpse.WindowID) Step {
	return func(p *Platform, _ glimpse.Handler) {
		p.RequestRedraw(id)
	}
}

// Key queues a key press.
func Key(id glimpse.WindowID, key glimpse.Key) Step {
	return Send(id, glimpse.KeyboardInput{Event: glimpse.KeyEvent{Key: key}})
}

// Char queues the press of a key producing text.
func Char(id glimpse.WindowID, text string) Step {
	ev := glimpse.KeyEvent{Key: glimpse.KeyCharacter, Text: text}
	return Send(id, glimpse.KeyboardInput{Event: ev})
}

// Close queues a close request, as if the user clicked the close button.
func Close(id glimpse.WindowID) Step {
	return Send(id, glimpse.CloseRequested{})
}

// Resume signals readiness again, as mobile platforms do after a suspend.
func Resume() Step {
	return func(p *Platform, handler glimpse.Handler) {
		handler.Resumed(p)
	}
}

// Idle is an iteration without any new events.
func Idle() Step {
	return func(*Platform, glimpse.Handler) {}
}

// Window is a fake native window.
type Window struct {
	platform *Platform
	id       glimpse.WindowID

	Options glimpse.WindowOptions
	Size    glimpse.PhysicalSize
	Scale   float64

	RedrawRequests int

	// Destroy was called
	DestroyCalled bool

	// the Destroyed event was delivered
	Released bool
}

func (w *Window) ID() glimpse.WindowID {
	return w.id
}

func (w *Window) InnerSize() glimpse.PhysicalSize {
	return w.Size
}

func (w *Window) ScaleFactor() float64 {
	return w.Scale
}

func (w *Window) RequestRedraw() {
	w.RedrawRequests += 1
	w.platform.RequestRedraw(w.id)
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return &wgpu.SurfaceDescriptor{}
}

func (w *Window) Destroy() {
	if w.DestroyCalled {
		return
	}

	w.DestroyCalled = true
	w.platform.queue.Close(w.id)
}
