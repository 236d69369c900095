package orion

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/hikari/glimpse"
)

//go:generate go tool stringer -type=State -trimprefix=State
type State uint8

const (
	// StateIdle is the state before the first window was created.
	StateIdle State = iota
	StateRunning
	StateDraining
	StateTerminated
)

// Dispatcher routes platform events to the registered windows and decides
// when the loop ends. It implements glimpse.Handler.
type Dispatcher struct {
	app     App
	state   State
	windows registry
	frames  map[glimpse.WindowID]*FrameTimes
	outcome error

	loop Loop
}

func NewDispatcher(app App) *Dispatcher {
	d := &Dispatcher{
		app:     app,
		windows: newRegistry(),
		frames:  map[glimpse.WindowID]*FrameTimes{},
	}

	d.loop.dispatcher = d

	return d
}

func (d *Dispatcher) State() State {
	return d.state
}

// Outcome is the error the loop terminated with, or nil after a clean exit.
func (d *Dispatcher) Outcome() error {
	return d.outcome
}

func (d *Dispatcher) bind(platform glimpse.EventLoop) *Loop {
	d.loop.platform = platform
	return &d.loop
}

func (d *Dispatcher) Init(platform glimpse.EventLoop) {
	loop := d.bind(platform)

	if init, ok := d.app.(Initializer); ok {
		d.apply(init.EventLoopInit(loop))
	}
}

func (d *Dispatcher) Resumed(platform glimpse.EventLoop) {
	loop := d.bind(platform)

	if d.state == StateDraining || d.state == StateTerminated {
		return
	}

	if d.windows.len() > 0 {
		slog.Debug("Resumed with open windows, nothing to do")
		return
	}

	win, err := d.app.CreateFirstWindow(loop)
	if err != nil {
		d.drain(err)
		return
	}

	d.windows.insert(win)

	slog.Debug("Created first window", slog.Any("window", win.ID()))

	d.state = StateRunning
}

func (d *Dispatcher) register(win Window) error {
	switch d.state {
	case StateIdle:
		// the first window must come from App.CreateFirstWindow
		return ErrLoopNotRunning
	case StateDraining, StateTerminated:
		return ErrLoopDraining
	}

	if err := d.windows.add(win); err != nil {
		return err
	}

	slog.Debug("Registered window", slog.Any("window", win.ID()))

	return nil
}

func (d *Dispatcher) WindowEvent(platform glimpse.EventLoop, id glimpse.WindowID, event glimpse.WindowEvent) {
	loop := d.bind(platform)

	if d.state != StateRunning {
		slog.Debug("Dropping event", slog.Any("window", id), slog.String("state", d.state.String()))
		return
	}

	win, ok := d.windows.lookup(id)
	if !ok {
		panic(&MissingWindowError{Window: id, Event: event})
	}

	switch ev := event.(type) {
	case glimpse.RedrawRequested:
		d.tickFrame(id)

		signal, err := win.Redraw(loop)
		if err != nil {
			d.drain(fmt.Errorf("redraw %s: %w", id, err))
			return
		}

		d.apply(signal)

	case glimpse.CursorMoved:
		d.apply(win.CursorMoved(loop, ev.Device, ev.Position))

	case glimpse.Touch:
		d.apply(win.Touch(loop, ev))

	case glimpse.ModifiersChanged:
		d.apply(win.ModifiersChanged(loop, ev.Modifiers))

	case glimpse.KeyboardInput:
		d.apply(win.KeyboardInput(loop, ev.Device, ev.Event, ev.Synthetic))

	case glimpse.Resized:
		signal, err := win.Resized(loop, ev.Size)
		if err != nil {
			d.drain(fmt.Errorf("resize %s to %s: %w", id, ev.Size, err))
			return
		}

		d.apply(signal)

	case glimpse.CloseRequested:
		d.apply(win.CloseRequested(loop))

	case glimpse.Destroyed:
		d.windows.remove(id)
		delete(d.frames, id)

		slog.Debug("Window destroyed", slog.Any("window", id))

		if err := win.Destroyed(loop); err != nil {
			d.drain(fmt.Errorf("destroy %s: %w", id, err))
		}

	default:
		slog.Warn("Unknown window event", slog.Any("window", id), slog.String("event", fmt.Sprintf("%T", event)))
	}
}

func (d *Dispatcher) AboutToWait(platform glimpse.EventLoop) {
	d.bind(platform)

	if d.state == StateRunning && d.windows.len() == 0 {
		slog.Debug("All windows are closed")
		d.drain(nil)
	}
}

func (d *Dispatcher) Exiting(platform glimpse.EventLoop) {
	d.bind(platform)

	// the platform stopped without an exit signal
	if d.state != StateTerminated {
		d.drain(nil)
	}

	slog.Debug("Event loop exited", slog.Any("outcome", d.outcome))
}

func (d *Dispatcher) apply(signal Signal) {
	if signal.IsExit() {
		d.drain(signal.Err())
	}
}

// drain stops the platform and destroys all remaining windows. Only the
// error of the first call is kept.
func (d *Dispatcher) drain(err error) {
	if d.state == StateDraining || d.state == StateTerminated {
		if err != nil {
			logError("Discarding error after exit was requested", err)
		}

		return
	}

	d.outcome = err
	d.state = StateDraining

	if d.loop.platform != nil {
		d.loop.platform.Exit()
	}

	for _, id := range d.windows.ids() {
		win := d.windows.remove(id)

		if err := win.Destroyed(&d.loop); err != nil {
			logError("Failed to destroy window during shutdown", err, slog.Any("window", id))
		}
	}

	clear(d.frames)

	d.state = StateTerminated
}

func (d *Dispatcher) tickFrame(id glimpse.WindowID) {
	times, ok := d.frames[id]
	if !ok {
		times = &FrameTimes{}
		d.frames[id] = times
	}

	if times.Tick() {
		slog.Debug("Frame times",
			slog.Any("window", id),
			slog.Float64("fps", times.FPS()),
			slog.Duration("avg", times.AverageDuration),
			slog.Duration("max", times.MaxDuration),
		)
	}
}
