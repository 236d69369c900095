package orion

import (
	"errors"
	"strings"
	"testing"

	"github.com/oliverbestmann/hikari/glimpse"
	"github.com/oliverbestmann/hikari/glimpse/glimpsetest"
	"github.com/oliverbestmann/hikari/pulse"
)

type testWindow struct {
	WindowDefaults

	app    *testApp
	native glimpse.NativeWindow

	redrawErr  error
	resizeErr  error
	destroyErr error

	// close only this window instead of stopping the loop
	closeSelf bool

	redrawSizes []glimpse.PhysicalSize
	resizes     []glimpse.PhysicalSize
	cursor      glimpse.PhysicalPosition
	destroyed   int
}

func (w *testWindow) ID() glimpse.WindowID {
	return w.native.ID()
}

func (w *testWindow) Redraw(*Loop) (Signal, error) {
	w.redrawSizes = append(w.redrawSizes, w.native.InnerSize())
	return None, w.redrawErr
}

func (w *testWindow) Resized(_ *Loop, size glimpse.PhysicalSize) (Signal, error) {
	w.resizes = append(w.resizes, size)
	w.native.RequestRedraw()
	return None, w.resizeErr
}

func (w *testWindow) CursorMoved(_ *Loop, _ glimpse.DeviceID, pos glimpse.PhysicalPosition) Signal {
	w.cursor = pos
	return Continue
}

func (w *testWindow) KeyboardInput(loop *Loop, device glimpse.DeviceID, event glimpse.KeyEvent, synthetic bool) Signal {
	if event.IsCharacter("n") {
		if _, err := w.app.spawn(loop); err != nil {
			return Exit(err)
		}

		return None
	}

	return w.WindowDefaults.KeyboardInput(loop, device, event, synthetic)
}

func (w *testWindow) CloseRequested(loop *Loop) Signal {
	if w.closeSelf {
		w.native.Destroy()
		return None
	}

	return w.WindowDefaults.CloseRequested(loop)
}

func (w *testWindow) Destroyed(*Loop) error {
	w.destroyed += 1
	w.native.Destroy()
	return w.destroyErr
}

type testApp struct {
	createErr error

	// applied to every new window
	configure func(w *testWindow)

	windows []*testWindow
	creates int
}

func (a *testApp) newWindow(loop *Loop) (*testWindow, error) {
	native, err := loop.CreateWindow(glimpse.WindowOptions{
		Title: "test",
		Size:  glimpse.LogicalSize{Width: 800, Height: 450},
	})
	if err != nil {
		return nil, err
	}

	win := &testWindow{app: a, native: native}
	if a.configure != nil {
		a.configure(win)
	}

	a.windows = append(a.windows, win)

	return win, nil
}

func (a *testApp) spawn(loop *Loop) (*testWindow, error) {
	win, err := a.newWindow(loop)
	if err != nil {
		return nil, err
	}

	return win, loop.Register(win)
}

func (a *testApp) CreateFirstWindow(loop *Loop) (Window, error) {
	a.creates += 1

	if a.createErr != nil {
		return nil, a.createErr
	}

	return a.newWindow(loop)
}

func run(t *testing.T, app App, steps ...glimpsetest.Step) (*glimpsetest.Platform, error) {
	t.Helper()

	platform := &glimpsetest.Platform{Script: steps}
	err := Run(RunOptions{App: app, Platform: platform})

	return platform, err
}

func TestDispatcher_DefaultKeyboardPolicy(t *testing.T) {
	tests := []struct {
		name string
		step glimpsetest.Step
		exit bool
	}{
		{"escape", glimpsetest.Key(1, glimpse.KeyEscape), true},
		{"q", glimpsetest.Char(1, "q"), true},
		{"other character", glimpsetest.Char(1, "a"), false},
		{"other key", glimpsetest.Key(1, glimpse.KeyEnter), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := &testApp{}

			platform, err := run(t, app, tt.step, glimpsetest.Idle())
			if err != nil {
				t.Fatalf("Run() failed: %s", err)
			}

			if platform.Exhausted == tt.exit {
				t.Errorf("Exhausted = %v, want %v", platform.Exhausted, !tt.exit)
			}

			if got := app.windows[0].destroyed; got != 1 {
				t.Errorf("window destroyed %d times, want 1", got)
			}
		})
	}
}

func TestDispatcher_ResizeThenRedraw(t *testing.T) {
	app := &testApp{}

	_, err := run(t, app,
		glimpsetest.Redraw(1),
		glimpsetest.Resize(1, 1200, 675),
		glimpsetest.Key(1, glimpse.KeyEscape),
	)

	if err != nil {
		t.Fatal(err)
	}

	win := app.windows[0]

	want := []glimpse.PhysicalSize{{Width: 800, Height: 450}, {Width: 1200, Height: 675}}
	if len(win.redrawSizes) != len(want) {
		t.Fatalf("redraws = %v, want %v", win.redrawSizes, want)
	}

	for idx := range want {
		if win.redrawSizes[idx] != want[idx] {
			t.Errorf("redraw %d at %s, want %s", idx, win.redrawSizes[idx], want[idx])
		}
	}

	if len(win.resizes) != 1 || win.resizes[0] != want[1] {
		t.Errorf("resizes = %v", win.resizes)
	}
}

func TestDispatcher_InputCallbacks(t *testing.T) {
	app := &testApp{}

	_, err := run(t, app,
		glimpsetest.Send(1, glimpse.CursorMoved{Position: glimpse.PhysicalPosition{X: 12, Y: 34}}),
		glimpsetest.Send(1, glimpse.ModifiersChanged{Modifiers: glimpse.ModShift}),
		glimpsetest.Send(1, glimpse.Touch{Phase: glimpse.TouchStarted}),
		glimpsetest.Close(1),
	)

	if err != nil {
		t.Fatal(err)
	}

	if got := app.windows[0].cursor; got != (glimpse.PhysicalPosition{X: 12, Y: 34}) {
		t.Errorf("cursor = %v", got)
	}
}

func TestDispatcher_DestroyedExactlyOnce(t *testing.T) {
	app := &testApp{
		configure: func(w *testWindow) {
			w.closeSelf = w.native.ID() == 2
		},
	}

	platform, err := run(t, app,
		glimpsetest.Char(1, "n"),
		glimpsetest.Close(2),
		glimpsetest.Redraw(1),
		glimpsetest.Key(1, glimpse.KeyEscape),
	)

	if err != nil {
		t.Fatal(err)
	}

	if len(app.windows) != 2 {
		t.Fatalf("created %d windows, want 2", len(app.windows))
	}

	for _, win := range app.windows {
		if win.destroyed != 1 {
			t.Errorf("%s destroyed %d times, want 1", win.ID(), win.destroyed)
		}
	}

	if !platform.Window(2).Released {
		t.Error("Destroyed event of the second window was not delivered")
	}

	if app.creates != 1 {
		t.Errorf("CreateFirstWindow called %d times, want 1", app.creates)
	}
}

func TestDispatcher_EmptyRegistryDrains(t *testing.T) {
	app := &testApp{
		configure: func(w *testWindow) { w.closeSelf = true },
	}

	platform, err := run(t, app,
		glimpsetest.Close(1),
		glimpsetest.Idle(),
		glimpsetest.Idle(),
	)

	if err != nil {
		t.Fatal(err)
	}

	if platform.Exhausted {
		t.Error("loop did not stop after the last window was destroyed")
	}

	if got := app.windows[0].destroyed; got != 1 {
		t.Errorf("window destroyed %d times, want 1", got)
	}
}

func TestDispatcher_RedrawValidationError(t *testing.T) {
	app := &testApp{
		configure: func(w *testWindow) {
			w.redrawErr = pulse.CaptureValidation(func() error {
				return errors.New("wgpu.(*Queue).WriteBuffer(): Buffer is invalid")
			})
		},
	}

	platform, err := run(t, app, glimpsetest.Redraw(1), glimpsetest.Idle())

	if !errors.Is(err, pulse.ErrValidation) {
		t.Fatalf("Run() error = %v, want ErrValidation", err)
	}

	if !strings.Contains(err.Error(), "Buffer is invalid") {
		t.Errorf("error %q lost the original message", err)
	}

	if platform.Exhausted {
		t.Error("loop kept running after a redraw failed")
	}

	if got := app.windows[0].destroyed; got != 1 {
		t.Errorf("window destroyed %d times, want 1", got)
	}
}

func TestDispatcher_ResizeErrorIsFatal(t *testing.T) {
	errConfigure := errors.New("surface lost")

	app := &testApp{
		configure: func(w *testWindow) { w.resizeErr = errConfigure },
	}

	_, err := run(t, app, glimpsetest.Resize(1, 640, 480), glimpsetest.Idle())

	if !errors.Is(err, errConfigure) {
		t.Errorf("Run() error = %v, want %v", err, errConfigure)
	}
}

func TestDispatcher_CreateFirstWindowFails(t *testing.T) {
	errAdapter := pulse.ErrAdapterUnavailable

	app := &testApp{createErr: errAdapter}

	platform, err := run(t, app, glimpsetest.Idle())

	if !errors.Is(err, errAdapter) {
		t.Errorf("Run() error = %v, want %v", err, errAdapter)
	}

	if err.Error() != errAdapter.Error() {
		t.Errorf("error text %q differs from the original %q", err, errAdapter)
	}

	if platform.Exhausted || platform.AboutToWaitCalls != 0 {
		t.Errorf("loop continued after window creation failed")
	}
}

func TestDispatcher_SecondResumeIsNoop(t *testing.T) {
	app := &testApp{}

	_, err := run(t, app, glimpsetest.Resume(), glimpsetest.Key(1, glimpse.KeyEscape))
	if err != nil {
		t.Fatal(err)
	}

	if app.creates != 1 {
		t.Errorf("CreateFirstWindow called %d times, want 1", app.creates)
	}
}

func TestDispatcher_TeardownErrorsAreDiscarded(t *testing.T) {
	app := &testApp{
		configure: func(w *testWindow) { w.destroyErr = errors.New("release failed") },
	}

	_, err := run(t, app, glimpsetest.Key(1, glimpse.KeyEscape))
	if err != nil {
		t.Errorf("Run() error = %v, want nil", err)
	}
}

func TestDispatcher_DestroyErrorIsFatal(t *testing.T) {
	errRelease := errors.New("release failed")

	app := &testApp{
		configure: func(w *testWindow) {
			w.closeSelf = true
			w.destroyErr = errRelease
		},
	}

	_, err := run(t, app, glimpsetest.Close(1), glimpsetest.Idle())
	if !errors.Is(err, errRelease) {
		t.Errorf("Run() error = %v, want %v", err, errRelease)
	}

	if got := app.windows[0].destroyed; got != 1 {
		t.Errorf("window destroyed %d times, want 1", got)
	}
}

func TestDispatcher_FirstErrorWins(t *testing.T) {
	errFirst := errors.New("first")

	app := &testApp{
		configure: func(w *testWindow) {
			w.redrawErr = errFirst
			w.destroyErr = errors.New("second")
		},
	}

	_, err := run(t, app, glimpsetest.Redraw(1))
	if !errors.Is(err, errFirst) || strings.Contains(err.Error(), "second") {
		t.Errorf("Run() error = %v, want only %v", err, errFirst)
	}
}

func TestDispatcher_MissingWindowPanics(t *testing.T) {
	defer func() {
		recovered := recover()

		err, ok := recovered.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", recovered)
		}

		var missing *MissingWindowError
		if !errors.As(err, &missing) || missing.Window != 99 {
			t.Errorf("recovered %v, want MissingWindowError for window 99", err)
		}

		if !errors.Is(err, ErrMissingWindow) {
			t.Errorf("recovered error does not match ErrMissingWindow")
		}
	}()

	_, _ = run(t, &testApp{}, glimpsetest.Send(99, glimpse.CursorMoved{}))

	t.Error("Run returned without panic")
}

type initApp struct {
	testApp
	signal Signal
	inits  int
}

func (a *initApp) EventLoopInit(*Loop) Signal {
	a.inits += 1
	return a.signal
}

func TestDispatcher_Initializer(t *testing.T) {
	errInit := errors.New("init failed")

	app := &initApp{signal: Exit(errInit)}

	_, err := run(t, app, glimpsetest.Idle())

	if !errors.Is(err, errInit) {
		t.Errorf("Run() error = %v, want %v", err, errInit)
	}

	if app.inits != 1 || app.creates != 0 {
		t.Errorf("inits = %d, creates = %d; want 1 and 0", app.inits, app.creates)
	}
}

func TestDispatcher_InitializerContinue(t *testing.T) {
	app := &initApp{signal: Continue}

	_, err := run(t, app, glimpsetest.Key(1, glimpse.KeyEscape))
	if err != nil {
		t.Fatal(err)
	}

	if app.inits != 1 || app.creates != 1 {
		t.Errorf("inits = %d, creates = %d; want 1 and 1", app.inits, app.creates)
	}
}

type earlyRegisterApp struct {
	testApp
	registerErr error
}

func (a *earlyRegisterApp) EventLoopInit(loop *Loop) Signal {
	a.registerErr = loop.Register(&idWindow{id: 99})
	return None
}

func TestLoop_RegisterBeforeFirstWindow(t *testing.T) {
	app := &earlyRegisterApp{}

	_, err := run(t, app,
		glimpsetest.Resize(1, 640, 480),
		glimpsetest.Key(1, glimpse.KeyEscape),
	)

	if err != nil {
		t.Fatal(err)
	}

	if !errors.Is(app.registerErr, ErrLoopNotRunning) {
		t.Errorf("Register() error = %v, want ErrLoopNotRunning", app.registerErr)
	}

	if app.creates != 1 {
		t.Errorf("creates = %d, want 1", app.creates)
	}

	// the first window still receives events
	if len(app.windows) != 1 || len(app.windows[0].resizes) != 1 {
		t.Errorf("first window did not receive the resize")
	}
}

type registeringWindow struct {
	testWindow
	registerErr error
}

func (w *registeringWindow) Destroyed(loop *Loop) error {
	w.registerErr = loop.Register(&w.testWindow)
	return w.testWindow.Destroyed(loop)
}

func TestLoop_RegisterWhileDraining(t *testing.T) {
	var win *registeringWindow

	app := AppFunc(func(loop *Loop) (Window, error) {
		native, err := loop.CreateWindow(glimpse.WindowOptions{})
		if err != nil {
			return nil, err
		}

		win = &registeringWindow{testWindow: testWindow{native: native}}
		return win, nil
	})

	if _, err := run(t, app, glimpsetest.Key(1, glimpse.KeyEscape)); err != nil {
		t.Fatal(err)
	}

	if !errors.Is(win.registerErr, ErrLoopDraining) {
		t.Errorf("Register() error = %v, want ErrLoopDraining", win.registerErr)
	}
}

func TestRun_PlatformError(t *testing.T) {
	errPlatform := errors.New("no display")

	platform := &glimpsetest.Platform{RunErr: errPlatform}

	err := Run(RunOptions{App: &testApp{}, Platform: platform})
	if !errors.Is(err, errPlatform) {
		t.Errorf("Run() error = %v, want %v", err, errPlatform)
	}

	if err := Run(RunOptions{Platform: platform}); err == nil {
		t.Error("Run accepted a nil App")
	}
}
