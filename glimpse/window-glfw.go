package glimpse

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/profile"
)

func init() {
	// glfw must only be called from the main thread
	runtime.LockOSThread()
}

var ErrNotRunning = errors.New("platform is not running")

type PlatformOptions struct {
	// profile the event loop, one of "cpu", "mem" or "trace".
	// Profiling is disabled if empty.
	ProfileMode string

	// directory to write the profile to, defaults to a temporary directory
	ProfilePath string
}

type glfwPlatform struct {
	opts    PlatformOptions
	queue   EventQueue
	windows map[WindowID]*glfwWindow

	lastID  WindowID
	running bool
	exit    bool
}

// NewPlatform returns the desktop platform backed by glfw.
func NewPlatform(opts PlatformOptions) Platform {
	return &glfwPlatform{
		opts:    opts,
		windows: map[WindowID]*glfwWindow{},
	}
}

func (p *glfwPlatform) Run(handler Handler) error {
	if p.running {
		return errors.New("platform is already running")
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("initialize glfw: %w", err)
	}

	defer glfw.Terminate()

	prof, err := startProfile(p.opts)
	if err != nil {
		return err
	}

	if prof != nil {
		defer prof.Stop()
	}

	p.running = true
	defer func() { p.running = false }()

	handler.Init(p)

	if !p.exit {
		handler.Resumed(p)
	}

	for !p.exit {
		p.deliver(handler)
		if p.exit {
			break
		}

		handler.AboutToWait(p)
		if p.exit {
			break
		}

		if p.queue.HasRedraws() || p.queue.Len() > 0 {
			glfw.PollEvents()
		} else {
			glfw.WaitEvents()
		}
	}

	handler.Exiting(p)

	// release whatever the application did not destroy itself
	for id := range p.windows {
		p.release(id)
	}

	return nil
}

func (p *glfwPlatform) deliver(handler Handler) {
	for !p.exit {
		ev, ok := p.queue.Pop()
		if !ok {
			break
		}

		handler.WindowEvent(p, ev.Window, ev.Event)

		if _, ok := ev.Event.(Destroyed); ok {
			// the application had its chance to release the surface,
			// now the native window can go away
			p.release(ev.Window)
		}
	}

	for _, id := range p.queue.TakeRedraws() {
		if p.exit {
			return
		}

		win, ok := p.windows[id]
		if !ok || win.closing {
			continue
		}

		handler.WindowEvent(p, id, RedrawRequested{})
	}
}

func (p *glfwPlatform) CreateWindow(opts WindowOptions) (NativeWindow, error) {
	if !p.running {
		return nil, ErrNotRunning
	}

	if p.exit {
		return nil, errors.New("event loop is exiting")
	}

	if opts.Size.Width <= 0 {
		opts.Size.Width = 1000
	}

	if opts.Size.Height <= 0 {
		opts.Size.Height = 600
	}

	if opts.Title == "" {
		opts.Title = "Hikari"
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfwBool(!opts.FixedSize))

	native, err := glfw.CreateWindow(
		int(opts.Size.Width),
		int(opts.Size.Height),
		opts.Title,
		nil, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	if pos := opts.Position; pos != nil {
		native.SetPos(int(pos.X), int(pos.Y))
	}

	native.Show()

	p.lastID += 1

	win := &glfwWindow{
		platform: p,
		id:       p.lastID,
		native:   native,
	}

	win.installCallbacks()

	p.windows[win.id] = win

	slog.Debug("Created window",
		slog.Any("id", win.id),
		slog.String("title", opts.Title),
		slog.Any("size", win.InnerSize()),
	)

	return win, nil
}

func (p *glfwPlatform) RequestRedraw(id WindowID) {
	win, ok := p.windows[id]
	if !ok || win.closing {
		return
	}

	p.queue.RequestRedraw(id)
}

func (p *glfwPlatform) Exit() {
	p.exit = true
}

func (p *glfwPlatform) Exiting() bool {
	return p.exit
}

func (p *glfwPlatform) release(id WindowID) {
	win, ok := p.windows[id]
	if !ok {
		return
	}

	delete(p.windows, id)
	win.release()
}

type glfwWindow struct {
	platform *glfwPlatform
	id       WindowID
	native   *glfw.Window

	keys      KeysState
	modifiers Modifiers

	// Destroy was called, waiting for the Destroyed event to be delivered
	closing bool
}

func (w *glfwWindow) ID() WindowID {
	return w.id
}

func (w *glfwWindow) InnerSize() PhysicalSize {
	if w.native == nil {
		return PhysicalSize{}
	}

	width, height := w.native.GetFramebufferSize()
	return PhysicalSize{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))}
}

func (w *glfwWindow) ScaleFactor() float64 {
	if w.native == nil {
		return 1
	}

	scale, _ := w.native.GetContentScale()
	return float64(scale)
}

func (w *glfwWindow) RequestRedraw() {
	w.platform.RequestRedraw(w.id)
}

func (w *glfwWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.native)
}

func (w *glfwWindow) Destroy() {
	if w.closing || w.native == nil {
		return
	}

	w.closing = true
	w.native.Hide()

	w.platform.queue.Close(w.id)
}

func (w *glfwWindow) release() {
	if w.native == nil {
		return
	}

	w.native.Destroy()
	w.native = nil

	slog.Debug("Released native window", slog.Any("id", w.id))
}

// cursorScale converts screen coordinates of the cursor to framebuffer pixels
func (w *glfwWindow) cursorScale() float64 {
	fbWidth, _ := w.native.GetFramebufferSize()
	width, _ := w.native.GetSize()

	if width <= 0 {
		return 1
	}

	return float64(fbWidth) / float64(width)
}

// push queues an event unless the window is already going away. glfw
// still calls back into a hidden window until it is released.
func (w *glfwWindow) push(event WindowEvent) {
	if w.closing {
		return
	}

	w.platform.queue.Push(w.id, event)
}

func (w *glfwWindow) updateModifiers(mods Modifiers) {
	if mods == w.modifiers || w.closing {
		return
	}

	w.modifiers = mods
	w.push(ModifiersChanged{Modifiers: mods})
}

func (w *glfwWindow) installCallbacks() {
	w.native.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		size := PhysicalSize{Width: uint32(max(width, 0)), Height: uint32(max(height, 0))}
		w.push(Resized{Size: size})
	})

	w.native.SetCloseCallback(func(native *glfw.Window) {
		// the application decides if the window really closes
		native.SetShouldClose(false)
		w.push(CloseRequested{})
	})

	w.native.SetRefreshCallback(func(_ *glfw.Window) {
		w.RequestRedraw()
	})

	w.native.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if w.closing {
			return
		}

		scale := w.cursorScale()
		w.push(CursorMoved{Position: PhysicalPosition{X: x * scale, Y: y * scale}})
	})

	w.native.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		if focused || w.closing {
			return
		}

		// we will not see the release of keys that are still held down
		for _, ev := range w.keys.releaseAll() {
			w.push(KeyboardInput{Event: ev, Synthetic: true})
		}

		w.updateModifiers(0)
	})

	w.native.SetKeyCallback(func(_ *glfw.Window, glfwKey glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if w.closing {
			return
		}

		w.updateModifiers(modifiersAfter(modifiersOf(mods), glfwKey, action))

		ev, ok := keyEventOf(glfwKey, scancode)
		if !ok {
			return
		}

		switch action {
		case glfw.Press, glfw.Repeat:
			ev.State = Pressed
			ev.Repeat = w.keys.press(scancode, ev)

		case glfw.Release:
			ev.State = Released
			w.keys.release(scancode)
		}

		w.push(KeyboardInput{Event: ev})
	})
}

func startProfile(opts PlatformOptions) (interface{ Stop() }, error) {
	var mode func(*profile.Profile)

	switch opts.ProfileMode {
	case "":
		return nil, nil
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	case "trace":
		mode = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile mode %q", opts.ProfileMode)
	}

	options := []func(*profile.Profile){mode, profile.NoShutdownHook}
	if opts.ProfilePath != "" {
		options = append(options, profile.ProfilePath(opts.ProfilePath))
	}

	return profile.Start(options...), nil
}

func glfwBool(value bool) int {
	if value {
		return glfw.True
	}

	return glfw.False
}
