package pulse

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/oliverbestmann/hikari/glimpse"
)

// surface is the part of a *wgpu.Surface that a Binding drives.
type surface interface {
	capabilities(adapter *wgpu.Adapter) wgpu.SurfaceCapabilities
	configure(adapter *wgpu.Adapter, device *wgpu.Device, config *wgpu.SurfaceConfiguration) error
	acquire() (*wgpu.Texture, *wgpu.TextureView, error)
	present()
	release()
}

type wgpuSurface struct {
	*wgpu.Surface
}

func (s wgpuSurface) capabilities(adapter *wgpu.Adapter) wgpu.SurfaceCapabilities {
	return s.GetCapabilities(adapter)
}

// configure applies the configuration. The backend reports an unusable
// configuration through the next texture acquired from the surface.
func (s wgpuSurface) configure(adapter *wgpu.Adapter, device *wgpu.Device, config *wgpu.SurfaceConfiguration) error {
	s.Configure(adapter, device, config)
	return nil
}

func (s wgpuSurface) acquire() (*wgpu.Texture, *wgpu.TextureView, error) {
	texture, err := s.GetCurrentTexture()
	if err != nil {
		return nil, nil, fmt.Errorf("get current texture: %w", err)
	}

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, nil, fmt.Errorf("create view of surface texture: %w", err)
	}

	return texture, view, nil
}

func (s wgpuSurface) present() {
	s.Present()
}

func (s wgpuSurface) release() {
	s.Surface.Release()
}

// Binding ties a native window to a GPU surface that presents into it.
// The surface configuration always follows the last size the binding
// was told about.
type Binding struct {
	*Device

	Native       glimpse.NativeWindow
	Capabilities wgpu.SurfaceCapabilities

	surface     surface
	config      wgpu.SurfaceConfiguration
	presentMode wgpu.PresentMode

	ownsDevice bool
	suspended  bool
}

// NewBinding creates a surface for the window together with a new device
// that is able to present to it. The binding owns the device.
//
// The native window must outlive the binding.
func NewBinding(native glimpse.NativeWindow, opts Options) (*Binding, error) {
	opts = opts.WithEnv()

	presentMode, err := parsePresentMode(opts.PresentMode)
	if err != nil {
		return nil, err
	}

	instance, err := createInstance(opts)
	if err != nil {
		return nil, err
	}

	instanceGuard := NewReleaseGuard(instance)
	defer instanceGuard.Release()

	surf := instance.CreateSurface(native.SurfaceDescriptor())
	if surf == nil {
		return nil, fmt.Errorf("create surface for %s", native.ID())
	}

	surfaceGuard := NewReleaseGuard(surf)
	defer surfaceGuard.Release()

	dev, err := openDevice(instance, surf, opts)
	if err != nil {
		return nil, err
	}

	// the device releases the instance from now on
	instanceGuard.Keep()

	deviceGuard := NewReleaseGuard(dev)
	defer deviceGuard.Release()

	binding, err := newBinding(native, dev, wgpuSurface{surf}, true, presentMode)
	if err != nil {
		return nil, err
	}

	surfaceGuard.Keep()
	deviceGuard.Keep()

	return binding, nil
}

// OpenDevice opens a device that is able to present to the given window,
// to be shared between several bindings using NewSharedBinding. The caller
// owns the device.
func OpenDevice(native glimpse.NativeWindow, opts Options) (*Device, error) {
	opts = opts.WithEnv()

	instance, err := createInstance(opts)
	if err != nil {
		return nil, err
	}

	instanceGuard := NewReleaseGuard(instance)
	defer instanceGuard.Release()

	// only used to pick a compatible adapter
	surf := instance.CreateSurface(native.SurfaceDescriptor())
	if surf == nil {
		return nil, fmt.Errorf("create surface for %s", native.ID())
	}

	defer surf.Release()

	dev, err := openDevice(instance, surf, opts)
	if err != nil {
		return nil, err
	}

	instanceGuard.Keep()

	return dev, nil
}

func createInstance(opts Options) (*wgpu.Instance, error) {
	backends, err := parseBackends(opts.Backends)
	if err != nil {
		return nil, err
	}

	instance := wgpu.CreateInstance(&wgpu.InstanceDescriptor{
		Backends: backends,
	})

	if instance == nil {
		return nil, ErrAdapterUnavailable
	}

	return instance, nil
}

// NewSharedBinding creates a surface for the window that renders using an
// existing device. The caller keeps ownership of the device and must release
// it after all bindings using it were released.
func NewSharedBinding(dev *Device, native glimpse.NativeWindow, opts Options) (*Binding, error) {
	opts = opts.WithEnv()

	presentMode, err := parsePresentMode(opts.PresentMode)
	if err != nil {
		return nil, err
	}

	surf := dev.Instance.CreateSurface(native.SurfaceDescriptor())
	if surf == nil {
		return nil, fmt.Errorf("create surface for %s", native.ID())
	}

	surfaceGuard := NewReleaseGuard(surf)
	defer surfaceGuard.Release()

	binding, err := newBinding(native, dev, wgpuSurface{surf}, false, presentMode)
	if err != nil {
		return nil, err
	}

	surfaceGuard.Keep()

	return binding, nil
}

func newBinding(
	native glimpse.NativeWindow,
	dev *Device,
	surf surface,
	ownsDevice bool,
	presentMode wgpu.PresentMode,
) (*Binding, error) {
	caps := surf.capabilities(dev.Adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return nil, fmt.Errorf("%w: adapter can not present to %s", ErrSurfaceConfiguration, native.ID())
	}

	slog.Debug("Surface capabilities",
		slog.Any("window", native.ID()),
		slog.Any("formats", caps.Formats),
		slog.Any("presentModes", caps.PresentModes),
		slog.Any("alphaModes", caps.AlphaModes),
	)

	b := &Binding{
		Device:       dev,
		Native:       native,
		Capabilities: caps,
		surface:      surf,
		presentMode:  presentMode,
		ownsDevice:   ownsDevice,
		config:       defaultConfiguration(caps, presentMode),
	}

	size := native.InnerSize()
	b.config.Width = size.Width
	b.config.Height = size.Height

	if size.IsZero() {
		b.suspended = true
		return b, nil
	}

	if err := b.configure(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceConfiguration, err)
	}

	return b, nil
}

func defaultConfiguration(caps wgpu.SurfaceCapabilities, presentMode wgpu.PresentMode) wgpu.SurfaceConfiguration {
	if !slices.Contains(caps.PresentModes, presentMode) {
		// fifo is the only mode every surface must support
		presentMode = wgpu.PresentModeFifo
	}

	return wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		AlphaMode:   caps.AlphaModes[0],
		PresentMode: presentMode,
	}
}

func (b *Binding) configure() error {
	return CaptureValidation(func() error {
		return b.surface.configure(b.Adapter, b.Device.Device, &b.config)
	})
}

// Config returns a copy of the current surface configuration.
func (b *Binding) Config() wgpu.SurfaceConfiguration {
	return b.config
}

func (b *Binding) Format() wgpu.TextureFormat {
	return b.config.Format
}

func (b *Binding) Size() glimpse.PhysicalSize {
	return glimpse.PhysicalSize{Width: b.config.Width, Height: b.config.Height}
}

// Suspended reports whether the window currently has no drawable area.
func (b *Binding) Suspended() bool {
	return b.suspended
}

// Resize reconfigures the surface for the new size and asks the window
// to repaint. A zero size suspends the binding until the next resize.
func (b *Binding) Resize(size glimpse.PhysicalSize) error {
	slog.Debug("Resize surface",
		slog.Any("window", b.Native.ID()),
		slog.Int("width", int(size.Width)),
		slog.Int("height", int(size.Height)),
	)

	b.config.Width = size.Width
	b.config.Height = size.Height

	if size.IsZero() {
		b.suspended = true
		return nil
	}

	b.suspended = false

	if err := b.configure(); err != nil {
		slog.Warn("Surface configuration failed, querying capabilities again",
			slog.Any("window", b.Native.ID()),
			slog.String("err", err.Error()),
		)

		if err := b.reconfigureFromCapabilities(); err != nil {
			return err
		}
	}

	b.Native.RequestRedraw()

	return nil
}

func (b *Binding) reconfigureFromCapabilities() error {
	caps := b.surface.capabilities(b.Adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("%w: adapter can not present to %s anymore", ErrSurfaceConfiguration, b.Native.ID())
	}

	config := defaultConfiguration(caps, b.presentMode)
	config.Width = b.config.Width
	config.Height = b.config.Height

	b.Capabilities = caps
	b.config = config

	if err := b.configure(); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceConfiguration, err)
	}

	return nil
}

// AcquireFrame returns the next surface texture to render into. The
// surface is reconfigured first if the window size changed without
// the binding being told about it. If the surface refuses to hand out a
// texture, it is configured again from freshly queried capabilities and
// the texture is requested once more.
func (b *Binding) AcquireFrame() (*Frame, error) {
	if size := b.Native.InnerSize(); size != b.Size() {
		if err := b.Resize(size); err != nil {
			return nil, err
		}
	}

	if b.suspended {
		return nil, ErrSurfaceSuspended
	}

	texture, view, err := b.surface.acquire()
	if err != nil {
		slog.Warn("Acquiring surface texture failed, querying capabilities again",
			slog.Any("window", b.Native.ID()),
			slog.String("err", err.Error()),
		)

		if err := b.reconfigureFromCapabilities(); err != nil {
			return nil, err
		}

		texture, view, err = b.surface.acquire()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSurfaceConfiguration, err)
		}
	}

	frame := &Frame{
		binding: b,
		Texture: texture,
		View:    view,
		Width:   b.config.Width,
		Height:  b.config.Height,
	}

	return frame, nil
}

// Validate runs fn and reports the errors of the gpu calls it made as a
// ValidationError.
func (b *Binding) Validate(fn func() error) error {
	return CaptureValidation(fn)
}

// Release releases the surface, and the device if the binding owns it.
func (b *Binding) Release() {
	if b.surface != nil {
		b.surface.release()
		b.surface = nil
	}

	if b.ownsDevice && b.Device != nil {
		b.Device.Release()
	}

	b.Device = nil
}

// Frame is a surface texture acquired for a single frame.
type Frame struct {
	binding *Binding

	Texture *wgpu.Texture
	View    *wgpu.TextureView

	// size of the surface configuration the texture was acquired with
	Width, Height uint32

	done bool
}

// Present shows the frame in the window.
func (f *Frame) Present() {
	if f.done {
		return
	}

	f.binding.surface.present()

	// the texture belongs to the surface once it was presented
	f.Texture = nil
	f.Release()
}

// Release drops the frame without presenting it.
func (f *Frame) Release() {
	f.done = true

	if f.View != nil {
		f.View.Release()
		f.View = nil
	}

	if f.Texture != nil {
		f.Texture.Release()
		f.Texture = nil
	}
}
