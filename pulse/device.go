package pulse

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device bundles the instance, adapter, logical device and queue.
// A Device is owned by the Binding that created it, or by the caller
// if it is shared between bindings.
type Device struct {
	*wgpu.Device
	*wgpu.Queue
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
}

func openDevice(instance *wgpu.Instance, surface *wgpu.Surface, opts Options) (*Device, error) {
	adapter, err := requestAdapter(instance, surface, opts)
	if err != nil {
		return nil, err
	}

	adapterGuard := NewReleaseGuard(adapter)
	defer adapterGuard.Release()

	info := adapter.GetInfo()
	slog.Debug("Selected adapter",
		slog.String("name", info.Name),
		slog.Any("backend", info.BackendType),
		slog.Any("type", info.AdapterType),
	)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: opts.deviceLabel(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeviceRequestFailed, err)
	}

	adapterGuard.Keep()

	return &Device{
		Device:   device,
		Queue:    device.GetQueue(),
		Instance: instance,
		Adapter:  adapter,
	}, nil
}

func requestAdapter(instance *wgpu.Instance, surface *wgpu.Surface, opts Options) (*wgpu.Adapter, error) {
	if opts.AdapterName != "" {
		if adapter := adapterByName(instance, surface, opts.AdapterName); adapter != nil {
			return adapter, nil
		}

		slog.Warn("No adapter matches the requested name, using the default",
			slog.String("name", opts.AdapterName))
	}

	power, err := parsePowerPreference(opts.PowerPreference)
	if err != nil {
		return nil, err
	}

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface:    surface,
		PowerPreference:      power,
		ForceFallbackAdapter: opts.ForceFallbackAdapter,
	})

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAdapterUnavailable, err)
	}

	if adapter == nil {
		return nil, ErrAdapterUnavailable
	}

	return adapter, nil
}

// adapterByName returns the first adapter matching name that can present to the surface.
func adapterByName(instance *wgpu.Instance, surface *wgpu.Surface, name string) *wgpu.Adapter {
	var found *wgpu.Adapter

	for _, adapter := range instance.EnumerateAdapters(nil) {
		if found == nil && matchesAdapterName(adapter.GetInfo().Name, name) {
			if caps := surface.GetCapabilities(adapter); len(caps.Formats) > 0 {
				found = adapter
				continue
			}
		}

		adapter.Release()
	}

	return found
}

func matchesAdapterName(adapterName, wanted string) bool {
	return strings.Contains(strings.ToLower(adapterName), strings.ToLower(wanted))
}

func (d *Device) Release() {
	if d.Queue != nil {
		d.Queue.Release()
		d.Queue = nil
	}

	if d.Device != nil {
		d.Device.Release()
		d.Device = nil
	}

	if d.Adapter != nil {
		d.Adapter.Release()
		d.Adapter = nil
	}

	if d.Instance != nil {
		d.Instance.Release()
		d.Instance = nil
	}
}
