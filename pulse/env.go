package pulse

import (
	"fmt"
	"os"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

func init() {
	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// Options control how a Binding selects and configures its GPU.
type Options struct {
	// backends to consider, e.g. "vulkan", "metal", "dx12" or "gl".
	// All backends are used if empty.
	Backends []string

	// prefer the first adapter whose name contains this string
	AdapterName string

	// "high-performance", "low-power" or empty
	PowerPreference string

	ForceFallbackAdapter bool

	// "fifo", "fifo-relaxed", "immediate" or "mailbox". Falls back to
	// "fifo" if the surface does not support the requested mode.
	PresentMode string

	DeviceLabel string
}

// WithEnv applies the WGPU_* environment variables on top of opts.
func (opts Options) WithEnv() Options {
	if value := os.Getenv("WGPU_BACKEND"); value != "" {
		opts.Backends = splitList(value)
	}

	if value := os.Getenv("WGPU_ADAPTER_NAME"); value != "" {
		opts.AdapterName = value
	}

	if value := os.Getenv("WGPU_POWER_PREF"); value != "" {
		opts.PowerPreference = value
	}

	if os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1" {
		opts.ForceFallbackAdapter = true
	}

	if value := os.Getenv("WGPU_PRESENT_MODE"); value != "" {
		opts.PresentMode = value
	}

	return opts
}

func (opts Options) deviceLabel() string {
	if opts.DeviceLabel != "" {
		return opts.DeviceLabel
	}

	return "hikari device"
}

func splitList(value string) []string {
	var result []string

	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}

	return result
}

func parseBackends(names []string) (wgpu.InstanceBackend, error) {
	if len(names) == 0 {
		return wgpu.InstanceBackendAll, nil
	}

	var backends wgpu.InstanceBackend

	for _, name := range names {
		switch strings.ToLower(name) {
		case "vulkan", "vk":
			backends |= wgpu.InstanceBackendVulkan
		case "metal", "mtl":
			backends |= wgpu.InstanceBackendMetal
		case "dx12", "d3d12":
			backends |= wgpu.InstanceBackendDX12
		case "gl", "gles", "opengl":
			backends |= wgpu.InstanceBackendGL
		case "all":
			backends |= wgpu.InstanceBackendAll
		default:
			return 0, fmt.Errorf("unknown backend %q", name)
		}
	}

	return backends, nil
}

func parsePowerPreference(name string) (wgpu.PowerPreference, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return wgpu.PowerPreferenceUndefined, nil
	case "high", "high-performance":
		return wgpu.PowerPreferenceHighPerformance, nil
	case "low", "low-power":
		return wgpu.PowerPreferenceLowPower, nil
	default:
		return 0, fmt.Errorf("unknown power preference %q", name)
	}
}

func parsePresentMode(name string) (wgpu.PresentMode, error) {
	switch strings.ToLower(name) {
	case "", "fifo", "vsync":
		return wgpu.PresentModeFifo, nil
	case "fifo-relaxed":
		return wgpu.PresentModeFifoRelaxed, nil
	case "immediate":
		return wgpu.PresentModeImmediate, nil
	case "mailbox":
		return wgpu.PresentModeMailbox, nil
	default:
		return 0, fmt.Errorf("unknown present mode %q", name)
	}
}
