// Package config holds the settings of a hikari application. Settings are
// read from a YAML file and can be partially overridden by environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/oliverbestmann/hikari/glimpse"
	"github.com/oliverbestmann/hikari/pulse"
)

type Config struct {
	Window  WindowConfig  `yaml:"window"`
	GPU     GPUConfig     `yaml:"gpu"`
	Log     LogConfig     `yaml:"log"`
	Profile ProfileConfig `yaml:"profile"`
}

type WindowConfig struct {
	Title  string  `yaml:"title"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// position of the first window, left to the platform if not set
	X *float64 `yaml:"x"`
	Y *float64 `yaml:"y"`

	Resizable *bool `yaml:"resizable"`
}

type GPUConfig struct {
	Backends             []string `yaml:"backends"`
	Adapter              string   `yaml:"adapter"`
	PowerPreference      string   `yaml:"power_preference"`
	ForceFallbackAdapter bool     `yaml:"force_fallback_adapter"`
	PresentMode          string   `yaml:"present_mode"`
}

type LogConfig struct {
	// one of debug, info, warn or error
	Level string `yaml:"level"`
}

type ProfileConfig struct {
	// cpu, mem or trace, disabled if empty
	Mode string `yaml:"mode"`
	Path string `yaml:"path"`
}

// ValidationError describes an invalid value in the configuration.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Default returns the configuration used if no file exists. It leaves the
// window settings to the application and the platform.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
	}
}

func (c *Config) Validate() error {
	if c.Window.Width < 0 || c.Window.Height < 0 {
		return &ValidationError{Path: "window", Err: fmt.Errorf("size must not be negative")}
	}

	if _, err := parseLevel(c.Log.Level); err != nil {
		return &ValidationError{Path: "log.level", Err: err}
	}

	switch c.Profile.Mode {
	case "", "cpu", "mem", "trace":
	default:
		return &ValidationError{Path: "profile.mode", Err: fmt.Errorf("must be one of: cpu, mem, trace")}
	}

	return nil
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level

	if value == "" {
		return slog.LevelInfo, nil
	}

	if err := level.UnmarshalText([]byte(strings.ToUpper(value))); err != nil {
		return 0, fmt.Errorf("unknown log level %q", value)
	}

	return level, nil
}

// Level returns the configured log level, defaulting to info.
func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return level
}

// Logger returns a text logger writing to stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: c.Level(),
	}))
}

func (c *Config) PlatformOptions() glimpse.PlatformOptions {
	return glimpse.PlatformOptions{
		ProfileMode: c.Profile.Mode,
		ProfilePath: c.Profile.Path,
	}
}

func (c *Config) GPUOptions() pulse.Options {
	return pulse.Options{
		Backends:             c.GPU.Backends,
		AdapterName:          c.GPU.Adapter,
		PowerPreference:      c.GPU.PowerPreference,
		ForceFallbackAdapter: c.GPU.ForceFallbackAdapter,
		PresentMode:          c.GPU.PresentMode,
	}
}

// WindowOptions returns options for the first window. Zero values fall back
// to the given defaults.
func (c *Config) WindowOptions(defaults glimpse.WindowOptions) glimpse.WindowOptions {
	opts := defaults

	if c.Window.Title != "" {
		opts.Title = c.Window.Title
	}

	if c.Window.Width > 0 {
		opts.Size.Width = c.Window.Width
	}

	if c.Window.Height > 0 {
		opts.Size.Height = c.Window.Height
	}

	if c.Window.X != nil && c.Window.Y != nil {
		opts.Position = &glimpse.LogicalPosition{X: *c.Window.X, Y: *c.Window.Y}
	}

	if c.Window.Resizable != nil {
		opts.FixedSize = !*c.Window.Resizable
	}

	return opts
}
