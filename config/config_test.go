package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/oliverbestmann/hikari/glimpse"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("HIKARI_LOG_LEVEL", "")

	cfg, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window != (WindowConfig{}) {
		t.Errorf("unexpected window defaults: %+v", cfg.Window)
	}

	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestLoadFromPath(t *testing.T) {
	t.Setenv("HIKARI_LOG_LEVEL", "")

	path := writeConfig(t, `
window:
  title: Julia
  width: 1200
  height: 675
  x: 50
  y: 50
  resizable: false
gpu:
  backends: [vulkan]
  adapter: radeon
  power_preference: high-performance
  present_mode: mailbox
log:
  level: debug
profile:
  mode: cpu
  path: /tmp/profile
`)

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}

	gpu := cfg.GPUOptions()
	if !slices.Equal(gpu.Backends, []string{"vulkan"}) || gpu.AdapterName != "radeon" || gpu.PresentMode != "mailbox" {
		t.Errorf("unexpected gpu options: %+v", gpu)
	}

	if opts := cfg.PlatformOptions(); opts.ProfileMode != "cpu" || opts.ProfilePath != "/tmp/profile" {
		t.Errorf("unexpected platform options: %+v", opts)
	}

	win := cfg.WindowOptions(glimpse.WindowOptions{Title: "default"})
	if win.Title != "Julia" || win.Size != (glimpse.LogicalSize{Width: 1200, Height: 675}) {
		t.Errorf("unexpected window options: %+v", win)
	}

	if win.Position == nil || *win.Position != (glimpse.LogicalPosition{X: 50, Y: 50}) {
		t.Errorf("Position = %v", win.Position)
	}

	if !win.FixedSize {
		t.Error("FixedSize = false for a window that is not resizable")
	}
}

func TestLoadFromPath_PartialFileKeepsDefaults(t *testing.T) {
	t.Setenv("HIKARI_LOG_LEVEL", "")

	cfg, err := LoadFromPath(writeConfig(t, "gpu:\n  present_mode: immediate\n"))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Window.Title != "" {
		t.Errorf("Title = %q, want none", cfg.Window.Title)
	}

	opts := cfg.WindowOptions(glimpse.WindowOptions{Size: glimpse.LogicalSize{Width: 1, Height: 1}})
	if opts.Position != nil || opts.FixedSize {
		t.Errorf("unexpected window options: %+v", opts)
	}
}

func TestDefault_KeepsApplicationWindowOptions(t *testing.T) {
	appDefaults := glimpse.WindowOptions{
		Title:    "Julia set",
		Size:     glimpse.LogicalSize{Width: 1200, Height: 675},
		Position: &glimpse.LogicalPosition{X: 50, Y: 50},
	}

	opts := Default().WindowOptions(appDefaults)

	if opts.Title != appDefaults.Title || opts.Size != appDefaults.Size || opts.FixedSize {
		t.Errorf("WindowOptions() = %+v, want %+v", opts, appDefaults)
	}

	if opts.Position == nil || *opts.Position != *appDefaults.Position {
		t.Errorf("Position = %v, want %v", opts.Position, appDefaults.Position)
	}
}

func TestLoadFromPath_RejectsUnknownKeys(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "window:\n  colour: red\n"))

	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Errorf("error = %v, want error naming the unknown key", err)
	}
}

func TestLoadFromPath_Validation(t *testing.T) {
	t.Setenv("HIKARI_LOG_LEVEL", "")

	tests := map[string]string{
		"log.level":    "log:\n  level: loud\n",
		"profile.mode": "profile:\n  mode: gpu\n",
		"window":       "window:\n  width: -1\n",
	}

	for path, content := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := LoadFromPath(writeConfig(t, content))

			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}

			if validationErr.Path != path {
				t.Errorf("Path = %q, want %q", validationErr.Path, path)
			}
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "log:\n  level: error\n")

	t.Setenv("HIKARI_CONFIG", path)
	t.Setenv("HIKARI_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}
}
