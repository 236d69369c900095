package orion

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/oliverbestmann/hikari/config"
	"github.com/oliverbestmann/hikari/glimpse"
)

type RunOptions struct {
	// App to run. This is the only field that is required
	App App

	// Platform to run on, defaults to the desktop platform
	Platform glimpse.Platform

	// Config defaults to config.Default
	Config *config.Config
}

// Run drives the App until the loop terminates. It returns the first fatal
// error, or nil after a clean shutdown.
func Run(opts RunOptions) error {
	if opts.App == nil {
		return errors.New("App must not be nil")
	}

	if opts.Config == nil {
		opts.Config = config.Default()
	}

	if opts.Platform == nil {
		opts.Platform = glimpse.NewPlatform(opts.Config.PlatformOptions())
	}

	dispatcher := NewDispatcher(opts.App)

	var platformErr error
	if err := opts.Platform.Run(dispatcher); err != nil {
		platformErr = fmt.Errorf("run platform: %w", err)
	}

	if dispatcher.State() != StateTerminated {
		dispatcher.drain(nil)
	}

	return errors.Join(dispatcher.Outcome(), platformErr)
}

// Main loads the configuration, installs the logger and runs the App. The
// process exits with status 1 if the loop ended with an error.
func Main(app App, cfg *config.Config) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	slog.SetDefault(cfg.Logger())

	if err := Run(RunOptions{App: app, Config: cfg}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
