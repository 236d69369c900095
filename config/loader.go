package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath returns $HIKARI_CONFIG if set, otherwise
// config.yaml in the hikari directory of the user config dir.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv("HIKARI_CONFIG"); path != "" {
		return path, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "hikari", "config.yaml"), nil
}

// Load reads the configuration from the default location. A missing file
// is not an error, the defaults are used instead.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}

	return LoadFromPath(path)
}

func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// use defaults

	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)

	default:
		if err := decodeStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decodeStrict(data []byte, out *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	return dec.Decode(out)
}

func applyEnv(cfg *Config) {
	if level := os.Getenv("HIKARI_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
}
