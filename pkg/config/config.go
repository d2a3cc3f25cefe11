// Package config loads the application settings from a YAML file under the
// user config directory, falling back to defaults when the file is absent.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	appDirName       = "timetrack"
	settingsFileName = "settings.yaml"
)

// Config keeps the runtime settings of the app.
type Config struct {
	Database      string `yaml:"database"`
	LogFile       string `yaml:"log_file"`
	LogLevel      string `yaml:"log_level"`
	Notifications bool   `yaml:"notifications"`
}

// Default returns the settings used when no file exists: everything lives
// under <UserConfigDir>/timetrack.
func Default() (Config, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve user config dir: %w", err)
	}

	appDir := filepath.Join(configDir, appDirName)

	return Config{
		Database:      filepath.Join(appDir, "timetrack.sqlite"),
		LogFile:       filepath.Join(appDir, "debug.log"),
		LogLevel:      "info",
		Notifications: true,
	}, nil
}

// DefaultPath returns the expected location of the settings file.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}

	return filepath.Join(configDir, appDirName, settingsFileName), nil
}

// Load reads settings from the given path. A missing file yields the
// defaults; a present but unparseable file is an error.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}

		return cfg, fmt.Errorf("read settings file: %w", err)
	}

	if err := yaml.Unmarshal(rawData, &cfg); err != nil {
		return cfg, fmt.Errorf("parse settings yaml: %w", err)
	}

	return cfg, nil
}

// EnsureDirs creates the parent directories of the database and log files.
func EnsureDirs(cfg Config) error {
	for _, path := range []string{cfg.Database, cfg.LogFile} {
		dir := filepath.Dir(path)
		if dir == "." || dir == "" {
			continue
		}

		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
