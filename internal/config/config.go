// Package config loads the cursormon configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/cursormon/internal/capture"
)

// Reporting modes accepted by the config file.
const (
	ModeShapeAndPosition = "shape_and_position"
	ModeShapeOnly        = "shape_only"
)

// Config is the effective cursormon configuration.
type Config struct {
	// Display is the X display to connect to; empty means $DISPLAY.
	Display string `yaml:"display"`
	// Mode selects shape_and_position or shape_only reporting.
	Mode string `yaml:"mode"`
	// IntervalMS is the default capture tick cadence in milliseconds.
	IntervalMS int `yaml:"interval_ms"`
	// OutputDir is where snapshots are written.
	OutputDir string `yaml:"output_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ValidationError reports an invalid config value with its YAML path.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:       ModeShapeAndPosition,
		IntervalMS: 50,
		OutputDir:  ".",
		LogLevel:   "info",
	}
}

// DefaultConfigPath returns ~/.config/cursormon/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "cursormon", "config.yaml"), nil
}

// Load reads the configuration from the standard location. A missing file
// yields the defaults.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the configuration at path. A missing
// file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field that has a constrained value set.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeShapeAndPosition, ModeShapeOnly:
	default:
		return &ValidationError{
			Path: "mode",
			Err:  fmt.Errorf("must be %q or %q", ModeShapeAndPosition, ModeShapeOnly),
		}
	}
	if c.IntervalMS <= 0 {
		return &ValidationError{Path: "interval_ms", Err: errors.New("must be positive")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{
			Path: "log_level",
			Err:  errors.New("must be one of: debug, info, warn, error"),
		}
	}
	return nil
}

// CaptureMode maps the configured mode string onto the capture API.
func (c *Config) CaptureMode() capture.Mode {
	if c.Mode == ModeShapeOnly {
		return capture.ShapeOnly
	}
	return capture.ShapeAndPosition
}

// Interval returns the tick cadence as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.IntervalMS) * time.Millisecond
}

// SlogLevel maps the configured log level onto slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
