// Package config loads the optional terra.yaml next to a Go module and
// resolves it into the options the CLI runs an app with.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"gopkg.in/yaml.v3"

	"github.com/terramach/terramach/pkg/app"
	"github.com/terramach/terramach/pkg/graphics"
)

// FileName is the config file looked up in the project root.
const FileName = "terra.yaml"

// Defaults applied by Resolve.
const (
	DefaultWidth            = 400
	DefaultHeight           = 300
	DefaultDevicePixelRatio = 1.0
	DefaultRefreshRate      = 60.0
	DefaultTapTimeout       = 500 * time.Millisecond
	DefaultTapSlop          = 10.0
	DefaultLogLevel         = "info"
	defaultAppName          = "terra_app"
)

// Config represents the optional terra.yaml configuration.
type Config struct {
	App     AppConfig     `yaml:"app"`
	Window  WindowConfig  `yaml:"window"`
	Gesture GestureConfig `yaml:"gesture"`
	Log     LogConfig     `yaml:"log"`
}

// AppConfig contains application metadata.
type AppConfig struct {
	Name string `yaml:"name,omitempty"`
}

// WindowConfig describes the window the app renders into.
type WindowConfig struct {
	Width            float64 `yaml:"width,omitempty"`
	Height           float64 `yaml:"height,omitempty"`
	DevicePixelRatio float64 `yaml:"device_pixel_ratio,omitempty"`
	RefreshRate      float64 `yaml:"refresh_rate,omitempty"`
}

// GestureConfig tunes tap recognition.
type GestureConfig struct {
	TapTimeout string   `yaml:"tap_timeout,omitempty"`
	TapSlop    *float64 `yaml:"tap_slop,omitempty"`
}

// LogConfig selects the log level.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root             string
	ModulePath       string
	AppName          string
	Size             graphics.Size
	DevicePixelRatio float64
	RefreshRate      float64
	TapTimeout       time.Duration
	TapSlop          float64
	LogLevel         slog.Level
}

// AppOptions returns the app options for the resolved window.
func (r *Resolved) AppOptions() app.Options {
	return app.Options{
		Size:             r.Size,
		DevicePixelRatio: r.DevicePixelRatio,
		RefreshRate:      r.RefreshRate,
	}
}

// LoadOptional reads terra.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads terra.yaml (if present), fills in defaults and validates
// the result. A directory without go.mod is accepted; the app name then
// comes from the directory.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	appName := strings.TrimSpace(cfg.App.Name)
	if appName == "" {
		appName = defaultName(modulePath, dir)
	}

	resolved := &Resolved{
		Root:             dir,
		ModulePath:       modulePath,
		AppName:          appName,
		Size:             graphics.Sz(orDefault(cfg.Window.Width, DefaultWidth), orDefault(cfg.Window.Height, DefaultHeight)),
		DevicePixelRatio: orDefault(cfg.Window.DevicePixelRatio, DefaultDevicePixelRatio),
		RefreshRate:      orDefault(cfg.Window.RefreshRate, DefaultRefreshRate),
		TapTimeout:       DefaultTapTimeout,
		TapSlop:          DefaultTapSlop,
	}

	if raw := strings.TrimSpace(cfg.Gesture.TapTimeout); raw != "" {
		resolved.TapTimeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("gesture.tap_timeout: %w", err)
		}
	}
	if cfg.Gesture.TapSlop != nil {
		resolved.TapSlop = *cfg.Gesture.TapSlop
	}

	level := strings.TrimSpace(cfg.Log.Level)
	if level == "" {
		level = DefaultLogLevel
	}
	if err := resolved.LogLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}

	if err := resolved.validate(); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (r *Resolved) validate() error {
	switch {
	case r.Size.Width < 0 || r.Size.Height < 0:
		return fmt.Errorf("window size must be positive (got %gx%g)", r.Size.Width, r.Size.Height)
	case r.DevicePixelRatio < 0:
		return fmt.Errorf("window.device_pixel_ratio must be positive (got %g)", r.DevicePixelRatio)
	case r.RefreshRate < 0:
		return fmt.Errorf("window.refresh_rate must be positive (got %g)", r.RefreshRate)
	case r.TapTimeout < 0:
		return fmt.Errorf("gesture.tap_timeout cannot be negative (got %s)", r.TapTimeout)
	case r.TapSlop < 0:
		return fmt.Errorf("gesture.tap_slop cannot be negative (got %g)", r.TapSlop)
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod. It
// returns the current directory when no module encloses it.
func FindProjectRoot() (string, error) {
	start, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for dir := start; ; {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start, nil
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultName(modulePath, dir string) string {
	base := filepath.Base(dir)
	if modName, _, ok := module.SplitPathVersion(modulePath); ok && modName != "" {
		parts := strings.Split(modName, "/")
		base = parts[len(parts)-1]
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		return defaultAppName
	}
	return base
}

func orDefault(value, fallback float64) float64 {
	if value == 0 {
		return fallback
	}
	return value
}
