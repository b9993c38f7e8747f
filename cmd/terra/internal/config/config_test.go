package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terramach/terramach/pkg/graphics"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "module example.com/acme/counter/v2\n\ngo 1.25\n")

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "example.com/acme/counter/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.AppName != "counter" {
		t.Errorf("AppName = %q, want counter", cfg.AppName)
	}
	if cfg.Size != graphics.Sz(400, 300) {
		t.Errorf("Size = %v, want 400x300", cfg.Size)
	}
	if cfg.DevicePixelRatio != 1 || cfg.RefreshRate != 60 {
		t.Errorf("dpr = %g, refresh = %g", cfg.DevicePixelRatio, cfg.RefreshRate)
	}
	if cfg.TapTimeout != 500*time.Millisecond || cfg.TapSlop != 10 {
		t.Errorf("tap timeout = %s, slop = %g", cfg.TapTimeout, cfg.TapSlop)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want INFO", cfg.LogLevel)
	}
}

func TestResolveWithoutGoMod(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scratch")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "" || cfg.AppName != "scratch" {
		t.Errorf("got module %q name %q", cfg.ModulePath, cfg.AppName)
	}
}

func TestResolveOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, FileName, `
app:
  name: "  Demo  "
window:
  width: 640
  height: 480
  device_pixel_ratio: 2
  refresh_rate: 120
gesture:
  tap_timeout: 250ms
  tap_slop: 0
log:
  level: debug
`)

	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.AppName != "Demo" {
		t.Errorf("AppName = %q", cfg.AppName)
	}
	opts := cfg.AppOptions()
	if opts.Size != graphics.Sz(640, 480) || opts.DevicePixelRatio != 2 || opts.RefreshRate != 120 {
		t.Errorf("AppOptions = %+v", opts)
	}
	if cfg.TapTimeout != 250*time.Millisecond {
		t.Errorf("TapTimeout = %s", cfg.TapTimeout)
	}
	if cfg.TapSlop != 0 {
		t.Errorf("explicit zero slop should be kept, got %g", cfg.TapSlop)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "window: [", "failed to parse terra.yaml"},
		{"bad duration", "gesture:\n  tap_timeout: soon\n", "gesture.tap_timeout"},
		{"negative duration", "gesture:\n  tap_timeout: -1s\n", "gesture.tap_timeout cannot be negative"},
		{"negative slop", "gesture:\n  tap_slop: -3\n", "gesture.tap_slop"},
		{"negative width", "window:\n  width: -1\n", "window size"},
		{"negative dpr", "window:\n  device_pixel_ratio: -2\n", "device_pixel_ratio"},
		{"negative refresh", "window:\n  refresh_rate: -60\n", "refresh_rate"},
		{"bad level", "log:\n  level: loud\n", "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, FileName, tt.yaml)
			_, err := Resolve(dir)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if cfg.App.Name != "" || cfg.Window.Width != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestInvalidGoMod(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "go.mod", "go 1.25\n")
	if _, err := Resolve(dir); err == nil {
		t.Fatal("expected error for go.mod without module line")
	}
}

func TestDefaultName(t *testing.T) {
	tests := []struct {
		module, dir, want string
	}{
		{"github.com/acme/widgets", "/src/x", "widgets"},
		{"github.com/acme/widgets/v3", "/src/x", "widgets"},
		{"", "/src/shop", "shop"},
		{"", "/", defaultAppName},
	}
	for _, tt := range tests {
		if got := defaultName(tt.module, tt.dir); got != tt.want {
			t.Errorf("defaultName(%q, %q) = %q, want %q", tt.module, tt.dir, got, tt.want)
		}
	}
}
