package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/terramach/terramach/cmd/terra/internal/config"
	"github.com/terramach/terramach/cmd/terra/internal/demo"
	"github.com/terramach/terramach/pkg/app"
	"github.com/terramach/terramach/pkg/errors"
	"github.com/terramach/terramach/pkg/gpu/software"
	"github.com/terramach/terramach/pkg/graphics"
	"github.com/terramach/terramach/pkg/input"
	"github.com/terramach/terramach/pkg/logging"
	"github.com/terramach/terramach/pkg/platform"
)

// loadConfig resolves terra.yaml for the enclosing module and installs a
// stderr logger at the configured level.
func loadConfig() (*config.Resolved, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	logging.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: cfg.LogLevel <= slog.LevelDebug})
	errors.SetPanicOnViolation(false)
	return cfg, nil
}

// session runs the demo app without a window. The pipeline renders on its
// own goroutine while the caller steps the UI state directly, so every
// input is handled before the next one is sent.
type session struct {
	display *software.Display
	app     *app.App
	touchID input.TouchID
}

func newSession(cfg *config.Resolved) *session {
	display := software.NewDisplay(cfg.Size)
	opts := cfg.AppOptions()
	opts.Display = display
	opts.VSync = platform.ImmediateVSync{}
	root := demo.Counter{
		Title:      cfg.AppName,
		TapTimeout: cfg.TapTimeout,
		TapSlop:    cfg.TapSlop,
	}
	return &session{display: display, app: app.New(root, opts)}
}

// run renders the first frame, runs script and waits until the pipeline
// presented everything that was submitted.
func (s *session) run(ctx context.Context, script func(ctx context.Context) error) error {
	pipeline := s.app.Pipeline()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pipeline.Run(ctx)
	})
	g.Go(func() error {
		defer pipeline.Close()
		if err := s.step(ctx); err != nil {
			return err
		}
		if script != nil {
			if err := script(ctx); err != nil {
				return err
			}
		}
		// Frames requested during the script are already queued.
		return s.step(ctx)
	})
	return g.Wait()
}

func (s *session) step(ctx context.Context) error {
	running, err := s.app.State().Step(ctx)
	if err != nil {
		return err
	}
	if !running {
		return ctx.Err()
	}
	return nil
}

// tap hovers location and presses one finger there. The press and the
// release are handled in separate steps so recognizers see both.
func (s *session) tap(ctx context.Context, location graphics.Point) error {
	s.touchID++
	touch := input.Touch{ID: s.touchID, Location: location}
	s.app.Send(app.Hover{Location: location})
	s.app.Send(app.TouchBegin{Touch: touch})
	if err := s.step(ctx); err != nil {
		return err
	}
	s.app.Send(app.TouchEnd{Touch: touch})
	return s.step(ctx)
}

// parsePoint parses "x,y" in logical pixels.
func parsePoint(raw string) (graphics.Point, error) {
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return graphics.Point{}, fmt.Errorf("invalid point %q (want x,y)", raw)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return graphics.Point{}, fmt.Errorf("invalid x in %q: %w", raw, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return graphics.Point{}, fmt.Errorf("invalid y in %q: %w", raw, err)
	}
	return graphics.Pt(x, y), nil
}
