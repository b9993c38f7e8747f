// Package logging holds the structured logger shared by every terramach
// package. By default nothing is logged.
package logging

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for all terramach packages and forwards
// it to the gg rasterizer used by the software display.
// Pass nil to restore silent behavior.
//
// Levels used:
//   - [slog.LevelDebug]: per-frame diagnostics (build/layout/paint counts, batch sizes)
//   - [slog.LevelInfo]: lifecycle events (pipeline start/stop, surface creation)
//   - [slog.LevelWarn]: recoverable problems (texture render failures)
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// Enabled reports whether the current logger emits records at level.
func Enabled(level slog.Level) bool {
	return Logger().Enabled(context.Background(), level)
}
