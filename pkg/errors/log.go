package errors

import "log/slog"

// LogHandler is an ErrorHandler that writes errors to a slog.Logger.
type LogHandler struct {
	// Logger receives the records. Nil uses slog.Default().
	Logger *slog.Logger
	// Verbose enables stack traces in the output.
	Verbose bool
}

func (h *LogHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// HandleError logs a TerraError.
func (h *LogHandler) HandleError(err *TerraError) {
	if err == nil {
		return
	}
	h.logger().Error("terra error", "op", err.Op, "kind", err.Kind.String(), "err", err.Err)
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "value", err.Value}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Error("terra panic", attrs...)
}

// HandleViolation logs a ContractError.
func (h *LogHandler) HandleViolation(err *ContractError) {
	if err == nil {
		return
	}
	attrs := []any{"op", err.Op, "message", err.Message}
	if h.Verbose && err.StackTrace != "" {
		attrs = append(attrs, "stack", err.StackTrace)
	}
	h.logger().Warn("terra contract violation", attrs...)
}
