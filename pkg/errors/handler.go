package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultHandler receives everything reported through this package. Replace
// it with SetHandler; reads and writes are serialized.
var DefaultHandler ErrorHandler = &LogHandler{}

var (
	handlerMu        sync.RWMutex
	panicOnViolation atomic.Bool
)

func init() {
	panicOnViolation.Store(true)
}

// SetHandler installs h. Nil restores a plain LogHandler.
func SetHandler(h ErrorHandler) {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	DefaultHandler = h
	handlerMu.Unlock()
}

func handler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return DefaultHandler
}

// Report hands err to the handler, stamping it first if needed.
func Report(err *TerraError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if h := handler(); h != nil {
		h.HandleError(err)
	}
}

// ReportPanic hands a recovered panic to the handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := handler(); h != nil {
		h.HandlePanic(err)
	}
}

// SetPanicOnViolation chooses between panicking on a Violation (the
// default, used by tests) and reporting it.
func SetPanicOnViolation(enabled bool) {
	panicOnViolation.Store(enabled)
}

// PanicOnViolation reports the current Violation mode.
func PanicOnViolation() bool {
	return panicOnViolation.Load()
}

// Violation signals a broken widget or engine contract, such as a widget
// adding children from Layout. Depending on PanicOnViolation it panics with
// a *ContractError or reports it and returns so the caller can carry on.
func Violation(op, format string, args ...any) {
	err := &ContractError{
		Op:         op,
		Message:    fmt.Sprintf(format, args...),
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
	if panicOnViolation.Load() {
		panic(err)
	}
	if h := handler(); h != nil {
		h.HandleViolation(err)
	}
}

// Recover reports a panic in the calling goroutine. It must be deferred
// directly:
//
//	defer errors.Recover("gpu.Texture.Render")
func Recover(op string) {
	if r := recover(); r != nil {
		reportRecovered(op, r)
	}
}

// RecoverWithCallback is Recover followed by callback(r), which lets the
// caller turn the panic into a return value.
func RecoverWithCallback(op string, callback func(r any)) {
	r := recover()
	if r == nil {
		return
	}
	reportRecovered(op, r)
	if callback != nil {
		callback(r)
	}
}

func reportRecovered(op string, r any) {
	ReportPanic(&PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	})
}

// CaptureStack formats the caller's stack, one function and position per
// frame, at most 32 frames deep.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			return sb.String()
		}
	}
}
