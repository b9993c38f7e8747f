// Package errors provides structured error handling for the terramach engine.
//
// Runtime failures (a display that cannot create a surface, a texture that
// fails to render) are reported as *TerraError values. Broken engine
// invariants are reported through Violation, which panics while
// PanicOnViolation is enabled and otherwise hands a *ContractError to the
// installed Handler.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindPipeline indicates a render pipeline or display failure.
	KindPipeline
	// KindTexture indicates a texture lifecycle failure.
	KindTexture
	// KindContract indicates a broken engine invariant.
	KindContract
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindPipeline:
		return "pipeline"
	case KindTexture:
		return "texture"
	case KindContract:
		return "contract"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// TerraError represents a structured runtime error.
type TerraError struct {
	// Op is the operation that failed (e.g., "gpu.Pipeline.Run").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *TerraError) Error() string {
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *TerraError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "gpu.Pipeline.Run").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ContractError describes a broken engine invariant, such as hit testing a
// widget that was never laid out.
type ContractError struct {
	Op         string
	Message    string
	StackTrace string
	Timestamp  time.Time
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("contract violation in %s: %s", e.Op, e.Message)
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *TerraError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleViolation is called for contract violations while
	// PanicOnViolation is disabled.
	HandleViolation(err *ContractError)
}
