package core

import "github.com/terramach/terramach/pkg/errors"

// DebugMode reports whether contract violations panic. It is on by default.
func DebugMode() bool {
	return errors.PanicOnViolation()
}

// SetDebugMode enables or disables debug mode for the framework. When off,
// violations are reported to the error handler and rendering continues.
func SetDebugMode(debug bool) {
	errors.SetPanicOnViolation(debug)
}
