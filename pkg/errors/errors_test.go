package errors

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestTerraErrorString(t *testing.T) {
	err := &TerraError{
		Op:   "gpu.Pipeline.Run",
		Kind: KindPipeline,
		Err:  fmt.Errorf("surface lost"),
	}
	got := err.Error()
	want := "gpu.Pipeline.Run [pipeline]: surface lost"
	if got != want {
		t.Errorf("TerraError.Error() = %q, want %q", got, want)
	}
}

func TestTerraErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	err := &TerraError{Op: "op", Err: inner}
	if err.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindPipeline, "pipeline"},
		{KindTexture, "texture"},
		{KindContract, "contract"},
		{KindPanic, "panic"},
		{KindConfig, "config"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorStringWithOp(t *testing.T) {
	err := &PanicError{
		Op:        "gpu.Pipeline.Run",
		Value:     "test panic",
		Timestamp: time.Now(),
	}
	got := err.Error()
	want := "panic in gpu.Pipeline.Run: test panic"
	if got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReport(t *testing.T) {
	var capturedErr *TerraError
	handler := &testHandler{
		onError: func(err *TerraError) {
			capturedErr = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	Report(&TerraError{
		Op:   "test.op",
		Kind: KindTexture,
		Err:  fmt.Errorf("render failed"),
	})

	if capturedErr == nil {
		t.Fatal("expected error to be captured")
	}
	if capturedErr.Op != "test.op" {
		t.Errorf("Op = %q, want %q", capturedErr.Op, "test.op")
	}
	if capturedErr.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestReportPanic(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	ReportPanic(&PanicError{
		Value:     "test panic value",
		Timestamp: time.Now(),
	})

	if capturedPanic == nil {
		t.Fatal("expected panic to be captured")
	}
	if capturedPanic.Value != "test panic value" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "test panic value")
	}
}

func TestRecover(t *testing.T) {
	var capturedPanic *PanicError
	handler := &testHandler{
		onPanic: func(err *PanicError) {
			capturedPanic = err
		},
	}

	oldHandler := DefaultHandler
	SetHandler(handler)
	defer SetHandler(oldHandler)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	if capturedPanic == nil {
		t.Fatal("expected panic to be recovered and captured")
	}
	if capturedPanic.Value != "intentional test panic" {
		t.Errorf("Value = %v, want %q", capturedPanic.Value, "intentional test panic")
	}
	if capturedPanic.Op != "test.recover" {
		t.Errorf("Op = %q, want %q", capturedPanic.Op, "test.recover")
	}
}

func TestRecoverWithCallback(t *testing.T) {
	oldHandler := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(oldHandler)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	if got != 42 {
		t.Errorf("callback value = %v, want 42", got)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	if DefaultHandler == nil {
		t.Error("SetHandler(nil) should set default LogHandler, not nil")
	}
	if _, ok := DefaultHandler.(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should set LogHandler, got %T", DefaultHandler)
	}
}

func TestViolationPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(*ContractError)
		if !ok {
			t.Fatalf("recovered %T, want *ContractError", r)
		}
		if err.Op != "core.HitTest" {
			t.Errorf("Op = %q, want %q", err.Op, "core.HitTest")
		}
		if err.Message != "widget 3 has no size" {
			t.Errorf("Message = %q", err.Message)
		}
	}()
	Violation("core.HitTest", "widget %d has no size", 3)
	t.Fatal("Violation should panic")
}

func TestViolationReportsWhenNotPanicking(t *testing.T) {
	var captured *ContractError
	oldHandler := DefaultHandler
	SetHandler(&testHandler{onViolation: func(err *ContractError) { captured = err }})
	defer SetHandler(oldHandler)

	SetPanicOnViolation(false)
	defer SetPanicOnViolation(true)

	Violation("core.EmitEvent", "broadcast of %s", "Tap")
	if captured == nil {
		t.Fatal("expected violation to reach the handler")
	}
	if !strings.Contains(captured.Error(), "broadcast of Tap") {
		t.Errorf("Error() = %q", captured.Error())
	}
}

type testHandler struct {
	onError     func(*TerraError)
	onPanic     func(*PanicError)
	onViolation func(*ContractError)
}

func (h *testHandler) HandleError(err *TerraError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}

func (h *testHandler) HandleViolation(err *ContractError) {
	if h.onViolation != nil {
		h.onViolation(err)
	}
}
