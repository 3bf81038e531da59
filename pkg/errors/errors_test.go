package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestErrorString(t *testing.T) {
	err := New("ui.Link", KindCyclicGraph, "node %d is an ancestor", 3)
	got := err.Error()
	want := "ui.Link [cyclic_graph]: node 3 is an ancestor"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringWithNode(t *testing.T) {
	err := New("ui.Node", KindStaleHandle, "no such node").WithNode(stringer("4:2"))
	got := err.Error()
	if !strings.Contains(got, "node=4:2") {
		t.Errorf("error string %q should contain node=4:2", got)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindStaleHandle, "stale_handle"},
		{KindMismatch, "kind_mismatch"},
		{KindCyclicGraph, "cyclic_graph"},
		{KindLayout, "layout"},
		{KindInvalidNumeric, "invalid_numeric"},
		{KindDraw, "draw"},
		{KindPanic, "panic"},
		{KindScene, "scene"},
		{KindNotDetached, "not_detached"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestSentinelMatching(t *testing.T) {
	err := fmt.Errorf("while linking: %w", New("ui.Link", KindCyclicGraph, "cycle"))

	if !stderrors.Is(err, ErrCyclicGraph) {
		t.Error("expected wrapped error to match ErrCyclicGraph")
	}
	if stderrors.Is(err, ErrStaleHandle) {
		t.Error("cyclic error must not match ErrStaleHandle")
	}
	if !IsKind(err, KindCyclicGraph) {
		t.Error("IsKind should see through fmt wrapping")
	}
	joined := stderrors.Join(stderrors.New("other"), New("ui.measure", KindLayout, "boom"))
	if !IsKind(joined, KindLayout) {
		t.Error("IsKind should see into joined errors")
	}
	if IsKind(nil, KindLayout) {
		t.Error("IsKind(nil) = true")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	err := Wrap("scene.Load", KindScene, cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected Wrap to preserve the cause")
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "ui.measure"
	if got, want := err.Error(), "panic in ui.measure: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestReportTo(t *testing.T) {
	c := NewCollector(nil)

	ReportTo(c, New("test.op", KindDraw, "bad"))
	ReportPanicTo(c, &PanicError{Value: 1})
	ReportTo(nil, New("test.op", KindDraw, "dropped"))
	ReportTo(c, nil)

	errs := c.Errors()
	if len(errs) != 1 || len(c.Panics()) != 1 {
		t.Fatalf("captured %d errors and %d panics, want 1 and 1", len(errs), len(c.Panics()))
	}
	if errs[0].Op != "test.op" {
		t.Errorf("Op = %q, want %q", errs[0].Op, "test.op")
	}
	if errs[0].Timestamp.IsZero() || c.Panics()[0].Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}

	c.Reset()
	if len(c.Errors()) != 0 || len(c.Panics()) != 0 {
		t.Error("Reset should drop everything recorded")
	}
}

func TestCollectorForwards(t *testing.T) {
	next := NewCollector(nil)
	c := NewCollector(next)

	c.HandleError(New("test.op", KindLayout, "bad"))
	c.HandlePanic(&PanicError{Value: "boom"})

	if len(next.Errors()) != 1 || len(next.Panics()) != 1 {
		t.Errorf("forwarded %d errors and %d panics, want 1 and 1", len(next.Errors()), len(next.Panics()))
	}
}

func TestRecoverTo(t *testing.T) {
	c := NewCollector(nil)

	var got *PanicError
	func() {
		defer RecoverTo(c, "test.recover", stringer("2:1"), func(pe *PanicError) { got = pe })
		panic("intentional test panic")
	}()

	panics := c.Panics()
	if len(panics) != 1 {
		t.Fatalf("captured %d panics, want 1", len(panics))
	}
	if got != panics[0] {
		t.Error("callback should receive the reported panic")
	}
	if got.Value != "intentional test panic" || got.Op != "test.recover" || got.Node != "2:1" {
		t.Errorf("panic = %+v", got)
	}
	if got.StackTrace == "" {
		t.Error("expected a stack trace")
	}
}

func TestRecoverToWithoutPanic(t *testing.T) {
	c := NewCollector(nil)
	called := false
	func() {
		defer RecoverTo(c, "test.calm", nil, func(*PanicError) { called = true })
	}()
	if called || len(c.Panics()) != 0 {
		t.Error("nothing should be reported without a panic")
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

func TestLogHandlerWritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: log.New(&buf)}

	h.HandleError(New("ui.measure", KindLayout, "override failed").WithNode(stringer("1:1")))
	h.HandlePanic(&PanicError{Op: "ui.arrange", Value: "boom"})

	out := buf.String()
	for _, want := range []string{"scene graph error", "op=ui.measure", "kind=layout", "node=1:1", "recovered panic", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}

type stringer string

func (s stringer) String() string { return string(s) }
