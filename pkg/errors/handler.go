package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// ReportTo sends err to h. If err.Timestamp is zero, it is set to the
// current time. A nil handler or error is ignored.
func ReportTo(h ErrorHandler, err *Error) {
	if h == nil || err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	h.HandleError(err)
}

// ReportPanicTo sends a panic error to h, like ReportTo.
func ReportPanicTo(h ErrorHandler, err *PanicError) {
	if h == nil || err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	h.HandlePanic(err)
}

// RecoverTo recovers a panic, reports it to h and then passes the report to
// onPanic, if non-nil. It must be deferred directly:
//
//	defer errors.RecoverTo(h, "ui.measureOverride", node, func(pe *errors.PanicError) { ... })
//
// node may be nil.
func RecoverTo(h ErrorHandler, op string, node fmt.Stringer, onPanic func(*PanicError)) {
	r := recover()
	if r == nil {
		return
	}
	pe := &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
	if node != nil {
		pe.Node = node.String()
	}
	ReportPanicTo(h, pe)
	if onPanic != nil {
		onPanic(pe)
	}
}

// CaptureStack returns the current call stack as a string,
// skipping CaptureStack and its caller.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}
