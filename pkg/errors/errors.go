// Package errors provides structured error handling for the scene graph.
//
// Handle and kind errors are always returned to the caller. Layout and draw
// failures inside a subtree are reported through an [ErrorHandler]
// and isolated to that subtree, so one malformed branch never aborts a frame.
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
	// KindStaleHandle indicates a lookup of a freed or never-allocated handle.
	KindStaleHandle
	// KindMismatch indicates a kind-checked downcast against a node of another kind.
	KindMismatch
	// KindCyclicGraph indicates a parent/child relationship that forms a cycle.
	KindCyclicGraph
	// KindLayout indicates a measure or arrange failure inside a subtree.
	KindLayout
	// KindInvalidNumeric indicates a NaN or negative size where one is not meaningful.
	KindInvalidNumeric
	// KindDraw indicates a draw pass failure inside a subtree.
	KindDraw
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindScene indicates a malformed scene document.
	KindScene
	// KindNotDetached indicates an operation that needs a node without a
	// parent, such as registering a root.
	KindNotDetached
)

func (k ErrorKind) String() string {
	switch k {
	case KindStaleHandle:
		return "stale_handle"
	case KindMismatch:
		return "kind_mismatch"
	case KindCyclicGraph:
		return "cyclic_graph"
	case KindLayout:
		return "layout"
	case KindInvalidNumeric:
		return "invalid_numeric"
	case KindDraw:
		return "draw"
	case KindPanic:
		return "panic"
	case KindScene:
		return "scene"
	case KindNotDetached:
		return "not_detached"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with the standard library errors.Is. Any *Error
// with the same Kind matches the sentinel.
var (
	ErrStaleHandle    = &Error{Kind: KindStaleHandle}
	ErrKindMismatch   = &Error{Kind: KindMismatch}
	ErrCyclicGraph    = &Error{Kind: KindCyclicGraph}
	ErrLayout         = &Error{Kind: KindLayout}
	ErrInvalidNumeric = &Error{Kind: KindInvalidNumeric}
	ErrScene          = &Error{Kind: KindScene}
	ErrNotDetached    = &Error{Kind: KindNotDetached}
)

// Error represents a structured scene graph error.
type Error struct {
	// Op is the operation that failed (e.g., "ui.Link").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Node is the handle of the node involved, formatted as index:generation.
	Node string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

// New creates an Error with a formatted cause.
func New(op string, kind ErrorKind, format string, args ...any) *Error {
	return &Error{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap creates an Error around an existing cause.
func Wrap(op string, kind ErrorKind, cause error) *Error {
	return &Error{Op: op, Kind: kind, Err: cause}
}

// WithNode returns e with the Node field set and e for chaining.
func (e *Error) WithNode(node fmt.Stringer) *Error {
	e.Node = node.String()
	return e
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Err != nil {
		msg = e.Err.Error()
	}
	switch {
	case e.Op == "":
		return fmt.Sprintf("[%s]: %s", e.Kind, msg)
	case e.Node != "":
		return fmt.Sprintf("%s [%s] node=%s: %s", e.Op, e.Kind, e.Node, msg)
	default:
		return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, msg)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a bare sentinel of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" || t.Err != nil || t.Node != "" {
		return t == e
	}
	return t.Kind == e.Kind
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind.
func IsKind(err error, kind ErrorKind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Kind == kind {
			return true
		}
		switch u := err.(type) {
		case interface{ Unwrap() error }:
			err = u.Unwrap()
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				if IsKind(inner, kind) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return false
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "ui.measure").
	Op string
	// Node is the handle of the node whose override panicked, if any.
	Node string
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

// ErrorHandler receives errors reported by the scene graph.
type ErrorHandler interface {
	// HandleError is called when an isolated subtree failure occurs.
	HandleError(err *Error)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
