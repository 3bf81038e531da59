package errors

import (
	"github.com/charmbracelet/log"
)

// LogHandler is an ErrorHandler that writes errors to a charmbracelet logger.
type LogHandler struct {
	// Logger receives the entries. Nil means log.Default().
	Logger *log.Logger
	// Verbose adds stack traces to the output.
	Verbose bool
}

func (h *LogHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.Default()
}

// HandleError logs an Error at warn level.
func (h *LogHandler) HandleError(err *Error) {
	if err == nil {
		return
	}
	kv := []any{"op", err.Op, "kind", err.Kind.String()}
	if err.Node != "" {
		kv = append(kv, "node", err.Node)
	}
	if err.Err != nil {
		kv = append(kv, "err", err.Err)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Warn("scene graph error", kv...)
}

// HandlePanic logs a PanicError at error level.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	kv := []any{"value", err.Value}
	if err.Op != "" {
		kv = append(kv, "op", err.Op)
	}
	if err.Node != "" {
		kv = append(kv, "node", err.Node)
	}
	if h.Verbose && err.StackTrace != "" {
		kv = append(kv, "stack", err.StackTrace)
	}
	h.logger().Error("recovered panic", kv...)
}
