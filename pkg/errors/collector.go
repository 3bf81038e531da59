package errors

import "sync"

// Collector is an ErrorHandler that keeps everything it receives.
// It is useful in tests and in tools that summarize a frame's failures.
type Collector struct {
	mu      sync.Mutex
	errors  []*Error
	panics  []*PanicError
	forward ErrorHandler
}

// NewCollector returns a Collector that also forwards to next, if non-nil.
func NewCollector(next ErrorHandler) *Collector {
	return &Collector{forward: next}
}

// HandleError records err.
func (c *Collector) HandleError(err *Error) {
	c.mu.Lock()
	c.errors = append(c.errors, err)
	c.mu.Unlock()
	if c.forward != nil {
		c.forward.HandleError(err)
	}
}

// HandlePanic records err.
func (c *Collector) HandlePanic(err *PanicError) {
	c.mu.Lock()
	c.panics = append(c.panics, err)
	c.mu.Unlock()
	if c.forward != nil {
		c.forward.HandlePanic(err)
	}
}

// Errors returns a copy of the recorded errors.
func (c *Collector) Errors() []*Error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*Error(nil), c.errors...)
}

// Panics returns a copy of the recorded panics.
func (c *Collector) Panics() []*PanicError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*PanicError(nil), c.panics...)
}

// Reset drops everything recorded so far.
func (c *Collector) Reset() {
	c.mu.Lock()
	c.errors = nil
	c.panics = nil
	c.mu.Unlock()
}
