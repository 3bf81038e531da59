package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Window is a titled top-level container that clips its content. Closing it
// collapses the node and emits WindowClosed.
type Window struct {
	kindBase
	title      string
	background graphics.Color
	open       bool
}

// NewWindow creates an open Window.
func NewWindow(title string) *Window {
	return &Window{
		title:      title,
		background: graphics.RGB(0x30, 0x30, 0x30),
		open:       true,
	}
}

// Title returns the window title.
func (w *Window) Title() string { return w.title }

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) { w.title = title }

// SetBackground sets the window fill.
func (w *Window) SetBackground(c graphics.Color) { w.background = c }

// IsOpen reports whether the window is shown.
func (w *Window) IsOpen() bool { return w.open }

// Close collapses the window and queues WindowClosed. Closing a closed
// window does nothing.
func (w *Window) Close() {
	if !w.open {
		return
	}
	w.open = false
	w.setVisibility(graphics.Collapsed)
	w.queue(WindowClosed{})
}

// Open makes a closed window visible again.
func (w *Window) Open() {
	if w.open {
		return
	}
	w.open = true
	w.setVisibility(graphics.Visible)
}

func (w *Window) setVisibility(v graphics.Visibility) {
	if w.owner != nil {
		_ = w.owner.SetVisibility(w.self, v)
	}
}

func (w *Window) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	if w.background.A() > 0 {
		ctx.FillRect(bounds, w.background.Modulate(tint))
	}
}
