package ui

import (
	"fmt"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Event is a notification produced by a node during a frame and collected
// by DrainEvents. Custom kinds define their own event types.
type Event interface {
	EventName() string
}

// SourcedEvent pairs an event with the node that produced it.
type SourcedEvent struct {
	Source Handle
	Event  Event
}

func (e SourcedEvent) String() string {
	return fmt.Sprintf("%s from %s", e.Event.EventName(), e.Source)
}

// ButtonClicked is emitted by a Button when it is clicked.
type ButtonClicked struct{}

func (ButtonClicked) EventName() string { return "button_clicked" }

// WindowClosed is emitted by a Window when it is closed.
type WindowClosed struct{}

func (WindowClosed) EventName() string { return "window_closed" }

// ValueChanged is emitted by a ScrollBar when its value changes.
type ValueChanged struct {
	Old   float64
	Value float64
}

func (ValueChanged) EventName() string { return "value_changed" }

// ScrollChanged is emitted by a ScrollContentPresenter or ScrollViewer when
// its scroll offset changes.
type ScrollChanged struct {
	Offset graphics.Vector
}

func (ScrollChanged) EventName() string { return "scroll_changed" }

// DrainEvents collects and clears the pending event of every node, in arena
// slot order.
func (ui *UserInterface) DrainEvents() []SourcedEvent {
	var out []SourcedEvent
	for h, n := range ui.nodes.All() {
		if e, ok := emitEvent(n.kind); ok {
			out = append(out, SourcedEvent{Source: h, Event: e})
		}
	}
	return out
}
