package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Canvas places each child at the child's desired position with its desired
// size. Children are measured with unbounded space, and the Canvas itself
// desires no space.
type Canvas struct {
	kindBase
}

// NewCanvas creates a Canvas.
func NewCanvas() *Canvas {
	return &Canvas{}
}

func (c *Canvas) measureOverride(ui *UserInterface, self Handle, _ graphics.Vector) graphics.Vector {
	for _, child := range ui.Children(self) {
		ui.Measure(child, graphics.Infinite())
	}
	return graphics.Vector{}
}

func (c *Canvas) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	for _, child := range ui.Children(self) {
		n, ok := ui.nodes.Borrow(child)
		if !ok {
			continue
		}
		desired, _ := ui.DesiredSize(child)
		ui.Arrange(child, graphics.RectFromPosSize(n.desiredPosition, desired))
	}
	return final
}
