package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Button is a clickable container. Its content is whatever is linked under
// it; it emits ButtonClicked when clicked.
type Button struct {
	kindBase
	background graphics.Color
	hover      graphics.Color
	clicks     int
}

// NewButton creates a Button with a gray background.
func NewButton() *Button {
	return &Button{
		background: graphics.ColorGray,
		hover:      graphics.RGB(0xa0, 0xa0, 0xa0),
	}
}

// SetBackground sets the fill used when the pointer is not over the button.
func (b *Button) SetBackground(c graphics.Color) { b.background = c }

// SetHoverBackground sets the fill used while the pointer is over the button.
func (b *Button) SetHoverBackground(c graphics.Color) { b.hover = c }

// Click records a click and queues ButtonClicked.
func (b *Button) Click() {
	b.clicks++
	b.queue(ButtonClicked{})
}

// Clicks returns how many times the button was clicked.
func (b *Button) Clicks() int { return b.clicks }

func (b *Button) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	fill := b.background
	if b.owner != nil {
		if n, ok := b.owner.nodes.Borrow(b.self); ok && n.isMouseOver {
			fill = b.hover
		}
	}
	if fill.A() > 0 {
		ctx.FillRect(bounds, fill.Modulate(tint))
	}
}
