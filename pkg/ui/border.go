package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Border draws a background and a stroke around its children. Children are
// laid out inside the stroke.
type Border struct {
	kindBase
	stroke      graphics.Thickness
	background  graphics.Color
	strokeColor graphics.Color
}

// NewBorder creates a Border with a one pixel stroke and no background.
func NewBorder() *Border {
	return &Border{
		stroke:      graphics.Uniform(1),
		strokeColor: graphics.ColorWhite,
	}
}

// Stroke returns the stroke thickness.
func (b *Border) Stroke() graphics.Thickness { return b.stroke }

// SetStroke sets the stroke thickness.
func (b *Border) SetStroke(t graphics.Thickness) {
	b.stroke = t.Sanitize()
	b.invalidateMeasure()
}

// Background returns the fill color.
func (b *Border) Background() graphics.Color { return b.background }

// SetBackground sets the fill color. Transparent disables the fill.
func (b *Border) SetBackground(c graphics.Color) { b.background = c }

// StrokeColor returns the stroke color.
func (b *Border) StrokeColor() graphics.Color { return b.strokeColor }

// SetStrokeColor sets the stroke color.
func (b *Border) SetStrokeColor(c graphics.Color) { b.strokeColor = c }

func (b *Border) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	stroke := b.stroke.Axes()
	inner := available.Sub(stroke).Sanitize()
	return ui.DefaultMeasureOverride(self, inner).Add(stroke)
}

func (b *Border) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	rect := graphics.RectFromPosSize(graphics.Vector{}, final).Deflate(b.stroke)
	for _, c := range ui.Children(self) {
		ui.Arrange(c, rect)
	}
	return final
}

func (b *Border) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	if b.background.A() > 0 {
		ctx.FillRect(bounds, b.background.Modulate(tint))
	}
	if b.stroke != (graphics.Thickness{}) {
		ctx.StrokeRect(bounds, b.stroke, b.strokeColor.Modulate(tint))
	}
}
