package ui

import (
	"math"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// DefaultScrollBarThickness is the minimum cross-axis size of a ScrollBar.
const DefaultScrollBarThickness = 12

// ScrollBar selects a value in [Min, Max] and shows it as a thumb on a
// track. The thumb is drawn by the bar itself; children, if any, are laid
// out over the whole bar.
type ScrollBar struct {
	kindBase
	orientation graphics.Orientation
	min         float64
	max         float64
	value       float64
	step        float64
	thickness   float64

	track graphics.Color
	thumb graphics.Color

	onChange func(value float64)
}

// NewScrollBar creates a bar over [0, 100] with a step of 10.
func NewScrollBar(o graphics.Orientation) *ScrollBar {
	return &ScrollBar{
		orientation: o,
		max:         100,
		step:        10,
		thickness:   DefaultScrollBarThickness,
		track:       graphics.RGB(0x40, 0x40, 0x40),
		thumb:       graphics.RGB(0xa0, 0xa0, 0xa0),
	}
}

// Orientation returns the bar's axis.
func (b *ScrollBar) Orientation() graphics.Orientation { return b.orientation }

// SetOrientation sets the bar's axis.
func (b *ScrollBar) SetOrientation(o graphics.Orientation) {
	b.orientation = o
	b.invalidateMeasure()
}

// Range returns the bounds of the value.
func (b *ScrollBar) Range() (lo, hi float64) { return b.min, b.max }

// SetRange sets the bounds of the value and clamps the value into them.
// An inverted range is collapsed to lo.
func (b *ScrollBar) SetRange(lo, hi float64) {
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return
	}
	if hi < lo {
		hi = lo
	}
	if lo == b.min && hi == b.max {
		return
	}
	b.min, b.max = lo, hi
	b.SetValue(b.value)
}

// Value returns the current value.
func (b *ScrollBar) Value() float64 { return b.value }

// SetValue sets the value, clamped to the range. A change queues
// ValueChanged. The value does not affect layout; the thumb is placed at
// draw time.
func (b *ScrollBar) SetValue(v float64) {
	if math.IsNaN(v) {
		return
	}
	v = math.Max(b.min, math.Min(b.max, v))
	if v == b.value {
		return
	}
	old := b.value
	b.value = v
	b.queue(ValueChanged{Old: old, Value: v})
	if b.onChange != nil {
		b.onChange(v)
	}
}

// Step returns the increment used by Increment and Decrement.
func (b *ScrollBar) Step() float64 { return b.step }

// SetStep sets the increment.
func (b *ScrollBar) SetStep(step float64) {
	if step >= 0 {
		b.step = step
	}
}

// Increment moves the value up by one step.
func (b *ScrollBar) Increment() { b.SetValue(b.value + b.step) }

// Decrement moves the value down by one step.
func (b *ScrollBar) Decrement() { b.SetValue(b.value - b.step) }

// Thickness returns the minimum cross-axis size.
func (b *ScrollBar) Thickness() float64 { return b.thickness }

// SetThickness sets the minimum cross-axis size.
func (b *ScrollBar) SetThickness(t float64) {
	b.thickness = math.Max(0, t)
	b.invalidateMeasure()
}

// ThumbRect returns the thumb rectangle inside a bar of the given size.
// The thumb is square on the cross axis and positioned by the value.
func (b *ScrollBar) ThumbRect(size graphics.Vector) graphics.Rect {
	ratio := 0.0
	if b.max > b.min {
		ratio = (b.value - b.min) / (b.max - b.min)
	}
	if b.orientation == graphics.Horizontal {
		length := math.Min(size.X, math.Max(size.Y, b.thickness))
		return graphics.RectFromLTWH(ratio*(size.X-length), 0, length, size.Y)
	}
	length := math.Min(size.Y, math.Max(size.X, b.thickness))
	return graphics.RectFromLTWH(0, ratio*(size.Y-length), size.X, length)
}

// clickAt moves the value toward a click at local position p, by one step.
func (b *ScrollBar) clickAt(p, size graphics.Vector) {
	thumb := b.ThumbRect(size)
	var before bool
	if b.orientation == graphics.Horizontal {
		before = p.X < thumb.X
		if !before && p.X <= thumb.Right() {
			return
		}
	} else {
		before = p.Y < thumb.Y
		if !before && p.Y <= thumb.Bottom() {
			return
		}
	}
	if before {
		b.Decrement()
	} else {
		b.Increment()
	}
}

func (b *ScrollBar) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	return ui.DefaultMeasureOverride(self, available).Max(graphics.Vec(b.thickness, b.thickness))
}

func (b *ScrollBar) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	ctx.FillRect(bounds, b.track.Modulate(tint))
	thumb := b.ThumbRect(bounds.Size()).Translate(bounds.Position())
	ctx.FillRect(thumb, b.thumb.Modulate(tint))
}
