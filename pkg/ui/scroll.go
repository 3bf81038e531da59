package ui

import (
	"math"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// ScrollContentPresenter shows a scrollable window onto its children.
// Children are measured unbounded along the scrollable axes and shifted by
// the scroll offset when arranged. Drawing and hit testing are clipped to
// the presenter bounds.
type ScrollContentPresenter struct {
	kindBase
	vertical   bool
	horizontal bool
	offset     graphics.Vector
	extent     graphics.Vector
	viewport   graphics.Vector

	onScroll func(offset graphics.Vector)
}

// NewScrollContentPresenter creates a presenter that scrolls vertically.
func NewScrollContentPresenter() *ScrollContentPresenter {
	return &ScrollContentPresenter{vertical: true}
}

// SetScrollAxes selects which axes scroll.
func (p *ScrollContentPresenter) SetScrollAxes(horizontal, vertical bool) {
	p.horizontal = horizontal
	p.vertical = vertical
	p.invalidateMeasure()
}

// ScrollAxes reports which axes scroll.
func (p *ScrollContentPresenter) ScrollAxes() (horizontal, vertical bool) {
	return p.horizontal, p.vertical
}

// Offset returns the current scroll offset.
func (p *ScrollContentPresenter) Offset() graphics.Vector { return p.offset }

// Extent returns the size of the content measured by the last pass.
func (p *ScrollContentPresenter) Extent() graphics.Vector { return p.extent }

// Viewport returns the size of the visible area from the last arrange.
func (p *ScrollContentPresenter) Viewport() graphics.Vector { return p.viewport }

// MaxOffset returns the largest valid scroll offset.
func (p *ScrollContentPresenter) MaxOffset() graphics.Vector {
	return p.extent.Sub(p.viewport).Sanitize()
}

// SetOffset scrolls to offset, clamped to [0, MaxOffset]. A change queues
// ScrollChanged and re-arranges the content.
func (p *ScrollContentPresenter) SetOffset(offset graphics.Vector) {
	limit := p.MaxOffset()
	if !p.horizontal {
		limit.X = 0
	}
	if !p.vertical {
		limit.Y = 0
	}
	next := finiteOrZero(offset).Clamp(graphics.Vector{}, limit)
	if next.ApproxEqual(p.offset) {
		return
	}
	p.offset = next
	p.queue(ScrollChanged{Offset: next})
	p.invalidateArrange()
	if p.onScroll != nil {
		p.onScroll(next)
	}
}

// ScrollBy moves the offset by delta.
func (p *ScrollContentPresenter) ScrollBy(delta graphics.Vector) {
	p.SetOffset(p.offset.Add(delta))
}

func (p *ScrollContentPresenter) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	offer := available
	if p.horizontal {
		offer.X = math.Inf(1)
	}
	if p.vertical {
		offer.Y = math.Inf(1)
	}
	p.extent = ui.DefaultMeasureOverride(self, offer)
	return p.extent
}

func (p *ScrollContentPresenter) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	p.viewport = final
	// The viewport may have grown since the offset was set.
	p.offset = p.offset.Min(p.MaxOffset())

	size := final
	if p.horizontal {
		size.X = math.Max(final.X, p.extent.X)
	}
	if p.vertical {
		size.Y = math.Max(final.Y, p.extent.Y)
	}
	rect := graphics.RectFromPosSize(p.offset.Scale(-1), size)
	for _, c := range ui.Children(self) {
		ui.Arrange(c, rect)
	}
	return final
}
