package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// ScrollViewer composes a ScrollContentPresenter with a vertical and a
// horizontal ScrollBar in a 2x2 Grid. Bar ranges follow the presenter's
// scrollable extent, and moving either a bar or the presenter moves the
// other. Use BuildScrollViewer to create the whole assembly.
type ScrollViewer struct {
	kindBase
	presenter  Handle
	vertical   Handle
	horizontal Handle
	syncing    bool
}

// NewScrollViewer creates a bare ScrollViewer with no parts. It lays out
// like a plain container until parts are attached by BuildScrollViewer.
func NewScrollViewer() *ScrollViewer {
	return &ScrollViewer{presenter: None, vertical: None, horizontal: None}
}

// Presenter returns the presenter node, or None.
func (v *ScrollViewer) Presenter() Handle { return v.presenter }

// VerticalBar returns the vertical bar node, or None.
func (v *ScrollViewer) VerticalBar() Handle { return v.vertical }

// HorizontalBar returns the horizontal bar node, or None.
func (v *ScrollViewer) HorizontalBar() Handle { return v.horizontal }

// BuildScrollViewer creates a ScrollViewer around content and returns the
// viewer node. content must be detached; it becomes the presenter's only
// child.
func (ui *UserInterface) BuildScrollViewer(content Handle) (Handle, error) {
	if !ui.nodes.IsValid(content) {
		return None, staleHandle("ui.BuildScrollViewer", content)
	}

	viewer := NewScrollViewer()
	root := ui.Add(viewer)
	grid := ui.Add(NewGrid(
		[]Track{StretchTrack(), Auto()},
		[]Track{StretchTrack(), Auto()},
	))
	presenter := NewScrollContentPresenter()
	presenter.SetScrollAxes(true, true)
	vbar := NewScrollBar(graphics.Vertical)
	hbar := NewScrollBar(graphics.Horizontal)

	viewer.presenter = ui.Add(presenter)
	viewer.vertical = ui.Add(vbar)
	viewer.horizontal = ui.Add(hbar)

	links := [][2]Handle{
		{grid, root},
		{viewer.presenter, grid},
		{viewer.vertical, grid},
		{viewer.horizontal, grid},
		{content, viewer.presenter},
	}
	for _, l := range links {
		if err := ui.Link(l[0], l[1]); err != nil {
			_ = ui.Remove(root)
			return None, err
		}
	}
	_ = ui.SetColumn(viewer.vertical, 1)
	_ = ui.SetRow(viewer.horizontal, 1)

	presenter.onScroll = viewer.presenterScrolled
	vbar.onChange = func(value float64) { viewer.barMoved(graphics.Vertical, value) }
	hbar.onChange = func(value float64) { viewer.barMoved(graphics.Horizontal, value) }
	return root, nil
}

// Offset returns the presenter's scroll offset.
func (v *ScrollViewer) Offset() graphics.Vector {
	if p := v.presenterKind(); p != nil {
		return p.Offset()
	}
	return graphics.Vector{}
}

// ScrollTo scrolls the content to offset, clamped to the scrollable range.
func (v *ScrollViewer) ScrollTo(offset graphics.Vector) {
	if p := v.presenterKind(); p != nil {
		p.SetOffset(offset)
	}
}

// ScrollBy scrolls the content by delta.
func (v *ScrollViewer) ScrollBy(delta graphics.Vector) {
	v.ScrollTo(v.Offset().Add(delta))
}

func (v *ScrollViewer) presenterKind() *ScrollContentPresenter {
	if v.owner == nil {
		return nil
	}
	p, err := NodeAs[*ScrollContentPresenter](v.owner, v.presenter)
	if err != nil {
		return nil
	}
	return p
}

func (v *ScrollViewer) bar(o graphics.Orientation) *ScrollBar {
	if v.owner == nil {
		return nil
	}
	h := v.vertical
	if o == graphics.Horizontal {
		h = v.horizontal
	}
	b, err := NodeAs[*ScrollBar](v.owner, h)
	if err != nil {
		return nil
	}
	return b
}

func (v *ScrollViewer) presenterScrolled(offset graphics.Vector) {
	v.queue(ScrollChanged{Offset: offset})
	if v.syncing {
		return
	}
	v.syncing = true
	defer func() { v.syncing = false }()
	if b := v.bar(graphics.Horizontal); b != nil {
		b.SetValue(offset.X)
	}
	if b := v.bar(graphics.Vertical); b != nil {
		b.SetValue(offset.Y)
	}
}

func (v *ScrollViewer) barMoved(o graphics.Orientation, value float64) {
	if v.syncing {
		return
	}
	p := v.presenterKind()
	if p == nil {
		return
	}
	v.syncing = true
	defer func() { v.syncing = false }()
	offset := p.Offset()
	if o == graphics.Horizontal {
		offset.X = value
	} else {
		offset.Y = value
	}
	p.SetOffset(offset)
}

// arrangeOverride lays out the parts, then fits the bar ranges to the
// presenter's scrollable extent.
func (v *ScrollViewer) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	size := ui.DefaultArrangeOverride(self, final)
	p := v.presenterKind()
	if p == nil {
		return size
	}
	v.syncing = true
	defer func() { v.syncing = false }()
	limit := p.MaxOffset()
	if b := v.bar(graphics.Horizontal); b != nil {
		b.SetRange(0, limit.X)
		b.SetValue(p.Offset().X)
	}
	if b := v.bar(graphics.Vertical); b != nil {
		b.SetRange(0, limit.Y)
		b.SetValue(p.Offset().Y)
	}
	return size
}
