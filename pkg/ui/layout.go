package ui

import (
	"math"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// passState tracks a node through one layout pass. A node in the in-progress
// state that is entered again has been reached through a cycle.
type passState uint8

const (
	stateDirty passState = iota
	stateInProgress
	stateValid
)

// layoutSlot holds the layout outputs of one node, indexed by arena slot.
type layoutSlot struct {
	measure passState
	arrange passState

	prevAvailable graphics.Vector
	prevFinal     graphics.Rect

	desiredSize         graphics.Vector
	actualSize          graphics.Vector
	actualLocalPosition graphics.Vector
	screenPosition      graphics.Vector
}

// staleArrange drops a cached arrange after the node was measured again.
// The new desired size, or a child's, may place the subtree differently
// even when the final rect is unchanged.
func (s *layoutSlot) staleArrange() {
	if s.arrange == stateValid {
		s.arrange = stateDirty
	}
}

// LayoutInfo is a snapshot of a node's layout outputs.
type LayoutInfo struct {
	DesiredSize         graphics.Vector
	ActualSize          graphics.Vector
	ActualLocalPosition graphics.Vector
	ScreenPosition      graphics.Vector
	MeasureValid        bool
	ArrangeValid        bool
}

// ScreenBounds returns the rect the node occupies in screen space.
func (l LayoutInfo) ScreenBounds() graphics.Rect {
	return graphics.RectFromPosSize(l.ScreenPosition, l.ActualSize)
}

// Layout returns the layout outputs of h.
func (ui *UserInterface) Layout(h Handle) (LayoutInfo, error) {
	if !ui.nodes.IsValid(h) {
		return LayoutInfo{}, staleHandle("ui.Layout", h)
	}
	s := &ui.layout[h.Index()]
	return LayoutInfo{
		DesiredSize:         s.desiredSize,
		ActualSize:          s.actualSize,
		ActualLocalPosition: s.actualLocalPosition,
		ScreenPosition:      s.screenPosition,
		MeasureValid:        s.measure == stateValid,
		ArrangeValid:        s.arrange == stateValid,
	}, nil
}

// DesiredSize returns the desired size computed by the last measure of h,
// margin included.
func (ui *UserInterface) DesiredSize(h Handle) (graphics.Vector, bool) {
	if !ui.nodes.IsValid(h) {
		return graphics.Vector{}, false
	}
	return ui.layout[h.Index()].desiredSize, true
}

// ActualSize returns the size granted by the last arrange of h.
func (ui *UserInterface) ActualSize(h Handle) (graphics.Vector, bool) {
	if !ui.nodes.IsValid(h) {
		return graphics.Vector{}, false
	}
	return ui.layout[h.Index()].actualSize, true
}

// ActualLocalPosition returns the position of h inside its parent from the
// last arrange.
func (ui *UserInterface) ActualLocalPosition(h Handle) (graphics.Vector, bool) {
	if !ui.nodes.IsValid(h) {
		return graphics.Vector{}, false
	}
	return ui.layout[h.Index()].actualLocalPosition, true
}

// ScreenBounds returns the rect h occupies in screen space.
func (ui *UserInterface) ScreenBounds(h Handle) (graphics.Rect, bool) {
	if !ui.nodes.IsValid(h) {
		return graphics.Rect{}, false
	}
	s := ui.layout[h.Index()]
	return graphics.RectFromPosSize(s.screenPosition, s.actualSize), true
}

// IsMeasureValid reports whether h holds a cached measure result.
func (ui *UserInterface) IsMeasureValid(h Handle) bool {
	return ui.nodes.IsValid(h) && ui.layout[h.Index()].measure == stateValid
}

// IsArrangeValid reports whether h holds a cached arrange result.
func (ui *UserInterface) IsArrangeValid(h Handle) bool {
	return ui.nodes.IsValid(h) && ui.layout[h.Index()].arrange == stateValid
}

// ScreenPosition returns the top-left of h in screen space.
func (ui *UserInterface) ScreenPosition(h Handle) (graphics.Vector, bool) {
	if !ui.nodes.IsValid(h) {
		return graphics.Vector{}, false
	}
	return ui.layout[h.Index()].screenPosition, true
}

// InvalidateMeasure marks h and every ancestor as needing measure and
// arrange. Siblings and their subtrees keep their cached results.
func (ui *UserInterface) InvalidateMeasure(h Handle) {
	ui.walkUp(h, func(s *layoutSlot) {
		s.measure = stateDirty
		s.arrange = stateDirty
	})
}

// InvalidateArrange marks h and every ancestor as needing arrange only.
func (ui *UserInterface) InvalidateArrange(h Handle) {
	ui.walkUp(h, func(s *layoutSlot) {
		s.arrange = stateDirty
	})
}

func (ui *UserInterface) walkUp(h Handle, mark func(*layoutSlot)) {
	cur := h
	for range ui.maxDepth + 1 {
		n, ok := ui.nodes.Borrow(cur)
		if !ok {
			return
		}
		mark(&ui.layout[cur.Index()])
		if n.parent.IsNone() {
			return
		}
		cur = n.parent
	}
}

func (ui *UserInterface) markDirty(h Handle) {
	if ui.nodes.IsValid(h) {
		s := &ui.layout[h.Index()]
		s.measure = stateDirty
		s.arrange = stateDirty
	}
}

// RunMeasure measures the tree rooted at root against available. It returns
// a stale-handle error for a dead root, and otherwise the joined errors
// reported while measuring; the pass completes either way.
func (ui *UserInterface) RunMeasure(root Handle, available graphics.Vector) error {
	if !ui.nodes.IsValid(root) {
		return staleHandle("ui.RunMeasure", root)
	}
	ui.beginPass()
	ui.Measure(root, available)
	return ui.endPass()
}

// RunArrange arranges the tree rooted at root into final, which is in the
// coordinate space of root's parent, then refreshes screen positions of the
// subtree.
func (ui *UserInterface) RunArrange(root Handle, final graphics.Rect) error {
	n, ok := ui.nodes.Borrow(root)
	if !ok {
		return staleHandle("ui.RunArrange", root)
	}
	ui.beginPass()
	ui.Arrange(root, final)
	var origin graphics.Vector
	if n.parent.IsSome() {
		origin, _ = ui.ScreenPosition(n.parent)
	}
	ui.updateScreenPositions(root, origin, 0)
	return ui.endPass()
}

// Measure computes the desired size of h for the given available space and
// returns it. Kinds call Measure on their children from their measure
// override. Failures inside the subtree are reported and yield a zero size.
func (ui *UserInterface) Measure(h Handle, available graphics.Vector) graphics.Vector {
	const op = "ui.Measure"
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		ui.report(staleHandle(op, h))
		return graphics.Vector{}
	}
	available = sanitizeAvailable(available)
	s := &ui.layout[h.Index()]

	switch s.measure {
	case stateInProgress:
		ui.report(errors.New(op, errors.KindCyclicGraph, "node reached again while measuring").WithNode(h))
		return graphics.Vector{}
	case stateValid:
		if s.prevAvailable.ApproxEqual(available) {
			ui.stats.MeasureCacheHits++
			return s.desiredSize
		}
	}

	if n.visibility == graphics.Collapsed {
		s.desiredSize = graphics.Vector{}
		s.prevAvailable = available
		s.measure = stateValid
		s.staleArrange()
		return s.desiredSize
	}
	if ui.depth >= ui.maxDepth {
		ui.report(errors.New(op, errors.KindLayout, "layout depth exceeds %d", ui.maxDepth).WithNode(h))
		return graphics.Vector{}
	}

	ui.stats.Measures++
	margin := n.margin.Axes()
	sizeForChild := graphics.Vector{
		X: axisForChild(n.width, available.X, margin.X),
		Y: axisForChild(n.height, available.Y, margin.Y),
	}.Clamp(n.minSize, n.maxSize)

	s.measure = stateInProgress
	desired, failed := ui.callMeasureOverride(h, n.kind, sizeForChild)
	if !desired.IsFinite() || desired.X < 0 || desired.Y < 0 {
		ui.report(errors.New(op, errors.KindInvalidNumeric,
			"measure override returned (%g, %g)", desired.X, desired.Y).WithNode(h))
		desired = finiteOrZero(desired)
	}
	if failed {
		desired = graphics.Vector{}
	}

	// The override may have spawned nodes and grown the slot table.
	n, ok = ui.nodes.Borrow(h)
	if !ok {
		return graphics.Vector{}
	}
	if !graphics.IsUnset(n.width) {
		desired.X = n.width
	}
	if !graphics.IsUnset(n.height) {
		desired.Y = n.height
	}
	desired = desired.Clamp(n.minSize, n.maxSize).Add(margin).Min(available).Sanitize()

	s = &ui.layout[h.Index()]
	s.desiredSize = desired
	s.prevAvailable = available
	s.measure = stateValid
	s.staleArrange()
	return desired
}

// Arrange places h inside final, a rect in its parent's coordinate space,
// and records its actual size and local position. A node whose measure is
// not valid is measured against the size of final first.
func (ui *UserInterface) Arrange(h Handle, final graphics.Rect) {
	const op = "ui.Arrange"
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		ui.report(staleHandle(op, h))
		return
	}
	final = sanitizeFinal(final, ui.layout[h.Index()].desiredSize)
	s := &ui.layout[h.Index()]

	switch s.arrange {
	case stateInProgress:
		ui.report(errors.New(op, errors.KindCyclicGraph, "node reached again while arranging").WithNode(h))
		return
	case stateValid:
		if s.measure == stateValid && rectApproxEqual(s.prevFinal, final) {
			ui.stats.ArrangeCacheHits++
			return
		}
	}

	if n.visibility == graphics.Collapsed {
		s.actualSize = graphics.Vector{}
		s.actualLocalPosition = final.Position()
		s.prevFinal = final
		s.arrange = stateValid
		return
	}
	if s.measure != stateValid {
		ui.Measure(h, final.Size())
		s = &ui.layout[h.Index()]
	}
	if ui.depth >= ui.maxDepth {
		ui.report(errors.New(op, errors.KindLayout, "layout depth exceeds %d", ui.maxDepth).WithNode(h))
		return
	}

	ui.stats.Arranges++
	margin := n.margin
	available := graphics.Vector{
		X: math.Max(0, final.Width-margin.Horizontal()),
		Y: math.Max(0, final.Height-margin.Vertical()),
	}
	desired := s.desiredSize.Sub(margin.Axes())

	size := available
	if n.hAlign != graphics.HorizontalStretch {
		size.X = math.Min(size.X, desired.X)
	}
	if n.vAlign != graphics.VerticalStretch {
		size.Y = math.Min(size.Y, desired.Y)
	}
	if !graphics.IsUnset(n.width) {
		size.X = n.width
	}
	if !graphics.IsUnset(n.height) {
		size.Y = n.height
	}
	size = size.Clamp(n.minSize, n.maxSize).Min(available).Sanitize()

	s.arrange = stateInProgress
	size, failed := ui.callArrangeOverride(h, n.kind, size)
	if failed {
		size = graphics.Vector{}
	}

	n, ok = ui.nodes.Borrow(h)
	if !ok {
		return
	}
	size = finiteOrZero(size).Clamp(n.minSize, n.maxSize).Min(available).Sanitize()

	origin := final.Position().Add(margin.Offset())
	switch n.hAlign {
	case graphics.HorizontalStretch, graphics.HorizontalCenter:
		origin.X += (available.X - size.X) / 2
	case graphics.HorizontalRight:
		origin.X += available.X - size.X
	}
	switch n.vAlign {
	case graphics.VerticalStretch, graphics.VerticalCenter:
		origin.Y += (available.Y - size.Y) / 2
	case graphics.VerticalBottom:
		origin.Y += available.Y - size.Y
	}

	s = &ui.layout[h.Index()]
	s.actualSize = size
	s.actualLocalPosition = origin
	s.prevFinal = final
	s.arrange = stateValid
}

func (ui *UserInterface) callMeasureOverride(h Handle, k Kind, available graphics.Vector) (size graphics.Vector, failed bool) {
	ui.depth++
	defer func() { ui.depth-- }()
	defer errors.RecoverTo(ui.handler, "ui.measureOverride", h, func(pe *errors.PanicError) {
		ui.recordPanic(pe)
		size, failed = graphics.Vector{}, true
	})
	return measureOverride(ui, h, k, available), false
}

func (ui *UserInterface) callArrangeOverride(h Handle, k Kind, final graphics.Vector) (size graphics.Vector, failed bool) {
	ui.depth++
	defer func() { ui.depth-- }()
	defer errors.RecoverTo(ui.handler, "ui.arrangeOverride", h, func(pe *errors.PanicError) {
		ui.recordPanic(pe)
		size, failed = graphics.Vector{}, true
	})
	return arrangeOverride(ui, h, k, final), false
}

// DefaultMeasureOverride measures every child against the full available
// size and desires the component-wise maximum of their desired sizes.
func (ui *UserInterface) DefaultMeasureOverride(h Handle, available graphics.Vector) graphics.Vector {
	var size graphics.Vector
	for _, c := range ui.Children(h) {
		size = size.Max(ui.Measure(c, available))
	}
	return size
}

// DefaultArrangeOverride arranges every child into the full final rect and
// keeps the final size.
func (ui *UserInterface) DefaultArrangeOverride(h Handle, final graphics.Vector) graphics.Vector {
	rect := graphics.RectFromPosSize(graphics.Vector{}, final)
	for _, c := range ui.Children(h) {
		ui.Arrange(c, rect)
	}
	return final
}

// updateScreenPositions propagates screen positions top-down from the
// actual local positions written by arrange.
func (ui *UserInterface) updateScreenPositions(h Handle, parentScreen graphics.Vector, depth int) {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return
	}
	if depth > ui.maxDepth {
		ui.report(errors.New("ui.RunArrange", errors.KindLayout, "layout depth exceeds %d", ui.maxDepth).WithNode(h))
		return
	}
	s := &ui.layout[h.Index()]
	s.screenPosition = parentScreen.Add(s.actualLocalPosition)
	screen := s.screenPosition
	for _, c := range n.children {
		ui.updateScreenPositions(c, screen, depth+1)
	}
}

// axisForChild is the space offered to a kind's override along one axis:
// the explicit size when set, otherwise what is left of available after the
// margin.
func axisForChild(explicit, available, margin float64) float64 {
	if !graphics.IsUnset(explicit) {
		return explicit
	}
	return math.Max(0, available-margin)
}

// sanitizeAvailable turns NaN and negative available sizes into zero while
// keeping positive infinity.
func sanitizeAvailable(v graphics.Vector) graphics.Vector {
	return v.Sanitize()
}

// sanitizeFinal makes a final rect safe to arrange into. Infinite extents
// fall back to the desired size.
func sanitizeFinal(r graphics.Rect, desired graphics.Vector) graphics.Rect {
	fix := func(v, fallback float64) float64 {
		switch {
		case math.IsNaN(v):
			return 0
		case math.IsInf(v, 0):
			return fallback
		default:
			return v
		}
	}
	return graphics.Rect{
		X:      fix(r.X, 0),
		Y:      fix(r.Y, 0),
		Width:  math.Max(0, fix(r.Width, desired.X)),
		Height: math.Max(0, fix(r.Height, desired.Y)),
	}
}

func finiteOrZero(v graphics.Vector) graphics.Vector {
	fix := func(f float64) float64 {
		if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0
		}
		return f
	}
	return graphics.Vector{X: fix(v.X), Y: fix(v.Y)}
}

func rectApproxEqual(a, b graphics.Rect) bool {
	return a.Position().ApproxEqual(b.Position()) && a.Size().ApproxEqual(b.Size())
}
