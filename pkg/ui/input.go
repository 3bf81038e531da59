package ui

import (
	"slices"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// HitTest returns the topmost visible node under point, in screen space.
// Later roots are above earlier ones and later children above earlier
// siblings. Children of clipping kinds are only hit inside their parent.
func (ui *UserInterface) HitTest(point graphics.Vector) (Handle, bool) {
	roots := ui.Roots()
	for _, r := range slices.Backward(roots) {
		if h, ok := ui.hitTest(r, point, 0); ok {
			return h, true
		}
	}
	return None, false
}

func (ui *UserInterface) hitTest(h Handle, point graphics.Vector, depth int) (Handle, bool) {
	n, ok := ui.nodes.Borrow(h)
	if !ok || n.visibility != graphics.Visible || depth > ui.maxDepth {
		return None, false
	}
	s := ui.layout[h.Index()]
	if s.arrange != stateValid {
		return None, false
	}
	bounds := graphics.RectFromPosSize(s.screenPosition, s.actualSize)
	inside := bounds.Contains(point)
	if inside || !clipsChildren(n.kind) {
		for _, c := range slices.Backward(n.children) {
			if hit, ok := ui.hitTest(c, point, depth+1); ok {
				return hit, true
			}
		}
	}
	if inside {
		return h, true
	}
	return None, false
}

// UpdateMouse moves the pointer to point and refreshes IsMouseOver on every
// node: the hit node and its ancestors are over, every other node is not.
// It returns the hit node, or None.
func (ui *UserInterface) UpdateMouse(point graphics.Vector) Handle {
	for _, n := range ui.nodes.All() {
		n.isMouseOver = false
	}
	hit, ok := ui.HitTest(point)
	if !ok {
		return None
	}
	cur := hit
	for range ui.maxDepth + 1 {
		n, ok := ui.nodes.Borrow(cur)
		if !ok {
			break
		}
		n.isMouseOver = true
		cur = n.parent
	}
	return hit
}

// Click delivers a click at point to the nearest Button or ScrollBar at or
// above the hit node. It returns the node that handled the click, or None.
func (ui *UserInterface) Click(point graphics.Vector) Handle {
	hit := ui.UpdateMouse(point)
	cur := hit
	for range ui.maxDepth + 1 {
		n, ok := ui.nodes.Borrow(cur)
		if !ok {
			return None
		}
		switch k := n.kind.(type) {
		case *Button:
			k.Click()
			return cur
		case *ScrollBar:
			if pos, ok := ui.ScreenPosition(cur); ok {
				size, _ := ui.ActualSize(cur)
				k.clickAt(point.Sub(pos), size)
				return cur
			}
		}
		cur = n.parent
	}
	return None
}

// Scroll applies a wheel delta at point to the nearest
// ScrollContentPresenter or ScrollViewer at or above the hit node.
func (ui *UserInterface) Scroll(point, delta graphics.Vector) Handle {
	hit, ok := ui.HitTest(point)
	if !ok {
		return None
	}
	cur := hit
	for range ui.maxDepth + 1 {
		n, ok := ui.nodes.Borrow(cur)
		if !ok {
			return None
		}
		switch k := n.kind.(type) {
		case *ScrollViewer:
			k.ScrollBy(delta)
			return cur
		case *ScrollContentPresenter:
			k.ScrollBy(delta)
			return cur
		}
		cur = n.parent
	}
	return None
}
