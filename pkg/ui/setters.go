package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// update applies fn to the node h and invalidates its measure.
func (ui *UserInterface) update(op string, h Handle, fn func(n *Node)) error {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle(op, h)
	}
	fn(n)
	ui.InvalidateMeasure(h)
	return nil
}

// SetName sets the debug name. It does not affect layout.
func (ui *UserInterface) SetName(h Handle, name string) error {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle("ui.SetName", h)
	}
	n.name = name
	return nil
}

// SetWidth sets the explicit width. graphics.Unset restores sizing to
// content; negative values clamp to zero.
func (ui *UserInterface) SetWidth(h Handle, width float64) error {
	return ui.update("ui.SetWidth", h, func(n *Node) { n.width = sizeInput(width) })
}

// SetHeight sets the explicit height. graphics.Unset restores sizing to
// content; negative values clamp to zero.
func (ui *UserInterface) SetHeight(h Handle, height float64) error {
	return ui.update("ui.SetHeight", h, func(n *Node) { n.height = sizeInput(height) })
}

// SetSize sets both explicit dimensions.
func (ui *UserInterface) SetSize(h Handle, size graphics.Vector) error {
	return ui.update("ui.SetSize", h, func(n *Node) {
		n.width = sizeInput(size.X)
		n.height = sizeInput(size.Y)
	})
}

// SetMinSize sets the lower size bound. It wins over the upper bound.
func (ui *UserInterface) SetMinSize(h Handle, size graphics.Vector) error {
	return ui.update("ui.SetMinSize", h, func(n *Node) { n.minSize = boundInput(size, 0) })
}

// SetMaxSize sets the upper size bound. NaN components mean unbounded.
func (ui *UserInterface) SetMaxSize(h Handle, size graphics.Vector) error {
	return ui.update("ui.SetMaxSize", h, func(n *Node) { n.maxSize = boundInput(size, graphics.Infinite().X) })
}

// SetMargin sets the space kept free around the node.
func (ui *UserInterface) SetMargin(h Handle, margin graphics.Thickness) error {
	return ui.update("ui.SetMargin", h, func(n *Node) { n.margin = margin.Sanitize() })
}

// SetHorizontalAlignment sets the horizontal placement rule.
func (ui *UserInterface) SetHorizontalAlignment(h Handle, a graphics.HorizontalAlignment) error {
	return ui.update("ui.SetHorizontalAlignment", h, func(n *Node) { n.hAlign = a })
}

// SetVerticalAlignment sets the vertical placement rule.
func (ui *UserInterface) SetVerticalAlignment(h Handle, a graphics.VerticalAlignment) error {
	return ui.update("ui.SetVerticalAlignment", h, func(n *Node) { n.vAlign = a })
}

// SetVisibility sets whether the node is drawn and whether it takes space.
func (ui *UserInterface) SetVisibility(h Handle, v graphics.Visibility) error {
	return ui.update("ui.SetVisibility", h, func(n *Node) { n.visibility = v })
}

// SetRow sets the grid row. Negative values clamp to zero.
func (ui *UserInterface) SetRow(h Handle, row int) error {
	return ui.update("ui.SetRow", h, func(n *Node) { n.row = max(0, row) })
}

// SetColumn sets the grid column. Negative values clamp to zero.
func (ui *UserInterface) SetColumn(h Handle, column int) error {
	return ui.update("ui.SetColumn", h, func(n *Node) { n.column = max(0, column) })
}

// SetDesiredPosition sets the position requested inside a Canvas parent.
func (ui *UserInterface) SetDesiredPosition(h Handle, pos graphics.Vector) error {
	return ui.update("ui.SetDesiredPosition", h, func(n *Node) {
		if !pos.IsFinite() {
			pos = graphics.Vector{}
		}
		n.desiredPosition = pos
	})
}

// SetColor sets the tint used when drawing. Color is not a layout input,
// so cached layout is kept.
func (ui *UserInterface) SetColor(h Handle, c graphics.Color) error {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle("ui.SetColor", h)
	}
	n.color = c
	return nil
}
