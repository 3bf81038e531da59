package ui

import (
	"math"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/pool"
)

// Handle references a node owned by a UserInterface.
type Handle = pool.Handle[Node]

// None is the handle that refers to no node.
var None = pool.None[Node]()

// Node is one element of the scene graph: its kind, its position in the
// tree, and the layout inputs the application controls. Layout outputs live
// in a separate table on the UserInterface.
//
// Nodes are mutated only through UserInterface setters, which keep the
// layout caches consistent. The accessors below are safe to call at any time.
type Node struct {
	name string
	kind Kind

	width           float64
	height          float64
	minSize         graphics.Vector
	maxSize         graphics.Vector
	margin          graphics.Thickness
	hAlign          graphics.HorizontalAlignment
	vAlign          graphics.VerticalAlignment
	visibility      graphics.Visibility
	row             int
	column          int
	desiredPosition graphics.Vector
	color           graphics.Color

	parent   Handle
	children []Handle

	isMouseOver  bool
	commandStart int
	commandEnd   int
}

func newNode(kind Kind) Node {
	return Node{
		kind:    kind,
		width:   graphics.Unset,
		height:  graphics.Unset,
		maxSize: graphics.Infinite(),
		color:   graphics.ColorWhite,
		parent:  None,
	}
}

// Name returns the optional debug name of the node.
func (n *Node) Name() string { return n.name }

// Kind returns the node's kind.
func (n *Node) Kind() Kind { return n.kind }

// Width returns the explicit width, or graphics.Unset.
func (n *Node) Width() float64 { return n.width }

// Height returns the explicit height, or graphics.Unset.
func (n *Node) Height() float64 { return n.height }

// MinSize returns the lower size bound.
func (n *Node) MinSize() graphics.Vector { return n.minSize }

// MaxSize returns the upper size bound.
func (n *Node) MaxSize() graphics.Vector { return n.maxSize }

// Margin returns the space kept free around the node.
func (n *Node) Margin() graphics.Thickness { return n.margin }

// HorizontalAlignment returns the horizontal placement rule.
func (n *Node) HorizontalAlignment() graphics.HorizontalAlignment { return n.hAlign }

// VerticalAlignment returns the vertical placement rule.
func (n *Node) VerticalAlignment() graphics.VerticalAlignment { return n.vAlign }

// Visibility returns the node's visibility.
func (n *Node) Visibility() graphics.Visibility { return n.visibility }

// Row returns the grid row the node occupies in a Grid parent.
func (n *Node) Row() int { return n.row }

// Column returns the grid column the node occupies in a Grid parent.
func (n *Node) Column() int { return n.column }

// DesiredPosition returns the position requested inside a Canvas parent.
func (n *Node) DesiredPosition() graphics.Vector { return n.desiredPosition }

// Color returns the tint applied when drawing the node.
func (n *Node) Color() graphics.Color { return n.color }

// Parent returns the parent handle, or None for roots and detached nodes.
func (n *Node) Parent() Handle { return n.parent }

// Children returns the ordered child handles. The slice is owned by the
// node and must not be modified.
func (n *Node) Children() []Handle { return n.children }

// IsMouseOver reports whether the last UpdateMouse found the pointer over
// this node or one of its descendants.
func (n *Node) IsMouseOver() bool { return n.isMouseOver }

// CommandRange returns the half-open range of drawing commands the node
// emitted during the last draw pass.
func (n *Node) CommandRange() (start, end int) { return n.commandStart, n.commandEnd }

func (n *Node) removeChild(child Handle) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

// sizeInput normalizes an explicit width or height. NaN and infinity mean
// "not set"; negative values clamp to zero.
func sizeInput(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return graphics.Unset
	}
	return math.Max(0, v)
}

func boundInput(v graphics.Vector, fallback float64) graphics.Vector {
	fix := func(f float64) float64 {
		if math.IsNaN(f) {
			return fallback
		}
		return math.Max(0, f)
	}
	return graphics.Vector{X: fix(v.X), Y: fix(v.Y)}
}
