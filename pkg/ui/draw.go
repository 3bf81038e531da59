package ui

import (
	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// RunDraw records the tree rooted at root into ctx in depth-first order,
// parents before children. Each node's command range is stored on the node.
// Hidden and collapsed nodes are skipped with their subtrees, and so are
// nodes whose arrange is not valid; the latter are reported.
func (ui *UserInterface) RunDraw(root Handle, ctx *graphics.DrawingContext) error {
	if !ui.nodes.IsValid(root) {
		return staleHandle("ui.RunDraw", root)
	}
	ui.beginPass()
	ui.draw(root, ctx, 0)
	return ui.endPass()
}

func (ui *UserInterface) draw(h Handle, ctx *graphics.DrawingContext, depth int) {
	const op = "ui.RunDraw"
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		ui.report(staleHandle(op, h))
		return
	}
	n.commandStart, n.commandEnd = ctx.Len(), ctx.Len()
	if n.visibility != graphics.Visible {
		return
	}
	if depth > ui.maxDepth {
		ui.report(errors.New(op, errors.KindDraw, "draw depth exceeds %d", ui.maxDepth).WithNode(h))
		return
	}
	s := ui.layout[h.Index()]
	if s.arrange != stateValid {
		ui.report(errors.New(op, errors.KindDraw, "node drawn before it was arranged").WithNode(h))
		return
	}

	bounds := graphics.RectFromPosSize(s.screenPosition, s.actualSize)
	ctx.SetNode(h.Index())
	ui.callDraw(h, n.kind, ctx, bounds, n.color)
	n.commandEnd = ctx.Len()
	ui.stats.DrawnNodes++
	ui.stats.Commands += n.commandEnd - n.commandStart

	clip := clipsChildren(n.kind)
	if clip {
		ctx.PushClip(bounds)
	}
	for _, c := range n.children {
		ui.draw(c, ctx, depth+1)
	}
	if clip {
		ctx.PopClip()
	}
}

func (ui *UserInterface) callDraw(h Handle, k Kind, ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	defer errors.RecoverTo(ui.handler, "ui.draw", h, ui.recordPanic)
	drawKind(ctx, k, bounds, tint)
}
