// Package ui is a retained-mode scene graph with a two-pass layout engine.
//
// A [UserInterface] owns every node in a generational arena. Nodes are
// addressed by [Handle] values and carry one [Kind], which decides how the
// node measures, arranges, draws and emits events. The built-in kinds are a
// closed set ([Text], [Border], [Button], [ScrollBar], [ScrollViewer],
// [Image], [Grid], [Canvas], [ScrollContentPresenter], [Window]); [User]
// wraps a [CustomKind] supplied by the embedding application.
//
// # Layout
//
// Layout runs in two passes. Measure walks the tree top-down offering each
// node an available size and collects desired sizes bottom-up. Arrange walks
// top-down again, granting each node a final rect inside its parent and
// recording the actual size and local position. Both passes are memoized:
// a node whose inputs did not change since the last pass, and which is
// offered the same space again, returns its cached result.
//
// Every layout-input setter on UserInterface marks the node dirty and walks
// its ancestors to the root, because a parent's desired size may depend on
// any descendant. Siblings keep their cached results.
//
//	ui := ui.New()
//	root := ui.Add(ui.NewCanvas())
//	label := ui.Add(ui.NewText("hello"))
//	_ = ui.Link(label, root)
//	_ = ui.AddRoot(root)
//	frame, err := ui.Update(graphics.Vec(800, 600), graphics.NewDrawingContext())
//
// # Errors
//
// Stale handles and kind mismatches are returned to the caller. Failures
// inside a subtree during a pass (cycles introduced behind the API's back,
// runaway depth, panicking custom kinds) are reported through the
// configured errors.ErrorHandler and replaced by a zero-size result for
// that subtree, so sibling subtrees still lay out and draw.
//
// A UserInterface is not safe for concurrent use.
package ui
