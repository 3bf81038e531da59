package ui

import (
	stderrors "errors"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/pool"
)

// DefaultMaxDepth bounds the nesting a layout or draw pass will follow
// before it treats the subtree as runaway.
const DefaultMaxDepth = 512

// UserInterface owns the node arena, the layout table and the root list,
// and drives the per-frame measure, arrange and draw passes.
type UserInterface struct {
	nodes  *pool.Pool[Node]
	layout []layoutSlot
	roots  []Handle

	logger   *log.Logger
	handler  errors.ErrorHandler
	font     graphics.FontMetrics
	maxDepth int

	depth    int
	passErrs []error
	stats    Stats
}

// Option configures a UserInterface.
type Option func(*UserInterface)

// WithLogger sets the logger used for frame diagnostics and, unless
// WithErrorHandler is also given, for error reports.
func WithLogger(l *log.Logger) Option {
	return func(ui *UserInterface) { ui.logger = l }
}

// WithErrorHandler routes pass errors and recovered panics to h.
func WithErrorHandler(h errors.ErrorHandler) Option {
	return func(ui *UserInterface) { ui.handler = h }
}

// WithMaxDepth overrides DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(ui *UserInterface) {
		if depth > 0 {
			ui.maxDepth = depth
		}
	}
}

// WithFontMetrics sets the metrics Text nodes use when they have none of
// their own.
func WithFontMetrics(m graphics.FontMetrics) Option {
	return func(ui *UserInterface) { ui.font = m }
}

// WithFontFace is WithFontMetrics for a golang.org/x/image font face.
func WithFontFace(face font.Face) Option {
	return WithFontMetrics(graphics.FaceMetrics{Face: face})
}

// New creates an empty UserInterface.
func New(opts ...Option) *UserInterface {
	ui := &UserInterface{
		nodes:    pool.New[Node](64),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(ui)
	}
	if ui.logger == nil {
		ui.logger = log.Default().WithPrefix("ui")
	}
	if ui.handler == nil {
		ui.handler = &errors.LogHandler{Logger: ui.logger}
	}
	if ui.font == nil {
		ui.font = graphics.DefaultFontMetrics()
	}
	return ui
}

// Logger returns the logger the UserInterface reports through.
func (ui *UserInterface) Logger() *log.Logger { return ui.logger }

// FontMetrics returns the default text metrics.
func (ui *UserInterface) FontMetrics() graphics.FontMetrics { return ui.font }

// Add stores a new node of the given kind and returns its handle. The node
// is detached until it is linked under a parent or registered as a root.
// A kind value must be added at most once.
func (ui *UserInterface) Add(kind Kind) Handle {
	if kind == nil {
		panic("ui: Add called with nil kind")
	}
	h := ui.nodes.Spawn(newNode(kind))
	for int(h.Index()) >= len(ui.layout) {
		ui.layout = append(ui.layout, layoutSlot{})
	}
	ui.layout[h.Index()] = layoutSlot{}
	kind.attach(ui, h)
	return h
}

// AddNamed is Add followed by setting the node's debug name.
func (ui *UserInterface) AddNamed(name string, kind Kind) Handle {
	h := ui.Add(kind)
	n, _ := ui.nodes.Borrow(h)
	n.name = name
	return h
}

// Node returns the node referenced by h.
func (ui *UserInterface) Node(h Handle) (*Node, error) {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return nil, staleHandle("ui.Node", h)
	}
	return n, nil
}

// Contains reports whether h refers to a live node.
func (ui *UserInterface) Contains(h Handle) bool {
	return ui.nodes.IsValid(h)
}

// Len returns the number of live nodes.
func (ui *UserInterface) Len() int { return ui.nodes.Len() }

// Children returns the children of h, or nil for a stale handle. The slice
// must not be modified.
func (ui *UserInterface) Children(h Handle) []Handle {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return nil
	}
	return n.children
}

// Parent returns the parent of h, or None.
func (ui *UserInterface) Parent(h Handle) Handle {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return None
	}
	return n.parent
}

// FindByName returns the first live node, in arena slot order, whose debug
// name is name.
func (ui *UserInterface) FindByName(name string) (Handle, bool) {
	for h, n := range ui.nodes.All() {
		if n.name == name {
			return h, true
		}
	}
	return None, false
}

// Link appends child to parent's children. A child that already has a
// parent is moved; a child registered as a root stops being one. Linking a
// node under itself or under one of its descendants fails with
// errors.KindCyclicGraph and leaves the tree unchanged.
func (ui *UserInterface) Link(child, parent Handle) error {
	const op = "ui.Link"
	c, ok := ui.nodes.Borrow(child)
	if !ok {
		return staleHandle(op, child)
	}
	p, ok := ui.nodes.Borrow(parent)
	if !ok {
		return staleHandle(op, parent)
	}
	if ui.isAncestorOrSelf(child, parent) {
		return errors.New(op, errors.KindCyclicGraph,
			"linking %s under %s would form a cycle", child, parent).WithNode(child)
	}
	if c.parent == parent {
		return nil
	}
	ui.detach(child, c)
	ui.removeRoot(child)
	c.parent = parent
	p.children = append(p.children, child)
	ui.InvalidateMeasure(parent)
	ui.InvalidateArrange(child)
	return nil
}

// Unlink detaches h from its parent. The node stays alive.
func (ui *UserInterface) Unlink(h Handle) error {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle("ui.Unlink", h)
	}
	ui.detach(h, n)
	return nil
}

// Remove destroys h and every descendant. Handles to any of them become
// stale.
func (ui *UserInterface) Remove(h Handle) error {
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle("ui.Remove", h)
	}
	ui.detach(h, n)
	ui.removeRoot(h)

	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node, ok := ui.nodes.Free(cur)
		if !ok {
			continue
		}
		ui.layout[cur.Index()] = layoutSlot{}
		for _, c := range node.children {
			if cn, ok := ui.nodes.Borrow(c); ok && cn.parent == cur {
				stack = append(stack, c)
			}
		}
	}
	return nil
}

// Clear destroys every node and root.
func (ui *UserInterface) Clear() {
	ui.nodes.Clear()
	clear(ui.layout)
	ui.roots = ui.roots[:0]
}

func (ui *UserInterface) detach(h Handle, n *Node) {
	if n.parent.IsNone() {
		return
	}
	if p, ok := ui.nodes.Borrow(n.parent); ok {
		p.removeChild(h)
		ui.InvalidateMeasure(n.parent)
	}
	n.parent = None
	ui.markDirty(h)
}

// isAncestorOrSelf reports whether a is node b or one of b's ancestors.
func (ui *UserInterface) isAncestorOrSelf(a, b Handle) bool {
	cur := b
	for range ui.nodes.Capacity() + 1 {
		if cur == a {
			return true
		}
		n, ok := ui.nodes.Borrow(cur)
		if !ok || n.parent.IsNone() {
			return false
		}
		cur = n.parent
	}
	// The parent chain itself loops; treat it as cyclic.
	return true
}

// AddRoot registers a detached node as a root of a top-level tree. Roots
// are laid out and drawn by Update in registration order.
func (ui *UserInterface) AddRoot(h Handle) error {
	const op = "ui.AddRoot"
	n, ok := ui.nodes.Borrow(h)
	if !ok {
		return staleHandle(op, h)
	}
	if n.parent.IsSome() {
		return errors.New(op, errors.KindNotDetached, "node %s already has parent %s", h, n.parent).WithNode(h)
	}
	if !slices.Contains(ui.roots, h) {
		ui.roots = append(ui.roots, h)
	}
	return nil
}

// RemoveRoot unregisters a root. The node stays alive.
func (ui *UserInterface) RemoveRoot(h Handle) {
	ui.removeRoot(h)
}

func (ui *UserInterface) removeRoot(h Handle) {
	ui.roots = slices.DeleteFunc(ui.roots, func(r Handle) bool { return r == h })
}

// Roots returns the registered roots that are still alive.
func (ui *UserInterface) Roots() []Handle {
	out := make([]Handle, 0, len(ui.roots))
	for _, r := range ui.roots {
		if ui.nodes.IsValid(r) {
			out = append(out, r)
		}
	}
	return out
}

// Walk visits h and its descendants depth-first in child order. Returning
// false from fn skips the node's children.
func (ui *UserInterface) Walk(h Handle, fn func(h Handle, n *Node, depth int) bool) {
	ui.walk(h, 0, fn)
}

func (ui *UserInterface) walk(h Handle, depth int, fn func(Handle, *Node, int) bool) {
	n, ok := ui.nodes.Borrow(h)
	if !ok || depth > ui.maxDepth {
		return
	}
	if !fn(h, n, depth) {
		return
	}
	for _, c := range n.children {
		ui.walk(c, depth+1, fn)
	}
}

// Stats counts work done by the layout and draw passes since the last
// ResetStats.
type Stats struct {
	Measures         int
	MeasureCacheHits int
	Arranges         int
	ArrangeCacheHits int
	DrawnNodes       int
	Commands         int
	Errors           int
}

// Stats returns the current counters.
func (ui *UserInterface) Stats() Stats { return ui.stats }

// ResetStats zeroes the counters.
func (ui *UserInterface) ResetStats() { ui.stats = Stats{} }

// Frame is the result of one Update.
type Frame struct {
	Events  []SourcedEvent
	Stats   Stats
	Elapsed time.Duration
}

// Update runs one frame: every root is measured against screenSize,
// arranged into the screen rect and drawn into ctx, and pending events are
// drained. ctx may be nil to skip drawing. The returned error joins every
// failure reported during the frame; the frame is still complete.
func (ui *UserInterface) Update(screenSize graphics.Vector, ctx *graphics.DrawingContext) (Frame, error) {
	start := time.Now()
	before := ui.stats
	screen := graphics.RectFromPosSize(graphics.Vector{}, screenSize.Sanitize())

	var errs []error
	if ctx != nil {
		ctx.Begin()
	}
	roots := ui.Roots()
	for _, root := range roots {
		if err := ui.RunMeasure(root, screen.Size()); err != nil {
			errs = append(errs, err)
		}
	}
	for _, root := range roots {
		if err := ui.RunArrange(root, screen); err != nil {
			errs = append(errs, err)
		}
	}
	if ctx != nil {
		for _, root := range roots {
			if err := ui.RunDraw(root, ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}

	frame := Frame{
		Events:  ui.DrainEvents(),
		Stats:   ui.stats.sub(before),
		Elapsed: time.Since(start),
	}
	ui.logger.Debug("frame",
		"roots", len(ui.roots),
		"measures", frame.Stats.Measures,
		"arranges", frame.Stats.Arranges,
		"commands", frame.Stats.Commands,
		"events", len(frame.Events),
		"elapsed", frame.Elapsed)
	return frame, stderrors.Join(errs...)
}

func (s Stats) sub(o Stats) Stats {
	return Stats{
		Measures:         s.Measures - o.Measures,
		MeasureCacheHits: s.MeasureCacheHits - o.MeasureCacheHits,
		Arranges:         s.Arranges - o.Arranges,
		ArrangeCacheHits: s.ArrangeCacheHits - o.ArrangeCacheHits,
		DrawnNodes:       s.DrawnNodes - o.DrawnNodes,
		Commands:         s.Commands - o.Commands,
		Errors:           s.Errors - o.Errors,
	}
}

// beginPass starts collecting errors for a top-level pass.
func (ui *UserInterface) beginPass() {
	ui.passErrs = ui.passErrs[:0]
	ui.depth = 0
}

func (ui *UserInterface) endPass() error {
	err := stderrors.Join(ui.passErrs...)
	ui.passErrs = ui.passErrs[:0]
	return err
}

// report forwards a pass error to the handler and records it for the
// current pass result.
func (ui *UserInterface) report(err *errors.Error) {
	ui.stats.Errors++
	ui.passErrs = append(ui.passErrs, err)
	errors.ReportTo(ui.handler, err)
}

// recordPanic counts a panic already sent to the handler and records it
// for the current pass result.
func (ui *UserInterface) recordPanic(pe *errors.PanicError) {
	ui.stats.Errors++
	ui.passErrs = append(ui.passErrs, pe)
}

func staleHandle(op string, h Handle) *errors.Error {
	return errors.New(op, errors.KindStaleHandle, "no live node for handle %s", h).WithNode(h)
}
