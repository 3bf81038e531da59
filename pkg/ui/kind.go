package ui

import (
	"fmt"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Kind is the behavior variant of a node. The set is closed: only the kinds
// defined in this package satisfy it, and application-defined behavior is
// plugged in through [User].
type Kind interface {
	attach(owner *UserInterface, self Handle)
	base() *kindBase
}

// kindBase is embedded by every kind. It links the kind back to its node so
// kind-level setters can invalidate layout, and holds the single pending
// event slot.
type kindBase struct {
	owner   *UserInterface
	self    Handle
	pending Event
}

func (b *kindBase) attach(owner *UserInterface, self Handle) {
	b.owner = owner
	b.self = self
}

func (b *kindBase) base() *kindBase { return b }

// Self returns the handle of the node the kind is attached to, or None
// before the kind has been added to a UserInterface.
func (b *kindBase) Self() Handle { return b.self }

func (b *kindBase) invalidateMeasure() {
	if b.owner != nil {
		b.owner.InvalidateMeasure(b.self)
	}
}

func (b *kindBase) invalidateArrange() {
	if b.owner != nil {
		b.owner.InvalidateArrange(b.self)
	}
}

// queue stores e as the pending event. A newer event replaces one that was
// not drained yet.
func (b *kindBase) queue(e Event) {
	b.pending = e
}

func (b *kindBase) take() (Event, bool) {
	e := b.pending
	b.pending = nil
	return e, e != nil
}

// CustomKind is behavior supplied by the application and wrapped by [User].
//
// The layout and drawing capabilities are optional: implement
// [CustomMeasurer], [CustomArranger] or [CustomDrawer] to take part in the
// corresponding pass. Kinds that implement none of them lay out like a plain
// container and draw nothing.
type CustomKind interface {
	// SetOwner is called once, when the wrapping node is added.
	SetOwner(self Handle)
	// EmitEvent returns the pending event, if any, and clears it.
	EmitEvent() (Event, bool)
}

// CustomMeasurer replaces the default measure override of a User kind.
type CustomMeasurer interface {
	MeasureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector
}

// CustomArranger replaces the default arrange override of a User kind.
type CustomArranger interface {
	ArrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector
}

// CustomDrawer draws a User kind.
type CustomDrawer interface {
	Draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color)
}

// User wraps an application-defined CustomKind.
type User struct {
	kindBase
	Impl CustomKind
}

// NewUser wraps impl so it can be added to a UserInterface.
func NewUser(impl CustomKind) *User {
	return &User{Impl: impl}
}

func (u *User) attach(owner *UserInterface, self Handle) {
	u.kindBase.attach(owner, self)
	if u.Impl != nil {
		u.Impl.SetOwner(self)
	}
}

// Invalidate marks the node's measure dirty. Custom kinds call it through
// the UserInterface when their own state changes.
func (u *User) Invalidate() { u.invalidateMeasure() }

// KindName returns a short lowercase name for k, used in logs and tools.
func KindName(k Kind) string {
	switch k := k.(type) {
	case *Text:
		return "text"
	case *Border:
		return "border"
	case *Button:
		return "button"
	case *ScrollBar:
		return "scroll_bar"
	case *ScrollViewer:
		return "scroll_viewer"
	case *Image:
		return "image"
	case *Grid:
		return "grid"
	case *Canvas:
		return "canvas"
	case *ScrollContentPresenter:
		return "scroll_content_presenter"
	case *Window:
		return "window"
	case *User:
		if k.Impl == nil {
			return "user"
		}
		return fmt.Sprintf("user(%T)", k.Impl)
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", k)
	}
}

// NodeAs returns the kind of the node h, checked against K. A node of
// another kind yields an error of kind errors.KindMismatch; a stale handle
// yields errors.KindStaleHandle.
func NodeAs[K Kind](ui *UserInterface, h Handle) (K, error) {
	var zero K
	n, err := ui.Node(h)
	if err != nil {
		return zero, err
	}
	k, ok := n.kind.(K)
	if !ok {
		return zero, errors.New("ui.NodeAs", errors.KindMismatch,
			"node is %s, not %T", KindName(n.kind), zero).WithNode(h)
	}
	return k, nil
}

// UserAs returns the CustomKind of the User node h, checked against T.
func UserAs[T CustomKind](ui *UserInterface, h Handle) (T, error) {
	var zero T
	u, err := NodeAs[*User](ui, h)
	if err != nil {
		return zero, err
	}
	impl, ok := u.Impl.(T)
	if !ok {
		return zero, errors.New("ui.UserAs", errors.KindMismatch,
			"user kind is %T, not %T", u.Impl, zero).WithNode(h)
	}
	return impl, nil
}

// Is reports whether h is a live node of kind K.
func Is[K Kind](ui *UserInterface, h Handle) bool {
	_, err := NodeAs[K](ui, h)
	return err == nil
}

// measureOverride dispatches the measure step of the node's kind.
func measureOverride(ui *UserInterface, self Handle, k Kind, available graphics.Vector) graphics.Vector {
	switch k := k.(type) {
	case *Text:
		return k.measureOverride(ui, self, available)
	case *Border:
		return k.measureOverride(ui, self, available)
	case *ScrollBar:
		return k.measureOverride(ui, self, available)
	case *Image:
		return k.measureOverride(ui, self, available)
	case *Grid:
		return k.measureOverride(ui, self, available)
	case *Canvas:
		return k.measureOverride(ui, self, available)
	case *ScrollContentPresenter:
		return k.measureOverride(ui, self, available)
	case *User:
		if m, ok := k.Impl.(CustomMeasurer); ok {
			return m.MeasureOverride(ui, self, available)
		}
		return ui.DefaultMeasureOverride(self, available)
	case *Button, *ScrollViewer, *Window:
		return ui.DefaultMeasureOverride(self, available)
	default:
		panic(fmt.Sprintf("ui: unhandled kind %T", k))
	}
}

// arrangeOverride dispatches the arrange step of the node's kind.
func arrangeOverride(ui *UserInterface, self Handle, k Kind, final graphics.Vector) graphics.Vector {
	switch k := k.(type) {
	case *Text:
		return k.arrangeOverride(ui, self, final)
	case *Border:
		return k.arrangeOverride(ui, self, final)
	case *ScrollViewer:
		return k.arrangeOverride(ui, self, final)
	case *Image:
		return k.arrangeOverride(ui, self, final)
	case *Grid:
		return k.arrangeOverride(ui, self, final)
	case *Canvas:
		return k.arrangeOverride(ui, self, final)
	case *ScrollContentPresenter:
		return k.arrangeOverride(ui, self, final)
	case *User:
		if a, ok := k.Impl.(CustomArranger); ok {
			return a.ArrangeOverride(ui, self, final)
		}
		return ui.DefaultArrangeOverride(self, final)
	case *Button, *ScrollBar, *Window:
		return ui.DefaultArrangeOverride(self, final)
	default:
		panic(fmt.Sprintf("ui: unhandled kind %T", k))
	}
}

// drawKind dispatches the draw step of the node's kind.
func drawKind(ctx *graphics.DrawingContext, k Kind, bounds graphics.Rect, tint graphics.Color) {
	switch k := k.(type) {
	case *Text:
		k.draw(ctx, bounds, tint)
	case *Border:
		k.draw(ctx, bounds, tint)
	case *Button:
		k.draw(ctx, bounds, tint)
	case *ScrollBar:
		k.draw(ctx, bounds, tint)
	case *Image:
		k.draw(ctx, bounds, tint)
	case *Window:
		k.draw(ctx, bounds, tint)
	case *User:
		if d, ok := k.Impl.(CustomDrawer); ok {
			d.Draw(ctx, bounds, tint)
		}
	case *ScrollViewer, *Grid, *Canvas, *ScrollContentPresenter:
	default:
		panic(fmt.Sprintf("ui: unhandled kind %T", k))
	}
}

// emitEvent takes the pending event of the node's kind.
func emitEvent(k Kind) (Event, bool) {
	if u, ok := k.(*User); ok {
		if u.Impl == nil {
			return nil, false
		}
		return u.Impl.EmitEvent()
	}
	return k.base().take()
}

// clipsChildren reports whether children are clipped to the node bounds for
// drawing and hit testing.
func clipsChildren(k Kind) bool {
	switch k.(type) {
	case *ScrollContentPresenter, *Window:
		return true
	default:
		return false
	}
}
