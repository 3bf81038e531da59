package ui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// newTestUI returns a UserInterface that logs nowhere and collects every
// reported error.
func newTestUI(t *testing.T, opts ...Option) (*UserInterface, *errors.Collector) {
	t.Helper()
	collector := errors.NewCollector(nil)
	opts = append([]Option{
		WithLogger(log.New(io.Discard)),
		WithErrorHandler(collector),
	}, opts...)
	return New(opts...), collector
}

// probe is a custom kind with a fixed content size that counts override
// calls.
type probe struct {
	self     Handle
	size     graphics.Vector
	measures int
	panics   bool
	pending  Event
}

func (p *probe) SetOwner(self Handle) { p.self = self }

func (p *probe) EmitEvent() (Event, bool) {
	e := p.pending
	p.pending = nil
	return e, e != nil
}

func (p *probe) MeasureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	p.measures++
	if p.panics {
		panic("probe exploded")
	}
	return p.size.Max(ui.DefaultMeasureOverride(self, available))
}

type pinged struct{}

func (pinged) EventName() string { return "pinged" }

func addProbe(ui *UserInterface, w, h float64) (Handle, *probe) {
	p := &probe{size: graphics.Vec(w, h)}
	return ui.Add(NewUser(p)), p
}

func mustLink(t *testing.T, ui *UserInterface, child, parent Handle) {
	t.Helper()
	if err := ui.Link(child, parent); err != nil {
		t.Fatalf("Link(%v, %v): %v", child, parent, err)
	}
}

func mustLayout(t *testing.T, ui *UserInterface, h Handle) LayoutInfo {
	t.Helper()
	info, err := ui.Layout(h)
	if err != nil {
		t.Fatalf("Layout(%v): %v", h, err)
	}
	return info
}

func vecEqual(a, b graphics.Vector) bool {
	return a.ApproxEqual(b)
}
