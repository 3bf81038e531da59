package ui

import (
	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Text displays a block of text. Its natural size comes from the font
// metrics; with wrapping enabled, lines break to fit the available width.
type Text struct {
	kindBase
	text  string
	wrap  bool
	font  graphics.FontMetrics
	lines graphics.TextLayout
}

// NewText creates a Text kind showing s.
func NewText(s string) *Text {
	return &Text{text: s}
}

// Text returns the displayed text.
func (t *Text) Text() string { return t.text }

// SetText replaces the displayed text.
func (t *Text) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.invalidateMeasure()
}

// Wrap reports whether lines break at the available width.
func (t *Text) Wrap() bool { return t.wrap }

// SetWrap enables or disables wrapping.
func (t *Text) SetWrap(wrap bool) {
	if wrap == t.wrap {
		return
	}
	t.wrap = wrap
	t.invalidateMeasure()
}

// SetFont overrides the UserInterface font metrics for this node. Nil
// restores the default.
func (t *Text) SetFont(m graphics.FontMetrics) {
	t.font = m
	t.invalidateMeasure()
}

// Lines returns the lines produced by the last layout.
func (t *Text) Lines() []string { return t.lines.Lines }

func (t *Text) metrics(ui *UserInterface) graphics.FontMetrics {
	if t.font != nil {
		return t.font
	}
	return ui.font
}

func (t *Text) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	t.lines = graphics.LayoutText(t.metrics(ui), t.text, available.X, t.wrap)
	return t.lines.Size.Max(ui.DefaultMeasureOverride(self, available))
}

func (t *Text) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	if t.wrap {
		t.lines = graphics.LayoutText(t.metrics(ui), t.text, final.X, true)
	}
	return ui.DefaultArrangeOverride(self, final)
}

func (t *Text) draw(ctx *graphics.DrawingContext, bounds graphics.Rect, tint graphics.Color) {
	if t.text == "" {
		return
	}
	ctx.DrawText(bounds, t.lines.Lines, t.lines.LineHeight, tint)
}
