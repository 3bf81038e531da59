package term

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/ui"
)

func TestCellMetrics(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"", 0},
		{"hello", 5},
		{"日本", 4},
	}
	var m CellMetrics
	for _, tt := range tests {
		if got := m.Advance(tt.text); got != tt.want {
			t.Errorf("Advance(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
	if m.LineHeight() != 1 {
		t.Errorf("LineHeight = %v, want 1", m.LineHeight())
	}
}

func TestStrokeAndText(t *testing.T) {
	s := New(6, 3)
	s.StrokeRect(graphics.RectFromLTWH(0, 0, 6, 3), graphics.Uniform(1), graphics.ColorWhite, nil)
	s.DrawText(graphics.RectFromLTWH(1, 1, 4, 1), []string{"hi"}, 1, graphics.ColorRed, nil)

	want := "┌────┐\n│hi  │\n└────┘"
	if got := s.String(); got != want {
		t.Errorf("screen =\n%s\nwant\n%s", got, want)
	}
	if c := s.At(1, 1); c.Rune != 'h' || c.Fg != graphics.ColorRed {
		t.Errorf("At(1, 1) = %+v", c)
	}
}

func TestPartialStroke(t *testing.T) {
	s := New(4, 2)
	s.StrokeRect(graphics.RectFromLTWH(0, 0, 4, 2), graphics.Thickness{Bottom: 1}, graphics.ColorWhite, nil)
	if got, want := s.String(), "\n────"; got != want {
		t.Errorf("screen = %q, want %q", got, want)
	}
}

func TestClipRestrictsDrawing(t *testing.T) {
	s := New(8, 1)
	clip := graphics.RectFromLTWH(0, 0, 3, 1)
	s.DrawText(graphics.RectFromLTWH(0, 0, 8, 1), []string{"clipped"}, 1, graphics.ColorWhite, &clip)
	if got := s.String(); got != "cli" {
		t.Errorf("screen = %q, want %q", got, "cli")
	}
}

func TestFillErasesText(t *testing.T) {
	s := New(4, 1)
	s.DrawText(graphics.RectFromLTWH(0, 0, 4, 1), []string{"abcd"}, 1, graphics.ColorWhite, nil)
	s.FillRect(graphics.RectFromLTWH(1, 0, 2, 1), graphics.ColorBlue, nil)
	if got := s.String(); got != "a  d" {
		t.Errorf("screen = %q, want %q", got, "a  d")
	}
	if s.At(1, 0).Bg != graphics.ColorBlue {
		t.Errorf("background = %v, want blue", s.At(1, 0).Bg)
	}

	s.FillRect(graphics.RectFromLTWH(0, 0, 4, 1), graphics.ColorTransparent, nil)
	if got := s.String(); got != "a  d" {
		t.Errorf("transparent fill changed screen to %q", got)
	}
}

func TestWideRunes(t *testing.T) {
	s := New(5, 1)
	s.DrawText(graphics.RectFromLTWH(0, 0, 5, 1), []string{"日x"}, 1, graphics.ColorWhite, nil)
	if got := s.String(); got != "日x" {
		t.Errorf("screen = %q, want %q", got, "日x")
	}
	if s.At(1, 0).Rune != 0 {
		t.Errorf("continuation cell = %q, want 0", s.At(1, 0).Rune)
	}
	if s.At(2, 0).Rune != 'x' {
		t.Errorf("At(2, 0) = %q, want 'x'", s.At(2, 0).Rune)
	}
}

func TestCellSizeScales(t *testing.T) {
	s := New(4, 2, WithCellSize(graphics.Vec(7, 13)))
	if got := s.Viewport(); got != graphics.Vec(28, 26) {
		t.Fatalf("Viewport = %v, want {28 26}", got)
	}
	s.DrawImage(graphics.RectFromLTWH(7, 13, 14, 13), "tex.png", graphics.ColorWhite, nil)
	if got, want := s.String(), "\n ░░"; got != want {
		t.Errorf("screen = %q, want %q", got, want)
	}
}

func TestOutOfRangeIsIgnored(t *testing.T) {
	s := New(2, 2)
	s.FillRect(graphics.RectFromLTWH(-10, -10, 100, 100), graphics.ColorRed, nil)
	s.DrawText(graphics.RectFromLTWH(-1, 5, 1, 1), []string{"x"}, 1, graphics.ColorWhite, nil)
	if c := s.At(5, 5); c.Rune != ' ' {
		t.Errorf("At outside = %+v, want blank", c)
	}
	if s.At(1, 1).Bg != graphics.ColorRed {
		t.Error("fill should cover the whole screen")
	}
}

func TestRenderKeepsText(t *testing.T) {
	s := New(6, 1)
	s.DrawText(graphics.RectFromLTWH(0, 0, 6, 1), []string{"ab"}, 1, graphics.ColorRed, nil)
	s.DrawText(graphics.RectFromLTWH(2, 0, 6, 1), []string{"cd"}, 1, graphics.ColorBlue, nil)
	out := s.Render()
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("Render() = %q, missing text", out)
	}
}

func TestReplayScene(t *testing.T) {
	scene := ui.New(ui.WithLogger(log.New(io.Discard)), ui.WithFontMetrics(CellMetrics{}))
	border := scene.Add(ui.NewBorder())
	label := scene.Add(ui.NewText("hi"))
	if err := scene.Link(label, border); err != nil {
		t.Fatalf("Link: %v", err)
	}
	_ = scene.AddRoot(border)

	screen := New(6, 3)
	ctx := graphics.NewDrawingContext()
	if _, err := scene.Update(screen.Viewport(), ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}
	ctx.Replay(screen)

	want := "┌────┐\n│hi  │\n└────┘"
	if got := screen.String(); got != want {
		t.Errorf("screen =\n%s\nwant\n%s", got, want)
	}
}
