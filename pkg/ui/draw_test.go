package ui

import (
	"testing"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
)

func TestDrawRecordsCommandsInTreeOrder(t *testing.T) {
	ui, _ := newTestUI(t)
	border := NewBorder()
	border.SetBackground(graphics.ColorBlue)
	root := ui.Add(border)
	label := ui.Add(NewText("hi"))
	hidden := ui.Add(NewText("hidden"))
	mustLink(t, ui, label, root)
	mustLink(t, ui, hidden, root)
	_ = ui.SetVisibility(hidden, graphics.Hidden)
	_ = ui.AddRoot(root)

	ctx := graphics.NewDrawingContext()
	frame, err := ui.Update(graphics.Vec(40, 20), ctx)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	cmds := ctx.Commands()
	kinds := make([]graphics.CommandKind, len(cmds))
	for i, c := range cmds {
		kinds[i] = c.Kind
	}
	want := []graphics.CommandKind{graphics.CommandRect, graphics.CommandBorder, graphics.CommandText}
	if len(kinds) != len(want) {
		t.Fatalf("commands = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("command %d = %v, want %v", i, kinds[i], want[i])
		}
	}
	if cmds[2].Node != label.Index() {
		t.Errorf("text command node = %d, want %d", cmds[2].Node, label.Index())
	}

	rootNode, _ := ui.Node(root)
	if start, end := rootNode.CommandRange(); start != 0 || end != 2 {
		t.Errorf("root range = [%d, %d), want [0, 2)", start, end)
	}
	labelNode, _ := ui.Node(label)
	if start, end := labelNode.CommandRange(); start != 2 || end != 3 {
		t.Errorf("label range = [%d, %d), want [2, 3)", start, end)
	}
	hiddenNode, _ := ui.Node(hidden)
	if start, end := hiddenNode.CommandRange(); start != end {
		t.Errorf("hidden node emitted [%d, %d)", start, end)
	}
	if frame.Stats.Commands != 3 {
		t.Errorf("frame commands = %d, want 3", frame.Stats.Commands)
	}
}

func TestDrawTintsWithNodeColor(t *testing.T) {
	ui, _ := newTestUI(t)
	border := NewBorder()
	border.SetStroke(graphics.Thickness{})
	border.SetBackground(graphics.ColorWhite)
	root := ui.Add(border)
	_ = ui.SetColor(root, graphics.ColorRed)
	_ = ui.AddRoot(root)

	ctx := graphics.NewDrawingContext()
	if _, err := ui.Update(graphics.Vec(10, 10), ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := ctx.Commands(); len(got) != 1 || got[0].Color != graphics.ColorRed {
		t.Fatalf("commands = %+v, want one red fill", got)
	}
}

func TestPresenterClipsChildren(t *testing.T) {
	ui, _ := newTestUI(t)
	p := ui.Add(NewScrollContentPresenter())
	label := ui.Add(NewText("clipped"))
	mustLink(t, ui, label, p)
	_ = ui.AddRoot(p)

	ctx := graphics.NewDrawingContext()
	if _, err := ui.Update(graphics.Vec(30, 10), ctx); err != nil {
		t.Fatalf("Update: %v", err)
	}
	cmds := ctx.Commands()
	if len(cmds) != 1 || !cmds[0].HasClip {
		t.Fatalf("commands = %+v, want one clipped text", cmds)
	}
	if cmds[0].Clip != graphics.RectFromLTWH(0, 0, 30, 10) {
		t.Errorf("clip = %v, want presenter bounds", cmds[0].Clip)
	}
}

func TestDrawBeforeArrangeIsReported(t *testing.T) {
	ui, collector := newTestUI(t)
	h := ui.Add(NewText("early"))

	err := ui.RunDraw(h, graphics.NewDrawingContext())
	if !errors.IsKind(err, errors.KindDraw) {
		t.Fatalf("RunDraw err = %v, want draw error", err)
	}
	if len(collector.Errors()) != 1 {
		t.Errorf("handler saw %d errors, want 1", len(collector.Errors()))
	}
}
