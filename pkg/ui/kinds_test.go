package ui

import (
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

func TestLeafNaturalSizeIsFinite(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		want graphics.Vector
	}{
		{"text", NewText("hello"), graphics.Vec(35, 13)},
		{"multiline text", NewText("ab\nabcd"), graphics.Vec(28, 26)},
		{"image", NewImage("tex", graphics.Vec(64, 32)), graphics.Vec(64, 32)},
		{"empty text", NewText(""), graphics.Vec(0, 13)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui, _ := newTestUI(t)
			h := ui.Add(tt.kind)
			if err := ui.RunMeasure(h, graphics.Infinite()); err != nil {
				t.Fatalf("RunMeasure: %v", err)
			}
			got := mustLayout(t, ui, h).DesiredSize
			if !got.IsFinite() {
				t.Fatalf("desired = %v, want finite", got)
			}
			if !vecEqual(got, tt.want) {
				t.Errorf("desired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTextWrapsToAvailableWidth(t *testing.T) {
	ui, _ := newTestUI(t)
	text := NewText("hello big world")
	text.SetWrap(true)
	h := ui.Add(text)

	_ = ui.RunMeasure(h, graphics.Vec(60, 100))
	if got := mustLayout(t, ui, h).DesiredSize; !vecEqual(got, graphics.Vec(35, 39)) {
		t.Errorf("desired = %v, want (35, 39)", got)
	}
	if len(text.Lines()) != 3 {
		t.Errorf("lines = %q, want 3", text.Lines())
	}

	text.SetText("hi")
	if ui.IsMeasureValid(h) {
		t.Error("SetText should invalidate measure")
	}
}

func TestBorderDeflatesChildren(t *testing.T) {
	ui, _ := newTestUI(t)
	border := NewBorder()
	border.SetStroke(graphics.Uniform(2))
	b := ui.Add(border)
	child, _ := addProbe(ui, 10, 6)
	mustLink(t, ui, child, b)

	_ = ui.RunMeasure(b, graphics.Vec(100, 100))
	if got := mustLayout(t, ui, b).DesiredSize; !vecEqual(got, graphics.Vec(14, 10)) {
		t.Errorf("border desired = %v, want (14, 10)", got)
	}
	_ = ui.RunArrange(b, graphics.RectFromLTWH(0, 0, 50, 40))
	info := mustLayout(t, ui, child)
	if !vecEqual(info.ActualLocalPosition, graphics.Vec(2, 2)) || !vecEqual(info.ActualSize, graphics.Vec(46, 36)) {
		t.Errorf("child at %v size %v, want (2, 2) (46, 36)", info.ActualLocalPosition, info.ActualSize)
	}
}

func TestGridTracks(t *testing.T) {
	ui, _ := newTestUI(t)
	grid := NewGrid(
		[]Track{Strict(20), StretchTrack()},
		[]Track{Auto(), StretchTrack()},
	)
	g := ui.Add(grid)
	a, _ := addProbe(ui, 30, 10)
	b, _ := addProbe(ui, 5, 5)
	far, _ := addProbe(ui, 1, 1)
	mustLink(t, ui, a, g)
	mustLink(t, ui, b, g)
	mustLink(t, ui, far, g)
	_ = ui.SetRow(b, 1)
	_ = ui.SetColumn(b, 1)
	_ = ui.SetRow(far, 9)
	_ = ui.SetColumn(far, 9)

	_ = ui.RunMeasure(g, graphics.Vec(200, 100))
	if got := mustLayout(t, ui, g).DesiredSize; !vecEqual(got, graphics.Vec(200, 100)) {
		t.Errorf("grid desired = %v, want (200, 100)", got)
	}
	_ = ui.RunArrange(g, graphics.RectFromLTWH(0, 0, 200, 100))

	if got := grid.ColumnSizes(); len(got) != 2 || got[0] != 30 || got[1] != 170 {
		t.Errorf("columns = %v, want [30 170]", got)
	}
	if got := grid.RowSizes(); len(got) != 2 || got[0] != 20 || got[1] != 80 {
		t.Errorf("rows = %v, want [20 80]", got)
	}
	bi := mustLayout(t, ui, b)
	if !vecEqual(bi.ActualLocalPosition, graphics.Vec(30, 20)) || !vecEqual(bi.ActualSize, graphics.Vec(170, 80)) {
		t.Errorf("b at %v size %v", bi.ActualLocalPosition, bi.ActualSize)
	}
	if got := mustLayout(t, ui, far).ActualLocalPosition; !vecEqual(got, graphics.Vec(30, 20)) {
		t.Errorf("out of range child at %v, want last cell (30, 20)", got)
	}
}

func TestGridWithoutDefinitions(t *testing.T) {
	ui, _ := newTestUI(t)
	g := ui.Add(NewGrid(nil, nil))
	child, _ := addProbe(ui, 12, 8)
	mustLink(t, ui, child, g)

	_ = ui.RunMeasure(g, graphics.Infinite())
	if got := mustLayout(t, ui, g).DesiredSize; !vecEqual(got, graphics.Vec(12, 8)) {
		t.Errorf("unbounded grid desired = %v, want (12, 8)", got)
	}
	_ = ui.RunArrange(g, graphics.RectFromLTWH(0, 0, 40, 30))
	if got := mustLayout(t, ui, child).ActualSize; !vecEqual(got, graphics.Vec(40, 30)) {
		t.Errorf("child size = %v, want (40, 30)", got)
	}
}

func TestGridMeasuresAutoCellsOnce(t *testing.T) {
	ui, _ := newTestUI(t)
	g := ui.Add(NewGrid([]Track{Auto()}, []Track{Auto()}))
	child, p := addProbe(ui, 12, 8)
	mustLink(t, ui, child, g)

	_ = ui.RunMeasure(g, graphics.Vec(100, 100))
	if p.measures != 1 {
		t.Errorf("override ran %d times, want 1", p.measures)
	}
	_ = ui.RunMeasure(g, graphics.Vec(80, 80))
	if p.measures != 1 {
		t.Errorf("re-measuring the grid ran the child override %d times, want 1", p.measures)
	}
	if got := mustLayout(t, ui, g).DesiredSize; !vecEqual(got, graphics.Vec(12, 8)) {
		t.Errorf("grid desired = %v, want (12, 8)", got)
	}
}

func TestImageStretch(t *testing.T) {
	tests := []struct {
		stretch  Stretch
		wantSize graphics.Vector
		wantPos  graphics.Vector
	}{
		{StretchNone, graphics.Vec(64, 32), graphics.Vec(18, 34)},
		{StretchFill, graphics.Vec(100, 100), graphics.Vec(0, 0)},
		{StretchUniform, graphics.Vec(100, 50), graphics.Vec(0, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.stretch.String(), func(t *testing.T) {
			ui, _ := newTestUI(t)
			img := NewImage("tex", graphics.Vec(64, 32))
			img.SetStretch(tt.stretch)
			h := ui.Add(img)
			_ = ui.RunMeasure(h, graphics.Vec(100, 100))
			_ = ui.RunArrange(h, graphics.RectFromLTWH(0, 0, 100, 100))

			info := mustLayout(t, ui, h)
			if !vecEqual(info.ActualSize, tt.wantSize) || !vecEqual(info.ActualLocalPosition, tt.wantPos) {
				t.Errorf("image at %v size %v, want %v %v", info.ActualLocalPosition, info.ActualSize, tt.wantPos, tt.wantSize)
			}
		})
	}
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pixel.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, 3, 2))); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if !vecEqual(img.NaturalSize(), graphics.Vec(3, 2)) {
		t.Errorf("natural size = %v, want (3, 2)", img.NaturalSize())
	}
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadImage of missing file should fail")
	}
}

func TestScrollContentPresenter(t *testing.T) {
	ui, _ := newTestUI(t)
	presenter := NewScrollContentPresenter()
	p := ui.Add(presenter)
	content, _ := addProbe(ui, 50, 300)
	mustLink(t, ui, content, p)
	_ = ui.AddRoot(p)

	if _, err := ui.Update(graphics.Vec(100, 100), nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !vecEqual(presenter.Extent(), graphics.Vec(50, 300)) {
		t.Errorf("extent = %v, want (50, 300)", presenter.Extent())
	}
	if !vecEqual(presenter.MaxOffset(), graphics.Vec(0, 200)) {
		t.Errorf("max offset = %v, want (0, 200)", presenter.MaxOffset())
	}

	presenter.SetOffset(graphics.Vec(30, 500))
	if !vecEqual(presenter.Offset(), graphics.Vec(0, 200)) {
		t.Errorf("offset = %v, want clamped (0, 200)", presenter.Offset())
	}
	if ui.IsArrangeValid(p) {
		t.Error("scrolling should invalidate arrange")
	}
	if !ui.IsMeasureValid(p) {
		t.Error("scrolling should keep measure")
	}

	frame, err := ui.Update(graphics.Vec(100, 100), nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := mustLayout(t, ui, content).ScreenPosition; !vecEqual(got, graphics.Vec(0, -200)) {
		t.Errorf("content screen position = %v, want (0, -200)", got)
	}
	if len(frame.Events) != 1 {
		t.Fatalf("events = %v, want one ScrollChanged", frame.Events)
	}
	if e, ok := frame.Events[0].Event.(ScrollChanged); !ok || e.Offset.Y != 200 {
		t.Errorf("event = %#v", frame.Events[0].Event)
	}
}

func TestScrollBar(t *testing.T) {
	ui, _ := newTestUI(t)
	bar := NewScrollBar(graphics.Vertical)
	h := ui.Add(bar)

	bar.SetRange(0, 10)
	bar.SetValue(15)
	if bar.Value() != 10 {
		t.Errorf("value = %v, want clamped 10", bar.Value())
	}
	bar.SetValue(math.NaN())
	if bar.Value() != 10 {
		t.Errorf("NaN changed value to %v", bar.Value())
	}
	events := ui.DrainEvents()
	if len(events) != 1 || events[0].Source != h {
		t.Fatalf("events = %v, want one from %v", events, h)
	}
	if e := events[0].Event.(ValueChanged); e.Old != 0 || e.Value != 10 {
		t.Errorf("event = %+v", e)
	}

	bar.SetRange(0, 100)
	bar.SetStep(5)
	bar.Increment()
	if bar.Value() != 15 {
		t.Errorf("after Increment value = %v, want 15", bar.Value())
	}

	_ = ui.RunMeasure(h, graphics.Infinite())
	if got := mustLayout(t, ui, h).DesiredSize; !vecEqual(got, graphics.Vec(DefaultScrollBarThickness, DefaultScrollBarThickness)) {
		t.Errorf("desired = %v", got)
	}

	bar.SetValue(100)
	if got := bar.ThumbRect(graphics.Vec(12, 100)); !vecEqual(got.Position(), graphics.Vec(0, 88)) {
		t.Errorf("thumb at %v, want (0, 88)", got.Position())
	}
}

func TestScrollViewerSyncsBarsAndPresenter(t *testing.T) {
	ui, _ := newTestUI(t)
	content, _ := addProbe(ui, 300, 400)
	root, err := ui.BuildScrollViewer(content)
	if err != nil {
		t.Fatalf("BuildScrollViewer: %v", err)
	}
	_ = ui.AddRoot(root)
	viewer, _ := NodeAs[*ScrollViewer](ui, root)
	vbar, _ := NodeAs[*ScrollBar](ui, viewer.VerticalBar())

	if _, err := ui.Update(graphics.Vec(100, 100), nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if lo, hi := vbar.Range(); lo != 0 || hi != 312 {
		t.Errorf("vertical range = [%v, %v], want [0, 312]", lo, hi)
	}

	viewer.ScrollTo(graphics.Vec(0, 50))
	if vbar.Value() != 50 {
		t.Errorf("bar value = %v, want 50", vbar.Value())
	}
	if _, err := ui.Update(graphics.Vec(100, 100), nil); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := mustLayout(t, ui, content).ScreenPosition; !vecEqual(got, graphics.Vec(0, -50)) {
		t.Errorf("content at %v, want (0, -50)", got)
	}

	if got := ui.Click(graphics.Vec(94, 80)); got != viewer.VerticalBar() {
		t.Fatalf("click hit %v, want vertical bar %v", got, viewer.VerticalBar())
	}
	if viewer.Offset().Y != 60 {
		t.Errorf("offset after track click = %v, want 60", viewer.Offset().Y)
	}
}

func TestWindowClose(t *testing.T) {
	ui, _ := newTestUI(t)
	win := NewWindow("main")
	h := ui.Add(win)

	win.Close()
	win.Close()
	n, _ := ui.Node(h)
	if n.Visibility() != graphics.Collapsed || win.IsOpen() {
		t.Error("closed window should be collapsed")
	}
	events := ui.DrainEvents()
	if len(events) != 1 || events[0].Event.EventName() != "window_closed" {
		t.Errorf("events = %v", events)
	}
	win.Open()
	if n.Visibility() != graphics.Visible {
		t.Error("reopened window should be visible")
	}
}

func TestKindName(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{NewText(""), "text"},
		{NewBorder(), "border"},
		{NewButton(), "button"},
		{NewScrollBar(graphics.Horizontal), "scroll_bar"},
		{NewScrollViewer(), "scroll_viewer"},
		{NewImage("", graphics.Vector{}), "image"},
		{NewGrid(nil, nil), "grid"},
		{NewCanvas(), "canvas"},
		{NewScrollContentPresenter(), "scroll_content_presenter"},
		{NewWindow(""), "window"},
		{NewUser(&probe{}), "user(*ui.probe)"},
	}
	for _, tt := range tests {
		if got := KindName(tt.kind); got != tt.want {
			t.Errorf("KindName(%T) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
