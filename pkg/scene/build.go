package scene

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/ui"
)

// Build creates the document's node tree in u and registers its top node as
// a root. On failure every node created for the document is removed again.
//
// Kind properties are applied before the node is laid out for the first
// time, so a scroll bar with a non-zero value reports ValueChanged on the
// first DrainEvents.
func (d *Document) Build(u *ui.UserInterface) (ui.Handle, error) {
	if d.Root == nil {
		return ui.None, errors.New("scene.Build", errors.KindScene, "document has no root")
	}
	b := builder{ui: u, dir: d.dir}
	h, err := b.build(d.Root, "root")
	if err != nil {
		return ui.None, err
	}
	if err := u.AddRoot(h); err != nil {
		_ = u.Remove(h)
		return ui.None, err
	}
	return h, nil
}

// ViewportSize returns the document viewport, or fallback for each axis the
// document leaves at zero.
func (d *Document) ViewportSize(fallback graphics.Vector) graphics.Vector {
	size := fallback
	if d.Viewport.Width > 0 {
		size.X = d.Viewport.Width
	}
	if d.Viewport.Height > 0 {
		size.Y = d.Viewport.Height
	}
	return size
}

type builder struct {
	ui  *ui.UserInterface
	dir string
}

func (b *builder) fail(path string, err error) error {
	return errors.Wrap("scene.Build", errors.KindScene, fmt.Errorf("%s: %w", path, err))
}

func (b *builder) build(n *Node, path string) (ui.Handle, error) {
	if n.Kind == "scroll_viewer" {
		return b.scrollViewer(n, path)
	}
	kind, err := b.kind(n)
	if err != nil {
		return ui.None, b.fail(path, err)
	}
	h := b.ui.AddNamed(n.Name, kind)
	if err := b.common(h, n); err != nil {
		_ = b.ui.Remove(h)
		return ui.None, b.fail(path, err)
	}
	for i := range n.Children {
		child, err := b.build(&n.Children[i], fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			_ = b.ui.Remove(h)
			return ui.None, err
		}
		if err := b.ui.Link(child, h); err != nil {
			_ = b.ui.Remove(child)
			_ = b.ui.Remove(h)
			return ui.None, b.fail(path, err)
		}
	}
	return h, nil
}

// scrollViewer builds the single child first and wraps it, since the viewer
// owns its own internal subtree.
func (b *builder) scrollViewer(n *Node, path string) (ui.Handle, error) {
	if len(n.Children) != 1 {
		return ui.None, b.fail(path, fmt.Errorf("scroll_viewer needs exactly one child, got %d", len(n.Children)))
	}
	horizontal, vertical, err := parseScroll(n.Scroll)
	if err != nil {
		return ui.None, b.fail(path, err)
	}
	content, err := b.build(&n.Children[0], path+".children[0]")
	if err != nil {
		return ui.None, err
	}
	h, err := b.ui.BuildScrollViewer(content)
	if err != nil {
		_ = b.ui.Remove(content)
		return ui.None, b.fail(path, err)
	}
	viewer, _ := ui.NodeAs[*ui.ScrollViewer](b.ui, h)
	if p, err := ui.NodeAs[*ui.ScrollContentPresenter](b.ui, viewer.Presenter()); err == nil {
		p.SetScrollAxes(horizontal, vertical)
	}
	if n.Thickness != nil {
		for _, bh := range []ui.Handle{viewer.VerticalBar(), viewer.HorizontalBar()} {
			if bar, err := ui.NodeAs[*ui.ScrollBar](b.ui, bh); err == nil {
				bar.SetThickness(*n.Thickness)
			}
		}
	}
	_ = b.ui.SetName(h, n.Name)
	if err := b.common(h, n); err != nil {
		_ = b.ui.Remove(h)
		return ui.None, b.fail(path, err)
	}
	return h, nil
}

func (b *builder) kind(n *Node) (ui.Kind, error) {
	switch n.Kind {
	case "text":
		t := ui.NewText(n.Text)
		t.SetWrap(n.Wrap)
		return t, nil
	case "border":
		border := ui.NewBorder()
		if n.Stroke != nil {
			stroke, err := parseThickness(n.Stroke)
			if err != nil {
				return nil, fmt.Errorf("stroke: %w", err)
			}
			border.SetStroke(stroke)
		}
		if err := applyColor(n.StrokeColor, border.SetStrokeColor); err != nil {
			return nil, fmt.Errorf("stroke_color: %w", err)
		}
		if err := applyColor(n.Background, border.SetBackground); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		return border, nil
	case "button":
		button := ui.NewButton()
		if err := applyColor(n.Background, button.SetBackground); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		if err := applyColor(n.Hover, button.SetHoverBackground); err != nil {
			return nil, fmt.Errorf("hover: %w", err)
		}
		return button, nil
	case "canvas":
		return ui.NewCanvas(), nil
	case "grid":
		rows, err := parseTracks(n.Rows)
		if err != nil {
			return nil, fmt.Errorf("rows: %w", err)
		}
		columns, err := parseTracks(n.Columns)
		if err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
		return ui.NewGrid(rows, columns), nil
	case "image":
		return b.image(n)
	case "scroll_bar":
		return scrollBar(n)
	case "scroll_content_presenter":
		horizontal, vertical, err := parseScroll(n.Scroll)
		if err != nil {
			return nil, err
		}
		p := ui.NewScrollContentPresenter()
		p.SetScrollAxes(horizontal, vertical)
		return p, nil
	case "window":
		w := ui.NewWindow(n.Title)
		if err := applyColor(n.Background, w.SetBackground); err != nil {
			return nil, fmt.Errorf("background: %w", err)
		}
		return w, nil
	case "":
		return nil, fmt.Errorf("missing kind")
	default:
		return nil, fmt.Errorf("unknown kind %q", n.Kind)
	}
}

func (b *builder) image(n *Node) (ui.Kind, error) {
	stretch, err := ui.ParseStretch(n.Stretch)
	if err != nil {
		return nil, err
	}
	var img *ui.Image
	switch {
	case n.ImageSize != nil:
		img = ui.NewImage(n.Image, graphics.Vec(orZero(n.ImageSize.Width), orZero(n.ImageSize.Height)))
	case n.Image != "":
		path := n.Image
		if !filepath.IsAbs(path) && b.dir != "" {
			path = filepath.Join(b.dir, path)
		}
		img, err = ui.LoadImage(path)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("image needs an image path or image_size")
	}
	img.SetStretch(stretch)
	return img, nil
}

func scrollBar(n *Node) (ui.Kind, error) {
	o, err := graphics.ParseOrientation(n.Orientation)
	if err != nil {
		return nil, err
	}
	bar := ui.NewScrollBar(o)
	switch len(n.Range) {
	case 0:
	case 2:
		bar.SetRange(n.Range[0], n.Range[1])
	default:
		return nil, fmt.Errorf("range needs two values, got %d", len(n.Range))
	}
	if n.Step != nil {
		bar.SetStep(*n.Step)
	}
	if n.Thickness != nil {
		bar.SetThickness(*n.Thickness)
	}
	if n.Value != nil {
		bar.SetValue(*n.Value)
	}
	return bar, nil
}

// common applies the layout inputs every kind shares.
func (b *builder) common(h ui.Handle, n *Node) error {
	u := b.ui
	if n.Width != nil {
		_ = u.SetWidth(h, *n.Width)
	}
	if n.Height != nil {
		_ = u.SetHeight(h, *n.Height)
	}
	if n.Min != nil {
		_ = u.SetMinSize(h, graphics.Vec(orZero(n.Min.Width), orZero(n.Min.Height)))
	}
	if n.Max != nil {
		_ = u.SetMaxSize(h, graphics.Vec(orInf(n.Max.Width), orInf(n.Max.Height)))
	}
	if n.Margin != nil {
		margin, err := parseThickness(n.Margin)
		if err != nil {
			return fmt.Errorf("margin: %w", err)
		}
		_ = u.SetMargin(h, margin)
	}
	ha, err := graphics.ParseHorizontalAlignment(n.HAlign)
	if err != nil {
		return err
	}
	va, err := graphics.ParseVerticalAlignment(n.VAlign)
	if err != nil {
		return err
	}
	vis, err := graphics.ParseVisibility(n.Visibility)
	if err != nil {
		return err
	}
	_ = u.SetHorizontalAlignment(h, ha)
	_ = u.SetVerticalAlignment(h, va)
	_ = u.SetVisibility(h, vis)
	_ = u.SetRow(h, n.Row)
	_ = u.SetColumn(h, n.Column)
	_ = u.SetDesiredPosition(h, graphics.Vec(n.X, n.Y))
	return applyColor(n.Color, func(c graphics.Color) { _ = u.SetColor(h, c) })
}

func applyColor(s string, set func(graphics.Color)) error {
	if s == "" {
		return nil
	}
	c, err := graphics.ParseColor(s)
	if err != nil {
		return err
	}
	set(c)
	return nil
}

// parseThickness accepts one value for every side, two for horizontal and
// vertical, or four for left, top, right and bottom.
func parseThickness(v []float64) (graphics.Thickness, error) {
	switch len(v) {
	case 1:
		return graphics.Uniform(v[0]), nil
	case 2:
		return graphics.Symmetric(v[0], v[1]), nil
	case 4:
		return graphics.Thickness{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}, nil
	default:
		return graphics.Thickness{}, fmt.Errorf("want 1, 2 or 4 values, got %d", len(v))
	}
}

// parseTracks reads grid tracks: "auto", "*" or "stretch", or a number of
// pixels for a strict track.
func parseTracks(specs []string) ([]ui.Track, error) {
	tracks := make([]ui.Track, 0, len(specs))
	for _, s := range specs {
		s = strings.TrimSpace(s)
		if s == "*" {
			tracks = append(tracks, ui.StretchTrack())
			continue
		}
		if mode, err := ui.ParseSizeMode(s); err == nil && s != "strict" {
			tracks = append(tracks, ui.Track{Mode: mode})
			continue
		}
		size, err := strconv.ParseFloat(s, 64)
		if err != nil || size < 0 || math.IsInf(size, 0) {
			return nil, fmt.Errorf("invalid track %q", s)
		}
		tracks = append(tracks, ui.Strict(size))
	}
	return tracks, nil
}

func parseScroll(s string) (horizontal, vertical bool, err error) {
	switch s {
	case "", "vertical":
		return false, true, nil
	case "horizontal":
		return true, false, nil
	case "both":
		return true, true, nil
	case "none":
		return false, false, nil
	default:
		return false, false, fmt.Errorf("unknown scroll axes %q", s)
	}
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func orInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
