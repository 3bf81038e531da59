// Package treeviz exports a scene graph subtree as a Graphviz diagram.
package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/ui"
)

// Options configures DOT output.
type Options struct {
	// Layout adds desired size, actual size and screen position to labels.
	Layout bool
}

// ToDOT converts the subtree under root to DOT, one box per node and one
// edge per parent-child link. Collapsed nodes are dashed and hidden nodes
// grey.
func ToDOT(u *ui.UserInterface, root ui.Handle, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\"];\n")
	buf.WriteString("\n")

	var edges []string
	u.Walk(root, func(h ui.Handle, n *ui.Node, _ int) bool {
		fmt.Fprintf(&buf, "  %q [%s];\n", h.String(), strings.Join(attrs(u, h, n, opts), ", "))
		for _, child := range n.Children() {
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", h.String(), child.String()))
		}
		return true
	})

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func attrs(u *ui.UserInterface, h ui.Handle, n *ui.Node, opts Options) []string {
	attrs := []string{fmt.Sprintf("label=%q", label(u, h, n, opts))}
	switch n.Visibility() {
	case graphics.Hidden:
		attrs = append(attrs, "fillcolor=lightgrey")
	case graphics.Collapsed:
		attrs = append(attrs, "style=\"rounded,dashed\"")
	}
	return attrs
}

func label(u *ui.UserInterface, h ui.Handle, n *ui.Node, opts Options) string {
	parts := []string{ui.KindName(n.Kind())}
	if n.Name() != "" {
		parts[0] = n.Name() + ": " + parts[0]
	}
	if opts.Layout {
		if info, err := u.Layout(h); err == nil && info.ArrangeValid {
			parts = append(parts,
				fmt.Sprintf("desired %s", formatVec(info.DesiredSize)),
				fmt.Sprintf("size %s", formatVec(info.ActualSize)),
				fmt.Sprintf("at %s", formatVec(info.ScreenPosition)),
			)
		}
	}
	return strings.Join(parts, "\n")
}

func formatVec(v graphics.Vector) string {
	return fmt.Sprintf("%gx%g", v.X, v.Y)
}

// RenderSVG renders DOT source to SVG with the embedded Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
