package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/ui"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeScene(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCommandsOnDemoScene(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"layout", []string{"layout"}, []string{"Desired", "scroll_viewer", "notes", "button"}},
		{"draw", []string{"draw", "--plain"}, []string{"scenegraph demo", "OK", "┌"}},
		{"draw commands", []string{"draw", "--commands"}, []string{"border", "text", "image"}},
		{"dot", []string{"dot", "--layout"}, []string{"digraph scene {", "frame: border", "->"}},
		{"version", []string{"version"}, []string{"scenegraph " + Version, "scene schema v1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("%v: %v", tt.args, err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestDrawSceneFile(t *testing.T) {
	path := writeScene(t, "box.toml", `
[viewport]
width = 6.0
height = 3.0

[root]
kind = "border"

[[root.children]]
kind = "text"
text = "hi"
`)
	out, err := run(t, "draw", "--plain", path)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	want := "┌────┐\n│hi  │\n└────┘\n"
	if out != want {
		t.Errorf("draw output =\n%q\nwant\n%q", out, want)
	}
}

func TestSizeFlagsOverrideViewport(t *testing.T) {
	path := writeScene(t, "box.yaml", "viewport: {width: 6, height: 3}\nroot: {kind: border}\n")
	out, err := run(t, "draw", "--plain", "--width", "4", "--height", "2", path)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if want := "┌──┐\n└──┘\n"; out != want {
		t.Errorf("draw output = %q, want %q", out, want)
	}
}

func TestCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown font", []string{"layout", "--font", "serif"}},
		{"missing file", []string{"layout", filepath.Join(t.TempDir(), "nope.yaml")}},
		{"bad extension", []string{"layout", "scene.json"}},
		{"bad scene", []string{"layout", writeScene(t, "bad.yaml", "root: {kind: slider}\n")}},
		{"too many args", []string{"draw", "a.yaml", "b.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Errorf("%v succeeded, want error", tt.args)
			}
		})
	}
}

func TestBitmapFontScalesCells(t *testing.T) {
	opts := &options{font: fontBitmap}
	_, cell, err := opts.metrics()
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if cell.X != 7 || cell.Y != 13 {
		t.Errorf("cell size = %v, want {7 13}", cell)
	}
}

func TestSessionCollectsFrameErrors(t *testing.T) {
	path := writeScene(t, "box.yaml", "root: {kind: border}\n")
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	opts := &options{font: fontCell, width: 4, height: 2}
	s, err := opts.open(cmd, []string{path}, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.frame(nil)
	if s.errorCount() != 0 || s.errorSummary() != "" {
		t.Fatalf("clean frame collected %q", s.errorSummary())
	}

	// Drawing a detached node that was never arranged is a draw error.
	detached := s.ui.Add(ui.NewCanvas())
	_ = s.ui.RunDraw(detached, graphics.NewDrawingContext())
	s.errs.HandlePanic(&errors.PanicError{Op: "ui.draw", Value: "boom"})

	if s.errorCount() != 2 {
		t.Errorf("collected %d failures, want 2", s.errorCount())
	}
	summary := s.errorSummary()
	for _, want := range []string{"1 errors, 1 panics", "drawn before it was arranged", "panic in ui.draw: boom"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}
