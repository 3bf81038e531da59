package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-drift/scenegraph/pkg/errors"
	"github.com/go-drift/scenegraph/pkg/graphics"
	"github.com/go-drift/scenegraph/pkg/scene"
	"github.com/go-drift/scenegraph/pkg/term"
	"github.com/go-drift/scenegraph/pkg/ui"
)

//go:embed demo.yaml
var demoScene []byte

// defaultScene is loaded when no document is given on the command line.
const defaultScene = "scene.yaml"

const (
	fontCell   = "cell"
	fontBitmap = "bitmap"
)

// options holds the persistent flags shared by every command.
type options struct {
	verbose bool
	width   int
	height  int
	font    string
}

// metrics returns the text metrics for the --font flag and the scene size
// of one terminal cell under them.
func (o *options) metrics() (graphics.FontMetrics, graphics.Vector, error) {
	switch o.font {
	case fontCell, "":
		return term.CellMetrics{}, graphics.Vec(1, 1), nil
	case fontBitmap:
		m := graphics.DefaultFontMetrics()
		return m, graphics.Vec(m.Advance("M"), m.LineHeight()), nil
	default:
		return nil, graphics.Vector{}, fmt.Errorf("unknown font %q (want %s or %s)", o.font, fontCell, fontBitmap)
	}
}

// session is a scene document built into a UserInterface.
type session struct {
	doc      *scene.Document
	ui       *ui.UserInterface
	root     ui.Handle
	viewport graphics.Vector
	cellSize graphics.Vector
	logger   *log.Logger
	errs     *errors.Collector
}

// open loads the document named by args and builds it. Layout and draw
// failures are collected on the session and logged unless quiet is set.
func (o *options) open(cmd *cobra.Command, args []string, quiet bool) (*session, error) {
	logger := loggerFromContext(cmd.Context())
	metrics, cell, err := o.metrics()
	if err != nil {
		return nil, err
	}

	doc, source, err := loadDocument(args)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded scene", "source", source, "version", doc.Version)

	uiLogger := logger.WithPrefix("ui")
	if quiet {
		uiLogger = log.New(io.Discard)
	}
	collector := errors.NewCollector(&errors.LogHandler{Logger: uiLogger})
	u := ui.New(
		ui.WithLogger(uiLogger),
		ui.WithErrorHandler(collector),
		ui.WithFontMetrics(metrics),
	)
	root, err := doc.Build(u)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	viewport := doc.ViewportSize(graphics.Vec(float64(o.width)*cell.X, float64(o.height)*cell.Y))
	if cmd.Flags().Changed("width") {
		viewport.X = float64(o.width) * cell.X
	}
	if cmd.Flags().Changed("height") {
		viewport.Y = float64(o.height) * cell.Y
	}

	return &session{
		doc:      doc,
		ui:       u,
		root:     root,
		viewport: viewport,
		cellSize: cell,
		logger:   logger,
		errs:     collector,
	}, nil
}

func loadDocument(args []string) (*scene.Document, string, error) {
	if len(args) > 0 {
		doc, err := scene.Load(args[0])
		return doc, args[0], err
	}
	doc, err := scene.LoadOptional(defaultScene)
	if err != nil {
		return nil, defaultScene, err
	}
	if doc.Root != nil {
		return doc, defaultScene, nil
	}
	doc, err = scene.Parse(demoScene, scene.FormatYAML)
	return doc, "demo", err
}

// cells returns the terminal size that covers the viewport.
func (s *session) cells() (cols, rows int) {
	return int(math.Ceil(s.viewport.X / s.cellSize.X)), int(math.Ceil(s.viewport.Y / s.cellSize.Y))
}

// frame runs one Update. Per-node failures do not stop the frame; they
// reach the collector, which logs them.
func (s *session) frame(ctx *graphics.DrawingContext) ui.Frame {
	frame, _ := s.ui.Update(s.viewport, ctx)
	return frame
}

// errorCount returns how many errors and panics were collected.
func (s *session) errorCount() int {
	return len(s.errs.Errors()) + len(s.errs.Panics())
}

// errorSummary lists the collected failures, or returns "" when there are
// none.
func (s *session) errorSummary() string {
	errs, panics := s.errs.Errors(), s.errs.Panics()
	if len(errs)+len(panics) == 0 {
		return ""
	}
	lines := []string{warnStyle.Render(fmt.Sprintf("%d errors, %d panics", len(errs), len(panics)))}
	for _, e := range errs {
		lines = append(lines, "  "+e.Error())
	}
	for _, p := range panics {
		lines = append(lines, "  "+p.Error())
	}
	return strings.Join(lines, "\n")
}
