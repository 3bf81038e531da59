// Package term rasterizes a recorded DrawingContext into a grid of
// terminal character cells.
//
// A Screen implements graphics.Canvas, so a frame is rendered by replaying
// the context onto it:
//
//	screen := term.New(80, 24)
//	ctx.Replay(screen)
//	fmt.Println(screen.Render())
//
// Scene coordinates map to cells through the screen's cell size. With the
// default cell size of 1x1 and CellMetrics as the font, one layout unit is
// one column or one row.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// Cell is one character position on the screen.
type Cell struct {
	// Rune is the character in the cell. Zero marks the second column of a
	// wide rune drawn in the cell to its left.
	Rune rune
	Fg   graphics.Color
	Bg   graphics.Color
}

func emptyCell() Cell {
	return Cell{Rune: ' ', Fg: graphics.ColorWhite, Bg: graphics.ColorTransparent}
}

// Screen is a fixed-size cell buffer that implements graphics.Canvas.
type Screen struct {
	cells    []Cell
	cols     int
	rows     int
	cellSize graphics.Vector
}

// Option configures a Screen.
type Option func(*Screen)

// WithCellSize sets how many scene units one cell covers on each axis.
// Non-positive or non-finite components are ignored.
func WithCellSize(size graphics.Vector) Option {
	return func(s *Screen) {
		if size.X > 0 && !math.IsInf(size.X, 0) {
			s.cellSize.X = size.X
		}
		if size.Y > 0 && !math.IsInf(size.Y, 0) {
			s.cellSize.Y = size.Y
		}
	}
}

// New creates a cleared screen of cols x rows cells.
func New(cols, rows int, opts ...Option) *Screen {
	s := &Screen{cellSize: graphics.Vec(1, 1)}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(cols, rows)
	return s
}

// Resize changes the grid dimensions and clears it.
func (s *Screen) Resize(cols, rows int) {
	s.cols = max(0, cols)
	s.rows = max(0, rows)
	s.cells = make([]Cell, s.cols*s.rows)
	s.Clear()
}

// Clear resets every cell to a blank space.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = emptyCell()
	}
}

// Size returns the grid dimensions in cells.
func (s *Screen) Size() (cols, rows int) {
	return s.cols, s.rows
}

// CellSize returns the scene size of one cell.
func (s *Screen) CellSize() graphics.Vector {
	return s.cellSize
}

// Viewport returns the screen extent in scene units, suitable as the
// screen size of a frame.
func (s *Screen) Viewport() graphics.Vector {
	return graphics.Vec(float64(s.cols)*s.cellSize.X, float64(s.rows)*s.cellSize.Y)
}

// At returns the cell at column x, row y. Out-of-range positions return a
// blank cell.
func (s *Screen) At(x, y int) Cell {
	if !s.inBounds(x, y) {
		return emptyCell()
	}
	return s.cells[y*s.cols+x]
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.cols && y >= 0 && y < s.rows
}

// span is a half-open cell range [x0, x1) x [y0, y1).
type span struct {
	x0, y0, x1, y1 int
}

func (sp span) contains(x, y int) bool {
	return x >= sp.x0 && x < sp.x1 && y >= sp.y0 && y < sp.y1
}

func (sp span) empty() bool {
	return sp.x0 >= sp.x1 || sp.y0 >= sp.y1
}

// toCells maps a scene rectangle to the cells whose origin it covers.
func (s *Screen) toCells(r graphics.Rect) span {
	return span{
		x0: cellIndex(r.X / s.cellSize.X),
		y0: cellIndex(r.Y / s.cellSize.Y),
		x1: cellIndex(r.Right() / s.cellSize.X),
		y1: cellIndex(r.Bottom() / s.cellSize.Y),
	}
}

func cellIndex(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int(math.Round(v))
}

// clipSpan returns the drawable cell range for an optional clip.
func (s *Screen) clipSpan(clip *graphics.Rect) span {
	full := span{x1: s.cols, y1: s.rows}
	if clip == nil {
		return full
	}
	c := s.toCells(*clip)
	return span{
		x0: max(full.x0, c.x0),
		y0: max(full.y0, c.y0),
		x1: min(full.x1, c.x1),
		y1: min(full.y1, c.y1),
	}
}

func (s *Screen) set(x, y int, clip span, fn func(*Cell)) {
	if !s.inBounds(x, y) || !clip.contains(x, y) {
		return
	}
	fn(&s.cells[y*s.cols+x])
}

// FillRect paints the background of every covered cell. Opaque fills erase
// the characters underneath.
func (s *Screen) FillRect(bounds graphics.Rect, color graphics.Color, clip *graphics.Rect) {
	if color.A() == 0 {
		return
	}
	area, cs := s.toCells(bounds), s.clipSpan(clip)
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			s.set(x, y, cs, func(c *Cell) {
				c.Bg = color
				if color.A() == 0xff {
					c.Rune = ' '
				}
			})
		}
	}
}

// StrokeRect draws box-drawing lines along each side with a non-zero
// thickness.
func (s *Screen) StrokeRect(bounds graphics.Rect, thickness graphics.Thickness, color graphics.Color, clip *graphics.Rect) {
	area, cs := s.toCells(bounds), s.clipSpan(clip)
	if area.empty() || color.A() == 0 {
		return
	}
	left, right := area.x0, area.x1-1
	top, bottom := area.y0, area.y1-1
	put := func(x, y int, r rune) {
		s.set(x, y, cs, func(c *Cell) {
			c.Rune = r
			c.Fg = color
		})
	}
	if thickness.Top > 0 {
		for x := left; x <= right; x++ {
			put(x, top, '─')
		}
	}
	if thickness.Bottom > 0 {
		for x := left; x <= right; x++ {
			put(x, bottom, '─')
		}
	}
	if thickness.Left > 0 {
		for y := top; y <= bottom; y++ {
			put(left, y, '│')
		}
	}
	if thickness.Right > 0 {
		for y := top; y <= bottom; y++ {
			put(right, y, '│')
		}
	}
	if left == right || top == bottom {
		return
	}
	corner := func(x, y int, a, b float64, r rune) {
		if a > 0 && b > 0 {
			put(x, y, r)
		}
	}
	corner(left, top, thickness.Left, thickness.Top, '┌')
	corner(right, top, thickness.Right, thickness.Top, '┐')
	corner(left, bottom, thickness.Left, thickness.Bottom, '└')
	corner(right, bottom, thickness.Right, thickness.Bottom, '┘')
}

// DrawText writes each line starting at the left edge of bounds. Wide runes
// take two cells and zero-width runes are dropped.
func (s *Screen) DrawText(bounds graphics.Rect, lines []string, lineHeight float64, color graphics.Color, clip *graphics.Rect) {
	if color.A() == 0 {
		return
	}
	cs := s.clipSpan(clip)
	x0 := cellIndex(bounds.X / s.cellSize.X)
	for i, line := range lines {
		y := cellIndex((bounds.Y + float64(i)*lineHeight) / s.cellSize.Y)
		x := x0
		for _, r := range line {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			s.set(x, y, cs, func(c *Cell) {
				c.Rune = r
				c.Fg = color
			})
			if w == 2 {
				s.set(x+1, y, cs, func(c *Cell) {
					c.Rune = 0
					c.Fg = color
				})
			}
			x += w
		}
	}
}

// DrawImage shades the covered cells. Terminals have no pixels to scale the
// texture into.
func (s *Screen) DrawImage(bounds graphics.Rect, texture string, color graphics.Color, clip *graphics.Rect) {
	if color.A() == 0 {
		return
	}
	area, cs := s.toCells(bounds), s.clipSpan(clip)
	for y := area.y0; y < area.y1; y++ {
		for x := area.x0; x < area.x1; x++ {
			s.set(x, y, cs, func(c *Cell) {
				c.Rune = '░'
				c.Fg = color
			})
		}
	}
}

// String returns the characters of the screen, one line per row, with
// trailing spaces removed.
func (s *Screen) String() string {
	var b strings.Builder
	for y := 0; y < s.rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var row strings.Builder
		for x := 0; x < s.cols; x++ {
			if r := s.cells[y*s.cols+x].Rune; r != 0 {
				row.WriteRune(r)
			}
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
	}
	return b.String()
}

// Render returns the screen with colors applied through lipgloss. Runs of
// cells that share colors are styled together. Colors degrade to what the
// output terminal supports.
func (s *Screen) Render() string {
	lines := make([]string, s.rows)
	for y := 0; y < s.rows; y++ {
		var row strings.Builder
		var run strings.Builder
		var fg, bg graphics.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			row.WriteString(cellStyle(fg, bg).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < s.cols; x++ {
			c := s.cells[y*s.cols+x]
			if c.Rune == 0 {
				continue
			}
			if run.Len() > 0 && (c.Fg != fg || c.Bg != bg) {
				flush()
			}
			fg, bg = c.Fg, c.Bg
			run.WriteRune(c.Rune)
		}
		flush()
		lines[y] = row.String()
	}
	return strings.Join(lines, "\n")
}

func cellStyle(fg, bg graphics.Color) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbHex(fg)))
	if bg.A() > 0 {
		style = style.Background(lipgloss.Color(rgbHex(bg)))
	}
	return style
}

// rgbHex drops the alpha channel from Color.Hex.
func rgbHex(c graphics.Color) string {
	return c.Hex()[:7]
}

// CellMetrics measures text in terminal cells: every line is one row tall
// and a string is as wide as its display width.
type CellMetrics struct{}

// LineHeight returns 1.
func (CellMetrics) LineHeight() float64 { return 1 }

// Advance returns the display width of s in columns.
func (CellMetrics) Advance(s string) float64 {
	return float64(runewidth.StringWidth(s))
}

var (
	_ graphics.Canvas      = (*Screen)(nil)
	_ graphics.FontMetrics = CellMetrics{}
)
