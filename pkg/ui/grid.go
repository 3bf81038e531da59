package ui

import (
	"fmt"
	"math"

	"github.com/go-drift/scenegraph/pkg/graphics"
)

// SizeMode selects how a grid track is sized.
type SizeMode int

const (
	// SizeStrict uses the track's fixed Size.
	SizeStrict SizeMode = iota
	// SizeAuto sizes the track to the largest child in it.
	SizeAuto
	// SizeStretch shares the space left by strict and auto tracks equally.
	SizeStretch
)

func (m SizeMode) String() string {
	switch m {
	case SizeStrict:
		return "strict"
	case SizeAuto:
		return "auto"
	case SizeStretch:
		return "stretch"
	default:
		return fmt.Sprintf("SizeMode(%d)", int(m))
	}
}

// ParseSizeMode parses a track size mode name.
func ParseSizeMode(s string) (SizeMode, error) {
	switch s {
	case "strict":
		return SizeStrict, nil
	case "auto":
		return SizeAuto, nil
	case "stretch", "":
		return SizeStretch, nil
	default:
		return SizeStretch, fmt.Errorf("unknown size mode %q", s)
	}
}

// Track defines one grid row or column.
type Track struct {
	Mode SizeMode
	Size float64
}

// Strict returns a fixed-size track.
func Strict(size float64) Track { return Track{Mode: SizeStrict, Size: math.Max(0, size)} }

// Auto returns a track sized to its content.
func Auto() Track { return Track{Mode: SizeAuto} }

// StretchTrack returns a track that shares the leftover space.
func StretchTrack() Track { return Track{Mode: SizeStretch} }

// Grid lays children out in rows and columns. A child occupies the cell at
// its Row and Column; indices past the last track fall into the last track.
// A grid without definitions behaves as one stretch row and one stretch
// column.
type Grid struct {
	kindBase
	rows    []Track
	columns []Track

	rowSizes    []float64
	columnSizes []float64
}

// NewGrid creates a Grid with the given tracks.
func NewGrid(rows, columns []Track) *Grid {
	return &Grid{rows: rows, columns: columns}
}

// Rows returns the row definitions.
func (g *Grid) Rows() []Track { return g.rows }

// Columns returns the column definitions.
func (g *Grid) Columns() []Track { return g.columns }

// SetRows replaces the row definitions.
func (g *Grid) SetRows(rows []Track) {
	g.rows = rows
	g.invalidateMeasure()
}

// SetColumns replaces the column definitions.
func (g *Grid) SetColumns(columns []Track) {
	g.columns = columns
	g.invalidateMeasure()
}

// RowSizes returns the row heights computed by the last arrange.
func (g *Grid) RowSizes() []float64 { return g.rowSizes }

// ColumnSizes returns the column widths computed by the last arrange.
func (g *Grid) ColumnSizes() []float64 { return g.columnSizes }

func effectiveTracks(tracks []Track) []Track {
	if len(tracks) == 0 {
		return []Track{StretchTrack()}
	}
	return tracks
}

type gridCell struct {
	child  Handle
	row    int
	column int
}

func (g *Grid) cells(ui *UserInterface, self Handle, rows, columns int) []gridCell {
	children := ui.Children(self)
	cells := make([]gridCell, 0, len(children))
	for _, c := range children {
		n, ok := ui.nodes.Borrow(c)
		if !ok {
			continue
		}
		cells = append(cells, gridCell{
			child:  c,
			row:    min(n.row, rows-1),
			column: min(n.column, columns-1),
		})
	}
	return cells
}

func (g *Grid) measureOverride(ui *UserInterface, self Handle, available graphics.Vector) graphics.Vector {
	rows := effectiveTracks(g.rows)
	columns := effectiveTracks(g.columns)
	cells := g.cells(ui, self, len(rows), len(columns))

	colSizes := initialSizes(columns)
	rowSizes := initialSizes(rows)

	// Content-sized tracks first. A stretch track behaves as auto when the
	// grid is unbounded along its axis.
	colAuto := contentSized(columns, available.X)
	rowAuto := contentSized(rows, available.Y)
	offers := make([]graphics.Vector, len(cells))
	measured := make([]bool, len(cells))
	for i, cell := range cells {
		if !colAuto[cell.column] && !rowAuto[cell.row] {
			continue
		}
		offer := graphics.Vector{
			X: offerFor(columns[cell.column], colAuto[cell.column], available.X),
			Y: offerFor(rows[cell.row], rowAuto[cell.row], available.Y),
		}
		offers[i], measured[i] = offer, true
		desired := ui.Measure(cell.child, offer)
		if colAuto[cell.column] {
			colSizes[cell.column] = math.Max(colSizes[cell.column], desired.X)
		}
		if rowAuto[cell.row] {
			rowSizes[cell.row] = math.Max(rowSizes[cell.row], desired.Y)
		}
	}

	distributeStretch(colSizes, columns, colAuto, available.X)
	distributeStretch(rowSizes, rows, rowAuto, available.Y)

	for i, cell := range cells {
		track := graphics.Vector{X: colSizes[cell.column], Y: rowSizes[cell.row]}
		// A content-sized axis was already offered unbounded space and its
		// track fits the child, so only axes whose offer changed need a
		// second measure.
		if measured[i] &&
			settled(colAuto[cell.column], offers[i].X, track.X) &&
			settled(rowAuto[cell.row], offers[i].Y, track.Y) {
			continue
		}
		ui.Measure(cell.child, track)
	}
	return graphics.Vector{X: sum(colSizes), Y: sum(rowSizes)}
}

func (g *Grid) arrangeOverride(ui *UserInterface, self Handle, final graphics.Vector) graphics.Vector {
	rows := effectiveTracks(g.rows)
	columns := effectiveTracks(g.columns)
	cells := g.cells(ui, self, len(rows), len(columns))

	colSizes := initialSizes(columns)
	rowSizes := initialSizes(rows)
	noAuto := func(n int) []bool { return make([]bool, n) }
	for _, cell := range cells {
		desired, _ := ui.DesiredSize(cell.child)
		if columns[cell.column].Mode == SizeAuto {
			colSizes[cell.column] = math.Max(colSizes[cell.column], desired.X)
		}
		if rows[cell.row].Mode == SizeAuto {
			rowSizes[cell.row] = math.Max(rowSizes[cell.row], desired.Y)
		}
	}
	distributeStretch(colSizes, columns, noAuto(len(columns)), final.X)
	distributeStretch(rowSizes, rows, noAuto(len(rows)), final.Y)

	colOffsets := offsets(colSizes)
	rowOffsets := offsets(rowSizes)
	for _, cell := range cells {
		ui.Arrange(cell.child, graphics.RectFromLTWH(
			colOffsets[cell.column], rowOffsets[cell.row],
			colSizes[cell.column], rowSizes[cell.row]))
	}
	g.columnSizes = colSizes
	g.rowSizes = rowSizes
	return final
}

func initialSizes(tracks []Track) []float64 {
	sizes := make([]float64, len(tracks))
	for i, t := range tracks {
		if t.Mode == SizeStrict {
			sizes[i] = t.Size
		}
	}
	return sizes
}

func contentSized(tracks []Track, available float64) []bool {
	unbounded := math.IsInf(available, 1)
	out := make([]bool, len(tracks))
	for i, t := range tracks {
		out[i] = t.Mode == SizeAuto || (t.Mode == SizeStretch && unbounded)
	}
	return out
}

func offerFor(t Track, contentSized bool, available float64) float64 {
	switch {
	case t.Mode == SizeStrict:
		return t.Size
	case contentSized:
		return math.Inf(1)
	default:
		return available
	}
}

func settled(contentSized bool, offered, track float64) bool {
	return contentSized || offered == track
}

// distributeStretch splits what is left of available after fixed tracks
// equally among stretch tracks that are not content sized.
func distributeStretch(sizes []float64, tracks []Track, contentSized []bool, available float64) {
	if math.IsInf(available, 1) {
		return
	}
	used, stretch := 0.0, 0
	for i, t := range tracks {
		if t.Mode == SizeStretch && !contentSized[i] {
			stretch++
			continue
		}
		used += sizes[i]
	}
	if stretch == 0 {
		return
	}
	share := math.Max(0, available-used) / float64(stretch)
	for i, t := range tracks {
		if t.Mode == SizeStretch && !contentSized[i] {
			sizes[i] = share
		}
	}
}

func offsets(sizes []float64) []float64 {
	out := make([]float64, len(sizes))
	acc := 0.0
	for i, s := range sizes {
		out[i] = acc
		acc += s
	}
	return out
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
