// Package grid holds the placement model of the editor: a fixed canvas cut
// into square cells, each holding at most one shape.
//
// Grid is a value type. Every mutating operation returns a new Grid and
// leaves the receiver untouched, so callers that keep history can hold on
// to older values safely.
package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutOfRange   = errors.New("cell index out of range")
	ErrInvalidColor = errors.New("invalid color")
	ErrInvalidShape = errors.New("invalid shape")
	ErrCellCount    = errors.New("cell count does not match geometry")
)

// Cell is one grid position. Its origin is derived from its index and is
// available through Grid.Origin.
type Cell struct {
	Kind     ShapeKind
	Color    string
	Rotation int
}

// Occupied reports whether the cell holds a shape.
func (c Cell) Occupied() bool {
	return c.Kind != None
}

// Placement is an occupied cell with its resolved position, as consumed by
// renderers.
type Placement struct {
	Index int
	Row   int
	Col   int
	X     float64
	Y     float64
	Cell
}

type Grid struct {
	width    int
	height   int
	cellSize float64
	rows     int
	cols     int
	cells    []Cell
}

// New returns an empty grid covering a width x height canvas.
// A non-positive cellSize yields a grid with no cells.
func New(width, height int, cellSize float64) Grid {
	rows, cols := dimensions(width, height, cellSize)
	return Grid{
		width:    width,
		height:   height,
		cellSize: cellSize,
		rows:     rows,
		cols:     cols,
		cells:    make([]Cell, rows*cols),
	}
}

// FromCells rebuilds a grid from cells in index order.
func FromCells(width, height int, cellSize float64, cells []Cell) (Grid, error) {
	g := New(width, height, cellSize)
	if len(cells) != len(g.cells) {
		return Grid{}, fmt.Errorf("%w: got %d cells, want %d", ErrCellCount, len(cells), len(g.cells))
	}
	for i, c := range cells {
		if c.Kind == None {
			continue
		}
		if !c.Kind.Valid() {
			return Grid{}, fmt.Errorf("cell %d: %w: %v", i, ErrInvalidShape, c.Kind)
		}
		if _, err := ParseColor(c.Color); err != nil {
			return Grid{}, fmt.Errorf("cell %d: %w", i, err)
		}
		g.cells[i] = c
	}
	return g, nil
}

func dimensions(width, height int, cellSize float64) (rows, cols int) {
	if cellSize <= 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	// absorb float error for sizes like 600/7
	const eps = 1e-9
	rows = int(math.Floor(float64(height)/cellSize + eps))
	cols = int(math.Floor(float64(width)/cellSize + eps))
	return rows, cols
}

func (g Grid) Width() int        { return g.width }
func (g Grid) Height() int       { return g.height }
func (g Grid) CellSize() float64 { return g.cellSize }
func (g Grid) Rows() int         { return g.rows }
func (g Grid) Cols() int         { return g.cols }
func (g Grid) Len() int          { return len(g.cells) }

// Index converts a row and column to a cell index. ok is false when either
// coordinate lies outside the grid.
func (g Grid) Index(row, col int) (index int, ok bool) {
	if row < 0 || col < 0 || row >= g.rows || col >= g.cols {
		return -1, false
	}
	return row*g.cols + col, true
}

// Cell returns the cell at index. Out of range indexes return an empty cell.
func (g Grid) Cell(index int) Cell {
	if index < 0 || index >= len(g.cells) {
		return Cell{}
	}
	return g.cells[index]
}

// Origin returns the top-left pixel of the cell at index.
func (g Grid) Origin(index int) (x, y float64) {
	if g.cols == 0 {
		return 0, 0
	}
	row, col := index/g.cols, index%g.cols
	return float64(col) * g.cellSize, float64(row) * g.cellSize
}

// Place returns a copy of g with the cell at index holding the given shape.
func (g Grid) Place(index int, kind ShapeKind, color string, rotation int) (Grid, error) {
	if index < 0 || index >= len(g.cells) {
		return g, fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, index, len(g.cells))
	}
	if !kind.Valid() {
		return g, fmt.Errorf("%w: %v", ErrInvalidShape, kind)
	}
	if _, err := ParseColor(color); err != nil {
		return g, err
	}
	next := g.clone()
	next.cells[index] = Cell{Kind: kind, Color: color, Rotation: rotation}
	return next, nil
}

// ClearAll empties every cell and keeps the geometry.
func (g Grid) ClearAll() Grid {
	next := g
	next.cells = make([]Cell, len(g.cells))
	return next
}

// Resize rebuilds the grid for a new cell size. Placed shapes are dropped.
func (g Grid) Resize(cellSize float64) Grid {
	return New(g.width, g.height, cellSize)
}

// Occupied lists the placed shapes in index order.
func (g Grid) Occupied() []Placement {
	var out []Placement
	for i, c := range g.cells {
		if !c.Occupied() {
			continue
		}
		x, y := g.Origin(i)
		out = append(out, Placement{
			Index: i,
			Row:   i / g.cols,
			Col:   i % g.cols,
			X:     x,
			Y:     y,
			Cell:  c,
		})
	}
	return out
}

// Count returns the number of occupied cells.
func (g Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c.Occupied() {
			n++
		}
	}
	return n
}

// Cells returns a copy of the cells in index order.
func (g Grid) Cells() []Cell {
	out := make([]Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// Equal reports whether both grids share geometry and cell contents.
func (g Grid) Equal(other Grid) bool {
	if g.width != other.width || g.height != other.height ||
		g.cellSize != other.cellSize || len(g.cells) != len(other.cells) {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g Grid) clone() Grid {
	next := g
	next.cells = g.Cells()
	return next
}
