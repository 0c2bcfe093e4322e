package grid

import "math"

// SnapMode selects how a pointer coordinate is rounded to a cell.
type SnapMode int

const (
	// Snap picks the cell containing the pointer.
	Snap SnapMode = iota
	// Free picks the cell whose origin is nearest to the pointer.
	Free
)

func (m SnapMode) String() string {
	if m == Free {
		return "free"
	}
	return "snap"
}

// Locate maps a pointer position in canvas pixels to a (row, col) pair.
// The result is not clamped and may fall outside the grid.
func Locate(px, py, cellSize float64, mode SnapMode) (row, col int) {
	if cellSize <= 0 {
		return 0, 0
	}
	x := px / cellSize
	y := py / cellSize
	if mode == Free {
		// halves round up, also for negative coordinates
		return int(math.Floor(y + 0.5)), int(math.Floor(x + 0.5))
	}
	return int(math.Floor(y)), int(math.Floor(x))
}
