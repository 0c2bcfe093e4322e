package main

func (m *model) handleNavigation(key string, speed int) {
	switch key {
	case "h", "left", "H", "shift+left":
		m.cursorCol -= speed
	case "l", "right", "L", "shift+right":
		m.cursorCol += speed
	case "k", "up", "K", "shift+up":
		m.cursorRow -= speed
	case "j", "down", "J", "shift+down":
		m.cursorRow += speed
	}
	m.ensureCursorInBounds()
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	g := m.board.grid
	if m.cursorCol >= g.Cols() {
		m.cursorCol = g.Cols() - 1
	}
	if m.cursorRow >= g.Rows() {
		m.cursorRow = g.Rows() - 1
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
}

// cursorPixel returns the canvas pixel at the cursor cell's origin.
func (m *model) cursorPixel() (float64, float64) {
	size := m.board.grid.CellSize()
	return float64(m.cursorCol) * size, float64(m.cursorRow) * size
}

// mousePixel maps a terminal position to canvas pixels. Each terminal
// column covers a third of a cell, so free placement can round to the
// neighbouring cell.
func (m *model) mousePixel(x, y int) (float64, float64) {
	size := m.board.grid.CellSize()
	return float64(x) * size / cellWidth, float64(y) * size
}
