package main

import (
	"shapegrid/internal/config"
	"shapegrid/internal/editor"
	"shapegrid/internal/grid"
)

type model struct {
	width          int
	height         int
	cursorRow      int
	cursorCol      int
	mode           Mode
	help           bool
	helpScroll     int
	ctrl           *editor.Controller
	config         *config.Config
	board          *board
	shapeIndex     int // into grid.Kinds
	color          string
	rotation       int
	presetIndex    int
	inputText      string
	inputCursorPos int
	filename       string
	fileOp         FileOperation
	confirmAction  ConfirmAction
	pendingPreset  string
	pendingDensity int
	errorMessage   string
	successMessage string
}

// board is the on-screen copy of the grid. The controller pushes every new
// grid into it, so all copies of the model share one pointer.
type board struct {
	grid grid.Grid
}

func (m *model) selectedShape() grid.ShapeKind {
	return grid.Kinds[m.shapeIndex]
}
