package render

import (
	"fmt"
	"os"
	"strings"

	"shapegrid/internal/grid"
)

// EmptyGlyph marks an unoccupied cell in text renderings.
const EmptyGlyph = '·'

// Glyph returns the character used for kind in text renderings.
func Glyph(kind grid.ShapeKind) rune {
	switch kind {
	case grid.Circle:
		return '●'
	case grid.Triangle:
		return '▲'
	case grid.Pentagon:
		return '⬟'
	case grid.Hexagon:
		return '⬢'
	default:
		return EmptyGlyph
	}
}

// Text renders g one line per row, cells separated by a space.
func Text(g grid.Grid) []string {
	lines := make([]string, 0, g.Rows())
	for row := 0; row < g.Rows(); row++ {
		var b strings.Builder
		for col := 0; col < g.Cols(); col++ {
			if col > 0 {
				b.WriteByte(' ')
			}
			index, _ := g.Index(row, col)
			b.WriteRune(Glyph(g.Cell(index).Kind))
		}
		lines = append(lines, b.String())
	}
	return lines
}

// SaveText writes the text rendering of g to filename.
func SaveText(filename string, g grid.Grid) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range Text(g) {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return file.Close()
}
