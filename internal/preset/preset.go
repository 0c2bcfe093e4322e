// Package preset holds the built-in layouts.
//
// Presets are drawn on a 600x600 canvas with 60px cells and position shapes
// by absolute pixel origin. Loading one always yields a grid at that
// geometry, whatever the editor's current cell size.
package preset

import (
	"errors"
	"fmt"
	"sort"

	"shapegrid/internal/grid"
)

const (
	CanvasSize = 600
	CellSize   = 60
)

var ErrUnknownPreset = errors.New("unknown preset")

type Placement struct {
	X, Y     float64
	Kind     grid.ShapeKind
	Color    string
	Rotation int
}

type Preset struct {
	Name       string
	Placements []Placement
}

func at(col, row int, kind grid.ShapeKind, color string, rotation int) Placement {
	return Placement{X: float64(col * CellSize), Y: float64(row * CellSize), Kind: kind, Color: color, Rotation: rotation}
}

var library = map[string]Preset{
	"smiley": {
		Name: "smiley",
		Placements: []Placement{
			at(3, 3, grid.Circle, "#FFFF00", 0),
			at(5, 3, grid.Circle, "#FFFF00", 0),
			at(4, 5, grid.Circle, "#FFFF00", 0),
			at(3, 4, grid.Circle, "#FFFF00", 0),
			at(5, 4, grid.Circle, "#FFFF00", 0),
		},
	},
	"flower": {
		Name: "flower",
		Placements: []Placement{
			at(4, 4, grid.Hexagon, "#FFA500", 0),
			at(4, 3, grid.Pentagon, "#FF69B4", 0),
			at(5, 4, grid.Pentagon, "#FF69B4", 90),
			at(4, 5, grid.Pentagon, "#FF69B4", 180),
			at(3, 4, grid.Pentagon, "#FF69B4", 270),
			at(4, 6, grid.Triangle, "#228B22", 0),
			at(4, 7, grid.Triangle, "#228B22", 0),
		},
	},
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := make([]string, 0, len(library))
	for name := range library {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds the named preset as a grid.
func Load(name string) (grid.Grid, error) {
	p, ok := library[name]
	if !ok {
		return grid.Grid{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p.Build()
}

// Build places every shape of p on an empty grid.
func (p Preset) Build() (grid.Grid, error) {
	g := grid.New(CanvasSize, CanvasSize, CellSize)
	for _, pl := range p.Placements {
		row, col := grid.Locate(pl.X, pl.Y, CellSize, grid.Snap)
		index, ok := g.Index(row, col)
		if !ok {
			return grid.Grid{}, fmt.Errorf("preset %s: %w: (%v,%v)", p.Name, grid.ErrOutOfRange, pl.X, pl.Y)
		}
		var err error
		g, err = g.Place(index, pl.Kind, pl.Color, pl.Rotation)
		if err != nil {
			return grid.Grid{}, fmt.Errorf("preset %s: %w", p.Name, err)
		}
	}
	return g, nil
}
