package grid

import "fmt"

// ShapeKind is the occupant of a cell. None marks an empty cell.
type ShapeKind int

const (
	None ShapeKind = iota
	Circle
	Triangle
	Pentagon
	Hexagon
)

// Kinds lists every placeable shape in palette order.
var Kinds = []ShapeKind{Circle, Triangle, Pentagon, Hexagon}

func (k ShapeKind) String() string {
	switch k {
	case None:
		return ""
	case Circle:
		return "circle"
	case Triangle:
		return "triangle"
	case Pentagon:
		return "pentagon"
	case Hexagon:
		return "hexagon"
	default:
		return fmt.Sprintf("shape(%d)", int(k))
	}
}

// Valid reports whether k is a placeable shape.
func (k ShapeKind) Valid() bool {
	return k >= Circle && k <= Hexagon
}

// ParseShapeKind maps a shape name back to its kind.
func ParseShapeKind(name string) (ShapeKind, error) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidShape, name)
}
