// Package render draws grids for people: PNG images through gg and plain
// text for terminals.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"shapegrid/internal/grid"
)

const gridLineColor = "#FFA500"

type Options struct {
	// GridLines strokes every cell outline.
	GridLines bool
	// Label is drawn in the top-left corner when set.
	Label string
	// Background fills the canvas first. Defaults to white.
	Background color.Color
}

// painter draws one shape kind centered on the origin, in a cell of the
// given size.
type painter interface {
	paint(dc *gg.Context, cellSize float64)
}

type circle struct{}

func (circle) paint(dc *gg.Context, cellSize float64) {
	dc.DrawCircle(0, 0, cellSize/2)
}

type triangle struct{}

func (triangle) paint(dc *gg.Context, cellSize float64) {
	size := cellSize / 2
	height := size * math.Sqrt(3) / 2
	dc.MoveTo(0, -height/2)
	dc.LineTo(-size/2, height/2)
	dc.LineTo(size/2, height/2)
	dc.ClosePath()
}

// polygon is a regular polygon whose first vertex sits at phase radians.
type polygon struct {
	sides int
	phase float64
}

func (p polygon) paint(dc *gg.Context, cellSize float64) {
	radius := cellSize / 2
	step := 2 * math.Pi / float64(p.sides)
	for i := 0; i < p.sides; i++ {
		a := step*float64(i) + p.phase
		x, y := radius*math.Cos(a), radius*math.Sin(a)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}

var painters = map[grid.ShapeKind]painter{
	grid.Circle:   circle{},
	grid.Triangle: triangle{},
	grid.Pentagon: polygon{sides: 5, phase: -math.Pi / 2},
	grid.Hexagon:  polygon{sides: 6},
}

// Draw renders g onto a canvas-sized image.
func Draw(g grid.Grid, opts Options) (image.Image, error) {
	if g.Width() <= 0 || g.Height() <= 0 {
		return nil, fmt.Errorf("nothing to render: canvas is %dx%d", g.Width(), g.Height())
	}
	dc := gg.NewContext(g.Width(), g.Height())
	if opts.Background != nil {
		dc.SetColor(opts.Background)
	} else {
		dc.SetColor(color.White)
	}
	dc.Clear()

	if opts.GridLines {
		dc.SetHexColor(gridLineColor)
		dc.SetLineWidth(1)
		size := g.CellSize()
		for row := 0; row < g.Rows(); row++ {
			for col := 0; col < g.Cols(); col++ {
				dc.DrawRectangle(float64(col)*size, float64(row)*size, size, size)
			}
		}
		dc.Stroke()
	}

	for _, p := range g.Occupied() {
		if err := drawShape(dc, g.CellSize(), p); err != nil {
			return nil, err
		}
	}

	if opts.Label != "" {
		if err := drawLabel(dc, opts.Label); err != nil {
			return nil, err
		}
	}
	return dc.Image(), nil
}

func drawShape(dc *gg.Context, cellSize float64, p grid.Placement) error {
	pt, ok := painters[p.Kind]
	if !ok {
		return fmt.Errorf("no painter for %v", p.Kind)
	}
	c, err := grid.ParseColor(p.Color)
	if err != nil {
		return err
	}
	dc.Push()
	defer dc.Pop()
	dc.Translate(p.X+cellSize/2, p.Y+cellSize/2)
	dc.Rotate(gg.Radians(float64(p.Rotation)))
	dc.SetColor(c)
	pt.paint(dc, cellSize)
	dc.Fill()
	return nil
}

func drawLabel(dc *gg.Context, label string) error {
	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %v", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(label, 4, 4, 0, 1)
	return nil
}

// WritePNG encodes the rendering of g as PNG.
func WritePNG(w io.Writer, g grid.Grid, opts Options) error {
	img, err := Draw(g, opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// SavePNG writes the rendering of g to filename.
func SavePNG(filename string, g grid.Grid, opts Options) error {
	img, err := Draw(g, opts)
	if err != nil {
		return err
	}
	return gg.SavePNG(filename, img)
}
