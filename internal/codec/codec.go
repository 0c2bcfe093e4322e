// Package codec serializes grids to a versioned text format.
//
// Version 1 layout, one record per line:
//
//	SHAPEGRID 1
//	CANVAS:<width>,<height>
//	CELLSIZE:<cell size>
//	CELLS:<rows*cols>
//	<cell 0>
//	...
//
// A cell line is "-" for an empty cell, otherwise "<kind>,<color>,<rotation>".
// Cell origins are not stored; they follow from the index and the cell size.
package codec

import (
	"bufio"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"shapegrid/internal/grid"
)

const (
	magic   = "SHAPEGRID"
	Version = 1

	emptyCell = "-"

	// MaxCells bounds the geometry the codec accepts.
	MaxCells = 1 << 20
)

var (
	ErrMalformedInput = errors.New("malformed grid data")
	ErrGeometry       = errors.New("unsupported grid geometry")
)

// CheckGeometry reports whether a grid with this canvas and cell size can be
// encoded and decoded again. It holds for every grid Decode returns.
func CheckGeometry(width, height int, cellSize float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas %dx%d", ErrGeometry, width, height)
	}
	if !(cellSize > 0) || math.IsInf(cellSize, 1) {
		return fmt.Errorf("%w: cell size %v", ErrGeometry, cellSize)
	}
	if float64(width)/cellSize*float64(height)/cellSize > MaxCells {
		return fmt.Errorf("%w: %dx%d at cell size %v exceeds %d cells", ErrGeometry, width, height, cellSize, MaxCells)
	}
	return nil
}

// Encode renders g in the current format version.
func Encode(g grid.Grid) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", magic, Version)
	fmt.Fprintf(&b, "CANVAS:%d,%d\n", g.Width(), g.Height())
	fmt.Fprintf(&b, "CELLSIZE:%s\n", strconv.FormatFloat(g.CellSize(), 'g', -1, 64))
	fmt.Fprintf(&b, "CELLS:%d\n", g.Len())
	for i := 0; i < g.Len(); i++ {
		c := g.Cell(i)
		if !c.Occupied() {
			b.WriteString(emptyCell)
			b.WriteByte('\n')
			continue
		}
		fmt.Fprintf(&b, "%s,%s,%d\n", c.Kind, c.Color, c.Rotation)
	}
	return b.String()
}

// Decode parses text produced by Encode. Any deviation from the format
// yields an error wrapping ErrMalformedInput.
func Decode(text string) (grid.Grid, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	line := 0
	next := func(what string) (string, error) {
		if !scanner.Scan() {
			return "", malformed("missing %s", what)
		}
		line++
		return scanner.Text(), nil
	}

	header, err := next("header")
	if err != nil {
		return grid.Grid{}, err
	}
	version, ok := strings.CutPrefix(header, magic+" ")
	if !ok {
		return grid.Grid{}, malformed("invalid header %q", header)
	}
	if v, err := strconv.Atoi(version); err != nil || v != Version {
		return grid.Grid{}, malformed("unsupported version %q", version)
	}

	canvas, err := field(next, "CANVAS")
	if err != nil {
		return grid.Grid{}, err
	}
	w, h, ok := strings.Cut(canvas, ",")
	if !ok {
		return grid.Grid{}, malformed("invalid canvas %q", canvas)
	}
	width, errW := strconv.Atoi(w)
	height, errH := strconv.Atoi(h)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		return grid.Grid{}, malformed("invalid canvas %q", canvas)
	}

	size, err := field(next, "CELLSIZE")
	if err != nil {
		return grid.Grid{}, err
	}
	cellSize, err := strconv.ParseFloat(size, 64)
	if err != nil {
		return grid.Grid{}, malformed("invalid cell size %q", size)
	}
	if err := CheckGeometry(width, height, cellSize); err != nil {
		return grid.Grid{}, malformed("%v", err)
	}

	count, err := field(next, "CELLS")
	if err != nil {
		return grid.Grid{}, err
	}
	n, err := strconv.Atoi(count)
	if err != nil || n < 0 {
		return grid.Grid{}, malformed("invalid cell count %q", count)
	}
	if want := grid.New(width, height, cellSize).Len(); n != want {
		return grid.Grid{}, malformed("cell count %d does not match %dx%d canvas at cell size %s", n, width, height, size)
	}

	cells := make([]grid.Cell, n)
	for i := range cells {
		raw, err := next(fmt.Sprintf("cell %d", i))
		if err != nil {
			return grid.Grid{}, err
		}
		c, err := decodeCell(raw)
		if err != nil {
			return grid.Grid{}, malformed("line %d: %v", line, err)
		}
		cells[i] = c
	}
	for scanner.Scan() {
		line++
		if strings.TrimSpace(scanner.Text()) != "" {
			return grid.Grid{}, malformed("line %d: unexpected trailing data", line)
		}
	}
	if err := scanner.Err(); err != nil {
		return grid.Grid{}, malformed("%v", err)
	}

	g, err := grid.FromCells(width, height, cellSize, cells)
	if err != nil {
		return grid.Grid{}, malformed("%v", err)
	}
	return g, nil
}

func field(next func(string) (string, error), name string) (string, error) {
	raw, err := next(name)
	if err != nil {
		return "", err
	}
	value, ok := strings.CutPrefix(raw, name+":")
	if !ok {
		return "", malformed("expected %s, got %q", name, raw)
	}
	return value, nil
}

func decodeCell(raw string) (grid.Cell, error) {
	if raw == emptyCell {
		return grid.Cell{}, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return grid.Cell{}, fmt.Errorf("invalid cell %q", raw)
	}
	kind, err := grid.ParseShapeKind(parts[0])
	if err != nil {
		return grid.Cell{}, err
	}
	if _, err := grid.ParseColor(parts[1]); err != nil {
		return grid.Cell{}, err
	}
	rotation, err := strconv.Atoi(parts[2])
	if err != nil {
		return grid.Cell{}, fmt.Errorf("invalid rotation %q", parts[2])
	}
	return grid.Cell{Kind: kind, Color: parts[1], Rotation: rotation}, nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}

// EncodeShare returns a URL-safe form of Encode(g).
func EncodeShare(g grid.Grid) string {
	return base64.RawURLEncoding.EncodeToString([]byte(Encode(g)))
}

// DecodeShare reverses EncodeShare.
func DecodeShare(blob string) (grid.Grid, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(blob), "="))
	if err != nil {
		return grid.Grid{}, malformed("share data: %v", err)
	}
	return Decode(string(raw))
}
