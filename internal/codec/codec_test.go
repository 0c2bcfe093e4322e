package codec

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegrid/internal/grid"
)

func sampleGrid(t *testing.T) grid.Grid {
	t.Helper()
	g := grid.New(600, 600, 60)
	var err error
	g, err = g.Place(32, grid.Circle, "#0000FF", 0)
	require.NoError(t, err)
	g, err = g.Place(0, grid.Triangle, "#f0c", -45)
	require.NoError(t, err)
	g, err = g.Place(99, grid.Hexagon, "#FFA500", 400)
	require.NoError(t, err)
	return g
}

func TestRoundTrip(t *testing.T) {
	grids := map[string]grid.Grid{
		"empty":      grid.New(600, 600, 60),
		"sample":     sampleGrid(t),
		"fractional": grid.New(600, 600, 600.0/7),
		"wide":       grid.New(800, 300, 37.5),
	}
	g, err := grids["fractional"].Place(48, grid.Pentagon, "#123", 359)
	require.NoError(t, err)
	grids["fractional placed"] = g

	for name, g := range grids {
		t.Run(name, func(t *testing.T) {
			decoded, err := Decode(Encode(g))
			require.NoError(t, err)
			assert.True(t, decoded.Equal(g))
			assert.Equal(t, g.Rows(), decoded.Rows())
			assert.Equal(t, g.Cols(), decoded.Cols())
			for i := 0; i < g.Len(); i++ {
				x1, y1 := g.Origin(i)
				x2, y2 := decoded.Origin(i)
				assert.Equal(t, x1, x2)
				assert.Equal(t, y1, y2)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	g, err := grid.New(120, 60, 60).Place(1, grid.Circle, "#FFFF00", 90)
	require.NoError(t, err)

	assert.Equal(t, "SHAPEGRID 1\nCANVAS:120,60\nCELLSIZE:60\nCELLS:2\n-\ncircle,#FFFF00,90\n", Encode(g))
}

func TestDecodeWithoutTrailingNewline(t *testing.T) {
	g, err := Decode("SHAPEGRID 1\nCANVAS:120,60\nCELLSIZE:60\nCELLS:2\n-\n-")
	require.NoError(t, err)
	assert.Equal(t, 2, g.Len())
}

func TestDecodeMalformed(t *testing.T) {
	valid := Encode(grid.New(120, 60, 60))
	tests := map[string]string{
		"empty":            "",
		"json":             `{"blocks":[]}`,
		"bad magic":        strings.Replace(valid, "SHAPEGRID", "FLOWCHART", 1),
		"future version":   strings.Replace(valid, "SHAPEGRID 1", "SHAPEGRID 2", 1),
		"bad canvas":       strings.Replace(valid, "CANVAS:120,60", "CANVAS:120", 1),
		"zero canvas":      strings.Replace(valid, "CANVAS:120,60", "CANVAS:0,60", 1),
		"zero cell size":   strings.Replace(valid, "CELLSIZE:60", "CELLSIZE:0", 1),
		"nan cell size":    strings.Replace(valid, "CELLSIZE:60", "CELLSIZE:NaN", 1),
		"huge grid":        strings.Replace(valid, "CELLSIZE:60", "CELLSIZE:0.001", 1),
		"inf cell size":    strings.Replace(valid, "CELLSIZE:60", "CELLSIZE:+Inf", 1),
		"wrong count":      strings.Replace(valid, "CELLS:2", "CELLS:3", 1),
		"missing cell":     strings.TrimSuffix(valid, "-\n"),
		"unknown kind":     strings.Replace(valid, "-\n-\n", "-\nsquare,#FFF,0\n", 1),
		"bad color":        strings.Replace(valid, "-\n-\n", "-\ncircle,yellow,0\n", 1),
		"bad rotation":     strings.Replace(valid, "-\n-\n", "-\ncircle,#FFF,9.5\n", 1),
		"extra field":      strings.Replace(valid, "-\n-\n", "-\ncircle,#FFF,0,1\n", 1),
		"trailing garbage": valid + "circle,#FFF,0\n",
		"out of order":     "SHAPEGRID 1\nCELLSIZE:60\nCANVAS:120,60\nCELLS:2\n-\n-\n",
	}
	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(text)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}

func TestCheckGeometry(t *testing.T) {
	assert.NoError(t, CheckGeometry(600, 600, 60))
	assert.NoError(t, CheckGeometry(1024, 1024, 1))

	assert.ErrorIs(t, CheckGeometry(600, 600, 0.5), ErrGeometry)
	assert.ErrorIs(t, CheckGeometry(600, 600, math.Inf(1)), ErrGeometry)
	assert.ErrorIs(t, CheckGeometry(600, 600, math.NaN()), ErrGeometry)
	assert.ErrorIs(t, CheckGeometry(0, 600, 60), ErrGeometry)
}

func TestShareRoundTrip(t *testing.T) {
	g := sampleGrid(t)

	blob := EncodeShare(g)
	assert.NotContains(t, blob, "+")
	assert.NotContains(t, blob, "/")
	assert.NotContains(t, blob, "=")

	decoded, err := DecodeShare(blob)
	require.NoError(t, err)
	assert.True(t, decoded.Equal(g))
}

func TestDecodeShareMalformed(t *testing.T) {
	_, err := DecodeShare("not base64!")
	assert.ErrorIs(t, err, ErrMalformedInput)

	_, err = DecodeShare("aGVsbG8")
	assert.ErrorIs(t, err, ErrMalformedInput)
}
