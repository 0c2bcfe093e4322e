package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegrid/internal/grid"
)

// step returns a grid whose only shape encodes n in its rotation.
func step(t *testing.T, n int) grid.Grid {
	t.Helper()
	g, err := grid.New(600, 600, 60).Place(n%100, grid.Circle, "#0000FF", n)
	require.NoError(t, err)
	return g
}

func TestUndoRedoInverse(t *testing.T) {
	log := New(Options{})
	s := step(t, 1)
	next := step(t, 2)

	log.Record(s)
	current, err := log.Undo(next)
	require.NoError(t, err)
	assert.True(t, current.Equal(s))
	assert.Equal(t, 0, log.UndoLen())
	assert.Equal(t, 1, log.RedoLen())

	current, err = log.Redo(current)
	require.NoError(t, err)
	assert.True(t, current.Equal(next))
	assert.Equal(t, 1, log.UndoLen())
	assert.Equal(t, 0, log.RedoLen())
}

func TestUndoEmpty(t *testing.T) {
	log := New(Options{})
	current := step(t, 3)

	got, err := log.Undo(current)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.True(t, got.Equal(current))
	assert.Equal(t, 0, log.RedoLen())

	got, err = log.Redo(current)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.True(t, got.Equal(current))
	assert.Equal(t, 0, log.UndoLen())
}

func TestClearRedo(t *testing.T) {
	log := New(Options{})
	log.Record(step(t, 1))
	_, err := log.Undo(step(t, 2))
	require.NoError(t, err)
	require.Equal(t, 1, log.RedoLen())

	log.ClearRedo()
	_, err = log.Redo(step(t, 1))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestUndoBound(t *testing.T) {
	log := New(Options{})
	current := step(t, 0)
	for i := 1; i <= 60; i++ {
		log.Record(current)
		current = step(t, i)
	}
	assert.Equal(t, DefaultLimit, log.UndoLen())

	var err error
	for i := 0; i < 50; i++ {
		current, err = log.Undo(current)
		require.NoError(t, err)
	}
	// the first ten snapshots were evicted, so the oldest left is the 11th
	assert.True(t, current.Equal(step(t, 10)))

	_, err = log.Undo(current)
	assert.ErrorIs(t, err, ErrEmpty)
	assert.Equal(t, 50, log.RedoLen())
}

func TestRedoUncappedByDefault(t *testing.T) {
	log := New(Options{Limit: 3})

	current := step(t, 0)
	for i := 1; i <= 5; i++ {
		log.Record(current)
		var err error
		current, err = log.Undo(step(t, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 5, log.RedoLen())

	// redo pushes onto undo, which stays bounded
	for i := 5; i >= 1; i-- {
		var err error
		current, err = log.Redo(current)
		require.NoError(t, err)
		assert.True(t, current.Equal(step(t, i)))
	}
	assert.Equal(t, 3, log.UndoLen())
}

func TestCapRedo(t *testing.T) {
	log := New(Options{Limit: 2, CapRedo: true})
	assert.Equal(t, 2, log.Limit())

	// fill redo past the limit by alternating record and undo
	current := step(t, 0)
	for i := 1; i <= 4; i++ {
		log.Record(current)
		var err error
		current, err = log.Undo(step(t, i))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, log.RedoLen())

	// newest entries survive
	got, err := log.Redo(current)
	require.NoError(t, err)
	assert.True(t, got.Equal(step(t, 4)))
}

func TestUndoRestoresGeometry(t *testing.T) {
	log := New(Options{})
	before := step(t, 5)
	log.Record(before)

	current, err := log.Undo(before.Resize(600.0 / 4))
	require.NoError(t, err)
	assert.Equal(t, 10, current.Rows())
	assert.True(t, current.Equal(before))
}

func TestUndoLeavesCorruptSnapshotInPlace(t *testing.T) {
	log := New(Options{})
	log.undoStack = append(log.undoStack, "garbage")

	current := step(t, 1)
	got, err := log.Undo(current)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmpty)
	assert.True(t, got.Equal(current))
	assert.Equal(t, 1, log.UndoLen())
	assert.Equal(t, 0, log.RedoLen())
}

func TestClear(t *testing.T) {
	log := New(Options{})
	log.Record(step(t, 1))
	log.Record(step(t, 2))
	_, err := log.Undo(step(t, 3))
	require.NoError(t, err)

	log.Clear()
	assert.Equal(t, 0, log.UndoLen())
	assert.Equal(t, 0, log.RedoLen())
}
