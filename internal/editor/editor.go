// Package editor wires the grid, its history and persistence together.
//
// A Controller owns the single current grid and the single history log of
// an editing session. Every operation either commits completely or leaves
// the controller exactly as it was and returns an error.
package editor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"shapegrid/internal/codec"
	"shapegrid/internal/grid"
	"shapegrid/internal/history"
	"shapegrid/internal/preset"
	"shapegrid/internal/store"
)

// DefaultSaveKey is the store key of the saved grid.
const DefaultSaveKey = "blockBuilderSave"

var (
	ErrNoSavedState   = errors.New("no saved state")
	ErrNoStore        = errors.New("no store configured")
	ErrInvalidDensity = errors.New("grid density must be at least 1")
	ErrInvalidSize    = errors.New("invalid cell size")
)

type Options struct {
	Width    int
	Height   int
	CellSize float64
	Snap     grid.SnapMode

	History history.Options
	// SnapshotPreset records history before a preset replaces the grid.
	SnapshotPreset bool
	// SnapshotResize records history before a resize.
	SnapshotResize bool

	Store   store.Store
	SaveKey string

	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Controller is not safe for concurrent use.
type Controller struct {
	current        grid.Grid
	log            *history.Log
	snap           grid.SnapMode
	store          store.Store
	saveKey        string
	snapshotPreset bool
	snapshotResize bool
	logger         *slog.Logger
	subscribers    []func(grid.Grid)
}

// New builds a controller with an empty grid. It fails with ErrInvalidSize
// when the geometry could not be saved and loaded back.
func New(opts Options) (*Controller, error) {
	if err := codec.CheckGeometry(opts.Width, opts.Height, opts.CellSize); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSize, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	key := opts.SaveKey
	if key == "" {
		key = DefaultSaveKey
	}
	return &Controller{
		current:        grid.New(opts.Width, opts.Height, opts.CellSize),
		log:            history.New(opts.History),
		snap:           opts.Snap,
		store:          opts.Store,
		saveKey:        key,
		snapshotPreset: opts.SnapshotPreset,
		snapshotResize: opts.SnapshotResize,
		logger:         logger,
	}, nil
}

// Current returns the current grid.
func (c *Controller) Current() grid.Grid { return c.current }

func (c *Controller) Snap() grid.SnapMode { return c.snap }

func (c *Controller) SetSnap(mode grid.SnapMode) { c.snap = mode }

// HistoryLen returns the depth of the undo and redo stacks.
func (c *Controller) HistoryLen() (undo, redo int) {
	return c.log.UndoLen(), c.log.RedoLen()
}

// Subscribe registers fn to receive the grid after every change.
func (c *Controller) Subscribe(fn func(grid.Grid)) {
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) commit(g grid.Grid) {
	c.current = g
	for _, fn := range c.subscribers {
		fn(g)
	}
}

// Drop places a shape at the cell under the pointer and returns the cell
// index.
func (c *Controller) Drop(px, py float64, kind grid.ShapeKind, color string, rotation int) (int, error) {
	row, col := grid.Locate(px, py, c.current.CellSize(), c.snap)
	index, ok := c.current.Index(row, col)
	if !ok {
		return -1, c.fail("drop", fmt.Errorf("%w: row %d col %d", grid.ErrOutOfRange, row, col))
	}
	next, err := c.current.Place(index, kind, color, rotation)
	if err != nil {
		return -1, c.fail("drop", err)
	}
	c.log.Record(c.current)
	c.log.ClearRedo()
	c.commit(next)
	c.logger.Debug("shape dropped", "index", index, "kind", kind.String(), "color", color, "rotation", rotation)
	return index, nil
}

// Reset clears every cell. It is undoable.
func (c *Controller) Reset() {
	c.log.Record(c.current)
	c.log.ClearRedo()
	c.commit(c.current.ClearAll())
	c.logger.Debug("grid reset")
}

func (c *Controller) Undo() error {
	g, err := c.log.Undo(c.current)
	if err != nil {
		return c.fail("undo", err)
	}
	c.commit(g)
	return nil
}

func (c *Controller) Redo() error {
	g, err := c.log.Redo(c.current)
	if err != nil {
		return c.fail("redo", err)
	}
	c.commit(g)
	return nil
}

// Save writes the current grid to the store.
func (c *Controller) Save() error {
	if c.store == nil {
		return c.fail("save", ErrNoStore)
	}
	if err := c.store.Set(c.saveKey, codec.Encode(c.current)); err != nil {
		return c.fail("save", err)
	}
	c.logger.Info("grid saved", "key", c.saveKey, "shapes", c.current.Count())
	return nil
}

// Load replaces the current grid with the saved one. History is kept.
func (c *Controller) Load() error {
	if c.store == nil {
		return c.fail("load", ErrNoStore)
	}
	text, ok, err := c.store.Get(c.saveKey)
	if err != nil {
		return c.fail("load", err)
	}
	if !ok {
		return c.fail("load", ErrNoSavedState)
	}
	g, err := codec.Decode(text)
	if err != nil {
		return c.fail("load", err)
	}
	c.commit(g)
	c.logger.Info("grid loaded", "key", c.saveKey, "shapes", g.Count())
	return nil
}

// Share returns the current grid as a URL-safe blob.
func (c *Controller) Share() string {
	return codec.EncodeShare(c.current)
}

// LoadShared replaces the current grid with one received as a share blob.
func (c *Controller) LoadShared(blob string) error {
	g, err := codec.DecodeShare(blob)
	if err != nil {
		return c.fail("load shared", err)
	}
	c.commit(g)
	c.logger.Info("shared grid loaded", "shapes", g.Count())
	return nil
}

// LoadPreset replaces the current grid with the named preset.
func (c *Controller) LoadPreset(name string) error {
	g, err := preset.Load(name)
	if err != nil {
		return c.fail("load preset", err)
	}
	if c.snapshotPreset {
		c.log.Record(c.current)
	}
	c.log.ClearRedo()
	c.commit(g)
	c.logger.Info("preset loaded", "preset", name)
	return nil
}

// Resize rebuilds the grid at a new cell size, dropping all shapes.
func (c *Controller) Resize(cellSize float64) error {
	if err := codec.CheckGeometry(c.current.Width(), c.current.Height(), cellSize); err != nil {
		return c.fail("resize", fmt.Errorf("%w: %w", ErrInvalidSize, err))
	}
	if c.snapshotResize {
		c.log.Record(c.current)
		c.log.ClearRedo()
	}
	c.commit(c.current.Resize(cellSize))
	c.logger.Debug("grid resized", "cell_size", cellSize, "rows", c.current.Rows(), "cols", c.current.Cols())
	return nil
}

// SetDensity resizes the grid to n cells across the canvas width.
func (c *Controller) SetDensity(n int) error {
	if n < 1 {
		return c.fail("set density", fmt.Errorf("%w: %d", ErrInvalidDensity, n))
	}
	return c.Resize(float64(c.current.Width()) / float64(n))
}

// fail logs err at a level matching how much the user should care and
// returns it unchanged.
func (c *Controller) fail(op string, err error) error {
	switch {
	case errors.Is(err, history.ErrEmpty), errors.Is(err, grid.ErrOutOfRange):
		c.logger.Debug("ignored", "op", op, "error", err)
	case errors.Is(err, codec.ErrMalformedInput), errors.Is(err, preset.ErrUnknownPreset):
		c.logger.Warn("rejected input", "op", op, "error", err)
	case errors.Is(err, ErrNoSavedState):
		c.logger.Info("nothing to load", "op", op, "key", c.saveKey)
	default:
		c.logger.Error("operation failed", "op", op, "error", err)
	}
	return err
}
