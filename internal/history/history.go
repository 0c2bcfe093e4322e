// Package history keeps the undo and redo stacks of serialized grid
// snapshots.
//
// The undo stack is bounded: once it holds Limit entries, recording another
// snapshot evicts the oldest one. The redo stack is unbounded unless
// CapRedo is set.
package history

import (
	"errors"

	"shapegrid/internal/codec"
	"shapegrid/internal/grid"
)

// DefaultLimit is the number of undo steps kept.
const DefaultLimit = 50

var ErrEmpty = errors.New("nothing to undo or redo")

type Options struct {
	// Limit caps the undo stack. Zero means DefaultLimit.
	Limit int
	// CapRedo applies Limit to the redo stack as well.
	CapRedo bool
}

// Log is not safe for concurrent use.
type Log struct {
	undoStack []string
	redoStack []string
	limit     int
	capRedo   bool
}

func New(opts Options) *Log {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{
		undoStack: []string{},
		redoStack: []string{},
		limit:     limit,
		capRedo:   opts.CapRedo,
	}
}

// Record pushes a snapshot of g onto the undo stack. It is called with the
// state as it was before a pending change.
func (l *Log) Record(g grid.Grid) {
	l.undoStack = push(l.undoStack, codec.Encode(g), l.limit)
}

// Undo swaps current for the newest undo snapshot. current is kept on the
// redo stack.
func (l *Log) Undo(current grid.Grid) (grid.Grid, error) {
	redoLimit := 0
	if l.capRedo {
		redoLimit = l.limit
	}
	return exchange(&l.undoStack, &l.redoStack, current, redoLimit)
}

// Redo swaps current for the newest redo snapshot. current is kept on the
// undo stack.
func (l *Log) Redo(current grid.Grid) (grid.Grid, error) {
	return exchange(&l.redoStack, &l.undoStack, current, l.limit)
}

// ClearRedo drops the redo branch. Called on every new user action.
func (l *Log) ClearRedo() {
	l.redoStack = l.redoStack[:0]
}

// Clear drops both stacks.
func (l *Log) Clear() {
	l.undoStack = l.undoStack[:0]
	l.redoStack = l.redoStack[:0]
}

func (l *Log) UndoLen() int { return len(l.undoStack) }
func (l *Log) RedoLen() int { return len(l.redoStack) }
func (l *Log) Limit() int   { return l.limit }

// exchange pops from src and pushes current onto dst. Nothing changes if
// src is empty or its top entry cannot be decoded.
func exchange(src, dst *[]string, current grid.Grid, dstLimit int) (grid.Grid, error) {
	if len(*src) == 0 {
		return current, ErrEmpty
	}
	last := len(*src) - 1
	restored, err := codec.Decode((*src)[last])
	if err != nil {
		return current, err
	}
	*src = (*src)[:last]
	*dst = push(*dst, codec.Encode(current), dstLimit)
	return restored, nil
}

// push appends entry, evicting from the front past limit. limit <= 0 means
// unbounded.
func push(stack []string, entry string, limit int) []string {
	stack = append(stack, entry)
	if limit > 0 && len(stack) > limit {
		stack = append(stack[:0], stack[len(stack)-limit:]...)
	}
	return stack
}
