package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shapegrid/internal/codec"
	"shapegrid/internal/config"
	"shapegrid/internal/editor"
	"shapegrid/internal/grid"
	"shapegrid/internal/history"
	"shapegrid/internal/preset"
	"shapegrid/internal/store"
)

func newTestModel(t *testing.T, confirmations bool) model {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Backend = config.BackendMemory
	cfg.Store.SaveDirectory = t.TempDir()
	cfg.Confirmations = confirmations

	opts := cfg.EditorOptions()
	opts.Store = store.NewMemory()
	ctrl, err := editor.New(opts)
	require.NoError(t, err)
	return initialModel(&session{config: cfg, ctrl: ctrl})
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func press(m model, keys ...string) model {
	for _, key := range keys {
		next, _ := m.Update(keyMsg(key))
		m = next.(model)
	}
	return m
}

func TestDropAtCursor(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "l", "l", "j", "enter")

	g := m.ctrl.Current()
	assert.Equal(t, grid.Cell{Kind: grid.Circle, Color: "#0000FF"}, g.Cell(12))
	assert.Equal(t, 1, g.Count())
	assert.True(t, m.board.grid.Equal(g))
}

func TestShapeColorAndRotationSelection(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "2", "r", "r", "c", " ")
	assert.Equal(t, grid.Cell{Kind: grid.Triangle, Color: palette[1], Rotation: 30}, m.ctrl.Current().Cell(0))

	m = press(m, "tab", "R", "l", "enter")
	assert.Equal(t, grid.Cell{Kind: grid.Pentagon, Color: palette[1], Rotation: 15}, m.ctrl.Current().Cell(1))
}

func TestCursorStaysOnGrid(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "k", "h")
	assert.Equal(t, 0, m.cursorRow)
	assert.Equal(t, 0, m.cursorCol)

	for i := 0; i < 8; i++ {
		m = press(m, "J", "L")
	}
	assert.Equal(t, 9, m.cursorRow)
	assert.Equal(t, 9, m.cursorCol)
}

func TestUndoRedoKeys(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter", "l", "enter")
	require.Equal(t, 2, m.ctrl.Current().Count())

	m = press(m, "u", "u")
	assert.Equal(t, 0, m.board.grid.Count())
	undo, redo := m.ctrl.HistoryLen()
	assert.Equal(t, 0, undo)
	assert.Equal(t, 2, redo)

	m = press(m, "u")
	assert.Empty(t, m.errorMessage)

	m = press(m, "U")
	assert.Equal(t, 1, m.board.grid.Count())
}

func TestMouseDrop(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "3")

	next, _ := m.Update(tea.MouseMsg{X: 7, Y: 3, Type: tea.MouseLeft})
	m = next.(model)
	assert.Equal(t, grid.Pentagon, m.ctrl.Current().Cell(32).Kind)
	assert.Equal(t, 3, m.cursorRow)
	assert.Equal(t, 2, m.cursorCol)

	// x=5 is 100px, which free placement rounds to the third column.
	m = press(m, "g")
	next, _ = m.Update(tea.MouseMsg{X: 5, Y: 0, Type: tea.MouseLeft})
	m = next.(model)
	assert.Equal(t, grid.Pentagon, m.ctrl.Current().Cell(2).Kind)
	assert.Equal(t, grid.Free, m.ctrl.Snap())
}

func TestMouseOutsideGridIsIgnored(t *testing.T) {
	m := newTestModel(t, false)
	next, _ := m.Update(tea.MouseMsg{X: 40, Y: 2, Type: tea.MouseLeft})
	m = next.(model)
	assert.Equal(t, 0, m.ctrl.Current().Count())
	assert.Empty(t, m.errorMessage)
}

func TestMouseOnStatusLinesIsIgnored(t *testing.T) {
	m := newTestModel(t, false)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 8})
	m = next.(model)
	require.Equal(t, 5, m.visibleRows())
	assert.Equal(t, 5, strings.Count(m.View(), "\n")-1)

	for _, y := range []int{5, 6, 7} {
		next, _ = m.Update(tea.MouseMsg{X: 1, Y: y, Type: tea.MouseLeft})
		m = next.(model)
	}
	assert.Equal(t, 0, m.ctrl.Current().Count())

	next, _ = m.Update(tea.MouseMsg{X: 1, Y: 4, Type: tea.MouseLeft})
	m = next.(model)
	assert.Equal(t, grid.Circle, m.ctrl.Current().Cell(40).Kind)
}

func TestColorInput(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "C")
	require.Equal(t, ModeColorInput, m.mode)
	assert.Equal(t, "#0000FF", m.inputText)

	for range "#0000FF" {
		m = press(m, "backspace")
	}
	m = press(m, "#f0c", "enter")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "#f0c", m.color)

	m = press(m, "C", "backspace", "backspace", "zz", "enter")
	assert.Equal(t, "#f0c", m.color)
	assert.NotEmpty(t, m.errorMessage)

	m = press(m, "C", "esc")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, "#f0c", m.color)
}

func TestSaveResetLoad(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "o")
	assert.Equal(t, "No saved grid found", m.errorMessage)

	m = press(m, "enter", "s")
	assert.Equal(t, "Grid saved", m.successMessage)

	m = press(m, "x")
	assert.Equal(t, 0, m.board.grid.Count())

	m = press(m, "o")
	assert.Equal(t, "Grid loaded", m.successMessage)
	assert.Equal(t, 1, m.board.grid.Count())
}

func TestConfirmations(t *testing.T) {
	m := newTestModel(t, true)
	m = press(m, "enter", "x")
	require.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmReset, m.confirmAction)

	m = press(m, "n")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 1, m.board.grid.Count())

	m = press(m, "x", "y")
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, 0, m.board.grid.Count())

	// an empty grid needs no confirmation
	m = press(m, "x")
	assert.Equal(t, ModeNormal, m.mode)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, false)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = newTestModel(t, true)
	next, cmd := m.Update(keyMsg("q"))
	assert.Nil(t, cmd)
	m = next.(model)
	assert.Equal(t, ConfirmQuit, m.confirmAction)

	_, cmd = m.Update(keyMsg("y"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPresetKey(t *testing.T) {
	m := newTestModel(t, false)
	names := preset.Names()

	m = press(m, "t")
	want, err := preset.Load(names[0])
	require.NoError(t, err)
	assert.True(t, m.board.grid.Equal(want))
	assert.Equal(t, fmt.Sprintf("Preset %s loaded", names[0]), m.successMessage)

	m = press(m, "t")
	want, err = preset.Load(names[1%len(names)])
	require.NoError(t, err)
	assert.True(t, m.board.grid.Equal(want))
}

func TestDensityKeys(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "+")
	assert.Equal(t, 11, m.board.grid.Cols())

	m = press(m, "-", "-")
	assert.Equal(t, 9, m.board.grid.Cols())
	assert.Equal(t, 9, m.board.grid.Rows())

	m = press(m, "L", "L", "L", "L", "L")
	for i := 0; i < 10; i++ {
		m = press(m, "-")
	}
	assert.Equal(t, minDensity, m.board.grid.Cols())
	assert.Equal(t, 0, m.cursorCol)
}

func TestShareLinkRoundTrip(t *testing.T) {
	src := newTestModel(t, false)
	src = press(src, "4", "r", "j", "enter")
	link, err := src.shareLink()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, src.config.Share.BaseURL))

	dst := newTestModel(t, false)
	dst = press(dst, "P", link, "enter")
	assert.Equal(t, "Shared grid loaded", dst.successMessage)
	assert.True(t, dst.board.grid.Equal(src.board.grid))

	dst = press(dst, "P", "https://shapegrid.app/?data=!!!", "enter")
	assert.Contains(t, dst.errorMessage, "Invalid grid data")
	assert.True(t, dst.board.grid.Equal(src.board.grid))
}

func TestExportKeys(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter", "S", "t", "grid", "enter")
	require.Empty(t, m.errorMessage)
	assert.Contains(t, m.successMessage, "Exported to")

	data, err := os.ReadFile(filepath.Join(m.config.Store.SaveDirectory, "grid.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "● ·"))

	m = press(m, "S", "p", "grid.png", "enter")
	require.Empty(t, m.errorMessage)
	_, err = os.Stat(filepath.Join(m.config.Store.SaveDirectory, "grid.png"))
	assert.NoError(t, err)

	m = press(m, "S", "t", "enter")
	assert.Equal(t, "Please enter a filename", m.errorMessage)
}

func TestExportReportsSaveDirectoryErrors(t *testing.T) {
	m := newTestModel(t, false)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	m.config.Store.SaveDirectory = filepath.Join(blocker, "exports")

	m = press(m, "S", "t", "grid", "enter")
	assert.Contains(t, m.errorMessage, "Error exporting")
	assert.Empty(t, m.successMessage)
}

func TestReport(t *testing.T) {
	tests := map[string]struct {
		err     error
		success string
		wantErr string
		wantOK  string
	}{
		"success":      {success: "done", wantOK: "done"},
		"empty":        {err: history.ErrEmpty},
		"out of range": {err: fmt.Errorf("%w: row 11", grid.ErrOutOfRange)},
		"no save":      {err: editor.ErrNoSavedState, wantErr: "No saved grid found"},
		"malformed":    {err: codec.ErrMalformedInput, wantErr: "Invalid grid data: " + codec.ErrMalformedInput.Error()},
		"preset":       {err: preset.ErrUnknownPreset, wantErr: "Preset unavailable: " + preset.ErrUnknownPreset.Error()},
		"other":        {err: errors.New("disk full"), wantErr: "disk full"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := newTestModel(t, false)
			m.report(tt.err, tt.success)
			assert.Equal(t, tt.wantErr, m.errorMessage)
			assert.Equal(t, tt.wantOK, m.successMessage)
		})
	}
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "hello", cleanClipboardText("{\\rtf1\\ansi hello}"))
	assert.Equal(t, "abc", cleanClipboardText("  abc\x01\n"))
	assert.Equal(t, "", cleanClipboardText(""))
}

func TestView(t *testing.T) {
	m := newTestModel(t, false)
	m = press(m, "enter")
	view := m.View()
	assert.Contains(t, view, "[●]")
	assert.Contains(t, view, "Shape:")
	assert.Contains(t, view, "Mode: NORMAL")
	assert.Contains(t, view, "Undo: 1 Redo: 0")

	m = press(m, "?")
	assert.Contains(t, m.View(), "Shapegrid Help")
	m = press(m, "x")
	assert.False(t, m.help)
	assert.Equal(t, 1, m.board.grid.Count())
}
