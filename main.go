package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shapegrid/internal/grid"
	"shapegrid/internal/preset"
	"shapegrid/internal/render"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	emptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func initialModel(s *session) model {
	b := &board{grid: s.ctrl.Current()}
	s.ctrl.Subscribe(func(g grid.Grid) { b.grid = g })

	return model{
		ctrl:   s.ctrl,
		config: s.config,
		board:  b,
		color:  s.config.DefaultColor,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal || m.help || msg.Type != tea.MouseLeft {
			return m, nil
		}
		if msg.Y < 0 || msg.Y >= m.visibleRows() {
			return m, nil
		}
		m.clearMessages()
		px, py := m.mousePixel(msg.X, msg.Y)
		m.drop(px, py)
		row, col := grid.Locate(px, py, m.board.grid.CellSize(), m.ctrl.Snap())
		m.cursorRow, m.cursorCol = row, col
		m.ensureCursorInBounds()
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.updateHelp(msg.String())
		}
		var cmd tea.Cmd
		switch m.mode {
		case ModeNormal:
			cmd = m.updateNormal(msg)
		case ModeColorInput, ModeLinkInput, ModeFileInput:
			m.updateInput(msg)
		case ModeConfirm:
			cmd = m.updateConfirm(msg.String())
		}
		m.ensureCursorInBounds()
		return m, cmd
	}
	return m, nil
}

func (m *model) updateNormal(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	m.clearMessages()
	switch key {
	case "ctrl+c":
		return tea.Quit
	case "q":
		if !m.config.Confirmations {
			return tea.Quit
		}
		m.confirm(ConfirmQuit)
	case "?":
		m.help = true
		m.helpScroll = 0
	case "h", "left", "H", "shift+left", "l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up", "j", "down", "J", "shift+down":
		m.handleNavigation(key, m.getMoveSpeed(key))
	case "1", "2", "3", "4":
		m.shapeIndex = int(key[0] - '1')
	case "tab":
		m.shapeIndex = (m.shapeIndex + 1) % len(grid.Kinds)
	case "c":
		m.color = palette[(paletteIndex(m.color)+1)%len(palette)]
	case "C":
		m.startInput(ModeColorInput, m.color)
	case "r":
		m.rotation += rotationStep
	case "R":
		m.rotation -= rotationStep
	case "enter", " ":
		px, py := m.cursorPixel()
		m.drop(px, py)
	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()
	case "x":
		if m.config.Confirmations && m.board.grid.Count() > 0 {
			m.confirm(ConfirmReset)
		} else {
			m.reset()
		}
	case "s":
		m.report(m.ctrl.Save(), "Grid saved")
	case "o":
		if m.config.Confirmations && m.board.grid.Count() > 0 {
			m.confirm(ConfirmLoad)
		} else {
			m.report(m.ctrl.Load(), "Grid loaded")
		}
	case "y":
		m.copyShareLink()
	case "p":
		text, err := readClipboardText()
		if err != nil {
			m.setError(fmt.Sprintf("Clipboard unavailable: %s", err.Error()))
			break
		}
		m.openLink(text)
	case "P":
		m.startInput(ModeLinkInput, "")
	case "t":
		names := preset.Names()
		m.pendingPreset = names[m.presetIndex%len(names)]
		m.presetIndex++
		if m.config.Confirmations && m.board.grid.Count() > 0 {
			m.confirm(ConfirmPreset)
		} else {
			m.report(m.ctrl.LoadPreset(m.pendingPreset), fmt.Sprintf("Preset %s loaded", m.pendingPreset))
		}
	case "g":
		if m.ctrl.Snap() == grid.Snap {
			m.ctrl.SetSnap(grid.Free)
		} else {
			m.ctrl.SetSnap(grid.Snap)
		}
	case "+", "=", "-":
		density := m.board.grid.Cols()
		if key == "-" {
			density--
		} else {
			density++
		}
		if density < minDensity || density > maxDensity {
			break
		}
		m.pendingDensity = density
		if m.config.Confirmations && m.board.grid.Count() > 0 {
			m.confirm(ConfirmDensity)
		} else {
			m.report(m.ctrl.SetDensity(density), "")
		}
	case "S":
		m.confirm(ConfirmChooseExportType)
	}
	return nil
}

func (m *model) confirm(action ConfirmAction) {
	m.mode = ModeConfirm
	m.confirmAction = action
}

func (m *model) updateConfirm(key string) tea.Cmd {
	if m.confirmAction == ConfirmChooseExportType {
		switch key {
		case "p", "P":
			m.fileOp = FileOpSavePNG
			m.startInput(ModeFileInput, "")
		case "t", "T":
			m.fileOp = FileOpSaveVisualTXT
			m.startInput(ModeFileInput, "")
		case "esc", "n", "N":
			m.mode = ModeNormal
		}
		return nil
	}

	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmQuit:
			return tea.Quit
		case ConfirmReset:
			m.reset()
		case ConfirmLoad:
			m.report(m.ctrl.Load(), "Grid loaded")
		case ConfirmPreset:
			m.report(m.ctrl.LoadPreset(m.pendingPreset), fmt.Sprintf("Preset %s loaded", m.pendingPreset))
		case ConfirmDensity:
			m.report(m.ctrl.SetDensity(m.pendingDensity), "")
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) startInput(mode Mode, initial string) {
	m.mode = mode
	m.inputText = initial
	m.inputCursorPos = len(initial)
	m.filename = ""
}

func (m *model) updateInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.inputText = ""
		m.errorMessage = ""
		return
	case tea.KeyEnter:
		text := strings.TrimSpace(m.inputText)
		mode := m.mode
		m.mode = ModeNormal
		m.inputText = ""
		switch mode {
		case ModeColorInput:
			if _, err := grid.ParseColor(text); err != nil {
				m.setError(err.Error())
				return
			}
			m.color = text
		case ModeLinkInput:
			m.openLink(text)
		case ModeFileInput:
			m.filename = text
			m.finishExport()
		}
		return
	case tea.KeyBackspace:
		if m.inputCursorPos > 0 {
			m.inputText = m.inputText[:m.inputCursorPos-1] + m.inputText[m.inputCursorPos:]
			m.inputCursorPos--
		}
	case tea.KeyLeft:
		if m.inputCursorPos > 0 {
			m.inputCursorPos--
		}
	case tea.KeyRight:
		if m.inputCursorPos < len(m.inputText) {
			m.inputCursorPos++
		}
	case tea.KeyCtrlV:
		if text, err := readClipboardText(); err == nil {
			m.insertInput(cleanClipboardText(text))
		}
	case tea.KeyRunes, tea.KeySpace:
		m.insertInput(string(msg.Runes))
	}
}

func (m *model) insertInput(s string) {
	m.inputText = m.inputText[:m.inputCursorPos] + s + m.inputText[m.inputCursorPos:]
	m.inputCursorPos += len(s)
}

func (m model) updateHelp(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		maxScroll := len(helpLines) - (m.height - 1)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func paletteIndex(color string) int {
	for i, c := range palette {
		if strings.EqualFold(c, color) {
			return i
		}
	}
	return -1
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	g := m.board.grid
	var result strings.Builder

	for row := 0; row < m.visibleRows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			index, _ := g.Index(row, col)
			result.WriteString(m.renderCell(g.Cell(index), row == m.cursorRow && col == m.cursorCol))
		}
		result.WriteString("\n")
	}

	undo, redo := m.ctrl.HistoryLen()
	snap := "on"
	if m.ctrl.Snap() == grid.Free {
		snap = "off"
	}
	shape := m.selectedShape()
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(m.color)).Render(string(render.Glyph(shape)))
	fmt.Fprintf(&result, "Shape: %s %s | Color: %s | Rotation: %d° | Snap: %s | Grid: %dx%d | Undo: %d Redo: %d\n",
		swatch, shape, m.color, m.rotation, snap, g.Cols(), g.Rows(), undo, redo)

	result.WriteString(m.statusLine())
	return result.String()
}

// visibleRows is the number of grid rows View draws above the two status
// lines.
func (m model) visibleRows() int {
	rows := m.board.grid.Rows()
	if m.height > 3 && rows > m.height-3 {
		rows = m.height - 3
	}
	return rows
}

func (m model) renderCell(c grid.Cell, isCursor bool) string {
	glyph := string(render.Glyph(c.Kind))
	var text string
	if isCursor {
		text = "[" + glyph + "]"
	} else {
		text = " " + glyph + " "
	}
	style := emptyStyle
	if c.Occupied() {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color))
	}
	if isCursor {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeColorInput:
		return fmt.Sprintf("Mode: COLOR | Enter hex color: %s_", m.inputText)
	case ModeLinkInput:
		return fmt.Sprintf("Mode: LINK | Paste share link: %s_", m.inputText)
	case ModeFileInput:
		ext := ".png"
		if m.fileOp == FileOpSaveVisualTXT {
			ext = ".txt"
		}
		status := fmt.Sprintf("Mode: FILE | Export as: %s_%s", m.inputText, ext)
		if m.errorMessage != "" {
			status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmQuit:
			message = "Quit? Unsaved changes will be lost. (y/n)"
		case ConfirmReset:
			message = "Clear the whole grid? (y/n)"
		case ConfirmLoad:
			message = "Replace the grid with the saved one? (y/n)"
		case ConfirmPreset:
			message = fmt.Sprintf("Replace the grid with preset %s? (y/n)", m.pendingPreset)
		case ConfirmDensity:
			message = fmt.Sprintf("Change grid to %d cells across? Shapes will be cleared. (y/n)", m.pendingDensity)
		case ConfirmChooseExportType:
			message = "Export as (p)ng or (t)xt? Esc to cancel"
		}
		return "Mode: CONFIRM | " + message
	}

	status := fmt.Sprintf("Mode: NORMAL | Cursor: (%d,%d)", m.cursorRow, m.cursorCol)
	if m.successMessage != "" {
		status += " | " + okStyle.Render(m.successMessage)
	}
	if m.errorMessage != "" {
		status += " | " + errorStyle.Render("ERROR: "+m.errorMessage)
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

var helpLines = []string{
	"Shapegrid Help",
	"==============",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor between cells",
	"  Shift+h/j/k/l    Move cursor 2x faster",
	"  Mouse click      Drop the selected shape under the pointer",
	"",
	"Placing Shapes:",
	"---------------",
	"  1-4              Select circle, triangle, pentagon, hexagon",
	"  Tab              Cycle shape",
	"  Enter/Space      Drop shape at cursor",
	"  c                Next palette color",
	"  C                Type a hex color (#RGB or #RRGGBB)",
	"  r / R            Rotate +15° / -15°",
	"  g                Toggle snap to grid",
	"  + / -            More / fewer cells (clears the grid)",
	"",
	"History:",
	"--------",
	"  u                Undo",
	"  U / Ctrl+r       Redo",
	"  x                Reset grid",
	"",
	"Saving and Sharing:",
	"-------------------",
	"  s                Save grid",
	"  o                Load saved grid",
	"  y                Copy share link to clipboard",
	"  p                Open share link from clipboard",
	"  P                Type or paste a share link",
	"  t                Load next preset",
	"  S                Export as PNG or text",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = len(helpLines)
	}
	start := m.helpScroll
	if start > len(helpLines) {
		start = len(helpLines)
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n")
}
