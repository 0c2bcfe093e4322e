package main

func (m *model) undo() {
	m.report(m.ctrl.Undo(), "")
}

func (m *model) redo() {
	m.report(m.ctrl.Redo(), "")
}

func (m *model) drop(px, py float64) {
	_, err := m.ctrl.Drop(px, py, m.selectedShape(), m.color, m.rotation)
	m.report(err, "")
}

func (m *model) reset() {
	m.ctrl.Reset()
	m.setSuccess("Grid reset")
}
