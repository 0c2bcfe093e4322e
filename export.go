package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"shapegrid/internal/render"
)

func (m *model) exportPNG(filename string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".png") {
		filename += ".png"
	}
	path, err := m.config.GetSavePath(filename)
	if err != nil {
		return "", err
	}
	opts := render.Options{GridLines: true}
	if err := render.SavePNG(path, m.ctrl.Current(), opts); err != nil {
		return "", err
	}
	return absPath(path), nil
}

func (m *model) exportVisualTXT(filename string) (string, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".txt") {
		filename += ".txt"
	}
	path, err := m.config.GetSavePath(filename)
	if err != nil {
		return "", err
	}
	if err := render.SaveText(path, m.ctrl.Current()); err != nil {
		return "", err
	}
	return absPath(path), nil
}

// finishExport runs the pending export for the filename typed by the user.
func (m *model) finishExport() {
	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.setError("Please enter a filename")
		return
	}
	var (
		path string
		err  error
	)
	switch m.fileOp {
	case FileOpSavePNG:
		path, err = m.exportPNG(name)
	case FileOpSaveVisualTXT:
		path, err = m.exportVisualTXT(name)
	}
	if err != nil {
		m.setError(fmt.Sprintf("Error exporting: %s", err.Error()))
		return
	}
	m.setSuccess(fmt.Sprintf("Exported to %s", path))
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
