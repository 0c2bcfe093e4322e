package main

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"shapegrid/internal/codec"
	"shapegrid/internal/editor"
	"shapegrid/internal/grid"
	"shapegrid/internal/history"
	"shapegrid/internal/preset"
	"shapegrid/internal/share"
)

// report turns a controller result into status line feedback. Empty
// history and drops outside the grid are ignored.
func (m *model) report(err error, success string) {
	switch {
	case err == nil:
		if success != "" {
			m.setSuccess(success)
		}
	case errors.Is(err, history.ErrEmpty), errors.Is(err, grid.ErrOutOfRange):
	case errors.Is(err, editor.ErrNoSavedState):
		m.setError("No saved grid found")
	case errors.Is(err, codec.ErrMalformedInput):
		m.setError(fmt.Sprintf("Invalid grid data: %s", err.Error()))
	case errors.Is(err, preset.ErrUnknownPreset):
		m.setError(fmt.Sprintf("Preset unavailable: %s", err.Error()))
	default:
		m.setError(err.Error())
	}
}

func (m *model) setSuccess(msg string) {
	m.successMessage = msg
	m.errorMessage = ""
}

func (m *model) setError(msg string) {
	m.errorMessage = msg
	m.successMessage = ""
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) shareLink() (string, error) {
	return share.Link(m.config.Share.BaseURL, m.ctrl.Share())
}

func (m *model) copyShareLink() {
	link, err := m.shareLink()
	if err != nil {
		m.setError(err.Error())
		return
	}
	if err := clipboard.WriteAll(link); err != nil {
		m.setError(fmt.Sprintf("Clipboard unavailable: %s", err.Error()))
		return
	}
	m.setSuccess("Share link copied to clipboard")
}

// openLink loads a grid from a share link or a bare share blob.
func (m *model) openLink(text string) {
	blob, err := share.Extract(cleanClipboardText(text))
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.report(m.ctrl.LoadShared(blob), "Shared grid loaded")
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
		if output, err := exec.Command("pbpaste").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	text = stripRTF(text)
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// stripRTF drops RTF control words and groups, keeping the plain text.
func stripRTF(text string) string {
	if !strings.HasPrefix(text, "{\\rtf") && !strings.Contains(text, "\\rtf") {
		return text
	}
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r == '\\' {
			if i+1 < len(runes) {
				next := runes[i+1]
				if (next >= 'a' && next <= 'z') || (next >= 'A' && next <= 'Z') {
					i++
					for i < len(runes) {
						if runes[i] == ' ' || runes[i] == '\\' || runes[i] == '{' || runes[i] == '}' {
							if runes[i] == ' ' {
								i++
							}
							break
						}
						i++
					}
					i--
					continue
				} else if next == '\\' || next == '{' || next == '}' {
					result.WriteRune(next)
					i++
					continue
				}
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}
