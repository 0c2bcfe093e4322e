package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeColorInput
	ModeLinkInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpSaveVisualTXT
)

type ConfirmAction int

const (
	ConfirmReset ConfirmAction = iota
	ConfirmQuit
	ConfirmLoad
	ConfirmPreset
	ConfirmDensity
	ConfirmChooseExportType
)

const (
	cellWidth    = 3 // terminal columns per grid cell
	rotationStep = 15
	minDensity   = 1
	maxDensity   = 30
)

// palette mirrors the color picker presets; any hex color can also be typed.
var palette = []string{
	"#0000FF",
	"#FF0000",
	"#00AA00",
	"#FFFF00",
	"#FFA500",
	"#FF69B4",
	"#8A2BE2",
	"#000000",
}
