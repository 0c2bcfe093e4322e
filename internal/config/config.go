// Package config loads the editor settings from ~/.shapegrid/config.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"shapegrid/internal/codec"
	"shapegrid/internal/editor"
	"shapegrid/internal/grid"
	"shapegrid/internal/history"
)

const (
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendMemory = "memory"
)

type Config struct {
	Canvas        Canvas  `yaml:"canvas"`
	CellSize      float64 `yaml:"cell_size"`
	Snap          bool    `yaml:"snap"`
	DefaultColor  string  `yaml:"default_color"`
	Confirmations bool    `yaml:"confirmations"`
	History       History `yaml:"history"`
	Store         Store   `yaml:"store"`
	Share         Share   `yaml:"share"`
	Log           Log     `yaml:"log"`
}

type Canvas struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type History struct {
	Limit          int  `yaml:"limit"`
	CapRedo        bool `yaml:"cap_redo"`
	SnapshotPreset bool `yaml:"snapshot_preset"`
	SnapshotResize bool `yaml:"snapshot_resize"`
}

type Store struct {
	Backend       string `yaml:"backend"`
	SaveDirectory string `yaml:"save_directory"`
	Key           string `yaml:"key"`
}

type Share struct {
	BaseURL string `yaml:"base_url"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func Default() *Config {
	return &Config{
		Canvas:        Canvas{Width: 600, Height: 600},
		CellSize:      60,
		Snap:          true,
		DefaultColor:  "#0000FF",
		Confirmations: true,
		History:       History{Limit: history.DefaultLimit},
		Store:         Store{Backend: BackendFile, Key: editor.DefaultSaveKey},
		Share:         Share{BaseURL: "https://shapegrid.app/"},
		Log:           Log{Level: "info"},
	}
}

// DefaultPath returns ~/.shapegrid/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".shapegrid", "config.yaml"), nil
}

// Load reads the config at path, or DefaultPath when path is empty. A
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, cfg.resolve()
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, cfg.resolve()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read the config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse the config file %s: %w", path, err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// resolve validates cfg and expands the save directory.
func (c *Config) resolve() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("cell_size must be positive, got %v", c.CellSize)
	}
	if err := codec.CheckGeometry(c.Canvas.Width, c.Canvas.Height, c.CellSize); err != nil {
		return fmt.Errorf("cell_size: %w", err)
	}
	if _, err := grid.ParseColor(c.DefaultColor); err != nil {
		return fmt.Errorf("default_color: %w", err)
	}
	switch c.Store.Backend {
	case BackendFile, BackendBadger, BackendMemory:
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}
	if c.Store.Key == "" {
		c.Store.Key = editor.DefaultSaveKey
	}

	value := c.Store.SaveDirectory
	if strings.HasPrefix(value, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	if value != "" && !filepath.IsAbs(value) {
		if absPath, err := filepath.Abs(value); err == nil {
			value = absPath
		}
	}
	c.Store.SaveDirectory = value
	return nil
}

// SnapMode returns the addressing policy selected by Snap.
func (c *Config) SnapMode() grid.SnapMode {
	if c.Snap {
		return grid.Snap
	}
	return grid.Free
}

// LogLevel parses Log.Level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// EditorOptions maps the config onto controller options. Store and Logger
// are left for the caller.
func (c *Config) EditorOptions() editor.Options {
	return editor.Options{
		Width:    c.Canvas.Width,
		Height:   c.Canvas.Height,
		CellSize: c.CellSize,
		Snap:     c.SnapMode(),
		History: history.Options{
			Limit:   c.History.Limit,
			CapRedo: c.History.CapRedo,
		},
		SnapshotPreset: c.History.SnapshotPreset,
		SnapshotResize: c.History.SnapshotResize,
		SaveKey:        c.Store.Key,
	}
}

// GetSavePath joins filename onto the save directory, creating it.
func (c *Config) GetSavePath(filename string) (string, error) {
	if c.Store.SaveDirectory == "" {
		return filename, nil
	}
	if err := os.MkdirAll(c.Store.SaveDirectory, 0755); err != nil {
		return "", fmt.Errorf("create save directory: %w", err)
	}
	return filepath.Join(c.Store.SaveDirectory, filename), nil
}
