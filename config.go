package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"shapegrid/internal/config"
	"shapegrid/internal/editor"
	"shapegrid/internal/store"
)

// session bundles what a command needs: the loaded config, the controller
// and the resources to release afterwards.
type session struct {
	config  *config.Config
	ctrl    *editor.Controller
	logger  *slog.Logger
	closers []func() error
}

func (s *session) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func openSession(configPath string) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	s := &session{config: cfg}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}
	s.logger = logger
	s.closers = append(s.closers, closeLog)

	st, closeStore, err := openStore(cfg, logger)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.closers = append(s.closers, closeStore)

	opts := cfg.EditorOptions()
	opts.Store = st
	opts.Logger = logger
	ctrl, err := editor.New(opts)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.ctrl = ctrl
	return s, nil
}

// newLogger writes to the configured log file. The terminal belongs to the
// UI, so without a file logs are discarded.
func newLogger(cfg *config.Config) (*slog.Logger, func() error, error) {
	if cfg.Log.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()})
	return slog.New(handler), f.Close, nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (store.Store, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemory(), noop, nil
	case config.BackendBadger:
		dir := cfg.Store.SaveDirectory
		if dir == "" {
			dir = "."
		}
		db, err := store.OpenBadger(store.BadgerConfig{
			Path:       filepath.Join(dir, "shapegrid.db"),
			SyncWrites: true,
			Logger:     logger,
		})
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	default:
		return store.NewFile(cfg.Store.SaveDirectory), noop, nil
	}
}
