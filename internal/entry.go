// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/duke/internal/storage"
	"github.com/starford/duke/internal/ui"
)

// Run loads the task list, serves one interactive session and returns when
// the user says bye or input ends.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{
		in:  os.Stdin,
		out: os.Stdout,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logOut, closeLog, err := openLogOutput(app.logOut, cfg.App.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.Open(cfg.Storage.Driver, cfg.Storage.Path, logger)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	defer store.Close()

	list, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	logger.Info("Tasks loaded", slog.Int("count", list.Len()))

	session := ui.NewSession(list, store, app.in, app.out, logger)
	if err := session.Run(ctx); err != nil {
		logger.Error("Session error", slog.String("error", err.Error()))
		return err
	}

	// Flush once more in case a save failed mid-session.
	if err := store.Save(ctx, list); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}

	logger.Info("Session ended", slog.Int("count", list.Len()))
	return nil
}

func openLogOutput(override io.Writer, path string) (io.Writer, func(), error) {
	if override != nil {
		return override, func() {}, nil
	}
	if path == "" {
		return os.Stderr, func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
