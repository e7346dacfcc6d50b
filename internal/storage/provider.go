// Package storage persists a task list between sessions.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/duke/internal/tasklist"
)

// Provider loads and saves whole task list snapshots.
type Provider interface {
	// Load returns the stored list, or an empty list when nothing was saved yet.
	Load(ctx context.Context) (*tasklist.TaskList, error)
	// Save replaces the stored list with l.
	Save(ctx context.Context, l *tasklist.TaskList) error
	Close() error
}

// Drivers accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the Provider for driver, rooted at path.
func Open(driver, path string, logger *slog.Logger) (Provider, error) {
	switch driver {
	case DriverFile, "":
		fs, err := NewFS(path, logger)
		if err != nil {
			return nil, err
		}
		return fs, nil
	case DriverSQLite:
		db, err := OpenSQLite(path, logger)
		if err != nil {
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("storage: unknown driver %q", driver)
	}
}
