package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/starford/duke/internal/tasklist"
)

// FS implements Provider with a single flat save file.
type FS struct {
	path   string
	logger *slog.Logger
	last   string // checksum of the content last read or written
}

// NewFS returns a store backed by the file at path. The file need not
// exist yet; its directory is created on first save.
func NewFS(path string, logger *slog.Logger) (*FS, error) {
	if path == "" {
		return nil, errors.New("storage: empty save file path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("storage: resolve path: %w", err)
	}
	if info, err := os.Stat(abs); err == nil && info.IsDir() {
		return nil, fmt.Errorf("storage: save path is a directory: %s", abs)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FS{path: abs, logger: logger}, nil
}

// Path returns the absolute save file path.
func (f *FS) Path() string {
	return f.path
}

// Load reads and decodes the save file.
func (f *FS) Load(_ context.Context) (*tasklist.TaskList, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger.Debug("storage: no save file yet", slog.String("path", f.path))
		return tasklist.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read %s: %w", f.path, err)
	}
	l, err := tasklist.FromSaveData(data)
	if err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", f.path, err)
	}
	f.last = checksum(data)
	f.logger.Debug("storage: loaded", slog.String("path", f.path), slog.Int("tasks", l.Len()))
	return l, nil
}

// Save writes the list unless it is unchanged since the last load or save.
func (f *FS) Save(_ context.Context, l *tasklist.TaskList) error {
	content := []byte(l.SaveData())
	sum := checksum(content)
	if sum == f.last {
		return nil
	}
	if err := f.write(content); err != nil {
		return err
	}
	f.last = sum
	f.logger.Debug("storage: saved", slog.String("path", f.path), slog.Int("tasks", l.Len()))
	return nil
}

// Close is a no-op; the file is not held open between saves.
func (f *FS) Close() error {
	return nil
}

// write atomically replaces the save file: tmp file → fsync → rename.
func (f *FS) write(content []byte) error {
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("storage: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".duke-tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("storage: fsync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("storage: rename: %w", err)
	}
	success = true
	return nil
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
