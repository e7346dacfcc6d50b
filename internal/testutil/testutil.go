// Package testutil provides shared test helpers for stores and task lists.
package testutil

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/starford/duke/internal/storage"
	"github.com/starford/duke/internal/tasklist"
)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestFS creates a flat-file store in a temp directory.
func TestFS(t *testing.T) *storage.FS {
	t.Helper()
	fs, err := storage.NewFS(filepath.Join(t.TempDir(), "duke.txt"), Logger())
	if err != nil {
		t.Fatal(err)
	}
	return fs
}

// TestSQLite creates a temporary SQLite store that is closed on cleanup.
func TestSQLite(t *testing.T) *storage.SQLite {
	t.Helper()
	db, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "duke.db"), Logger())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// SampleList returns a list holding one task of each kind, the deadline done.
func SampleList(t *testing.T) *tasklist.TaskList {
	t.Helper()
	l := tasklist.New()
	l.AddNewTodo("buy milk")
	if _, err := l.AddNewDeadline("d return book /by 2021-02-11"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddNewEvent("e team | sync /at 2021-03-01"); err != nil {
		t.Fatal(err)
	}
	if _, err := l.CompleteTask(2); err != nil {
		t.Fatal(err)
	}
	return l
}
