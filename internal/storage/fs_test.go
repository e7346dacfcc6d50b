package storage_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/duke/internal/apperr"
	"github.com/starford/duke/internal/storage"
	"github.com/starford/duke/internal/testutil"
)

func TestFS_LoadMissingFileIsEmpty(t *testing.T) {
	s := testutil.TestFS(t)
	l, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.Len() != 0 {
		t.Errorf("Len = %d, want 0", l.Len())
	}
}

func TestFS_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := testutil.TestFS(t)
	orig := testutil.SampleList(t)

	if err := s.Save(ctx, orig); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(raw) != orig.SaveData() {
		t.Errorf("file content = %q, want %q", raw, orig.SaveData())
	}

	// A fresh store must see the same list.
	again, err := storage.NewFS(s.Path(), testutil.Logger())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	got, err := again.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.String() != orig.String() {
		t.Errorf("render after reload = %q, want %q", got.String(), orig.String())
	}
}

func TestFS_SaveCreatesDirAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewFS(filepath.Join(dir, "data", "duke.txt"), testutil.Logger())
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	if err := s.Save(context.Background(), testutil.SampleList(t)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("save file missing: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "data", ".duke-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestFS_SkipsUnchangedSave(t *testing.T) {
	ctx := context.Background()
	s := testutil.TestFS(t)
	l := testutil.SampleList(t)
	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Remove the file behind the store's back; an unchanged save must not rewrite it.
	if err := os.Remove(s.Path()); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("unchanged save rewrote the file (stat err = %v)", err)
	}

	l.AddNewTodo("new")
	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Errorf("changed save did not write: %v", err)
	}
}

func TestFS_CorruptFile(t *testing.T) {
	s := testutil.TestFS(t)
	if err := os.WriteFile(s.Path(), []byte("T | 0 | fine\nQ | 0 | bad\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := s.Load(context.Background())
	if !errors.Is(err, apperr.ErrUnknownKind) {
		t.Errorf("Load error = %v, want ErrUnknownKind", err)
	}
}

func TestNewFS_Errors(t *testing.T) {
	if _, err := storage.NewFS("", nil); err == nil {
		t.Error("expected error for empty path")
	}
	if _, err := storage.NewFS(t.TempDir(), nil); err == nil {
		t.Error("expected error when path is a directory")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := storage.Open("postgres", "x", nil); err == nil {
		t.Error("expected error for unknown driver")
	}
}
