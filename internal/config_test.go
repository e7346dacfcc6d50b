package internal

import (
	"log/slog"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should pass: %v", err)
	}
}

func TestStorageConfig_EmptyDriverDefaultsFile(t *testing.T) {
	cfg := StorageConfig{Path: "tasks.txt"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty driver should default to file: %v", err)
	}
	if cfg.Driver != "file" {
		t.Errorf("driver = %q, want %q", cfg.Driver, "file")
	}
}

func TestStorageConfig_SQLite(t *testing.T) {
	cfg := StorageConfig{Driver: "sqlite", Path: "duke.db"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sqlite driver should pass: %v", err)
	}
}

func TestStorageConfig_InvalidDriver(t *testing.T) {
	cfg := StorageConfig{Driver: "postgres", Path: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("unknown driver should fail validation")
	}
}

func TestStorageConfig_EmptyPath(t *testing.T) {
	cfg := StorageConfig{Driver: "file"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty path should fail validation")
	}
}

func TestApplicationConfig_OddLogLevel(t *testing.T) {
	cfg := ApplicationConfig{LogLevel: slog.Level(3)}
	if err := cfg.Validate(); err == nil {
		t.Fatal("non-standard log level should fail validation")
	}
}

func TestFullConfig_StorageValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Storage.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch storage error")
	}
}
