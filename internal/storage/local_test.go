package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/callvault/callvault/internal/recording"
)

func TestLocalDir_Exists(t *testing.T) {
	ctx := context.Background()
	l := NewLocalDir()
	dir := t.TempDir()

	ok, err := l.Exists(ctx, dir)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !ok {
		t.Error("expected existing directory")
	}

	ok, err = l.Exists(ctx, filepath.Join(dir, "missing"))
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("expected missing directory")
	}
}

func TestLocalDir_Exists_FileIsNotDir(t *testing.T) {
	l := NewLocalDir()
	path := filepath.Join(t.TempDir(), "f.mp3")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	ok, err := l.Exists(context.Background(), path)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("a plain file should not count as a directory")
	}
}

func TestLocalDir_ListDir(t *testing.T) {
	l := NewLocalDir()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "a.mp3"), []byte("aaaa"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.mp3"), []byte("bb"), 0o600); err != nil {
		t.Fatal(err)
	}
	// Subdirectories are skipped.
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o750); err != nil {
		t.Fatal(err)
	}

	files, err := l.ListDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ListDir() error = %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}

	byName := make(map[string]recording.FileRecord)
	for _, f := range files {
		byName[f.Name] = f
	}

	a, ok := byName["a.mp3"]
	if !ok {
		t.Fatal("a.mp3 missing from listing")
	}
	if a.Size != 4 {
		t.Errorf("a.mp3 size = %d, want 4", a.Size)
	}
	if a.Source != recording.SourceLocal {
		t.Errorf("a.mp3 source = %q, want local", a.Source)
	}
	if a.Path != filepath.Join(dir, "a.mp3") {
		t.Errorf("a.mp3 path = %q", a.Path)
	}
	if a.ModifiedAt.IsZero() {
		t.Error("a.mp3 has zero modification time")
	}
}

func TestLocalDir_ListDir_Missing(t *testing.T) {
	l := NewLocalDir()
	_, err := l.ListDir(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("expected error listing a missing directory")
	}
}

func TestLocalDir_CancelledContext(t *testing.T) {
	l := NewLocalDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := l.Exists(ctx, t.TempDir()); err == nil {
		t.Error("expected context error from Exists")
	}
	if _, err := l.ListDir(ctx, t.TempDir()); err == nil {
		t.Error("expected context error from ListDir")
	}
}
