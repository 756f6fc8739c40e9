package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestMemoryCloud_UploadAndList(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 8, 21, 15, 0, 0, 0, time.UTC)
	m := NewMemoryCloud("recordings/", WithClock(func() time.Time { return created }))

	path := filepath.Join(t.TempDir(), "a.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		t.Fatal(err)
	}

	url, err := m.Upload(ctx, path, "a.mp3")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if url != "mem://recordings/a.mp3" {
		t.Errorf("url = %q", url)
	}

	files, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 object, got %d", len(files))
	}
	if files[0].Name != "a.mp3" || files[0].Size != 5 {
		t.Errorf("listed object = %+v", files[0])
	}
	if !files[0].CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", files[0].CreatedAt, created)
	}
}

func TestMemoryCloud_UploadMissingLocalFile(t *testing.T) {
	m := NewMemoryCloud("recordings/")

	_, err := m.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.mp3"), "missing.mp3")
	if !errors.Is(err, ErrLocalFileMissing) {
		t.Errorf("expected ErrLocalFileMissing, got %v", err)
	}
}

func TestMemoryCloud_Delete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryCloud("recordings/")

	path := filepath.Join(t.TempDir(), "a.mp3")
	if err := os.WriteFile(path, []byte("audio"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Upload(ctx, path, "a.mp3"); err != nil {
		t.Fatal(err)
	}

	if err := m.Delete(ctx, "a.mp3"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.size() != 0 {
		t.Errorf("expected empty store, got %d objects", m.size())
	}

	if err := m.Delete(ctx, "a.mp3"); !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("expected ErrObjectNotFound, got %v", err)
	}
}
