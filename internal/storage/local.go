package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/callvault/callvault/internal/recording"
)

// LocalDir implements the Local interface over the OS filesystem.
type LocalDir struct{}

// Compile-time check that LocalDir implements Local.
var _ Local = (*LocalDir)(nil)

// NewLocalDir creates a new LocalDir enumerator.
func NewLocalDir() *LocalDir {
	return &LocalDir{}
}

// Exists reports whether dir exists and is a directory.
func (l *LocalDir) Exists(ctx context.Context, dir string) (bool, error) {
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", dir, err)
	}
	return info.IsDir(), nil
}

// ListDir lists the plain files of dir in directory order. Entries that
// disappear between the listing and the stat are skipped, not errors.
func (l *LocalDir) ListDir(ctx context.Context, dir string) ([]recording.FileRecord, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	files := make([]recording.FileRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, recording.FileRecord{
			Name:       entry.Name(),
			Path:       filepath.Join(dir, entry.Name()),
			Size:       info.Size(),
			ModifiedAt: info.ModTime(),
			Source:     recording.SourceLocal,
		})
	}
	return files, nil
}
