package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileDirectory is a Directory backed by a JSON file exported from the
// device contact list. A missing file behaves as an empty directory; an
// unreadable file maps to ErrPermissionDenied so callers degrade the same
// way they would on a denied contacts permission.
type FileDirectory struct {
	path string
}

// Compile-time check that FileDirectory implements Directory.
var _ Directory = (*FileDirectory)(nil)

// NewFileDirectory creates a FileDirectory reading from the given path.
func NewFileDirectory(path string) *FileDirectory {
	return &FileDirectory{path: path}
}

// LoadAll reads and decodes the contact export.
func (d *FileDirectory) LoadAll(_ context.Context) ([]Contact, error) {
	data, err := os.ReadFile(d.path) // #nosec G304 - path comes from configuration
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, ErrPermissionDenied
		}
		return nil, fmt.Errorf("read contacts file: %w", err)
	}

	var list []Contact
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode contacts file: %w", err)
	}
	return list, nil
}
