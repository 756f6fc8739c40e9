// Package storage provides the local file enumerator and cloud object
// store ports, with implementations for the local disk, S3, and an
// in-memory store for development and tests.
package storage

import (
	"context"
	"errors"

	"github.com/callvault/callvault/internal/recording"
)

// Static errors for storage operations.
var (
	// ErrLocalFileMissing is returned by Upload when the local file does
	// not exist at call time.
	ErrLocalFileMissing = errors.New("storage: local file missing")
	// ErrObjectNotFound is returned by Delete when the named object does
	// not exist in the store.
	ErrObjectNotFound = errors.New("storage: object not found")
)

// Local defines the interface for enumerating recording files on disk.
type Local interface {
	// Exists reports whether the directory exists. A missing directory
	// is not an error; callers treat it as "nothing to enumerate".
	Exists(ctx context.Context, dir string) (bool, error)

	// ListDir lists the non-directory entries of dir as local
	// FileRecords with name, size, path, and modification time.
	ListDir(ctx context.Context, dir string) ([]recording.FileRecord, error)
}

// Cloud defines the interface for the cloud object store that mirrors
// recordings. Implementations are bound to an object-name prefix at
// construction; names passed through this interface are bare recording
// names without the prefix.
type Cloud interface {
	// List returns the objects under the store's prefix as cloud
	// FileRecords with name (prefix stripped), size, URL, and creation
	// time.
	List(ctx context.Context) ([]recording.FileRecord, error)

	// Upload stores the local file under prefix+objectName and returns
	// the object URL. Returns ErrLocalFileMissing if the local file does
	// not exist at call time.
	Upload(ctx context.Context, localPath, objectName string) (url string, err error)

	// Delete removes the object named objectName.
	// Returns ErrObjectNotFound if it does not exist.
	Delete(ctx context.Context, objectName string) error
}
