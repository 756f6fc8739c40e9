package storage

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/callvault/callvault/internal/recording"
)

// Compile-time check that MemoryCloud implements Cloud.
var _ Cloud = (*MemoryCloud)(nil)

// memObject is one stored object.
type memObject struct {
	data      []byte
	createdAt time.Time
}

// MemoryCloud is an in-memory implementation of Cloud. It uses a map with
// RWMutex for thread-safe access. Suitable for development and testing;
// swap for S3Store in production.
type MemoryCloud struct {
	mu      sync.RWMutex
	objects map[string]memObject
	prefix  string
	now     func() time.Time
}

// MemoryOption configures a MemoryCloud.
type MemoryOption func(*MemoryCloud)

// WithClock sets the time source used for object creation times.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryCloud) {
		m.now = now
	}
}

// NewMemoryCloud creates a new in-memory cloud store with the given
// object-name prefix.
func NewMemoryCloud(prefix string, opts ...MemoryOption) *MemoryCloud {
	m := &MemoryCloud{
		objects: make(map[string]memObject),
		prefix:  prefix,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// List returns the stored objects as cloud FileRecords.
func (m *MemoryCloud) List(_ context.Context) ([]recording.FileRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	files := make([]recording.FileRecord, 0, len(m.objects))
	for name, obj := range m.objects {
		files = append(files, recording.FileRecord{
			Name:      name,
			URL:       m.objectURL(name),
			Size:      int64(len(obj.data)),
			CreatedAt: obj.createdAt,
			Source:    recording.SourceCloud,
		})
	}
	return files, nil
}

// Upload reads the local file and stores its content under objectName.
func (m *MemoryCloud) Upload(_ context.Context, localPath, objectName string) (string, error) {
	data, err := os.ReadFile(localPath) // #nosec G304 - path comes from the local enumerator
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrLocalFileMissing, localPath)
		}
		return "", fmt.Errorf("read %s: %w", localPath, err)
	}

	m.mu.Lock()
	m.objects[objectName] = memObject{data: data, createdAt: m.now()}
	m.mu.Unlock()

	return m.objectURL(objectName), nil
}

// Delete removes the object named objectName.
func (m *MemoryCloud) Delete(_ context.Context, objectName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[objectName]; !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectName)
	}
	delete(m.objects, objectName)
	return nil
}

// size returns the number of stored objects.
func (m *MemoryCloud) size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

// objectURL builds a synthetic locator for a stored object.
func (m *MemoryCloud) objectURL(name string) string {
	return "mem://" + m.prefix + name
}
