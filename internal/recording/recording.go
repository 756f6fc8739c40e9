// Package recording provides the FileRecord model shared by the local
// filesystem and cloud views, plus the pure functions that derive caller
// identity and estimated duration from a recording's name and size.
package recording

import "time"

// Source identifies where a FileRecord was enumerated from.
type Source string

const (
	// SourceLocal marks records enumerated from the local recordings directory.
	SourceLocal Source = "local"
	// SourceCloud marks records listed from the cloud object store.
	SourceCloud Source = "cloud"
)

// FileRecord describes one audio file from either the local filesystem or
// the cloud store. Records are recreated on every enumeration; Name is the
// only stable identity and is shared between the local and cloud copies of
// the same logical recording.
type FileRecord struct {
	// Name is unique within its source and is the dedup key for uploads.
	Name string
	// Path is the local filesystem path (local records only).
	Path string
	// URL is the cloud object locator (cloud records only).
	URL string
	// Size is the file size in bytes.
	Size int64
	// ModifiedAt is the local file modification time (local records only).
	ModifiedAt time.Time
	// CreatedAt is the cloud object creation time (cloud records only).
	CreatedAt time.Time
	// Source tags where this record came from.
	Source Source
}

// Timestamp returns the record's effective timestamp: modification time for
// local files, creation time for cloud objects. The two are not guaranteed
// to agree for the same logical recording, so date filters see different
// values depending on the source.
func (f FileRecord) Timestamp() time.Time {
	if f.Source == SourceCloud {
		return f.CreatedAt
	}
	return f.ModifiedAt
}

// Locator returns the opaque locator handed to the audio player:
// the URL for cloud records, the path otherwise.
func (f FileRecord) Locator() string {
	if f.Source == SourceCloud {
		return f.URL
	}
	return f.Path
}

// bytesPerSecond is the fixed-bitrate assumption used to estimate duration
// from file size. It is an approximation, not measured audio duration;
// swap EstimateDurationSec for real probing to change this.
const bytesPerSecond = 8000

// EstimateDurationSec estimates a recording's duration in whole seconds
// from its byte size, assuming a fixed bitrate.
func EstimateDurationSec(size int64) int64 {
	if size < 0 {
		return 0
	}
	return size / bytesPerSecond
}
