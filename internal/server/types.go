// Package server provides the HTTP server for the CallVault API.
// It includes handlers, middleware, routes, and DTOs separated from domain types.
package server

import "time"

// RecordingResponse describes one recording file in API responses.
type RecordingResponse struct {
	// Name is the recording file name.
	Name string `json:"name"`
	// Locator is the playable locator: a path for local files, a URL for
	// cloud objects.
	Locator string `json:"locator"`
	// Size is the file size in bytes.
	Size int64 `json:"size"`
	// DurationSec is the estimated duration derived from the file size.
	DurationSec int64 `json:"duration_sec"`
	// Timestamp is the effective timestamp of the record.
	Timestamp time.Time `json:"timestamp"`
	// Source is "local" or "cloud".
	Source string `json:"source"`
	// Uploaded reports whether the file is present in the cloud store.
	Uploaded bool `json:"uploaded"`
}

// GroupResponse is one contact group of recordings.
type GroupResponse struct {
	// ContactName is the display name for the group.
	ContactName string `json:"contact_name"`
	// Phone is the normalized phone number, or "unknown".
	Phone string `json:"phone"`
	// Files are the group's recordings in enumeration order.
	Files []RecordingResponse `json:"files"`
}

// RecordingsResponse is the HTTP response for listing recordings.
type RecordingsResponse struct {
	// Groups are the contact groups after filtering.
	Groups []GroupResponse `json:"groups"`
	// Total is the number of files across all groups.
	Total int `json:"total"`
}

// ContactsResponse is the HTTP response for listing contact names.
type ContactsResponse struct {
	// Names are the known contact display names, sorted.
	Names []string `json:"names"`
}

// UploadRequest is the HTTP request body for uploading a recording.
type UploadRequest struct {
	// Name is the local recording file name.
	Name string `json:"name" validate:"required"`
}

// UploadResponse is the HTTP response after an upload request.
type UploadResponse struct {
	// Name is the recording file name.
	Name string `json:"name"`
	// URL is the cloud object locator, empty when the file was already
	// uploaded.
	URL string `json:"url,omitempty"`
	// AlreadyUploaded reports whether the upload was skipped because the
	// file is already in the cloud store.
	AlreadyUploaded bool `json:"already_uploaded"`
}

// SelectTrackRequest is the HTTP request body for selecting a track.
type SelectTrackRequest struct {
	// Name is the recording file name.
	Name string `json:"name" validate:"required"`
	// Source is where to look the recording up, "local" or "cloud".
	Source string `json:"source" validate:"omitempty,oneof=local cloud"`
}

// SeekRequest is the HTTP request body for seeking within the current track.
type SeekRequest struct {
	// Seconds is the target position.
	Seconds float64 `json:"seconds" validate:"gte=0"`
}

// PlayerStateResponse is the HTTP response describing playback state.
type PlayerStateResponse struct {
	// Track is the selected recording, omitted before the first selection.
	Track *RecordingResponse `json:"track,omitempty"`
	// IsPlaying reports whether playback is running.
	IsPlaying bool `json:"is_playing"`
	// CurrentTime is the playback position in seconds.
	CurrentTime float64 `json:"current_time"`
	// Duration is the track duration in seconds.
	Duration float64 `json:"duration"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	// Error is the human-readable error message.
	Error string `json:"error"`
	// Code is the error code for programmatic handling.
	Code string `json:"code"`
}

// HealthResponse is the HTTP response for the health check endpoint.
type HealthResponse struct {
	// Status is the health status of the service.
	Status string `json:"status"`
}
