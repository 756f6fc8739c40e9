package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/callvault/callvault/internal/contacts"
	"github.com/callvault/callvault/internal/filtering"
	"github.com/callvault/callvault/internal/grouping"
	"github.com/callvault/callvault/internal/player"
	"github.com/callvault/callvault/internal/reconcile"
	"github.com/callvault/callvault/internal/recording"
	"github.com/callvault/callvault/internal/storage"
)

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	engine      *reconcile.Engine
	resolver    *contacts.Resolver
	coordinator *player.Coordinator
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(engine *reconcile.Engine, resolver *contacts.Resolver, coordinator *player.Coordinator, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		engine:      engine,
		resolver:    resolver,
		coordinator: coordinator,
		validator:   validator.New(),
		logger:      logger,
	}
}

// Health handles GET /health requests.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// ListRecordings handles GET /recordings requests. Recordings from the
// requested source are grouped by contact and narrowed by the optional
// contact, month, day, and min_duration query filters.
func (h *Handlers) ListRecordings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	source := q.Get("source")
	if source == "" {
		source = string(recording.SourceLocal)
	}
	if source != string(recording.SourceLocal) && source != string(recording.SourceCloud) {
		writeError(w, http.StatusBadRequest, "source must be \"local\" or \"cloud\"", "INVALID_SOURCE")
		return
	}

	// Zero means the parameter was not supplied and the criterion is off.
	spec := filtering.Spec{ContactName: q.Get("contact")}
	var err error
	if spec.Month, err = intParam(q.Get("month"), 1, 12); err != nil {
		writeError(w, http.StatusBadRequest, "month must be an integer between 1 and 12", "INVALID_MONTH")
		return
	}
	if spec.Day, err = intParam(q.Get("day"), 1, 31); err != nil {
		writeError(w, http.StatusBadRequest, "day must be an integer between 1 and 31", "INVALID_DAY")
		return
	}
	minDuration, err := intParam(q.Get("min_duration"), 0, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "min_duration must be a non-negative integer", "INVALID_MIN_DURATION")
		return
	}
	spec.MinDurationSec = int64(minDuration)

	snap := h.engine.Snapshot()
	files := snap.Local
	if source == string(recording.SourceCloud) {
		files = snap.Cloud
	}

	groups := filtering.Apply(grouping.Group(files, h.resolver), spec)

	resp := RecordingsResponse{Groups: make([]GroupResponse, 0, len(groups))}
	for _, g := range groups {
		gr := GroupResponse{
			ContactName: g.ContactName,
			Phone:       g.Phone,
			Files:       make([]RecordingResponse, 0, len(g.Files)),
		}
		for _, f := range g.Files {
			gr.Files = append(gr.Files, h.toRecordingResponse(f))
		}
		resp.Total += len(gr.Files)
		resp.Groups = append(resp.Groups, gr)
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListContacts handles GET /contacts requests.
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ContactsResponse{Names: h.resolver.Names()})
}

// Upload handles POST /uploads requests. A file already present in the
// cloud store is reported as such without a second upload.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to decode request body",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	url, already, err := h.engine.Upload(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, reconcile.ErrFileNotFound) {
			writeError(w, http.StatusNotFound, "recording not found", "FILE_NOT_FOUND")
			return
		}
		h.logger.Error("upload failed",
			slog.String("name", req.Name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "upload failed", "UPLOAD_FAILED")
		return
	}

	status := http.StatusCreated
	if already {
		status = http.StatusOK
	}
	writeJSON(w, status, UploadResponse{
		Name:            req.Name,
		URL:             url,
		AlreadyUploaded: already,
	})
}

// RefreshSync handles POST /sync/refresh requests. A refresh requested
// while a cycle is in flight is rejected, not queued.
func (h *Handlers) RefreshSync(w http.ResponseWriter, r *http.Request) {
	report, err := h.engine.Refresh(r.Context())
	if err != nil {
		if errors.Is(err, reconcile.ErrSyncInProgress) {
			writeError(w, http.StatusConflict, "sync already in progress", "SYNC_IN_PROGRESS")
			return
		}
		h.logger.Error("manual sync failed",
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "sync failed", "SYNC_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// SyncReport handles GET /sync/report requests, returning the report of
// the last completed cycle.
func (h *Handlers) SyncReport(w http.ResponseWriter, r *http.Request) {
	report := h.engine.Snapshot().Report
	if report.ID == "" {
		writeError(w, http.StatusNotFound, "no sync cycle has completed yet", "NO_REPORT")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// PlayerState handles GET /player requests.
func (h *Handlers) PlayerState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.playerState())
}

// SelectTrack handles POST /player/track requests.
func (h *Handlers) SelectTrack(w http.ResponseWriter, r *http.Request) {
	var req SelectTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	snap := h.engine.Snapshot()
	files := snap.Local
	if req.Source == string(recording.SourceCloud) {
		files = snap.Cloud
	}

	track, ok := findRecord(files, req.Name)
	if !ok {
		writeError(w, http.StatusNotFound, "recording not found", "TRACK_NOT_FOUND")
		return
	}

	if err := h.coordinator.SelectTrack(track); err != nil {
		h.logger.Error("failed to load track",
			slog.String("name", req.Name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, "failed to load track", "TRACK_LOAD_FAILED")
		return
	}

	writeJSON(w, http.StatusOK, h.playerState())
}

// TogglePlayback handles POST /player/toggle requests.
func (h *Handlers) TogglePlayback(w http.ResponseWriter, r *http.Request) {
	if err := h.coordinator.TogglePlayPause(); err != nil {
		if errors.Is(err, player.ErrNoTrack) {
			writeError(w, http.StatusConflict, "no track selected", "NO_TRACK")
			return
		}
		writeError(w, http.StatusInternalServerError, "toggle failed", "TOGGLE_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, h.playerState())
}

// SeekPlayback handles POST /player/seek requests.
func (h *Handlers) SeekPlayback(w http.ResponseWriter, r *http.Request) {
	var req SeekRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", "INVALID_JSON")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	if err := h.coordinator.Seek(req.Seconds); err != nil {
		if errors.Is(err, player.ErrNoTrack) {
			writeError(w, http.StatusConflict, "no track selected", "NO_TRACK")
			return
		}
		writeError(w, http.StatusInternalServerError, "seek failed", "SEEK_FAILED")
		return
	}
	writeJSON(w, http.StatusOK, h.playerState())
}

// DeleteCloudRecording handles DELETE /recordings/cloud/{name} requests.
func (h *Handlers) DeleteCloudRecording(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "recording name is required", "MISSING_NAME")
		return
	}

	if err := h.engine.Delete(r.Context(), name); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "cloud object not found", "OBJECT_NOT_FOUND")
			return
		}
		h.logger.Error("cloud delete failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusBadGateway, "delete failed", "DELETE_FAILED")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) playerState() PlayerStateResponse {
	state := h.coordinator.State()
	resp := PlayerStateResponse{
		IsPlaying:   state.IsPlaying,
		CurrentTime: state.CurrentTime,
		Duration:    state.Duration,
	}
	if state.CurrentTrack != nil {
		track := h.toRecordingResponse(*state.CurrentTrack)
		resp.Track = &track
	}
	return resp
}

func (h *Handlers) toRecordingResponse(f recording.FileRecord) RecordingResponse {
	return RecordingResponse{
		Name:        f.Name,
		Locator:     f.Locator(),
		Size:        f.Size,
		DurationSec: recording.EstimateDurationSec(f.Size),
		Timestamp:   f.Timestamp(),
		Source:      string(f.Source),
		Uploaded:    f.Source == recording.SourceCloud || h.engine.Uploaded(f.Name),
	}
}

func findRecord(files []recording.FileRecord, name string) (recording.FileRecord, bool) {
	for _, f := range files {
		if f.Name == name {
			return f, true
		}
	}
	return recording.FileRecord{}, false
}

// intParam parses an optional integer query parameter; empty means unset.
// A supplied value must lie within [min, max]; max of zero means unbounded.
func intParam(raw string, min, max int) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if v < min || (max > 0 && v > max) {
		return 0, fmt.Errorf("value %d out of range", v)
	}
	return v, nil
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError writes an error response in the standard format.
func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
