package server

import (
	"log/slog"
	"net/http"
)

// Config contains server configuration options.
type Config struct {
	// AllowedOrigins is the list of allowed CORS origins.
	AllowedOrigins []string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		AllowedOrigins: []string{"*"},
	}
}

// NewRouter creates a new HTTP router with all routes configured.
// It uses Go 1.22+ ServeMux with method-based routing.
func NewRouter(h *Handlers, logger *slog.Logger, cfg Config) http.Handler {
	mux := http.NewServeMux()

	// Register routes with method-based patterns (Go 1.22+)
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /recordings", h.ListRecordings)
	mux.HandleFunc("DELETE /recordings/cloud/{name}", h.DeleteCloudRecording)
	mux.HandleFunc("GET /contacts", h.ListContacts)
	mux.HandleFunc("POST /uploads", h.Upload)
	mux.HandleFunc("POST /sync/refresh", h.RefreshSync)
	mux.HandleFunc("GET /sync/report", h.SyncReport)
	mux.HandleFunc("GET /player", h.PlayerState)
	mux.HandleFunc("POST /player/track", h.SelectTrack)
	mux.HandleFunc("POST /player/toggle", h.TogglePlayback)
	mux.HandleFunc("POST /player/seek", h.SeekPlayback)

	// Apply middleware chain
	chain := Chain(
		Recovery(logger),
		RequestLogging(logger),
		CORS(cfg.AllowedOrigins),
	)

	return chain(mux)
}
