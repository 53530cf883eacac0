// Package server provides the HTTP server for the Mudra gesture recognition system.
package server

import (
	"net/http"
	"time"

	"github.com/ayusman/mudra/internal/analytics"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/dispatch"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/server/api"
	"github.com/ayusman/mudra/internal/store"
)

// ResultFeed exposes the live per-frame pipeline results. Subscribe returns
// a receive channel and a cancel function that must be called when done.
type ResultFeed interface {
	Subscribe() (<-chan gesture.Result, func())
}

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Settings  *gesture.Settings
	Mapper    *command.Mapper
	Dispatch  *dispatch.Client
	Feed      ResultFeed
}

// Server represents the HTTP server for the Mudra application.
type Server struct {
	config   Config
	mux      *http.ServeMux
	analyzer *analytics.Analyzer
	start    time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	if config.Store != nil {
		s.analyzer = analytics.NewAnalyzer(config.Store.Events())
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/status", s.handleStatus)

	if s.config.Settings != nil {
		var repo *store.SettingsRepository
		if s.config.Store != nil {
			repo = s.config.Store.Settings()
		}
		s.mux.Handle("/api/config", api.NewConfigHandler(s.config.Settings, repo))
	}

	if s.config.Mapper != nil {
		var repo *store.SettingsRepository
		if s.config.Store != nil {
			repo = s.config.Store.Settings()
		}
		s.mux.Handle("/api/mapping", api.NewMappingHandler(s.config.Mapper, repo))
	}

	// The event sink and log endpoints need both the store and the mapper.
	if s.config.Store != nil && s.config.Mapper != nil {
		events := api.NewEventsHandler(s.config.Store.Events(), s.config.Mapper, s.analyzer)
		s.mux.HandleFunc("/api/gesture/event", events.HandleEvent)
		s.mux.HandleFunc("/api/stats", events.HandleStats)
		s.mux.HandleFunc("/api/logs", events.HandleLogs)
		s.mux.HandleFunc("/api/logs/export.csv", events.HandleExportCSV)
	}

	if s.analyzer != nil {
		handler := api.NewAnalyticsHandler(s.analyzer)
		s.mux.HandleFunc("/api/analytics", handler.HandleSummary)
		s.mux.HandleFunc("/api/analytics/report", handler.HandleReport)
	}

	s.mux.HandleFunc("/api/frame/preprocess", handlePreprocess)

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register the live label WebSocket endpoint if a feed is configured
	if s.config.Feed != nil {
		s.mux.Handle("/api/labels", NewLabelsHandler(s.config.Feed))
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// handleStatus handles GET requests to /api/status.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	if s.config.Camera != nil {
		status["camera_open"] = s.config.Camera.IsOpen()
		status["camera_fps"] = s.config.Camera.FPS()
	}
	if s.config.Mapper != nil {
		status["mapper"] = s.config.Mapper.Snapshot()
	}
	if s.config.Dispatch != nil {
		status["sink_connected"] = s.config.Dispatch.Connected()
	}
	if s.config.Store != nil {
		if count, err := s.config.Store.Events().Count(); err == nil {
			status["total_events"] = count
		}
	}
	if s.config.Settings != nil {
		status["config"] = s.config.Settings.Snapshot()
	}

	writeJSON(w, http.StatusOK, status)
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
