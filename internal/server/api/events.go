package api

import (
	"encoding/csv"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ayusman/mudra/internal/analytics"
	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/store"
)

const defaultLogLimit = 100

// EventsHandler handles gesture event submission and the event log.
type EventsHandler struct {
	events   *store.EventRepository
	mapper   *command.Mapper
	analyzer *analytics.Analyzer
	errors   atomic.Int64
}

// NewEventsHandler creates an EventsHandler.
func NewEventsHandler(events *store.EventRepository, mapper *command.Mapper, analyzer *analytics.Analyzer) *EventsHandler {
	return &EventsHandler{
		events:   events,
		mapper:   mapper,
		analyzer: analyzer,
	}
}

type gestureEventRequest struct {
	Gesture   string   `json:"gesture"`
	Score     *float64 `json:"score"`
	Timestamp float64  `json:"ts"`
	SessionID string   `json:"session_id"`
}

// HandleEvent handles POST /api/gesture/event.
func (h *EventsHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	started := time.Now()

	var req gestureEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errors.Add(1)
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Clients that don't label or score the gesture still get a response:
	// an absent label means UNKNOWN, an absent score means full confidence.
	gestureName := strings.ToUpper(strings.TrimSpace(req.Gesture))
	if gestureName == "" {
		gestureName = "UNKNOWN"
	}
	score := 1.0
	if req.Score != nil {
		score = *req.Score
	}

	eventTime := req.Timestamp
	if eventTime == 0 {
		eventTime = float64(started.UnixNano()) / float64(time.Second)
	}

	outcome := h.mapper.Apply(gestureName, score, started)

	if outcome.Accepted {
		event := &store.Event{
			Time:         eventTime,
			Gesture:      gestureName,
			Command:      outcome.Command,
			Score:        score,
			SessionID:    req.SessionID,
			ResponseTime: float64(time.Since(started).Microseconds()) / 1000.0,
		}

		// Logging must not add latency to the event response.
		go func() {
			if err := h.events.Insert(event); err != nil {
				h.errors.Add(1)
				log.Printf("Failed to log gesture event: %v", err)
				return
			}
			h.analyzer.Invalidate()
		}()
	}

	writeJSON(w, http.StatusOK, outcome)
}

// HandleStats handles GET /api/stats. It reports the sink's request and
// error counters alongside the size of the event log.
func (h *EventsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	totalLogs, err := h.events.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to count events")
		return
	}

	state := h.mapper.Snapshot()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total_requests": state.TotalRequests,
		"error_count":    h.errors.Load(),
		"uptime_seconds": state.UptimeSec,
		"total_logs":     totalLogs,
	})
}

// HandleLogs handles GET /api/logs.
func (h *EventsHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	limit := defaultLogLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}

	events, err := h.events.Recent(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}
	if events == nil {
		events = []store.Event{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

// HandleExportCSV handles GET /api/logs/export.csv.
func (h *EventsHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	events, err := h.events.Recent(10000)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="gesture_logs.csv"`)

	cw := csv.NewWriter(w)
	cw.Write([]string{"id", "time", "gesture", "command", "score", "session_id", "response_time_ms"})
	for _, e := range events {
		cw.Write([]string{
			strconv.FormatInt(e.ID, 10),
			strconv.FormatFloat(e.Time, 'f', 3, 64),
			e.Gesture,
			e.Command,
			strconv.FormatFloat(e.Score, 'f', 4, 64),
			e.SessionID,
			strconv.FormatFloat(e.ResponseTime, 'f', 3, 64),
		})
	}
	cw.Flush()
}
