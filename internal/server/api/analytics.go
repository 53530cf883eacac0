package api

import (
	"net/http"

	"github.com/ayusman/mudra/internal/analytics"
)

// AnalyticsHandler serves analytics summaries and the HTML report.
type AnalyticsHandler struct {
	analyzer *analytics.Analyzer
}

// NewAnalyticsHandler creates an AnalyticsHandler.
func NewAnalyticsHandler(analyzer *analytics.Analyzer) *AnalyticsHandler {
	return &AnalyticsHandler{analyzer: analyzer}
}

// HandleSummary handles GET /api/analytics.
func (h *AnalyticsHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	summary, err := h.analyzer.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// HandleReport handles GET /api/analytics/report.
func (h *AnalyticsHandler) HandleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	summary, err := h.analyzer.Summary()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := analytics.RenderReport(w, summary); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render report")
	}
}
