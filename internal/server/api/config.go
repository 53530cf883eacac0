package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ayusman/mudra/internal/command"
	"github.com/ayusman/mudra/internal/gesture"
	"github.com/ayusman/mudra/internal/store"
)

// ConfigHandler handles the runtime recognition configuration.
type ConfigHandler struct {
	settings *gesture.Settings
	repo     *store.SettingsRepository
}

// NewConfigHandler creates a ConfigHandler. repo may be nil, in which case
// updates apply in memory only.
func NewConfigHandler(settings *gesture.Settings, repo *store.SettingsRepository) *ConfigHandler {
	return &ConfigHandler{settings: settings, repo: repo}
}

// ServeHTTP handles GET and POST /api/config.
func (h *ConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.settings.Snapshot())
	case http.MethodPost:
		h.update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// update applies a configuration change. The submitted config is clamped to
// documented bounds rather than rejected, so out-of-range values degrade
// gracefully.
func (h *ConfigHandler) update(w http.ResponseWriter, r *http.Request) {
	// Start from the current snapshot so partial updates keep unset fields.
	cfg := *h.settings.Snapshot()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	normalized := cfg.Normalized()
	h.settings.Update(normalized)

	if h.repo != nil {
		if err := h.repo.SetJSON(store.SettingRecognition, normalized); err != nil {
			log.Printf("Failed to persist config: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, normalized)
}

// MappingHandler handles the gesture to command mapping table.
type MappingHandler struct {
	mapper *command.Mapper
	repo   *store.SettingsRepository
}

// NewMappingHandler creates a MappingHandler. repo may be nil.
func NewMappingHandler(mapper *command.Mapper, repo *store.SettingsRepository) *MappingHandler {
	return &MappingHandler{mapper: mapper, repo: repo}
}

type mappingResponse struct {
	Mapping     map[string]string `json:"mapping"`
	DebounceSec float64           `json:"debounce_sec"`
}

type mappingRequest struct {
	Mapping     map[string]string `json:"mapping"`
	DebounceSec float64           `json:"debounce_sec"`
}

// ServeHTTP handles GET and POST /api/mapping.
func (h *MappingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, mappingResponse{
			Mapping:     h.mapper.Mapping(),
			DebounceSec: h.mapper.Debounce().Seconds(),
		})
	case http.MethodPost:
		h.update(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *MappingHandler) update(w http.ResponseWriter, r *http.Request) {
	var req mappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Mapping) > 0 {
		h.mapper.SetMapping(req.Mapping)
	}
	if req.DebounceSec > 0 {
		h.mapper.SetDebounce(req.DebounceSec)
	}

	if h.repo != nil {
		if err := h.repo.SetJSON(store.SettingMapping, h.mapper.Mapping()); err != nil {
			log.Printf("Failed to persist mapping: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, mappingResponse{
		Mapping:     h.mapper.Mapping(),
		DebounceSec: h.mapper.Debounce().Seconds(),
	})
}
