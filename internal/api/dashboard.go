package api

import (
	"encoding/json"
	"net/http"

	"github.com/Priya8975/conflict-monitor/internal/dashboard"
	"github.com/Priya8975/conflict-monitor/internal/domain"
)

type DashboardHandler struct {
	dash *dashboard.Dashboard
}

func NewDashboardHandler(d *dashboard.Dashboard) *DashboardHandler {
	return &DashboardHandler{dash: d}
}

// ThreatLevel returns the current global assessment.
func (h *DashboardHandler) ThreatLevel(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dash.Assess())
}

// Regions returns the critical and high risk hotspots, most severe first.
func (h *DashboardHandler) Regions(w http.ResponseWriter, r *http.Request) {
	regions := h.dash.RiskRegions()
	if regions == nil {
		regions = []domain.Hotspot{}
	}
	respondJSON(w, http.StatusOK, regions)
}

func (h *DashboardHandler) Sources(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dash.SourceReliability())
}

func (h *DashboardHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dash.Timeline())
}

func (h *DashboardHandler) Settings(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.dash.Settings())
}

func (h *DashboardHandler) ToggleSiren(w http.ResponseWriter, r *http.Request) {
	h.dash.ToggleSiren(r.Context())
	respondJSON(w, http.StatusOK, h.dash.Settings())
}

type autoRefreshRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *DashboardHandler) SetAutoRefresh(w http.ResponseWriter, r *http.Request) {
	var req autoRefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Enabled == nil {
		respondError(w, http.StatusBadRequest, "enabled is required")
		return
	}

	h.dash.SetAutoRefresh(*req.Enabled)
	respondJSON(w, http.StatusOK, h.dash.Settings())
}
