package api

import (
	"net/http"
	"strings"

	"github.com/Priya8975/conflict-monitor/internal/domain"
	"github.com/Priya8975/conflict-monitor/internal/feed"
)

type FeedHandler struct {
	manager *feed.Manager
}

func NewFeedHandler(m *feed.Manager) *FeedHandler {
	return &FeedHandler{manager: m}
}

type searchResponse struct {
	Query string         `json:"query"`
	Items []domain.Event `json:"items"`
	Count int            `json:"count"`
}

// List returns the retained items newest-first together with the feed stats.
// An optional severity query parameter narrows the items.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("severity")
	if raw == "" {
		respondJSON(w, http.StatusOK, h.manager.Snapshot())
		return
	}

	severity, err := domain.ParseSeverity(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "severity must be one of critical, high, medium, low")
		return
	}

	items := h.manager.ItemsBySeverity(severity)
	respondJSON(w, http.StatusOK, feed.Snapshot{
		Items: nonNil(items),
		Stats: h.manager.Stats(),
	})
}

func (h *FeedHandler) Stats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Stats())
}

// Search matches the query against content, source and location, case-insensitively.
func (h *FeedHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	items := nonNil(h.manager.Search(q))

	respondJSON(w, http.StatusOK, searchResponse{
		Query: q,
		Items: items,
		Count: len(items),
	})
}

func (h *FeedHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.manager.Clear(r.Context())
	respondJSON(w, http.StatusOK, h.manager.Stats())
}

func (h *FeedHandler) Pause(w http.ResponseWriter, r *http.Request) {
	h.manager.Pause()
	respondJSON(w, http.StatusOK, h.manager.Stats())
}

func (h *FeedHandler) Resume(w http.ResponseWriter, r *http.Request) {
	h.manager.Resume()
	respondJSON(w, http.StatusOK, h.manager.Stats())
}

func nonNil(items []domain.Event) []domain.Event {
	if items == nil {
		return []domain.Event{}
	}
	return items
}
