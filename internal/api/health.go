package api

import (
	"net/http"

	"github.com/Priya8975/conflict-monitor/internal/notify"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status           string               `json:"status"`
	Version          string               `json:"version"`
	WebSocketClients int                  `json:"websocket_clients"`
	AlertPublisher   *notify.BreakerState `json:"alert_publisher,omitempty"`
}

// ClientCounter reports how many dashboards are connected.
type ClientCounter interface {
	ClientCount() int
}

// BreakerStatus reports the circuit breaker state of the alert publisher.
type BreakerStatus interface {
	State() notify.BreakerState
}

// HealthHandler returns the health check handler. The service reports itself
// degraded while the alert publisher's circuit is open.
func HealthHandler(clients ClientCounter, publisher BreakerStatus) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:  "healthy",
			Version: "1.0.0",
		}
		if clients != nil {
			resp.WebSocketClients = clients.ClientCount()
		}
		if publisher != nil {
			state := publisher.State()
			resp.AlertPublisher = &state
			if state.State == notify.StateOpen {
				resp.Status = "degraded"
			}
		}

		respondJSON(w, http.StatusOK, resp)
	}
}
