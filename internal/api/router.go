package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Priya8975/conflict-monitor/internal/dashboard"
	"github.com/Priya8975/conflict-monitor/internal/feed"
	"github.com/Priya8975/conflict-monitor/internal/notify"
	ws "github.com/Priya8975/conflict-monitor/internal/websocket"
)

// NewRouter creates and configures the HTTP router. A nil metrics handler
// leaves /api/v1/metrics unmounted; a nil publisher omits the alert
// publisher from the health check.
func NewRouter(manager *feed.Manager, dash *dashboard.Dashboard, hub *ws.Hub, metrics http.Handler, publisher *notify.Breaker) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// CORS for dashboard
	r.Use(corsMiddleware)

	feedHandler := NewFeedHandler(manager)
	dashHandler := NewDashboardHandler(dash)

	// WebSocket endpoint
	var clients ClientCounter
	if hub != nil {
		r.Get("/ws", hub.HandleWebSocket)
		clients = hub
	}

	var publisherStatus BreakerStatus
	if publisher != nil {
		publisherStatus = publisher
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", HealthHandler(clients, publisherStatus))

		r.Route("/feed", func(r chi.Router) {
			r.Get("/", feedHandler.List)
			r.Get("/stats", feedHandler.Stats)
			r.Get("/search", feedHandler.Search)
			r.Post("/clear", feedHandler.Clear)
			r.Post("/pause", feedHandler.Pause)
			r.Post("/resume", feedHandler.Resume)
		})

		r.Get("/threat-level", dashHandler.ThreatLevel)
		r.Get("/regions", dashHandler.Regions)
		r.Get("/sources", dashHandler.Sources)
		r.Get("/timeline", dashHandler.Timeline)
		r.Get("/settings", dashHandler.Settings)
		r.Post("/siren/toggle", dashHandler.ToggleSiren)
		r.Post("/auto-refresh", dashHandler.SetAutoRefresh)

		if metrics != nil {
			r.Handle("/metrics", metrics)
		}
	})

	return r
}

// corsMiddleware adds CORS headers for dashboard development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
