package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Priya8975/conflict-monitor/internal/domain"
	"github.com/Priya8975/conflict-monitor/internal/feed"
	"github.com/Priya8975/conflict-monitor/internal/notify"
)

// Metrics exposes the feed statistics to Prometheus. It is registered as a
// feed renderer, so the gauges follow every change.
type Metrics struct {
	registry *prometheus.Registry

	FeedItems           *prometheus.GaugeVec
	FeedDistinctSources prometheus.Gauge
	FeedActiveIncidents prometheus.Gauge
	FeedItemsAdded      *prometheus.CounterVec
	FeedItemsEvicted    prometheus.Counter
	FeedClears          prometheus.Counter
	AlertsRaised        *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		FeedItems: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "conflict_feed_items",
			Help: "Items currently retained in the feed, by severity",
		}, []string{"severity"}),
		FeedDistinctSources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "conflict_feed_distinct_sources",
			Help: "Number of distinct sources among retained feed items",
		}),
		FeedActiveIncidents: factory.NewGauge(prometheus.GaugeOpts{
			Name: "conflict_feed_active_incidents",
			Help: "Weighted incident count (critical counts double)",
		}),
		FeedItemsAdded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conflict_feed_items_added_total",
			Help: "Total number of items added to the feed, by severity",
		}, []string{"severity"}),
		FeedItemsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Name: "conflict_feed_items_evicted_total",
			Help: "Total number of items evicted because the feed was full",
		}),
		FeedClears: factory.NewCounter(prometheus.CounterOpts{
			Name: "conflict_feed_clears_total",
			Help: "Total number of times the feed was cleared",
		}),
		AlertsRaised: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "conflict_alerts_raised_total",
			Help: "Total number of siren alerts raised, by kind",
		}, []string{"kind"}),
	}
}

// Render updates the gauges from a feed change.
func (m *Metrics) Render(_ context.Context, change feed.Change) {
	switch change.Kind {
	case feed.ChangeAdded:
		if change.Event != nil {
			m.FeedItemsAdded.WithLabelValues(string(change.Event.Severity)).Inc()
		}
	case feed.ChangeCleared:
		m.FeedClears.Inc()
	}

	for _, s := range domain.Severities {
		m.FeedItems.WithLabelValues(string(s)).Set(float64(change.Stats.BySeverity[s]))
	}
	m.FeedDistinctSources.Set(float64(change.Stats.DistinctSources))
	m.FeedActiveIncidents.Set(float64(change.Stats.ActiveIncidents))
}

// Evicted counts an item pushed out of a full feed.
func (m *Metrics) Evicted(domain.Event) {
	m.FeedItemsEvicted.Inc()
}

// Notify counts an alert. It never fails so it can sit in a notify.Multi.
func (m *Metrics) Notify(_ context.Context, alert notify.Alert) error {
	m.AlertsRaised.WithLabelValues(alert.Kind).Inc()
	return nil
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
