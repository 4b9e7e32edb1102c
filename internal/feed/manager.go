package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/Priya8975/conflict-monitor/internal/domain"
	"github.com/Priya8975/conflict-monitor/internal/notify"
	"github.com/Priya8975/conflict-monitor/internal/scheduler"
)

// Change kinds passed to renderers.
const (
	ChangeAdded   = "feed_item"
	ChangeCleared = "feed_cleared"
)

// Change describes one mutation of the feed, with the statistics as they
// stand right after it.
type Change struct {
	Kind  string        `json:"type"`
	Event *domain.Event `json:"event,omitempty"`
	Stats Stats         `json:"stats"`
}

// Renderer redraws a view of the feed. Renderers never mutate the feed.
type Renderer interface {
	Render(ctx context.Context, change Change)
}

// SirenSwitch reports whether critical items should raise an alert.
type SirenSwitch interface {
	SirenEnabled() bool
}

// Stats are the summary counters shown above the feed.
type Stats struct {
	Total           int                     `json:"total"`
	Capacity        int                     `json:"capacity"`
	BySeverity      map[domain.Severity]int `json:"by_severity"`
	DistinctSources int                     `json:"distinct_sources"`
	ActiveIncidents int                     `json:"active_incidents"`
	Paused          bool                    `json:"paused"`
	LastUpdate      time.Time               `json:"last_update,omitzero"`
}

// Snapshot is a consistent read of the feed contents and its statistics.
type Snapshot struct {
	Items []domain.Event `json:"items"`
	Stats Stats          `json:"stats"`
}

// Manager owns the feed buffer. It adds generated items, tells renderers
// about every change and raises an alert for critical items while the siren
// is on.
type Manager struct {
	buffer    *Buffer
	generator *Generator
	notifier  notify.Notifier
	siren     SirenSwitch
	clock     clock.Clock
	logger    *slog.Logger

	// serializes mutations so renderers see changes in order
	writeMu sync.Mutex

	mu         sync.RWMutex
	renderers  []Renderer
	paused     bool
	lastUpdate time.Time
}

// NewManager wires a feed. notifier and siren may be nil, in which case no
// alerts are raised.
func NewManager(buffer *Buffer, generator *Generator, notifier notify.Notifier, siren SirenSwitch, clk clock.Clock, logger *slog.Logger) *Manager {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Manager{
		buffer:    buffer,
		generator: generator,
		notifier:  notifier,
		siren:     siren,
		clock:     clk,
		logger:    logger,
	}
}

// AddRenderer registers a view to redraw after every change.
func (m *Manager) AddRenderer(r Renderer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renderers = append(m.renderers, r)
}

// Add pushes an item, redraws every renderer and, for critical items with the
// siren on, raises an alert.
func (m *Manager) Add(ctx context.Context, e domain.Event) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.buffer.Push(e)
	m.touch()

	m.logger.Debug("feed item added",
		"event_id", e.ID,
		"severity", e.Severity,
		"location_id", e.LocationID,
		"source_id", e.SourceID,
	)

	m.render(ctx, Change{Kind: ChangeAdded, Event: &e, Stats: m.Stats()})

	if e.Severity == domain.SeverityCritical {
		m.alert(ctx, e)
	}
}

func (m *Manager) alert(ctx context.Context, e domain.Event) {
	if m.notifier == nil || m.siren == nil || !m.siren.SirenEnabled() {
		return
	}

	err := m.notifier.Notify(ctx, notify.Alert{
		Kind:       notify.KindCriticalItem,
		Severity:   e.Severity,
		Message:    e.Content,
		LocationID: e.LocationID,
		EventID:    e.ID,
		At:         m.clock.Now(),
	})
	if err != nil {
		m.logger.Error("failed to raise critical alert", "error", err, "event_id", e.ID)
	}
}

// Generate adds one generated item unless the feed is paused. It is the
// body of the periodic feed task.
func (m *Manager) Generate(ctx context.Context) {
	if m.Paused() {
		return
	}
	m.generateOne(ctx)
}

func (m *Manager) generateOne(ctx context.Context) {
	e, err := m.generator.Next()
	if err != nil {
		m.logger.Error("failed to generate feed item", "error", err)
		return
	}
	m.Add(ctx, e)
}

// Seed fills the feed with n items spaced apart, like the dashboard does on
// start-up. Seeding ignores the pause switch.
func (m *Manager) Seed(ctx context.Context, n int, spacing time.Duration) error {
	return scheduler.Burst(ctx, m.clock, n, spacing, m.generateOne)
}

// Clear empties the feed and redraws every renderer.
func (m *Manager) Clear(ctx context.Context) {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.buffer.Clear()
	m.touch()
	m.logger.Info("feed cleared")

	m.render(ctx, Change{Kind: ChangeCleared, Stats: m.Stats()})
}

func (m *Manager) render(ctx context.Context, c Change) {
	m.mu.RLock()
	renderers := m.renderers
	m.mu.RUnlock()

	for _, r := range renderers {
		r.Render(ctx, c)
	}
}

func (m *Manager) touch() {
	m.mu.Lock()
	m.lastUpdate = m.clock.Now()
	m.mu.Unlock()
}

// Pause stops Generate from adding items.
func (m *Manager) Pause() {
	m.setPaused(true)
}

func (m *Manager) Resume() {
	m.setPaused(false)
}

func (m *Manager) setPaused(p bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = p
}

func (m *Manager) Paused() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paused
}

// Stats computes the summary counters.
func (m *Manager) Stats() Stats {
	return m.stats(m.buffer.Summary())
}

// stats builds the counters from a buffer summary. Active incidents weigh a
// critical item twice as much as a high one.
func (m *Manager) stats(sum Summary) Stats {
	m.mu.RLock()
	paused, lastUpdate := m.paused, m.lastUpdate
	m.mu.RUnlock()

	return Stats{
		Total:           sum.Len,
		Capacity:        m.buffer.Cap(),
		BySeverity:      sum.BySeverity,
		DistinctSources: sum.DistinctSources,
		ActiveIncidents: sum.BySeverity[domain.SeverityCritical]*2 + sum.BySeverity[domain.SeverityHigh],
		Paused:          paused,
		LastUpdate:      lastUpdate,
	}
}

// Snapshot returns the items and statistics as of one instant.
func (m *Manager) Snapshot() Snapshot {
	items, sum := m.buffer.Snapshot()
	return Snapshot{Items: items, Stats: m.stats(sum)}
}

// Search returns items matching query across content, source and location.
func (m *Manager) Search(query string) []domain.Event {
	return m.buffer.FilterByText(query, DefaultFields)
}

// ItemsBySeverity returns the retained items of one severity, newest-first.
func (m *Manager) ItemsBySeverity(s domain.Severity) []domain.Event {
	return m.buffer.FilterBySeverity(s)
}
