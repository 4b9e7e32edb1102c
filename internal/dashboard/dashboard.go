package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/Priya8975/conflict-monitor/internal/catalog"
	"github.com/Priya8975/conflict-monitor/internal/domain"
	"github.com/Priya8975/conflict-monitor/internal/notify"
)

// topSources is how many sources the reliability panel lists.
const topSources = 8

// Settings are the operator switches of the dashboard.
type Settings struct {
	SirenEnabled       bool          `json:"siren_enabled"`
	AutoRefreshEnabled bool          `json:"auto_refresh_enabled"`
	RefreshInterval    time.Duration `json:"refresh_interval"`
	TimelineCapacity   int           `json:"timeline_capacity"`
}

// Update kinds sent to observers.
const (
	UpdateTimeline    = "timeline"
	UpdateThreatLevel = "threat_level"
)

// Update tells observers that the timeline or the global threat level changed.
type Update struct {
	Kind        string             `json:"type"`
	Entry       *TimelineEntry     `json:"entry,omitempty"`
	ThreatLevel domain.ThreatLevel `json:"threat_level,omitempty"`
}

// Observer receives dashboard updates, e.g. to push them to browsers.
type Observer interface {
	Observe(ctx context.Context, u Update)
}

// Pausable is the refresh task as seen by the dashboard.
type Pausable interface {
	Pause()
	Resume()
}

// Assessment summarizes the hotspots behind the global threat level.
type Assessment struct {
	Level    domain.ThreatLevel `json:"level"`
	Critical int                `json:"critical"`
	High     int                `json:"high"`
	Summary  string             `json:"summary"`
}

// Dashboard holds the state shared by the feed, the refresh loop and the
// operator: siren and refresh switches, the timeline and the global threat
// level.
type Dashboard struct {
	catalog  *catalog.Store
	notifier notify.Notifier
	timeline *Timeline
	clock    clock.PassiveClock
	logger   *slog.Logger

	mu        sync.RWMutex
	settings  Settings
	level     domain.ThreatLevel
	refresh   Pausable
	observers []Observer
}

// New creates a dashboard whose timeline already holds the boot sequence.
func New(settings Settings, store *catalog.Store, notifier notify.Notifier, clk clock.PassiveClock, logger *slog.Logger) *Dashboard {
	if clk == nil {
		clk = clock.RealClock{}
	}
	if settings.TimelineCapacity < 0 {
		settings.TimelineCapacity = DefaultTimelineCapacity
	}

	d := &Dashboard{
		catalog:  store,
		notifier: notifier,
		timeline: NewTimeline(settings.TimelineCapacity),
		clock:    clk,
		logger:   logger,
		settings: settings,
		level:    domain.ThreatModerate,
	}

	now := clk.Now()
	boot := []TimelineEntry{
		{At: now.Add(-5 * time.Minute), Message: "Dashboard systems online", Level: domain.SeverityLow},
		{At: now.Add(-4 * time.Minute), Message: "Global monitoring network activated", Level: domain.SeverityMedium},
		{At: now.Add(-3 * time.Minute), Message: "Intelligence feeds synchronized", Level: domain.SeverityLow},
		{At: now.Add(-2 * time.Minute), Message: "Threat assessment protocols engaged", Level: domain.SeverityMedium},
	}
	for _, e := range boot {
		d.timeline.Add(e)
	}

	return d
}

// AddObserver registers a listener for timeline and threat level updates.
func (d *Dashboard) AddObserver(o Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// AttachRefresh hands the auto refresh task to the dashboard so the operator
// switch can pause and resume it.
func (d *Dashboard) AttachRefresh(task Pausable) {
	d.mu.Lock()
	d.refresh = task
	enabled := d.settings.AutoRefreshEnabled
	d.mu.Unlock()

	if !enabled {
		task.Pause()
	}
}

func (d *Dashboard) Settings() Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

func (d *Dashboard) SirenEnabled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings.SirenEnabled
}

// ToggleSiren flips the siren switch and returns the new state.
func (d *Dashboard) ToggleSiren(ctx context.Context) bool {
	d.mu.Lock()
	d.settings.SirenEnabled = !d.settings.SirenEnabled
	enabled := d.settings.SirenEnabled
	d.mu.Unlock()

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	d.logger.Info("siren toggled", "enabled", enabled)
	d.Record(ctx, "Siren "+state, domain.SeverityLow)
	return enabled
}

// SetAutoRefresh turns the periodic refresh on or off.
func (d *Dashboard) SetAutoRefresh(enabled bool) {
	d.mu.Lock()
	d.settings.AutoRefreshEnabled = enabled
	task := d.refresh
	d.mu.Unlock()

	if task != nil {
		if enabled {
			task.Resume()
		} else {
			task.Pause()
		}
	}
	d.logger.Info("auto refresh toggled", "enabled", enabled)
}

// Refresh is the body of the auto refresh task.
func (d *Dashboard) Refresh(ctx context.Context) {
	d.Record(ctx, "System refresh completed", domain.SeverityLow)
	d.logger.Debug("auto refresh completed")
}

// ThreatLevel returns the last computed global threat level.
func (d *Dashboard) ThreatLevel() domain.ThreatLevel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.level
}

// UpdateThreatLevel recomputes the global threat level from the hotspots. A
// change is recorded on the timeline and broadcast; reaching CRITICAL also
// triggers the critical alert.
func (d *Dashboard) UpdateThreatLevel(ctx context.Context) domain.ThreatLevel {
	next := domain.GlobalThreatLevel(d.catalog.Current().Hotspots)

	d.mu.Lock()
	prev := d.level
	d.level = next
	d.mu.Unlock()

	if next == prev {
		return next
	}

	d.logger.Info("global threat level changed", "from", prev, "to", next)

	level := domain.SeverityHigh
	if next == domain.ThreatCritical {
		level = domain.SeverityCritical
	}
	d.Record(ctx, fmt.Sprintf("Global threat level changed to %s", next), level)
	d.notifyObservers(ctx, Update{Kind: UpdateThreatLevel, ThreatLevel: next})

	if next == domain.ThreatCritical {
		d.TriggerCriticalAlert(ctx)
	}
	return next
}

// TriggerCriticalAlert sounds the siren, when enabled, and records the alert.
func (d *Dashboard) TriggerCriticalAlert(ctx context.Context) {
	if d.SirenEnabled() && d.notifier != nil {
		err := d.notifier.Notify(ctx, notify.Alert{
			Kind:     notify.KindThreatLevel,
			Severity: domain.SeverityCritical,
			Message:  "CRITICAL THREAT LEVEL - IMMEDIATE ATTENTION REQUIRED",
			At:       d.clock.Now(),
		})
		if err != nil {
			d.logger.Error("failed to raise threat level alert", "error", err)
		}
	}
	d.Record(ctx, "Critical threat level alert triggered", domain.SeverityCritical)
}

// Assess counts the critical and high hotspots behind the current level.
func (d *Dashboard) Assess() Assessment {
	hotspots := d.catalog.Current().Hotspots
	var critical, high int
	for _, h := range hotspots {
		switch h.ThreatLevel {
		case domain.SeverityCritical:
			critical++
		case domain.SeverityHigh:
			high++
		}
	}

	return Assessment{
		Level:    domain.GlobalThreatLevel(hotspots),
		Critical: critical,
		High:     high,
		Summary:  fmt.Sprintf("Current Assessment: %d critical, %d high-risk regions monitored", critical, high),
	}
}

// RiskRegions returns the critical and high hotspots, most severe first.
func (d *Dashboard) RiskRegions() []domain.Hotspot {
	var out []domain.Hotspot
	for _, h := range d.catalog.Current().Hotspots {
		if h.ThreatLevel == domain.SeverityCritical || h.ThreatLevel == domain.SeverityHigh {
			out = append(out, h)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Hotspot) int {
		return a.ThreatLevel.Rank() - b.ThreatLevel.Rank()
	})
	return out
}

// SourceReliability returns the most reliable sources, best first.
func (d *Dashboard) SourceReliability() []domain.Source {
	sources := slices.Clone(d.catalog.Current().Sources)
	slices.SortStableFunc(sources, func(a, b domain.Source) int {
		return b.Reliability - a.Reliability
	})
	if len(sources) > topSources {
		sources = sources[:topSources]
	}
	return sources
}

// Timeline returns the timeline entries, newest first.
func (d *Dashboard) Timeline() []TimelineEntry {
	return d.timeline.Entries()
}

// Record appends a timeline entry and broadcasts it.
func (d *Dashboard) Record(ctx context.Context, message string, level domain.Severity) {
	e := TimelineEntry{At: d.clock.Now(), Message: message, Level: level}
	d.timeline.Add(e)
	d.notifyObservers(ctx, Update{Kind: UpdateTimeline, Entry: &e})
}

func (d *Dashboard) notifyObservers(ctx context.Context, u Update) {
	d.mu.RLock()
	observers := d.observers
	d.mu.RUnlock()

	for _, o := range observers {
		o.Observe(ctx, u)
	}
}
