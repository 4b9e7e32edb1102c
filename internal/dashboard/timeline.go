package dashboard

import (
	"sync"
	"time"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

// DefaultTimelineCapacity is how many timeline entries the dashboard keeps.
const DefaultTimelineCapacity = 20

// TimelineEntry is one line of the operator timeline.
type TimelineEntry struct {
	At      time.Time       `json:"at"`
	Message string          `json:"message"`
	Level   domain.Severity `json:"level"`
}

// Timeline is a newest-first list of entries trimmed to a fixed capacity.
type Timeline struct {
	mu       sync.RWMutex
	entries  []TimelineEntry
	capacity int
}

func NewTimeline(capacity int) *Timeline {
	if capacity < 0 {
		capacity = 0
	}
	return &Timeline{capacity: capacity}
}

// Add prepends an entry and drops the oldest ones past capacity.
func (t *Timeline) Add(e TimelineEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = append([]TimelineEntry{e}, t.entries...)
	if len(t.entries) > t.capacity {
		t.entries = t.entries[:t.capacity]
	}
}

// Entries returns a newest-first copy.
func (t *Timeline) Entries() []TimelineEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]TimelineEntry(nil), t.entries...)
}

func (t *Timeline) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
