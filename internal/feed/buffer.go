package feed

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

// DefaultCapacity is the number of items the dashboard feed keeps.
const DefaultCapacity = 50

// ErrInvalidCapacity is returned when a buffer is configured with a negative capacity.
var ErrInvalidCapacity = errors.New("invalid capacity")

// FieldsFunc extracts the searchable text of an event.
type FieldsFunc func(domain.Event) []string

// DefaultFields searches the content, source name and location name of an event.
func DefaultFields(e domain.Event) []string {
	return []string{e.Content, e.SourceName, e.LocationName}
}

// Buffer is a newest-first, size-bounded sequence of events. Once full, every
// push evicts the oldest event regardless of its severity.
//
// Counts by severity and by source are maintained on every insert and
// eviction, so statistics are O(1). All methods are safe for concurrent use;
// an insert and the evictions it causes happen under one lock.
type Buffer struct {
	mu       sync.RWMutex
	capacity int
	ring     []domain.Event
	head     int // index of the oldest event
	size     int

	bySeverity map[domain.Severity]int
	sources    map[string]int

	onEvict func(domain.Event)
}

// NewBuffer creates an empty buffer. A zero capacity is legal: every push is
// evicted immediately.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, capacity)
	}

	return &Buffer{
		capacity:   capacity,
		ring:       make([]domain.Event, capacity),
		bySeverity: make(map[domain.Severity]int),
		sources:    make(map[string]int),
	}, nil
}

// OnEvict registers a hook called, outside the lock, for every evicted event.
// Must be set before the buffer is shared.
func (b *Buffer) OnEvict(fn func(domain.Event)) {
	b.onEvict = fn
}

// Push inserts an event at the head and evicts from the tail while over capacity.
func (b *Buffer) Push(e domain.Event) {
	evicted, ok := b.push(e)
	if ok && b.onEvict != nil {
		b.onEvict(evicted)
	}
}

func (b *Buffer) push(e domain.Event) (domain.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.capacity == 0 {
		return e, true
	}

	if b.size == b.capacity {
		oldest := b.ring[b.head]
		b.ring[b.head] = e
		b.head = (b.head + 1) % b.capacity
		b.forget(oldest)
		b.remember(e)
		return oldest, true
	}

	b.ring[(b.head+b.size)%b.capacity] = e
	b.size++
	b.remember(e)
	return domain.Event{}, false
}

func (b *Buffer) remember(e domain.Event) {
	b.bySeverity[e.Severity]++
	b.sources[e.SourceID]++
}

func (b *Buffer) forget(e domain.Event) {
	if n := b.bySeverity[e.Severity]; n <= 1 {
		delete(b.bySeverity, e.Severity)
	} else {
		b.bySeverity[e.Severity] = n - 1
	}

	if n := b.sources[e.SourceID]; n <= 1 {
		delete(b.sources, e.SourceID)
	} else {
		b.sources[e.SourceID] = n - 1
	}
}

// Clear empties the buffer and resets all statistics.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	clear(b.ring)
	b.head = 0
	b.size = 0
	clear(b.bySeverity)
	clear(b.sources)
}

// Len returns the number of retained events.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Cap returns the configured capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Items returns a newest-first copy of the retained events.
func (b *Buffer) Items() []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Event, 0, b.size)
	b.each(func(e domain.Event) {
		out = append(out, e)
	})
	return out
}

// each visits events newest-first. Caller holds the lock.
func (b *Buffer) each(fn func(domain.Event)) {
	for i := b.size - 1; i >= 0; i-- {
		fn(b.ring[(b.head+i)%b.capacity])
	}
}

// Summary is a consistent set of buffer statistics.
type Summary struct {
	Len             int
	BySeverity      map[domain.Severity]int
	DistinctSources int
}

// Summary reads every statistic under a single lock.
func (b *Buffer) Summary() Summary {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.summary()
}

func (b *Buffer) summary() Summary {
	bySeverity := make(map[domain.Severity]int, len(domain.Severities))
	for _, s := range domain.Severities {
		bySeverity[s] = b.bySeverity[s]
	}
	return Summary{
		Len:             b.size,
		BySeverity:      bySeverity,
		DistinctSources: len(b.sources),
	}
}

// Snapshot returns the items together with the statistics describing them.
func (b *Buffer) Snapshot() ([]domain.Event, Summary) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	items := make([]domain.Event, 0, b.size)
	b.each(func(e domain.Event) {
		items = append(items, e)
	})
	return items, b.summary()
}

// CountBySeverity returns how many retained events have the given severity.
func (b *Buffer) CountBySeverity(s domain.Severity) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.bySeverity[s]
}

// DistinctSourceCount returns the number of unique source IDs among retained events.
func (b *Buffer) DistinctSourceCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.sources)
}

// FilterByText returns, newest-first, the events where any field contains
// query case-insensitively. An empty query matches everything; nil fields
// falls back to DefaultFields.
func (b *Buffer) FilterByText(query string, fields FieldsFunc) []domain.Event {
	if fields == nil {
		fields = DefaultFields
	}
	q := strings.ToLower(query)

	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Event, 0)
	b.each(func(e domain.Event) {
		if q == "" || matches(fields(e), q) {
			out = append(out, e)
		}
	})
	return out
}

// FilterBySeverity returns the retained events of one severity, newest-first.
func (b *Buffer) FilterBySeverity(s domain.Severity) []domain.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Event, 0, b.bySeverity[s])
	b.each(func(e domain.Event) {
		if e.Severity == s {
			out = append(out, e)
		}
	})
	return out
}

func matches(fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
