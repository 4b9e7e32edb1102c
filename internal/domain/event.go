package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidSeverity is returned when an event or hotspot carries an unknown severity tag.
var ErrInvalidSeverity = errors.New("invalid severity")

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists every severity from most to least severe.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// ParseSeverity converts a tag such as "HIGH" or "high" into a Severity.
func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToLower(strings.TrimSpace(s)))
	if !sev.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
	return sev, nil
}

func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return true
	}
	return false
}

// Rank orders severities for display: critical is 0, low is 3, unknown sorts last.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 4
}

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Event is one simulated news item. Events are immutable once created.
type Event struct {
	ID           string      `json:"id"`
	Severity     Severity    `json:"severity"`
	SourceID     string      `json:"source_id"`
	SourceName   string      `json:"source_name"`
	Reliability  int         `json:"reliability"`
	LocationID   string      `json:"location_id"`
	LocationName string      `json:"location_name"`
	Country      string      `json:"country,omitempty"`
	Coordinates  Coordinates `json:"coordinates"`
	Content      string      `json:"content"`
	URL          string      `json:"url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// NewEvent validates the severity tag before building the event. The feed
// buffer trusts whatever it is given, so this is the only severity check.
func NewEvent(id, severity, sourceID, locationID string, createdAt time.Time) (Event, error) {
	sev, err := ParseSeverity(severity)
	if err != nil {
		return Event{}, err
	}
	if id == "" {
		return Event{}, fmt.Errorf("event id is required")
	}

	return Event{
		ID:         id,
		Severity:   sev,
		SourceID:   sourceID,
		LocationID: locationID,
		CreatedAt:  createdAt,
	}, nil
}
