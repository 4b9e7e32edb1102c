package domain

import "strings"

// Source is a news outlet the generator attributes items to.
type Source struct {
	Name        string `json:"name"`
	Handle      string `json:"handle"`
	Reliability int    `json:"reliability"`
	Type        string `json:"type"`
}

// Hotspot is a monitored region with a static threat level.
type Hotspot struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	ThreatLevel Severity    `json:"threat_level"`
	Country     string      `json:"country"`
	Incidents   int         `json:"incidents"`
}

// LocationID is the stable identifier events use for this hotspot,
// e.g. "south-china-sea".
func (h Hotspot) LocationID() string {
	return strings.Join(strings.Fields(strings.ToLower(h.Name)), "-")
}

// ThreatLevel is the global, dashboard-wide assessment derived from hotspots.
type ThreatLevel string

const (
	ThreatCritical ThreatLevel = "CRITICAL"
	ThreatHigh     ThreatLevel = "HIGH"
	ThreatModerate ThreatLevel = "MODERATE"
	ThreatLow      ThreatLevel = "LOW"
)

// GlobalThreatLevel assesses the hotspots as a whole: two critical regions make
// the world critical, one critical or three high make it high.
func GlobalThreatLevel(hotspots []Hotspot) ThreatLevel {
	var critical, high int
	for _, h := range hotspots {
		switch h.ThreatLevel {
		case SeverityCritical:
			critical++
		case SeverityHigh:
			high++
		}
	}

	switch {
	case critical >= 2:
		return ThreatCritical
	case critical >= 1 || high >= 3:
		return ThreatHigh
	case high >= 1:
		return ThreatModerate
	default:
		return ThreatLow
	}
}
