package catalog

import "github.com/Priya8975/conflict-monitor/internal/domain"

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Sources: []domain.Source{
			{Name: "CNN Breaking", Handle: "@cnnbrk", Reliability: 95, Type: "major"},
			{Name: "BBC Breaking", Handle: "@bbcbreaking", Reliability: 98, Type: "major"},
			{Name: "Reuters", Handle: "@reuters", Reliability: 97, Type: "major"},
			{Name: "AP News", Handle: "@ap", Reliability: 96, Type: "major"},
			{Name: "Sky News", Handle: "@skynews", Reliability: 92, Type: "major"},
			{Name: "Al Jazeera", Handle: "@ajenglish", Reliability: 88, Type: "major"},
			{Name: "Washington Post", Handle: "@washingtonpost", Reliability: 91, Type: "major"},
			{Name: "Guardian News", Handle: "@guardian", Reliability: 89, Type: "major"},
			{Name: "Defense Reporter", Handle: "@defenseone", Reliability: 85, Type: "specialist"},
			{Name: "Conflict Monitor", Handle: "@conflictwatch", Reliability: 82, Type: "specialist"},
			{Name: "Military Times", Handle: "@militarytimes", Reliability: 87, Type: "specialist"},
			{Name: "Jane's Defence", Handle: "@janesdefence", Reliability: 90, Type: "specialist"},
		},
		Hotspots: []domain.Hotspot{
			{ID: 1, Name: "Eastern Europe", Coordinates: domain.Coordinates{Lat: 50.4501, Lng: 30.5234}, ThreatLevel: domain.SeverityCritical, Country: "Ukraine", Incidents: 45},
			{ID: 2, Name: "South China Sea", Coordinates: domain.Coordinates{Lat: 16.0, Lng: 113.0}, ThreatLevel: domain.SeverityHigh, Country: "Disputed Waters", Incidents: 12},
			{ID: 3, Name: "Middle East", Coordinates: domain.Coordinates{Lat: 33.3152, Lng: 44.3661}, ThreatLevel: domain.SeverityHigh, Country: "Iraq/Syria Border", Incidents: 28},
			{ID: 4, Name: "Korean Peninsula", Coordinates: domain.Coordinates{Lat: 38.5, Lng: 127.5}, ThreatLevel: domain.SeverityMedium, Country: "DMZ", Incidents: 3},
			{ID: 5, Name: "Kashmir Region", Coordinates: domain.Coordinates{Lat: 34.0837, Lng: 74.7973}, ThreatLevel: domain.SeverityMedium, Country: "India/Pakistan Border", Incidents: 7},
			{ID: 6, Name: "Gaza Strip", Coordinates: domain.Coordinates{Lat: 31.3547, Lng: 34.3088}, ThreatLevel: domain.SeverityHigh, Country: "Palestine/Israel", Incidents: 23},
			{ID: 7, Name: "Taiwan Strait", Coordinates: domain.Coordinates{Lat: 24.0, Lng: 120.0}, ThreatLevel: domain.SeverityMedium, Country: "Taiwan", Incidents: 8},
			{ID: 8, Name: "Baltic States", Coordinates: domain.Coordinates{Lat: 56.9496, Lng: 24.1052}, ThreatLevel: domain.SeverityMedium, Country: "Estonia/Latvia/Lithuania", Incidents: 5},
		},
		Templates: map[domain.Severity][]string{
			domain.SeverityCritical: {
				"BREAKING: Military mobilization reported in {location}. Multiple sources confirm significant troop movements.",
				"ALERT: Air defense systems activated in {location}. Civilian evacuation orders issued.",
				"URGENT: Cyber attacks targeting critical infrastructure in {location}. Government response underway.",
				"CRITICAL: Naval forces deployment confirmed in {location}. International waters disputed.",
				"BREAKING: Emergency session called by {location} leadership. Military readiness level raised.",
			},
			domain.SeverityHigh: {
				"Military exercises begin near {location}. Tensions escalating with neighboring regions.",
				"Intelligence reports unusual activity in {location}. Diplomatic channels activated.",
				"Defense systems on high alert in {location}. Border security increased.",
				"Sanctions announced against {location}. Economic warfare intensifies.",
				"Strategic assets moved to {location}. Regional stability concerns grow.",
			},
			domain.SeverityMedium: {
				"Diplomatic talks scheduled for {location} crisis. Peace negotiations ongoing.",
				"Monitoring increased military communications from {location} region.",
				"Economic indicators show strain in {location}. Market volatility observed.",
				"Satellite imagery reveals infrastructure changes in {location}.",
				"Official statement expected from {location} government regarding recent tensions.",
			},
			domain.SeverityLow: {
				"Routine military patrol reported near {location}. Standard operations continue.",
				"Humanitarian aid delivery to {location}. International cooperation maintained.",
				"Stability index shows improvement in {location} region.",
				"Regular diplomatic exchange with {location}. Channels remain open.",
				"Policy review announced for {location} relations. Standard procedure.",
			},
		},
	}
}
