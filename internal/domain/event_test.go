package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{in: "critical", want: SeverityCritical},
		{in: "HIGH", want: SeverityHigh},
		{in: " Medium ", want: SeverityMedium},
		{in: "low", want: SeverityLow},
		{in: "severe", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSeverity(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSeverity)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSeverity_RankOrdersCriticalFirst(t *testing.T) {
	for i := 1; i < len(Severities); i++ {
		assert.Less(t, Severities[i-1].Rank(), Severities[i].Rank())
	}
	assert.Greater(t, Severity("bogus").Rank(), SeverityLow.Rank())
}

func TestNewEvent_RejectsUnknownSeverity(t *testing.T) {
	_, err := NewEvent("evt-1", "apocalyptic", "@reuters", "eastern-europe", time.Now())
	require.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestNewEvent_RequiresID(t *testing.T) {
	_, err := NewEvent("", "low", "@reuters", "eastern-europe", time.Now())
	require.Error(t, err)
}

func TestNewEvent(t *testing.T) {
	now := time.Now()
	evt, err := NewEvent("evt-1", "Critical", "@reuters", "eastern-europe", now)
	require.NoError(t, err)

	assert.Equal(t, "evt-1", evt.ID)
	assert.Equal(t, SeverityCritical, evt.Severity)
	assert.Equal(t, "@reuters", evt.SourceID)
	assert.Equal(t, "eastern-europe", evt.LocationID)
	assert.Equal(t, now, evt.CreatedAt)
}

func TestGlobalThreatLevel(t *testing.T) {
	hs := func(levels ...Severity) []Hotspot {
		out := make([]Hotspot, len(levels))
		for i, l := range levels {
			out[i] = Hotspot{ID: i + 1, ThreatLevel: l}
		}
		return out
	}

	tests := []struct {
		name     string
		hotspots []Hotspot
		want     ThreatLevel
	}{
		{"two critical", hs(SeverityCritical, SeverityCritical), ThreatCritical},
		{"one critical", hs(SeverityCritical, SeverityLow), ThreatHigh},
		{"three high", hs(SeverityHigh, SeverityHigh, SeverityHigh), ThreatHigh},
		{"one high", hs(SeverityHigh, SeverityMedium), ThreatModerate},
		{"calm", hs(SeverityMedium, SeverityLow), ThreatLow},
		{"empty", nil, ThreatLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GlobalThreatLevel(tt.hotspots))
		})
	}
}
