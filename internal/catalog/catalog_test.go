package catalog

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

const testCatalogYAML = `
sources:
  - name: Reuters
    handle: "@reuters"
    reliability: 97
    type: major
hotspots:
  - id: 1
    name: Eastern Europe
    coordinates: {lat: 50.45, lng: 30.52}
    threat_level: CRITICAL
    country: Ukraine
    incidents: 45
templates:
  critical:
    - "BREAKING: mobilization in {location}"
`

func TestDefault_IsValid(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.Len(t, c.Sources, 12)
	assert.Len(t, c.Hotspots, 8)
	for _, sev := range domain.Severities {
		assert.Len(t, c.Templates[sev], 5, "templates for %s", sev)
	}
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a := Default()
	a.Hotspots[0].ThreatLevel = domain.SeverityLow

	assert.Equal(t, domain.SeverityCritical, Default().Hotspots[0].ThreatLevel)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(testCatalogYAML))
	require.NoError(t, err)

	require.Len(t, c.Hotspots, 1)
	assert.Equal(t, domain.SeverityCritical, c.Hotspots[0].ThreatLevel)
	assert.Equal(t, 50.45, c.Hotspots[0].Coordinates.Lat)
	assert.Equal(t, "@reuters", c.Sources[0].Handle)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"no sources", "hotspots: [{name: X, threat_level: low}]\ntemplates: {low: [a]}", "no sources"},
		{"no hotspots", "sources: [{name: R, handle: '@r'}]", "no hotspots"},
		{"bad severity", strings.Replace(testCatalogYAML, "CRITICAL", "apocalyptic", 1), "invalid severity"},
		{"missing templates", strings.Replace(testCatalogYAML, "critical:", "low:", 1), "no templates"},
		{"not yaml", "sources: [", "parsing catalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_BadSeverityWrapsSentinel(t *testing.T) {
	_, err := Parse([]byte(strings.Replace(testCatalogYAML, "CRITICAL", "severe", 1)))
	require.ErrorIs(t, err, domain.ErrInvalidSeverity)
}

func TestCatalog_Hotspot(t *testing.T) {
	c := Default()

	h, ok := c.Hotspot("south-china-sea")
	require.True(t, ok)
	assert.Equal(t, "South China Sea", h.Name)

	_, ok = c.Hotspot("atlantis")
	assert.False(t, ok)
}

func TestRender(t *testing.T) {
	assert.Equal(t, "Troops near Gaza Strip.", Render("Troops near {location}.", "Gaza Strip"))
	assert.Equal(t, "no placeholder", Render("no placeholder", "Gaza Strip"))
}

func TestStore(t *testing.T) {
	first := Default()
	s := NewStore(first)
	assert.Same(t, first, s.Current())

	second := Default()
	s.Set(second)
	assert.Same(t, second, s.Current())
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))

	store := NewStore(Default())
	reloaded := make(chan *Catalog, 4)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewWatcher(path, store, logger, func(c *Catalog) { reloaded <- c })
	require.NoError(t, err)
	defer w.Stop()

	updated := strings.Replace(testCatalogYAML, "Reuters", "Reuters Wire", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))

	select {
	case c := <-reloaded:
		assert.Equal(t, "Reuters Wire", c.Sources[0].Name)
	case <-time.After(5 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
	assert.Equal(t, "Reuters Wire", store.Current().Sources[0].Name)
}

func TestWatcher_KeepsPreviousOnInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testCatalogYAML), 0o644))

	initial := Default()
	store := NewStore(initial)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewWatcher(path, store, logger, nil)
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("sources: ["), 0o644))
	time.Sleep(3 * watcherDebounceInterval)

	assert.Same(t, initial, store.Current())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w, err := NewWatcher(filepath.Join(dir, "catalog.yaml"), NewStore(Default()), logger, nil)
	require.NoError(t, err)

	w.Stop()
	w.Stop()
}
