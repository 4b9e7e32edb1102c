package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"sigs.k8s.io/yaml"

	"github.com/Priya8975/conflict-monitor/internal/domain"
)

// LocationPlaceholder is replaced by the hotspot name when a template is rendered.
const LocationPlaceholder = "{location}"

// Catalog is the fixed set of sources, hotspots and news templates the
// generator draws from.
type Catalog struct {
	Sources   []domain.Source              `json:"sources"`
	Hotspots  []domain.Hotspot             `json:"hotspots"`
	Templates map[domain.Severity][]string `json:"templates"`
}

// Validate checks that a generator can always produce an item from the catalog.
func (c *Catalog) Validate() error {
	if len(c.Sources) == 0 {
		return errors.New("catalog has no sources")
	}
	if len(c.Hotspots) == 0 {
		return errors.New("catalog has no hotspots")
	}

	for _, s := range c.Sources {
		if s.Handle == "" {
			return fmt.Errorf("source %q has no handle", s.Name)
		}
	}

	for i, h := range c.Hotspots {
		if h.Name == "" {
			return fmt.Errorf("hotspot %d has no name", i)
		}
		sev, err := domain.ParseSeverity(string(h.ThreatLevel))
		if err != nil {
			return fmt.Errorf("hotspot %q: %w", h.Name, err)
		}
		c.Hotspots[i].ThreatLevel = sev
		if len(c.Templates[sev]) == 0 {
			return fmt.Errorf("hotspot %q: no templates for severity %s", h.Name, sev)
		}
	}

	for sev := range c.Templates {
		if !sev.Valid() {
			return fmt.Errorf("templates: %w: %q", domain.ErrInvalidSeverity, sev)
		}
	}

	return nil
}

// Hotspot returns the hotspot with the given location ID.
func (c *Catalog) Hotspot(locationID string) (domain.Hotspot, bool) {
	for _, h := range c.Hotspots {
		if h.LocationID() == locationID {
			return h, true
		}
	}
	return domain.Hotspot{}, false
}

// Render fills a template with the location name.
func Render(template, location string) string {
	return strings.ReplaceAll(template, LocationPlaceholder, location)
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML (or JSON) catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	return &c, nil
}

// Store holds the catalog currently in use. Readers always see a complete catalog.
type Store struct {
	current atomic.Pointer[Catalog]
}

func NewStore(c *Catalog) *Store {
	s := &Store{}
	s.current.Store(c)
	return s
}

func (s *Store) Current() *Catalog {
	return s.current.Load()
}

func (s *Store) Set(c *Catalog) {
	s.current.Store(c)
}
