package feed

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/Priya8975/conflict-monitor/internal/catalog"
	"github.com/Priya8975/conflict-monitor/internal/domain"
)

// Generator produces simulated news items from the current catalog. The
// severity of an item is the threat level of the hotspot it is about.
type Generator struct {
	catalog *catalog.Store
	clock   clock.PassiveClock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator. A nil rng is seeded randomly and a nil
// clock uses the wall clock.
func NewGenerator(store *catalog.Store, rng *rand.Rand, clk clock.PassiveClock) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Generator{catalog: store, rng: rng, clock: clk}
}

// Next builds one news item.
func (g *Generator) Next() (domain.Event, error) {
	c := g.catalog.Current()

	g.mu.Lock()
	source := c.Sources[g.rng.IntN(len(c.Sources))]
	hotspot := c.Hotspots[g.rng.IntN(len(c.Hotspots))]
	templates := c.Templates[hotspot.ThreatLevel]
	var template string
	if len(templates) > 0 {
		template = templates[g.rng.IntN(len(templates))]
	}
	postID := g.rng.Int64N(10_000_000_000_000_000)
	g.mu.Unlock()

	event, err := domain.NewEvent(uuid.NewString(), string(hotspot.ThreatLevel), source.Handle, hotspot.LocationID(), g.clock.Now())
	if err != nil {
		return domain.Event{}, fmt.Errorf("generating event for %s: %w", hotspot.Name, err)
	}

	event.SourceName = source.Name
	event.Reliability = source.Reliability
	event.LocationName = hotspot.Name
	event.Country = hotspot.Country
	event.Coordinates = hotspot.Coordinates
	event.Content = catalog.Render(template, hotspot.Name)
	event.URL = postURL(source.Handle, postID)

	return event, nil
}

func postURL(handle string, id int64) string {
	return fmt.Sprintf("https://twitter.com/%s/status/%d", strings.TrimPrefix(handle, "@"), id)
}
