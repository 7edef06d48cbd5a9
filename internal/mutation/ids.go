package mutation

import (
	"strconv"
	"time"

	"github.com/goliatone/go-sdui/internal/schema"
)

const (
	componentPrefix = "comp_"
	pagePrefix      = "page_"
)

// IDGenerator mints clock-derived ids of the form comp_<unix-millis> and
// page_<unix-millis>. When the candidate is already taken in the target
// document the millisecond value is bumped until it is free.
type IDGenerator struct {
	now func() time.Time
}

// NewIDGenerator returns a generator reading the given clock. A nil clock
// uses time.Now.
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// ComponentID returns a component id unique across every page of doc.
func (g *IDGenerator) ComponentID(doc *schema.Schema) string {
	taken := map[string]struct{}{}
	for _, id := range doc.ComponentIDs() {
		taken[id] = struct{}{}
	}
	return g.next(componentPrefix, taken)
}

// PageID returns a page id not used by any page of doc.
func (g *IDGenerator) PageID(doc *schema.Schema) string {
	taken := map[string]struct{}{}
	if doc != nil {
		for _, page := range doc.Pages {
			taken[page.ID] = struct{}{}
		}
	}
	return g.next(pagePrefix, taken)
}

func (g *IDGenerator) next(prefix string, taken map[string]struct{}) string {
	ms := g.now().UnixMilli()
	for {
		candidate := prefix + strconv.FormatInt(ms, 10)
		if _, exists := taken[candidate]; !exists {
			return candidate
		}
		ms++
	}
}
