package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/quennell/hearthstead/internal/sim"
)

// Summary views are cheap to build but get polled aggressively by overlay
// clients between ticks, so responses are cached per day. The day is part of
// the cache key: a tick rolls the day forward and naturally misses, while
// intra-day mutations (job assignment, placed buildings) are bounded by the
// short TTL.
const (
	summaryCacheSize = 64
	summaryCacheTTL  = 2 * time.Second
)

// summaryCache is an in-memory LRU keyed by view name and simulated day.
type summaryCache struct {
	lru *expirable.LRU[string, interface{}]
}

func newSummaryCache() *summaryCache {
	return &summaryCache{
		lru: expirable.NewLRU[string, interface{}](summaryCacheSize, nil, summaryCacheTTL),
	}
}

func (c *summaryCache) get(view string, day int) (interface{}, bool) {
	return c.lru.Get(fmt.Sprintf("%s:%d", view, day))
}

func (c *summaryCache) set(view string, day int, payload interface{}) {
	c.lru.Add(fmt.Sprintf("%s:%d", view, day), payload)
}

// Clear drops all cached views. Called after admin mutations that must be
// visible immediately, like a snapshot restore.
func (c *summaryCache) Clear() {
	c.lru.Purge()
}

// SummaryHandler serves the read-only views over the world state.
type SummaryHandler struct {
	world *sim.World
	cache *summaryCache
}

// NewSummaryHandler creates a SummaryHandler with its own response cache.
func NewSummaryHandler(world *sim.World) *SummaryHandler {
	return &SummaryHandler{
		world: world,
		cache: newSummaryCache(),
	}
}

// cached wraps a view builder with the per-day response cache.
func (h *SummaryHandler) cached(view string, build func() interface{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := h.world.Day()
		if payload, ok := h.cache.get(view, day); ok {
			respondJSON(w, http.StatusOK, payload)
			return
		}
		payload := build()
		h.cache.set(view, day, payload)
		respondJSON(w, http.StatusOK, payload)
	}
}

// HandleWorld returns the full aggregated world view.
func (h *SummaryHandler) HandleWorld() http.HandlerFunc {
	return h.cached("world", func() interface{} {
		return h.world.Summary()
	})
}

// HandlePopulation returns the population breakdown and death projection.
func (h *SummaryHandler) HandlePopulation() http.HandlerFunc {
	return h.cached("population", func() interface{} {
		return h.world.Summary().Population
	})
}

// HandleEmployment returns slot occupancy and the daily resource tally.
func (h *SummaryHandler) HandleEmployment() http.HandlerFunc {
	return h.cached("employment", func() interface{} {
		return h.world.Summary().Employment
	})
}

// HandleConstruction returns per-site progress with builder breakdowns.
func (h *SummaryHandler) HandleConstruction() http.HandlerFunc {
	return h.cached("construction", func() interface{} {
		return h.world.Summary().Construction
	})
}

// HandleEffects returns the active time-bound effects.
func (h *SummaryHandler) HandleEffects() http.HandlerFunc {
	return h.cached("effects", func() interface{} {
		return h.world.Summary().Effects
	})
}

// HandleStock returns the resource stockpile.
func (h *SummaryHandler) HandleStock() http.HandlerFunc {
	return h.cached("stock", func() interface{} {
		return h.world.Stock()
	})
}
