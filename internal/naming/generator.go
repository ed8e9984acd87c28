// Package naming generates villager names from configurable pools: a given
// name drawn by gender, a family name, and optional season-themed pools that
// override the defaults while their season is active.
package naming

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/rng"
)

// Pool holds the default name lists plus per-season overrides. A season
// absent from Themes falls back to the default list.
type Pool struct {
	Default []string                   `json:"default"`
	Themes  map[domain.Season][]string `json:"themes,omitempty"`
}

// Generator produces villager names.
type Generator interface {
	Generate(gender domain.Gender, season domain.Season) string
	RegisterGivenNames(gender domain.Gender, pool Pool)
	RegisterFamilyNames(pool Pool)
}

type generator struct {
	mu     sync.RWMutex
	given  map[domain.Gender]Pool
	family Pool
	rnd    rng.Source
	titler cases.Caser
}

// NewGenerator creates a generator preloaded with the stock name pools.
func NewGenerator(rnd rng.Source) Generator {
	g := &generator{
		given:  make(map[domain.Gender]Pool),
		rnd:    rnd,
		titler: cases.Title(language.English),
	}
	g.RegisterGivenNames(domain.GenderMale, Pool{
		Default: []string{"orin", "halvar", "brannoc", "edric", "tomas", "wendel", "garet", "aldous", "perrin", "col"},
		Themes: map[domain.Season][]string{
			domain.SeasonWinter: {"frost", "yule", "kolbein"},
		},
	})
	g.RegisterGivenNames(domain.GenderFemale, Pool{
		Default: []string{"edda", "maren", "sybil", "tilda", "rosalind", "ines", "greta", "annis", "fern", "liese"},
		Themes: map[domain.Season][]string{
			domain.SeasonWinter: {"holly", "eira", "neva"},
		},
	})
	g.RegisterFamilyNames(Pool{
		Default: []string{"thatcher", "mason", "fletcher", "ashdown", "millbrook", "harrow", "stonefield", "waverly", "coppice", "fairweather"},
	})
	return g
}

// RegisterGivenNames replaces the given-name pool for a gender.
func (g *generator) RegisterGivenNames(gender domain.Gender, pool Pool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.given[gender] = pool
}

// RegisterFamilyNames replaces the family-name pool.
func (g *generator) RegisterFamilyNames(pool Pool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.family = pool
}

// Generate draws "Given Family" for a gender, preferring the season's themed
// given names when present.
func (g *generator) Generate(gender domain.Gender, season domain.Season) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	given := g.draw(g.given[gender], season)
	family := g.draw(g.family, season)
	if given == "" {
		given = "villager"
	}
	name := given
	if family != "" {
		name += " " + family
	}
	return g.titler.String(strings.ToLower(name))
}

// draw picks one name from a pool, using the themed list when the season has
// one.
func (g *generator) draw(pool Pool, season domain.Season) string {
	list := pool.Default
	if themed, ok := pool.Themes[season]; ok && len(themed) > 0 {
		list = themed
	}
	if len(list) == 0 {
		return ""
	}
	return list[g.rnd.IntBetween(0, len(list)-1)]
}
