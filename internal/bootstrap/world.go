package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/quennell/hearthstead/internal/catalog"
	"github.com/quennell/hearthstead/internal/config"
	"github.com/quennell/hearthstead/internal/construction"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/jobs"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/naming"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/rng"
	"github.com/quennell/hearthstead/internal/sim"
	"github.com/quennell/hearthstead/internal/validation"
)

// WorldComponents exposes the assembled simulation and its services for
// route wiring.
type WorldComponents struct {
	World        *sim.World
	Roster       population.Service
	Jobs         jobs.Service
	Construction construction.Service
	Modifiers    modifier.Service
	Names        naming.Generator
	Rand         rng.Source
}

// BuildWorld assembles the simulation core: catalogs, the four services,
// the name generator, and the world that ties them to the bus. A configured
// content directory replaces the compiled-in stock content.
func BuildWorld(cfg *config.Config, bus event.Bus, publisher *event.ResilientPublisher) (WorldComponents, error) {
	var rnd rng.Source
	if cfg.SimSeed != 0 {
		rnd = rng.New(cfg.SimSeed)
		slog.Info("Simulation seeded", "seed", cfg.SimSeed)
	} else {
		rnd = rng.NewTimeSeeded()
	}

	buildings := catalog.DefaultBuildings()
	jobDefs := catalog.DefaultJobs()
	effectDefs := catalog.DefaultEffects()

	if cfg.ContentDir != "" {
		pack, err := catalog.LoadContentPack(cfg.ContentDir, validation.NewSchemaValidator())
		if err != nil {
			return WorldComponents{}, fmt.Errorf("failed to load content pack: %w", err)
		}
		buildings, jobDefs, effectDefs = pack.Buildings, pack.Jobs, pack.Effects
		slog.Info("Content pack loaded", "dir", cfg.ContentDir)
	}

	roster := population.NewService(rnd, publisher)
	modifiers := modifier.NewService(publisher)
	for _, tpl := range effectDefs {
		if err := modifiers.RegisterTemplate(tpl); err != nil {
			return WorldComponents{}, fmt.Errorf("invalid effect template %q: %w", tpl.Key, err)
		}
	}

	jobService := jobs.NewService(roster, modifiers, buildings)
	for _, def := range jobDefs {
		jobService.RegisterJobType(def)
	}

	constr := construction.NewService(buildings, roster, modifiers, rnd, publisher)
	names := naming.NewGenerator(rnd)

	world := sim.NewWorld(roster, jobService, constr, modifiers, names, rnd, bus, publisher)

	return WorldComponents{
		World:        world,
		Roster:       roster,
		Jobs:         jobService,
		Construction: constr,
		Modifiers:    modifiers,
		Names:        names,
		Rand:         rnd,
	}, nil
}
