package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/population"
)

// Founding settlement shape: a handful of working adults, a couple of
// children, and enough food to get through the first season.
const (
	seedAdults       = 8
	seedChildren     = 3
	seedAdultAgeMin  = 30
	seedAdultAgeSpan = 40
	seedChildAgeMax  = 20
	seedFood         = 400.0
	seedWood         = 120.0
	seedStone        = 60.0
)

// SeedWorld populates an empty world with the founding settlement and places
// the first farm. Calling it on a non-empty world is a no-op, so restart
// after a snapshot restore is safe.
func SeedWorld(ctx context.Context, comps WorldComponents) error {
	if comps.Roster.Count() > 0 {
		return nil
	}

	names, rnd := comps.Names, comps.Rand
	season := comps.World.Season()
	for i := 0; i < seedAdults+seedChildren; i++ {
		gender := domain.GenderFemale
		if rnd.Float64() < 0.5 {
			gender = domain.GenderMale
		}

		age := seedAdultAgeMin + rnd.IntBetween(0, seedAdultAgeSpan)
		if i >= seedAdults {
			age = rnd.IntBetween(1, seedChildAgeMax)
		}

		_, err := comps.Roster.AddVillager(ctx, comps.World.Day(), population.AddVillagerParams{
			Name:   names.Generate(gender, season),
			Age:    age,
			Gender: gender,
		})
		if err != nil {
			return fmt.Errorf("failed to seed villager: %w", err)
		}
	}

	comps.World.AddResources(map[domain.Resource]float64{
		domain.ResourceFood:  seedFood,
		domain.ResourceWood:  seedWood,
		domain.ResourceStone: seedStone,
	})

	if _, err := comps.Construction.PlaceBuilding(ctx, comps.World.Day(), "farm", 1, domain.Position{X: 0, Y: 0}); err != nil {
		return fmt.Errorf("failed to place founding farm: %w", err)
	}

	slog.Info("World seeded",
		"villagers", comps.Roster.Count(),
		"food", seedFood)
	return nil
}
