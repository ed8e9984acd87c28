package construction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quennell/hearthstead/internal/catalog"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/rng"
)

type siteFixture struct {
	constr    Service
	roster    population.Service
	modifiers modifier.Service
}

func newSiteFixture(t *testing.T) *siteFixture {
	t.Helper()
	roster := population.NewService(rng.Fixed(0.99), nil)
	modifiers := modifier.NewService(nil)
	constr := NewService(catalog.DefaultBuildings(), roster, modifiers, rng.Fixed(0.5), nil)
	return &siteFixture{constr: constr, roster: roster, modifiers: modifiers}
}

// addBuilder inserts an adult at peak vitals: capability is exactly the
// adult age factor (1.1) with no skill, health, or happiness scaling.
func (f *siteFixture) addBuilder(t *testing.T, name string) *domain.Villager {
	t.Helper()
	v, err := f.roster.AddVillager(context.Background(), 0, population.AddVillagerParams{
		Name:      name,
		Age:       50,
		Gender:    domain.GenderMale,
		Health:    100,
		Happiness: 100,
	})
	require.NoError(t, err)
	return v
}

func TestPlaceBuilding_RequirementFormula(t *testing.T) {
	tests := []struct {
		name    string
		typeKey string
		level   int
		want    float64
	}{
		{"farm level 1", "farm", 1, 80},
		{"farm level 3", "farm", 3, 128},     // 80 x 1.6
		{"quarry level 2", "quarry", 2, 182}, // ceil(140 x 1.3)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newSiteFixture(t)
			b, err := f.constr.PlaceBuilding(context.Background(), 1, tt.typeKey, tt.level, domain.Position{})
			require.NoError(t, err)

			site, ok := f.constr.ActiveSite()
			require.True(t, ok)
			assert.Equal(t, b.ID, site.BuildingID)
			assert.Equal(t, tt.want, site.TotalPoints)
			assert.Zero(t, site.Points)
		})
	}
}

func TestPlaceBuilding_TechnologyDiscount(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()

	require.NoError(t, f.modifiers.RegisterTemplate(domain.EffectTemplate{
		Key:         "improved_scaffolding",
		DisplayName: "Improved Scaffolding",
		Category:    domain.CategoryTechnology,
		Multipliers: map[string]float64{DiscountKey: 1},
	}))
	require.NoError(t, f.modifiers.RegisterTemplate(domain.EffectTemplate{
		Key:         "crane_hoists",
		DisplayName: "Crane Hoists",
		Category:    domain.CategoryTechnology,
		Multipliers: map[string]float64{DiscountKey: 1},
	}))
	_, err := f.modifiers.ApplyTechnology(ctx, 1, "improved_scaffolding")
	require.NoError(t, err)
	_, err = f.modifiers.ApplyTechnology(ctx, 1, "crane_hoists")
	require.NoError(t, err)

	// Two discount bonuses: 80 x (1 - 0.10) = 72.
	_, err = f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)
	site, ok := f.constr.ActiveSite()
	require.True(t, ok)
	assert.Equal(t, float64(72), site.TotalPoints)
}

func TestPlaceBuilding_UnknownType(t *testing.T) {
	f := newSiteFixture(t)
	_, err := f.constr.PlaceBuilding(context.Background(), 1, "cathedral", 1, domain.Position{})
	assert.ErrorIs(t, err, domain.ErrBuildingNotFound)
}

func TestAssignBuilder_Eligibility(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)

	child, err := f.roster.AddVillager(ctx, 0, population.AddVillagerParams{
		Name: "Pip", Age: 5, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)
	err = f.constr.AssignBuilder(ctx, b.ID, child.ID)
	assert.ErrorIs(t, err, domain.ErrIneligibleStage)

	adult := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, adult.ID))
	assert.Equal(t, domain.StatusWorking, adult.Status)
	require.NotNil(t, adult.AssignedBuildingID)
	assert.Equal(t, b.ID, *adult.AssignedBuildingID)

	err = f.constr.AssignBuilder(ctx, b.ID, adult.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestProcessDailyConstruction_SingleProjectFocus(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	first, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)
	second, err := f.constr.PlaceBuilding(ctx, 3, "sawmill", 1, domain.Position{})
	require.NoError(t, err)

	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, second.ID, builder.ID))

	// The first-registered site is the focus even though only the second
	// has a crew, so nothing accrues anywhere.
	progress, ok := f.constr.ProcessDailyConstruction(ctx, 4)
	require.True(t, ok)
	assert.Equal(t, first.ID, progress.BuildingID)
	assert.Zero(t, progress.PointsAdded)

	sites := f.constr.Sites()
	require.Len(t, sites, 2)
	assert.Zero(t, sites[0].Points)
	assert.Zero(t, sites[1].Points)
}

func TestProcessDailyConstruction_AccrualArithmetic(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)

	// Two peak-vitals adults: 1.1 each, crew of two gets the 1.1 teamwork
	// step, so the day yields 2.2 x 1.1 = 2.42 points.
	for _, name := range []string{"Orin", "Edda"} {
		v := f.addBuilder(t, name)
		require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, v.ID))
	}

	progress, ok := f.constr.ProcessDailyConstruction(ctx, 2)
	require.True(t, ok)
	assert.InDelta(t, 2.42, progress.PointsAdded, 1e-9)
	assert.False(t, progress.Completed)

	site, ok := f.constr.ActiveSite()
	require.True(t, ok)
	assert.InDelta(t, 2.42, site.Points, 1e-9)
}

func TestProcessDailyConstruction_GainCappedAtRemaining(t *testing.T) {
	roster := population.NewService(rng.Fixed(0.99), nil)
	cat := catalog.NewBuildings()
	require.NoError(t, cat.Register(domain.BuildingDefinition{
		Key:            "shed",
		DisplayName:    "Shed",
		BasePoints:     2,
		Difficulty:     1.0,
		RelevantSkills: []string{catalog.SkillCarpentry, catalog.SkillHauling},
	}))
	constr := NewService(cat, roster, modifier.NewService(nil), rng.Fixed(0.5), nil)

	ctx := context.Background()
	b, err := constr.PlaceBuilding(ctx, 1, "shed", 1, domain.Position{})
	require.NoError(t, err)
	builder, err := roster.AddVillager(ctx, 0, population.AddVillagerParams{
		Name: "Orin", Age: 50, Gender: domain.GenderMale, Health: 100, Happiness: 100,
	})
	require.NoError(t, err)
	require.NoError(t, constr.AssignBuilder(ctx, b.ID, builder.ID))

	// A 1.1/day builder on a 2-point site: the first pass accrues 1.1, the
	// second is capped at the 0.9 remainder and completes.
	progress, ok := constr.ProcessDailyConstruction(ctx, 2)
	require.True(t, ok)
	assert.InDelta(t, 1.1, progress.PointsAdded, 1e-9)
	assert.False(t, progress.Completed)

	progress, ok = constr.ProcessDailyConstruction(ctx, 3)
	require.True(t, ok)
	assert.InDelta(t, 0.9, progress.PointsAdded, 1e-9)
	assert.True(t, progress.Completed)
	assert.Empty(t, constr.Sites())
}

func TestProcessDailyConstruction_WholeDuration(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "quarry", 2, domain.Position{})
	require.NoError(t, err)
	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))

	// ceil(140 x 1.3) = 182 points, fixed once at registration. At 1.1
	// points/day the site takes ceil(182/1.1) = 166 days: daily gains stay
	// fractional and are never re-rounded, and only the final day is capped.
	days := 0
	for day := 2; ; day++ {
		progress, ok := f.constr.ProcessDailyConstruction(ctx, day)
		require.True(t, ok)
		days++
		if progress.Completed {
			assert.InDelta(t, 0.5, progress.PointsAdded, 1e-9, "final day accrues the remainder")
			break
		}
		assert.InDelta(t, 1.1, progress.PointsAdded, 1e-9)
		require.Less(t, days, 200, "site never completed")
	}
	assert.Equal(t, 166, days)
	assert.Empty(t, f.constr.Sites())
}

func TestCompletion_ReleasesBuildersAndDestroysSite(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)

	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))
	require.NoError(t, f.constr.CompleteConstruction(ctx, 5, b.ID))

	placed, err := f.constr.Building(b.ID)
	require.NoError(t, err)
	assert.True(t, placed.Built)
	assert.Equal(t, domain.StatusIdle, builder.Status)
	assert.Nil(t, builder.AssignedBuildingID)
	assert.Empty(t, f.constr.Sites())

	err = f.constr.CompleteConstruction(ctx, 5, b.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyBuilt)
}

func TestDailyXPAward(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "quarry", 1, domain.Position{})
	require.NoError(t, err)

	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))

	_, ok := f.constr.ProcessDailyConstruction(ctx, 2)
	require.True(t, ok)

	// Fixed rng rolls the minimum: 1 x 1.5 difficulty rounds to 2 XP in
	// each of the quarry's relevant skills.
	assert.Equal(t, int64(2), builder.SkillXP(catalog.SkillMasonry))
	assert.Equal(t, int64(2), builder.SkillXP(catalog.SkillHauling))
}

func TestXPAcceleratesLaterBuilds(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)

	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))

	first, ok := f.constr.ProcessDailyConstruction(ctx, 2)
	require.True(t, ok)

	// Push carpentry past the Apprentice threshold and re-run: the same
	// builder now outproduces their earlier self.
	builder.Skills[catalog.SkillCarpentry] = 60
	second, ok := f.constr.ProcessDailyConstruction(ctx, 3)
	require.True(t, ok)
	assert.Greater(t, second.PointsAdded, first.PointsAdded)
}

func TestConstructionSnapshotRestore_RoundTrip(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "sawmill", 2, domain.Position{X: 3, Y: 7})
	require.NoError(t, err)
	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))
	_, ok := f.constr.ProcessDailyConstruction(ctx, 2)
	require.True(t, ok)

	buildings, sites, nextID := f.constr.Snapshot()

	restored := NewService(catalog.DefaultBuildings(), f.roster, f.modifiers, rng.Fixed(0.5), nil)
	restored.Restore(buildings, sites, nextID)

	got, err := restored.Building(b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Position{X: 3, Y: 7}, got.Position)

	site, ok := restored.ActiveSite()
	require.True(t, ok)
	assert.Equal(t, b.ID, site.BuildingID)
	assert.Greater(t, site.Points, 0.0)
	require.Len(t, site.Builders, 1)
	assert.Equal(t, builder.ID, site.Builders[0].VillagerID)

	// Mutating the restored copy must not leak back into the snapshot.
	_, ok = restored.ProcessDailyConstruction(ctx, 3)
	require.True(t, ok)
	assert.InDelta(t, site.Points, sites[0].Points, 1e-9)
}

func TestSummaries_ETA(t *testing.T) {
	f := newSiteFixture(t)
	ctx := context.Background()
	b, err := f.constr.PlaceBuilding(ctx, 1, "farm", 1, domain.Position{})
	require.NoError(t, err)

	summaries := f.constr.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, -1, summaries[0].DaysToComplete, "no crew means no ETA")

	builder := f.addBuilder(t, "Orin")
	require.NoError(t, f.constr.AssignBuilder(ctx, b.ID, builder.ID))

	summaries = f.constr.Summaries()
	require.Len(t, summaries, 1)
	// 80 points at 1.1/day: ceil gives 73 days.
	assert.Equal(t, 73, summaries[0].DaysToComplete)
	require.Len(t, summaries[0].Breakdown, 1)
	assert.InDelta(t, 1.1, summaries[0].Breakdown[0].Efficiency, 1e-9)
}
