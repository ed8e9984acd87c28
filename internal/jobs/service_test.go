package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quennell/hearthstead/internal/catalog"
	"github.com/quennell/hearthstead/internal/construction"
	"github.com/quennell/hearthstead/internal/domain"
	"github.com/quennell/hearthstead/internal/modifier"
	"github.com/quennell/hearthstead/internal/population"
	"github.com/quennell/hearthstead/internal/rng"
)

type jobsFixture struct {
	jobs      Service
	roster    population.Service
	modifiers modifier.Service
}

func newJobsFixture(t *testing.T) *jobsFixture {
	t.Helper()
	roster := population.NewService(rng.Fixed(0.99), nil)
	modifiers := modifier.NewService(nil)
	svc := NewService(roster, modifiers, catalog.DefaultBuildings())
	for _, def := range catalog.DefaultJobs() {
		svc.RegisterJobType(def)
	}
	return &jobsFixture{jobs: svc, roster: roster, modifiers: modifiers}
}

func (f *jobsFixture) addAdult(t *testing.T, name string, skills map[string]int64) *domain.Villager {
	t.Helper()
	v, err := f.roster.AddVillager(context.Background(), 0, population.AddVillagerParams{
		Name:   name,
		Age:    50,
		Gender: domain.GenderMale,
		Skills: skills,
	})
	require.NoError(t, err)
	return v
}

func TestRegisterJobType_DuplicatePanics(t *testing.T) {
	f := newJobsFixture(t)

	assert.Panics(t, func() {
		f.jobs.RegisterJobType(domain.JobDefinition{
			Key:          "farmer",
			DisplayName:  "Farmer",
			BuildingType: "farm",
			GainedSkill:  catalog.SkillFarming,
		})
	})
}

func TestCreateSlotsForBuilding_Idempotent(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	farm := &domain.Building{ID: 1, TypeKey: "farm", Built: true}

	created, err := f.jobs.CreateSlotsForBuilding(ctx, farm)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = f.jobs.CreateSlotsForBuilding(ctx, farm)
	require.NoError(t, err)
	assert.Zero(t, created, "second call must create nothing")

	summary := f.jobs.Summary(domain.SeasonSpring)
	assert.Equal(t, 4, summary.TotalSlots)
}

func TestAssign_OccupiedSlotFails(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	a := f.addAdult(t, "Edda", nil)
	b := f.addAdult(t, "Orin", nil)

	require.NoError(t, f.jobs.Assign(ctx, a.ID, 1))
	err = f.jobs.Assign(ctx, b.ID, 1)
	assert.ErrorIs(t, err, domain.ErrSlotOccupied)
}

func TestAssign_AlreadyAssignedFails(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	err = f.jobs.Assign(ctx, v.ID, 2)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)
}

func TestAssign_LifeStageEligibility(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		age     int
		wantErr error
	}{
		{"child rejected", 10, domain.ErrIneligibleStage},
		{"elder rejected", 170, domain.ErrIneligibleStage},
		{"young adult accepted", 30, nil},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := f.roster.AddVillager(ctx, 0, population.AddVillagerParams{
				Name: "Test", Age: tt.age, Gender: domain.GenderFemale,
			})
			require.NoError(t, err)

			err = f.jobs.Assign(ctx, v.ID, int64(i+1))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.StatusWorking, v.Status)
			assert.Equal(t, "farmer", v.Role)
			require.NotNil(t, v.AssignedBuildingID)
			assert.Equal(t, int64(1), *v.AssignedBuildingID)
		})
	}
}

func TestAssign_SoldierClassNeedsAdultStage(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "barracks"})
	require.NoError(t, err)

	young, err := f.roster.AddVillager(ctx, 0, population.AddVillagerParams{
		Name: "Brannoc", Age: 30, Gender: domain.GenderMale,
	})
	require.NoError(t, err)

	err = f.jobs.Assign(ctx, young.ID, 1)
	assert.ErrorIs(t, err, domain.ErrIneligibleSoldier, "young adults may work but not soldier")

	adult := f.addAdult(t, "Halvar", nil)
	assert.NoError(t, f.jobs.Assign(ctx, adult.ID, 1))
}

func TestUnassign_RestoresIdle(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))
	require.NoError(t, f.jobs.Unassign(ctx, v.ID))

	assert.Equal(t, domain.StatusIdle, v.Status)
	assert.Equal(t, domain.RoleUnemployed, v.Role)
	assert.Nil(t, v.AssignedBuildingID)

	_, held := f.jobs.SlotFor(v.ID)
	assert.False(t, held)
}

func TestAssign_RejectsConstructionCrewMember(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 42, TypeKey: "farm", Built: true})
	require.NoError(t, err)

	constr := construction.NewService(catalog.DefaultBuildings(), f.roster, f.modifiers, rng.Fixed(0.5), nil)
	site, err := constr.PlaceBuilding(ctx, 0, "quarry", 1, domain.Position{})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, constr.AssignBuilder(ctx, site.ID, v.ID))

	err = f.jobs.Assign(ctx, v.ID, 1)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	// The crew seat and its building reference must survive untouched.
	require.NotNil(t, v.AssignedBuildingID)
	assert.Equal(t, site.ID, *v.AssignedBuildingID)
	assert.Equal(t, domain.StatusWorking, v.Status)
	_, held := f.jobs.SlotFor(v.ID)
	assert.False(t, held)
}

func TestAssignBuilder_RejectsEmployedVillager(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 42, TypeKey: "farm", Built: true})
	require.NoError(t, err)

	constr := construction.NewService(catalog.DefaultBuildings(), f.roster, f.modifiers, rng.Fixed(0.5), nil)
	site, err := constr.PlaceBuilding(ctx, 0, "quarry", 1, domain.Position{})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	err = constr.AssignBuilder(ctx, site.ID, v.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned)

	require.NotNil(t, v.AssignedBuildingID)
	assert.Equal(t, int64(42), *v.AssignedBuildingID)
}

func TestReleaseVillager_ClearsSlotWithoutRoster(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))
	require.NoError(t, f.roster.RemoveVillager(ctx, v.ID))

	f.jobs.ReleaseVillager(ctx, v.ID)

	summary := f.jobs.Summary(domain.SeasonSpring)
	assert.Zero(t, summary.FilledSlots)
}

func TestCalculateProduction_SeasonAndSkillScaling(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	// 60 XP farming holds Apprentice (tier 1): +10% skill bonus.
	v := f.addAdult(t, "Edda", map[string]int64{catalog.SkillFarming: 60})
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	prod := f.jobs.CalculateProduction(domain.SeasonSummer)
	// 3 base food x 1.25 summer x 1.10 skill = 4.125
	assert.InDelta(t, 4.125, prod[domain.ResourceFood], 1e-9)

	winter := f.jobs.CalculateProduction(domain.SeasonWinter)
	// 3 base food x 0.6 winter x 1.10 skill = 1.98
	assert.InDelta(t, 1.98, winter[domain.ResourceFood], 1e-9)
}

func TestCalculateProduction_EffectMultiplier(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	require.NoError(t, f.modifiers.RegisterTemplate(domain.EffectTemplate{
		Key:         "harvest_blessing",
		DisplayName: "Harvest Blessing",
		Category:    domain.CategoryMagical,
		Multipliers: map[string]float64{EfficiencyKey("farmer"): 1.2},
		SingleStack: true,
	}))
	_, err = f.modifiers.Apply(ctx, 1, "harvest_blessing", 5)
	require.NoError(t, err)

	prod := f.jobs.CalculateProduction(domain.SeasonSpring)
	// 3 base food x 1.1 spring x 1.2 blessing = 3.96
	assert.InDelta(t, 3.96, prod[domain.ResourceFood], 1e-9)
}

func TestCalculateConsumption_Unmodified(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "forge"})
	require.NoError(t, err)

	v := f.addAdult(t, "Smith", map[string]int64{catalog.SkillSmithing: 2000})
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	consumption := f.jobs.CalculateConsumption()
	assert.InDelta(t, 1.0, consumption[domain.ResourceFood], 1e-9)
	assert.InDelta(t, 1.0, consumption[domain.ResourceWood], 1e-9)
}

func TestAutoAssign_FillsEmptiestBuildingFirst(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	farm := &domain.Building{ID: 1, TypeKey: "farm"}
	sawmill := &domain.Building{ID: 2, TypeKey: "sawmill"}
	_, err := f.jobs.CreateSlotsForBuilding(ctx, farm)
	require.NoError(t, err)
	_, err = f.jobs.CreateSlotsForBuilding(ctx, sawmill)
	require.NoError(t, err)

	// Pre-fill half the farm so the sawmill is emptier.
	a := f.addAdult(t, "Edda", nil)
	b := f.addAdult(t, "Orin", nil)
	require.NoError(t, f.jobs.Assign(ctx, a.ID, 1))
	require.NoError(t, f.jobs.Assign(ctx, b.ID, 2))

	c := f.addAdult(t, "Halvar", nil)
	assert.Equal(t, 1, f.jobs.AutoAssign(ctx))

	slot, held := f.jobs.SlotFor(c.ID)
	require.True(t, held)
	assert.Equal(t, sawmill.ID, slot.BuildingID, "emptiest building gets the next worker")
}

func TestAutoAssign_SkipsIneligible(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	_, err = f.roster.AddVillager(ctx, 0, population.AddVillagerParams{
		Name: "Pip", Age: 5, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)
	_, err = f.roster.AddVillager(ctx, 0, population.AddVillagerParams{
		Name: "Granny", Age: 160, Gender: domain.GenderFemale,
	})
	require.NoError(t, err)

	assert.Zero(t, f.jobs.AutoAssign(ctx))
}

func TestJobsSnapshotRestore_RoundTrip(t *testing.T) {
	f := newJobsFixture(t)
	ctx := context.Background()
	_, err := f.jobs.CreateSlotsForBuilding(ctx, &domain.Building{ID: 1, TypeKey: "farm"})
	require.NoError(t, err)

	v := f.addAdult(t, "Edda", nil)
	require.NoError(t, f.jobs.Assign(ctx, v.ID, 1))

	slots, nextID := f.jobs.Snapshot()

	restored := NewService(f.roster, f.modifiers, catalog.DefaultBuildings())
	for _, def := range catalog.DefaultJobs() {
		restored.RegisterJobType(def)
	}
	restored.Restore(slots, nextID)

	slot, held := restored.SlotFor(v.ID)
	require.True(t, held)
	assert.Equal(t, int64(1), slot.ID)

	summary := restored.Summary(domain.SeasonSpring)
	assert.Equal(t, 4, summary.TotalSlots)
	assert.Equal(t, 1, summary.FilledSlots)
}
