package capability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quennell/hearthstead/internal/domain"
)

func TestTierForXP(t *testing.T) {
	tb := TableByID(StandardTableID)

	tests := []struct {
		xp   int64
		want Tier
	}{
		{0, TierNovice},
		{49, TierNovice},
		{50, TierApprentice},
		{150, TierJourneyman},
		{399, TierJourneyman},
		{400, TierExpert},
		{1000, TierGrandmaster},
		{99999, TierGrandmaster},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tb.TierForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestMustRegisterTableDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegisterTable(&Table{ID: StandardTableID})
	})
}

func TestAgeFactorBellShape(t *testing.T) {
	young := AgeFactor(30)
	prime := AgeFactor(60)
	late := AgeFactor(100)

	assert.Greater(t, prime, young, "prime adults outperform young adults")
	assert.Greater(t, prime, late, "prime adults outperform middle-aged")
	assert.Greater(t, late, 0.0)
}

func TestVitalityFloors(t *testing.T) {
	assert.Equal(t, HealthFloor, HealthFactor(0))
	assert.Equal(t, HealthFloor, HealthFactor(10))
	assert.InDelta(t, 1.0, HealthFactor(100), 1e-9)
	assert.InDelta(t, 1.0, HealthFactor(150), 1e-9, "clamped above 100")

	assert.Equal(t, HappinessFloor, HappinessFactor(0))
	assert.InDelta(t, 0.75, HappinessFactor(75), 1e-9)
}

func TestTeamworkBonusSteps(t *testing.T) {
	assert.Equal(t, 0.0, TeamworkBonus(0))
	assert.Equal(t, 1.0, TeamworkBonus(1), "a lone builder gets no bonus")
	assert.Equal(t, 1.1, TeamworkBonus(2))
	assert.Equal(t, 1.28, TeamworkBonus(5))

	// Past five heads the increments diminish but keep growing.
	assert.InDelta(t, 1.30, TeamworkBonus(6), 1e-9)
	assert.InDelta(t, 1.38, TeamworkBonus(10), 1e-9)
	assert.Greater(t, TeamworkBonus(7), TeamworkBonus(6))
}

func TestComputeAveragesSkills(t *testing.T) {
	v := &domain.Villager{
		Age:       60, // prime adult, factor 1.1
		Health:    100,
		Happiness: 100,
		Skills:    map[string]int64{"carpentry": 50, "masonry": 0},
	}

	// carpentry Apprentice (1.15), masonry Novice (1.0) -> avg 1.075
	got := Compute(v, []string{"carpentry", "masonry"}, TaskConstruction)
	assert.InDelta(t, 1.075*1.1, got, 1e-9)
}

func TestComputeNoSkillsIsVitalityOnly(t *testing.T) {
	v := &domain.Villager{Age: 60, Health: 50, Happiness: 100}
	got := Compute(v, nil, TaskProduction)
	assert.InDelta(t, 1.1*0.5, got, 1e-9)
}
