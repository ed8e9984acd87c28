package jobs

import "github.com/quennell/hearthstead/internal/domain"

// SkillBonusPerLevel is the production bonus granted per tier level held in
// a job's bonus skill (10% per level).
const SkillBonusPerLevel = 0.10

// seasonalYield is the per-season production multiplier by resource.
// Resources absent from a season's row fall back to 1.0.
var seasonalYield = map[domain.Season]map[domain.Resource]float64{
	domain.SeasonSpring: {
		domain.ResourceFood: 1.1,
	},
	domain.SeasonSummer: {
		domain.ResourceFood: 1.25,
		domain.ResourceWood: 1.1,
	},
	domain.SeasonAutumn: {
		domain.ResourceFood:  1.15,
		domain.ResourceStone: 1.05,
	},
	domain.SeasonWinter: {
		domain.ResourceFood: 0.6,
		domain.ResourceWood: 0.9,
	},
}

// SeasonalMultiplier returns the yield multiplier for a resource in a season,
// falling back to 1.0 for anything the table does not name.
func SeasonalMultiplier(season domain.Season, res domain.Resource) float64 {
	row, ok := seasonalYield[season]
	if !ok {
		return 1.0
	}
	if m, ok := row[res]; ok {
		return m
	}
	return 1.0
}

// EfficiencyKey returns the modifier-ledger key a job's production listens
// to (e.g. "farmerEfficiency").
func EfficiencyKey(jobKey string) string {
	return jobKey + "Efficiency"
}
