package catalog

import "github.com/quennell/hearthstead/internal/domain"

// Skill names used across the default content.
const (
	SkillFarming   = "farming"
	SkillCarpentry = "carpentry"
	SkillMasonry   = "masonry"
	SkillSmithing  = "smithing"
	SkillHauling   = "hauling"
	SkillDrill     = "drill"
)

// DefaultBuildings returns a catalog preloaded with the stock settlement
// buildings. Seeding and tests start from this set.
func DefaultBuildings() *Buildings {
	c := NewBuildings()

	defs := []domain.BuildingDefinition{
		{
			Key:            "farm",
			DisplayName:    "Farm",
			BasePoints:     80,
			Difficulty:     1.0,
			RelevantSkills: []string{SkillCarpentry, SkillHauling},
			JobSlots:       map[string]int{"farmer": 4},
		},
		{
			Key:            "sawmill",
			DisplayName:    "Sawmill",
			BasePoints:     100,
			Difficulty:     1.2,
			RelevantSkills: []string{SkillCarpentry, SkillHauling},
			JobSlots:       map[string]int{"woodcutter": 3},
		},
		{
			Key:            "quarry",
			DisplayName:    "Quarry",
			BasePoints:     140,
			Difficulty:     1.5,
			RelevantSkills: []string{SkillMasonry, SkillHauling},
			JobSlots:       map[string]int{"stonecutter": 3},
		},
		{
			Key:            "forge",
			DisplayName:    "Forge",
			BasePoints:     160,
			Difficulty:     1.8,
			RelevantSkills: []string{SkillMasonry, SkillSmithing, SkillHauling},
			JobSlots:       map[string]int{"blacksmith": 2},
		},
		{
			Key:            "barracks",
			DisplayName:    "Barracks",
			BasePoints:     200,
			Difficulty:     2.0,
			RelevantSkills: []string{SkillCarpentry, SkillMasonry, SkillHauling},
			JobSlots:       map[string]int{"soldier": 6},
		},
	}
	for _, def := range defs {
		if err := c.Register(def); err != nil {
			// Stock content is compiled in; a bad entry is a programming error.
			panic(err)
		}
	}
	return c
}

// DefaultJobs returns the stock job definitions matching DefaultBuildings.
func DefaultJobs() []domain.JobDefinition {
	return []domain.JobDefinition{
		{
			Key:          "farmer",
			DisplayName:  "Farmer",
			BuildingType: "farm",
			Production:   map[domain.Resource]float64{domain.ResourceFood: 3},
			Consumption:  map[domain.Resource]float64{domain.ResourceFood: 1},
			BonusSkill:   SkillFarming,
			GainedSkill:  SkillFarming,
		},
		{
			Key:          "woodcutter",
			DisplayName:  "Woodcutter",
			BuildingType: "sawmill",
			Production:   map[domain.Resource]float64{domain.ResourceWood: 2},
			Consumption:  map[domain.Resource]float64{domain.ResourceFood: 1},
			BonusSkill:   SkillCarpentry,
			GainedSkill:  SkillCarpentry,
		},
		{
			Key:          "stonecutter",
			DisplayName:  "Stonecutter",
			BuildingType: "quarry",
			Production:   map[domain.Resource]float64{domain.ResourceStone: 2},
			Consumption:  map[domain.Resource]float64{domain.ResourceFood: 1},
			BonusSkill:   SkillMasonry,
			GainedSkill:  SkillMasonry,
		},
		{
			Key:          "blacksmith",
			DisplayName:  "Blacksmith",
			BuildingType: "forge",
			Production:   map[domain.Resource]float64{domain.ResourceIron: 1},
			Consumption:  map[domain.Resource]float64{domain.ResourceFood: 1, domain.ResourceWood: 1},
			BonusSkill:   SkillSmithing,
			GainedSkill:  SkillSmithing,
		},
		{
			Key:          "soldier",
			DisplayName:  "Soldier",
			BuildingType: "barracks",
			Production:   map[domain.Resource]float64{},
			Consumption:  map[domain.Resource]float64{domain.ResourceFood: 2},
			BonusSkill:   SkillDrill,
			GainedSkill:  SkillDrill,
			SoldierClass: true,
		},
	}
}

// DefaultEffects returns the stock effect templates: weather that nudges
// yields and build speed, blessings from events, and permanent technologies.
func DefaultEffects() []domain.EffectTemplate {
	return []domain.EffectTemplate{
		{
			Key:         "spring_rain",
			DisplayName: "Spring Rain",
			Category:    domain.CategoryWeather,
			Multipliers: map[string]float64{"farmerEfficiency": 1.1, "constructionSpeed": 0.9},
			SingleStack: true,
		},
		{
			Key:         "frost_snap",
			DisplayName: "Frost Snap",
			Category:    domain.CategoryWeather,
			Multipliers: map[string]float64{"farmerEfficiency": 0.8, "constructionSpeed": 0.8},
			SingleStack: true,
		},
		{
			Key:         "harvest_blessing",
			DisplayName: "Harvest Blessing",
			Category:    domain.CategoryMagical,
			Multipliers: map[string]float64{"farmerEfficiency": 1.2},
		},
		{
			Key:         "festival",
			DisplayName: "Festival",
			Category:    domain.CategoryMagical,
			Multipliers: map[string]float64{
				"farmerEfficiency":      1.05,
				"woodcutterEfficiency":  1.05,
				"stonecutterEfficiency": 1.05,
			},
			SingleStack: true,
		},
		{
			Key:         "improved_scaffolds",
			DisplayName: "Improved Scaffolds",
			Category:    domain.CategoryTechnology,
			Multipliers: map[string]float64{"constructionDiscount": 1},
		},
		{
			Key:         "iron_tools",
			DisplayName: "Iron Tools",
			Category:    domain.CategoryTechnology,
			Multipliers: map[string]float64{"woodcutterEfficiency": 1.15, "stonecutterEfficiency": 1.15},
		},
	}
}
