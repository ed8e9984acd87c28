package capability

import "github.com/quennell/hearthstead/internal/domain"

// TaskType selects the capability parameterization for a consumer.
type TaskType string

const (
	TaskConstruction TaskType = "construction"
	TaskProduction   TaskType = "production"
	TaskSoldiering   TaskType = "soldiering"
)

// Floor clamps for the linear vitality scalers. A wounded or miserable
// villager still contributes something.
const (
	HealthFloor    = 0.4
	HappinessFloor = 0.5
)

// Age curve values. Bell-shaped: ramps in, peaks through the adult range,
// tapers for middle age. Callers never pass child/elder ages — eligibility
// checks exclude them before capability is computed.
const (
	ageFactorYoungAdult = 0.85
	ageFactorAdult      = 1.1
	ageFactorMiddleAged = 0.9
	ageFactorOther      = 0.5
)

// AgeFactor returns the non-monotonic age multiplier.
func AgeFactor(age int) float64 {
	stage, ok := domain.StageForAge(age)
	if !ok {
		return 0
	}
	switch stage {
	case domain.StageYoungAdult:
		return ageFactorYoungAdult
	case domain.StageAdult:
		return ageFactorAdult
	case domain.StageMiddleAged:
		return ageFactorMiddleAged
	default:
		return ageFactorOther
	}
}

// HealthFactor returns the floor-clamped linear health scaler.
func HealthFactor(health int) float64 {
	f := float64(health) / 100.0
	if f < HealthFloor {
		return HealthFloor
	}
	if f > 1.0 {
		return 1.0
	}
	return f
}

// HappinessFactor returns the floor-clamped linear happiness scaler.
func HappinessFactor(happiness int) float64 {
	f := float64(happiness) / 100.0
	if f < HappinessFloor {
		return HappinessFloor
	}
	if f > 1.0 {
		return 1.0
	}
	return f
}

// tableForTask selects the tier table a task type draws from.
func tableForTask(task TaskType) *Table {
	if task == TaskSoldiering {
		return TableByID(MartialTableID)
	}
	return TableByID(StandardTableID)
}

// Compute derives a villager's capability for a task from current skill
// tiers (averaged across the given skills), age, health, and happiness.
// Consumers call this fresh each day — the result is never cached.
func Compute(v *domain.Villager, skills []string, task TaskType) float64 {
	tb := tableForTask(task)

	skillMult := 1.0
	if len(skills) > 0 {
		sum := 0.0
		for _, s := range skills {
			sum += tb.MultiplierForXP(v.SkillXP(s))
		}
		skillMult = sum / float64(len(skills))
	}

	return skillMult * AgeFactor(v.Age) * HealthFactor(v.Health) * HappinessFactor(v.Happiness)
}

// Teamwork step function: one builder works alone, small crews gain flat
// bonuses, and each head past five adds a diminishing increment.
const teamworkPerExtraHead = 0.02

var teamworkSteps = [...]float64{1.0, 1.0, 1.1, 1.18, 1.24, 1.28}

// TeamworkBonus returns the crew-size multiplier for n concurrent workers.
func TeamworkBonus(n int) float64 {
	if n <= 0 {
		return 0
	}
	if n < len(teamworkSteps) {
		return teamworkSteps[n]
	}
	return teamworkSteps[len(teamworkSteps)-1] + float64(n-(len(teamworkSteps)-1))*teamworkPerExtraHead
}
