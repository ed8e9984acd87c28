package domain

// Gender of a villager, fixed at creation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// VillagerStatus describes what a villager is currently doing.
// There is no "dead" status: death is removal from the ledger.
type VillagerStatus string

const (
	StatusIdle      VillagerStatus = "idle"
	StatusWorking   VillagerStatus = "working"
	StatusTraveling VillagerStatus = "traveling"
	StatusSick      VillagerStatus = "sick"
	StatusDrafted   VillagerStatus = "drafted"
)

// LifeStage is a derived age bracket. It is never stored — always computed
// from Age so the two cannot diverge.
type LifeStage string

const (
	StageChild      LifeStage = "child"
	StageYoungAdult LifeStage = "young_adult"
	StageAdult      LifeStage = "adult"
	StageMiddleAged LifeStage = "middle_aged"
	StageElder      LifeStage = "elder"
)

// Life-stage boundaries in simulated days.
const (
	AgeYoungAdult  = 28
	AgeAdult       = 46
	AgeMiddleAged  = 76
	AgeElder       = 151
	AgeDeath       = 198
	BreedingAgeMin = 46
	BreedingAgeMax = 150
)

// Default vitals for a newly created villager.
const (
	DefaultHealth    = 100
	DefaultHappiness = 75
)

// RoleUnemployed is the role of a villager with no job assignment.
const RoleUnemployed = "unemployed"

// Villager is a single member of the settlement roster.
type Villager struct {
	ID                 int64            `json:"id"`
	Name               string           `json:"name"`
	Age                int              `json:"age"` // simulated days, monotonically increasing
	Gender             Gender           `json:"gender"`
	Role               string           `json:"role"` // job key or RoleUnemployed
	Status             VillagerStatus   `json:"status"`
	Health             int              `json:"health"`    // 0-100
	Happiness          int              `json:"happiness"` // 0-100
	Skills             map[string]int64 `json:"skills"`    // skill name -> XP, never decreases
	AssignedBuildingID *int64           `json:"assigned_building_id,omitempty"`
}

// StageForAge returns the life stage for an age in days. ok is false when the
// age is at or past the death threshold.
func StageForAge(age int) (stage LifeStage, ok bool) {
	switch {
	case age < 0:
		return StageChild, true
	case age < AgeYoungAdult:
		return StageChild, true
	case age < AgeAdult:
		return StageYoungAdult, true
	case age < AgeMiddleAged:
		return StageAdult, true
	case age < AgeElder:
		return StageMiddleAged, true
	case age < AgeDeath:
		return StageElder, true
	default:
		return "", false
	}
}

// Stage returns the villager's current life stage. Callers must remove
// villagers at the death threshold, so a missing stage here means the aging
// pass has not yet collected them.
func (v *Villager) Stage() LifeStage {
	stage, _ := StageForAge(v.Age)
	return stage
}

// CanWork reports whether the life stage permits ordinary job assignment.
// Children and elders are excluded.
func (v *Villager) CanWork() bool {
	stage, ok := StageForAge(v.Age)
	if !ok {
		return false
	}
	switch stage {
	case StageYoungAdult, StageAdult, StageMiddleAged:
		return true
	}
	return false
}

// CanSoldier reports whether the villager may hold a soldier-class role.
// Deliberately narrower than CanWork: only the adult sub-range qualifies.
func (v *Villager) CanSoldier() bool {
	stage, ok := StageForAge(v.Age)
	return ok && stage == StageAdult
}

// IsBreedingAge reports whether the villager falls in the breeding range.
func (v *Villager) IsBreedingAge() bool {
	return v.Age >= BreedingAgeMin && v.Age <= BreedingAgeMax
}

// SkillXP returns accumulated XP for a skill, zero when never practiced.
func (v *Villager) SkillXP(skill string) int64 {
	if v.Skills == nil {
		return 0
	}
	return v.Skills[skill]
}
