package domain

// Resource identifies a produced or consumed good.
type Resource string

const (
	ResourceFood  Resource = "food"
	ResourceWood  Resource = "wood"
	ResourceStone Resource = "stone"
	ResourceIron  Resource = "iron"
	ResourceGold  Resource = "gold"
	ResourceCloth Resource = "cloth"
	ResourceHerbs Resource = "herbs"
)

// JobDefinition describes a profession hosted at a building type.
// Immutable after registration with the job registry.
type JobDefinition struct {
	Key          string               `json:"key" validate:"required"`
	DisplayName  string               `json:"display_name" validate:"required"`
	BuildingType string               `json:"building_type" validate:"required"`
	Production   map[Resource]float64 `json:"production"`  // base amount per day
	Consumption  map[Resource]float64 `json:"consumption"` // base amount per day
	BonusSkill   string               `json:"bonus_skill"` // skill granting a production bonus
	GainedSkill  string               `json:"gained_skill" validate:"required"`
	SoldierClass bool                 `json:"soldier_class"`
}

// JobSlot is a fixed position at a building that one villager may occupy.
// Slots are created once when a building completes and never resized.
type JobSlot struct {
	ID         int64  `json:"id"`
	BuildingID int64  `json:"building_id"`
	JobKey     string `json:"job_key"`
	Index      int    `json:"index"`
	OccupantID *int64 `json:"occupant_id,omitempty"`
}

// Occupied reports whether the slot has an active occupant.
func (s *JobSlot) Occupied() bool {
	return s.OccupantID != nil
}
