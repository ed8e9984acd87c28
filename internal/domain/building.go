package domain

// Position is a building's location on the settlement map. The core does not
// interpret coordinates; they ride along for the UI collaborators.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// BuildingDefinition describes a building type: its construction cost, the
// skills its construction exercises, and the job slots it offers once built.
type BuildingDefinition struct {
	Key            string         `json:"key" validate:"required"`
	DisplayName    string         `json:"display_name" validate:"required"`
	BasePoints     float64        `json:"base_points" validate:"gt=0"` // work-points at level 1
	Difficulty     float64        `json:"difficulty" validate:"gt=0"`  // scales construction XP
	RelevantSkills []string       `json:"relevant_skills" validate:"min=2,max=4"`
	JobSlots       map[string]int `json:"job_slots"` // job key -> slot count when complete
}

// Building is a placed structure, either complete or under construction.
// A building under construction owns a ConstructionSite; a complete building
// owns none — never both.
type Building struct {
	ID       int64    `json:"id"`
	TypeKey  string   `json:"type_key"`
	Level    int      `json:"level"`
	Built    bool     `json:"built"`
	Position Position `json:"position"`
}
