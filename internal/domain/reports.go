package domain

// DeathRecord is one entry of a daily death report.
type DeathRecord struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Age  int    `json:"age"`
}

// DeathReport is the outcome of one aging pass.
type DeathReport struct {
	Day    int           `json:"day"`
	Deaths []DeathRecord `json:"deaths"`
}

// GrowthReport is the outcome of one daily birth roll. Villager creation is
// a separate call so the caller can assign names and genders.
type GrowthReport struct {
	EligibleCouples int `json:"eligible_couples"`
	Births          int `json:"births"`
	Twins           int `json:"twins"`
}

// DeathProjection is an expected-death estimate over a horizon. A projection
// only — producing it never removes villagers.
type DeathProjection struct {
	HorizonDays   int     `json:"horizon_days"`
	ExpectedCount float64 `json:"expected_count"`
	AtRisk        int     `json:"at_risk"` // villagers in any weighted bucket
}

// PopulationSummary is the read-only population view for UI collaborators.
type PopulationSummary struct {
	Total         int               `json:"total"`
	ByStage       map[LifeStage]int `json:"by_stage"`
	ByRole        map[string]int    `json:"by_role"`
	AverageAge    float64           `json:"average_age"`
	AverageHealth float64           `json:"average_health"`
	Projection    DeathProjection   `json:"projection"`
}

// EfficiencyBreakdown explains one builder's contribution to site output.
type EfficiencyBreakdown struct {
	VillagerID int64   `json:"villager_id"`
	Name       string  `json:"name"`
	Efficiency float64 `json:"efficiency"`
}

// ConstructionSummary is the read-only per-site view for UI collaborators.
type ConstructionSummary struct {
	BuildingID      int64                 `json:"building_id"`
	TypeKey         string                `json:"type_key"`
	PercentComplete float64               `json:"percent_complete"`
	PointsRemaining float64               `json:"points_remaining"`
	BuilderCount    int                   `json:"builder_count"`
	DaysToComplete  int                   `json:"days_to_complete"` // -1 when no builders assigned
	Breakdown       []EfficiencyBreakdown `json:"breakdown"`
}

// EmploymentSummary is the read-only job-market view for UI collaborators.
type EmploymentSummary struct {
	TotalSlots  int                  `json:"total_slots"`
	FilledSlots int                  `json:"filled_slots"`
	VacancyRate float64              `json:"vacancy_rate"`
	Production  map[Resource]float64 `json:"production"`
	Consumption map[Resource]float64 `json:"consumption"`
}
