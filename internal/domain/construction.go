package domain

// SiteStatus is the construction site state machine: active until the point
// requirement is met, then complete and the site is destroyed. There is no
// pause or cancel state.
type SiteStatus string

const (
	SiteActive   SiteStatus = "active"
	SiteComplete SiteStatus = "complete"
)

// BuilderAssignment is a builder on a site together with the efficiency
// computed for the current day. Efficiency is re-derived whenever assignment,
// skill, season, or technology state changes — never carried across days.
type BuilderAssignment struct {
	VillagerID int64   `json:"villager_id"`
	Efficiency float64 `json:"efficiency"`
}

// ConstructionSite is the work-point ledger for one building under
// construction.
type ConstructionSite struct {
	BuildingID    int64               `json:"building_id"`
	TypeKey       string              `json:"type_key"`
	Level         int                 `json:"level"`
	TotalPoints   float64             `json:"total_points"`
	Points        float64             `json:"points"` // monotonically non-decreasing, capped at TotalPoints
	Builders      []BuilderAssignment `json:"builders"`
	Status        SiteStatus          `json:"status"`
	RegisteredDay int                 `json:"registered_day"` // ordering key for single-project focus
}

// Remaining returns the work-points still needed.
func (s *ConstructionSite) Remaining() float64 {
	r := s.TotalPoints - s.Points
	if r < 0 {
		return 0
	}
	return r
}

// PercentComplete returns progress in [0,100].
func (s *ConstructionSite) PercentComplete() float64 {
	if s.TotalPoints <= 0 {
		return 100
	}
	return s.Points / s.TotalPoints * 100
}
