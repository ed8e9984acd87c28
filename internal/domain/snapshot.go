package domain

import (
	"encoding/json"
	"time"
)

// WorldSnapshot is the plain-data form of the full core state. It must
// round-trip: restoring a snapshot yields an observably identical population,
// job, construction, and modifier state. The core never decides when to
// persist it — that is the caller's job.
type WorldSnapshot struct {
	Day            int                  `json:"day"`
	Villagers      []Villager           `json:"villagers"`
	NextVillagerID int64                `json:"next_villager_id"`
	Buildings      []Building           `json:"buildings"`
	NextBuildingID int64                `json:"next_building_id"`
	Slots          []JobSlot            `json:"slots"`
	NextSlotID     int64                `json:"next_slot_id"`
	Sites          []ConstructionSite   `json:"sites"`
	Effects        []Effect             `json:"effects"`
	TechEffects    []Effect             `json:"tech_effects"`
	NextEffectID   int64                `json:"next_effect_id"`
	Stock          map[Resource]float64 `json:"stock"`
}

// SnapshotRecord is a persisted snapshot row.
type SnapshotRecord struct {
	ID        string        `json:"id"` // UUID
	Label     string        `json:"label"`
	Day       int           `json:"day"`
	State     WorldSnapshot `json:"state"`
	CreatedAt time.Time     `json:"created_at"`
}

// ArchivedEvent is a persisted event row.
type ArchivedEvent struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Day       int             `json:"day"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
