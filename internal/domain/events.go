package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking. These represent domain events that can be published
// and consumed by multiple modules.
//
// Event types follow the pattern: <entity>.<action> (e.g., "villager.born")
const (
	// EventTypeVillagerBorn is published when the daily growth pass creates a villager
	EventTypeVillagerBorn = "villager.born"

	// EventTypeVillagerDied is published when the aging pass removes a villager
	EventTypeVillagerDied = "villager.died"

	// EventTypeBuildingCompleted is published when a construction site reaches its point requirement
	EventTypeBuildingCompleted = "building.completed"

	// EventTypeSkillLevelUp is published when a villager's skill XP crosses a tier threshold
	EventTypeSkillLevelUp = "skill.levelup"

	// EventTypeEffectApplied is published when a modifier effect becomes active
	EventTypeEffectApplied = "effect.applied"

	// EventTypeEffectExpired is published when the daily sweep removes an elapsed effect
	EventTypeEffectExpired = "effect.expired"

	// EventTypeDayAdvanced is published after a full daily tick sequence completes
	EventTypeDayAdvanced = "day.advanced"
)
