package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/quennell/hearthstead/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system. The core fires these and
// forgets them: no consumer return value is ever awaited.
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Day     int         `json:"day"` // simulated day the event occurred on
	Payload interface{} `json:"payload"`
}

// Common event types
const (
	VillagerBorn      = Type(domain.EventTypeVillagerBorn)
	VillagerDied      = Type(domain.EventTypeVillagerDied)
	BuildingCompleted = Type(domain.EventTypeBuildingCompleted)
	SkillLevelUp      = Type(domain.EventTypeSkillLevelUp)
	EffectApplied     = Type(domain.EventTypeEffectApplied)
	EffectExpired     = Type(domain.EventTypeEffectExpired)
	DayAdvanced       = Type(domain.EventTypeDayAdvanced)
)

// Typed event payloads for type safety

// VillagerBornPayloadV1 is the typed payload for birth events
type VillagerBornPayloadV1 struct {
	VillagerID int64  `json:"villager_id"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Twin       bool   `json:"twin"`
}

// VillagerDiedPayloadV1 is the typed payload for death events
type VillagerDiedPayloadV1 struct {
	VillagerID int64  `json:"villager_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Age        int    `json:"age"`
}

// BuildingCompletedPayloadV1 is the typed payload for construction completion events
type BuildingCompletedPayloadV1 struct {
	BuildingID int64           `json:"building_id"`
	TypeKey    string          `json:"type_key"`
	Level      int             `json:"level"`
	Position   domain.Position `json:"position"`
}

// SkillLevelUpPayloadV1 is the typed payload for skill tier crossings
type SkillLevelUpPayloadV1 struct {
	VillagerID int64  `json:"villager_id"`
	Name       string `json:"name"`
	Skill      string `json:"skill"`
	OldTier    int    `json:"old_tier"`
	NewTier    int    `json:"new_tier"`
	TierName   string `json:"tier_name"`
}

// EffectPayloadV1 is the typed payload for effect applied/expired events
type EffectPayloadV1 struct {
	EffectID int64  `json:"effect_id"`
	Key      string `json:"key"`
	Category string `json:"category"`
	EndDay   int    `json:"end_day,omitempty"`
}

// DayAdvancedPayloadV1 is the typed payload for completed tick sequences
type DayAdvancedPayloadV1 struct {
	Day        int   `json:"day"`
	Population int   `json:"population"`
	Births     int   `json:"births"`
	Deaths     int   `json:"deaths"`
	ElapsedMS  int64 `json:"elapsed_ms"`
}

// Type-safe event constructors

// NewVillagerBornEvent creates a new birth event
func NewVillagerBornEvent(day int, villagerID int64, name string, gender domain.Gender, twin bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    VillagerBorn,
		Day:     day,
		Payload: VillagerBornPayloadV1{
			VillagerID: villagerID,
			Name:       name,
			Gender:     string(gender),
			Twin:       twin,
		},
	}
}

// NewVillagerDiedEvent creates a new death event
func NewVillagerDiedEvent(day int, villagerID int64, name, role string, age int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    VillagerDied,
		Day:     day,
		Payload: VillagerDiedPayloadV1{
			VillagerID: villagerID,
			Name:       name,
			Role:       role,
			Age:        age,
		},
	}
}

// NewBuildingCompletedEvent creates a new construction completion event
func NewBuildingCompletedEvent(day int, b *domain.Building) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    BuildingCompleted,
		Day:     day,
		Payload: BuildingCompletedPayloadV1{
			BuildingID: b.ID,
			TypeKey:    b.TypeKey,
			Level:      b.Level,
			Position:   b.Position,
		},
	}
}

// NewSkillLevelUpEvent creates a new skill tier crossing event
func NewSkillLevelUpEvent(day int, villagerID int64, name, skill string, oldTier, newTier int, tierName string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SkillLevelUp,
		Day:     day,
		Payload: SkillLevelUpPayloadV1{
			VillagerID: villagerID,
			Name:       name,
			Skill:      skill,
			OldTier:    oldTier,
			NewTier:    newTier,
			TierName:   tierName,
		},
	}
}

// NewEffectAppliedEvent creates a new effect applied event
func NewEffectAppliedEvent(day int, e *domain.Effect) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EffectApplied,
		Day:     day,
		Payload: EffectPayloadV1{
			EffectID: e.ID,
			Key:      e.Key,
			Category: string(e.Category),
			EndDay:   e.EndDay,
		},
	}
}

// NewEffectExpiredEvent creates a new effect expired event
func NewEffectExpiredEvent(day int, e *domain.Effect) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    EffectExpired,
		Day:     day,
		Payload: EffectPayloadV1{
			EffectID: e.ID,
			Key:      e.Key,
			Category: string(e.Category),
		},
	}
}

// NewDayAdvancedEvent creates a new tick summary event
func NewDayAdvancedEvent(day, population, births, deaths int, elapsed time.Duration) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DayAdvanced,
		Day:     day,
		Payload: DayAdvancedPayloadV1{
			Day:        day,
			Population: population,
			Births:     births,
			Deaths:     deaths,
			ElapsedMS:  elapsed.Milliseconds(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	// Handlers run synchronously inside the tick; the tick ordering in the
	// world driver guarantees no concurrent mutation.
	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
