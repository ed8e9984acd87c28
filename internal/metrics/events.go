package metrics

import (
	"context"
	"time"

	"github.com/quennell/hearthstead/internal/event"
)

// EventMetricsCollector subscribes to simulation events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.VillagerBorn,
		event.VillagerDied,
		event.BuildingCompleted,
		event.SkillLevelUp,
		event.EffectApplied,
		event.EffectExpired,
		event.DayAdvanced,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case event.VillagerBornPayloadV1:
		Births.Inc()
	case event.VillagerDiedPayloadV1:
		Deaths.Inc()
	case event.BuildingCompletedPayloadV1:
		BuildingsCompleted.WithLabelValues(payload.TypeKey).Inc()
	case event.SkillLevelUpPayloadV1:
		SkillLevelUps.WithLabelValues(payload.Skill).Inc()
	case event.DayAdvancedPayloadV1:
		DaysAdvanced.Inc()
		Population.Set(float64(payload.Population))
		TickDuration.Observe(time.Duration(payload.ElapsedMS * int64(time.Millisecond)).Seconds())
	}

	return nil
}
