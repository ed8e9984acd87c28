package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/quennell/hearthstead/internal/config"
	"github.com/quennell/hearthstead/internal/event"
	"github.com/quennell/hearthstead/internal/metrics"
	"github.com/quennell/hearthstead/internal/repository"
)

// InitializeEventSystem creates the event bus and the resilient publisher
// that wraps it, ensuring the dead-letter directory exists first.
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	eventBus := event.NewMemoryBus()

	if err := os.MkdirAll(filepath.Dir(cfg.DeadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	publisher := event.NewResilientPublisher(eventBus, event.ResilientConfig{
		DeadLetterPath: cfg.DeadLetterPath,
	})

	slog.Info(LogMsgEventSystemInitialized, "dead_letter_path", cfg.DeadLetterPath)
	return eventBus, publisher, nil
}

// archivedTypes lists the event types persisted to the archive. Everything
// the simulation emits is archived; the list exists so a future high-volume
// type can opt out without touching the subscriber.
var archivedTypes = []event.Type{
	event.VillagerBorn,
	event.VillagerDied,
	event.BuildingCompleted,
	event.SkillLevelUp,
	event.EffectApplied,
	event.EffectExpired,
	event.DayAdvanced,
}

// RegisterEventArchiver subscribes a durable sink for every simulation event.
// Archive failures are logged and swallowed: history is best-effort and must
// never fail a tick.
func RegisterEventArchiver(bus event.Bus, archive repository.EventArchive) {
	for _, t := range archivedTypes {
		bus.Subscribe(t, func(ctx context.Context, e event.Event) error {
			if err := archive.AppendEvent(ctx, string(e.Type), e.Day, e.Payload); err != nil {
				slog.Error("Failed to archive event", "event_type", e.Type, "error", err)
			}
			return nil
		})
	}
	slog.Info(LogMsgEventArchiverRegistered, "types", len(archivedTypes))
}

// RegisterMetricsCollector wires the Prometheus event collector to the bus.
func RegisterMetricsCollector(bus event.Bus) {
	metrics.NewEventMetricsCollector().Register(bus)
}
