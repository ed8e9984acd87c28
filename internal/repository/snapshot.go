// Package repository defines the persistence interfaces the core depends
// on. Implementations live under internal/database; the services never see
// a concrete driver.
package repository

import (
	"context"

	"github.com/quennell/hearthstead/internal/domain"
)

// Snapshot defines the interface for world snapshot persistence
type Snapshot interface {
	// SaveSnapshot persists a snapshot record. A zero ID is assigned by the
	// store; the populated record is returned.
	SaveSnapshot(ctx context.Context, label string, snap domain.WorldSnapshot) (*domain.SnapshotRecord, error)

	// GetSnapshot loads one snapshot by id.
	GetSnapshot(ctx context.Context, id string) (*domain.SnapshotRecord, error)

	// GetLatestSnapshot loads the most recent snapshot for a label.
	GetLatestSnapshot(ctx context.Context, label string) (*domain.SnapshotRecord, error)

	// ListSnapshots returns snapshot metadata (state omitted), newest first.
	ListSnapshots(ctx context.Context, label string, limit int) ([]domain.SnapshotRecord, error)

	// PruneSnapshots deletes all but the newest keep snapshots for a label,
	// returning the number removed.
	PruneSnapshots(ctx context.Context, label string, keep int) (int64, error)
}

// EventArchive defines the interface for durable event storage
type EventArchive interface {
	// AppendEvent stores one event row.
	AppendEvent(ctx context.Context, eventType string, day int, payload any) error

	// EventsForDay returns the archived payloads for one simulated day.
	EventsForDay(ctx context.Context, day int) ([]domain.ArchivedEvent, error)
}
