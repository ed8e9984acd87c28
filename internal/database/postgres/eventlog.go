package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quennell/hearthstead/internal/domain"
)

// EventArchiveRepository implements durable event storage for PostgreSQL
type EventArchiveRepository struct {
	db *pgxpool.Pool
}

// NewEventArchiveRepository creates a new EventArchiveRepository
func NewEventArchiveRepository(db *pgxpool.Pool) *EventArchiveRepository {
	return &EventArchiveRepository{db: db}
}

// AppendEvent stores one event row
func (r *EventArchiveRepository) AppendEvent(ctx context.Context, eventType string, day int, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	query := `
		INSERT INTO event_archive (event_type, sim_day, payload)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.Exec(ctx, query, eventType, day, data); err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

// EventsForDay returns the archived events for one simulated day
func (r *EventArchiveRepository) EventsForDay(ctx context.Context, day int) ([]domain.ArchivedEvent, error) {
	query := `
		SELECT event_id, event_type, sim_day, payload, created_at
		FROM event_archive
		WHERE sim_day = $1
		ORDER BY event_id
	`
	rows, err := r.db.Query(ctx, query, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []domain.ArchivedEvent
	for rows.Next() {
		var e domain.ArchivedEvent
		if err := rows.Scan(&e.ID, &e.Type, &e.Day, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
