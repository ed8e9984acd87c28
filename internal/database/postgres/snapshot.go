// Package postgres implements the persistence interfaces on pgx.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quennell/hearthstead/internal/domain"
)

// SnapshotRepository implements the snapshot store for PostgreSQL
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// SaveSnapshot persists one snapshot record and returns the stored row
func (r *SnapshotRepository) SaveSnapshot(ctx context.Context, label string, snap domain.WorldSnapshot) (*domain.SnapshotRecord, error) {
	state, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot state: %w", err)
	}

	rec := &domain.SnapshotRecord{Label: label, Day: snap.Day, State: snap}
	query := `
		INSERT INTO world_snapshots (label, sim_day, state)
		VALUES ($1, $2, $3)
		RETURNING snapshot_id, created_at
	`
	if err := r.db.QueryRow(ctx, query, label, snap.Day, state).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return rec, nil
}

// GetSnapshot loads one snapshot by id
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, id string) (*domain.SnapshotRecord, error) {
	query := `
		SELECT snapshot_id, label, sim_day, state, created_at
		FROM world_snapshots
		WHERE snapshot_id = $1
	`
	return r.scanSnapshot(r.db.QueryRow(ctx, query, id))
}

// GetLatestSnapshot loads the most recent snapshot for a label
func (r *SnapshotRepository) GetLatestSnapshot(ctx context.Context, label string) (*domain.SnapshotRecord, error) {
	query := `
		SELECT snapshot_id, label, sim_day, state, created_at
		FROM world_snapshots
		WHERE label = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return r.scanSnapshot(r.db.QueryRow(ctx, query, label))
}

func (r *SnapshotRepository) scanSnapshot(row pgx.Row) (*domain.SnapshotRecord, error) {
	var (
		rec   domain.SnapshotRecord
		state []byte
	)
	err := row.Scan(&rec.ID, &rec.Label, &rec.Day, &state, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}
	if err := json.Unmarshal(state, &rec.State); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot state: %w", err)
	}
	return &rec, nil
}

// ListSnapshots returns snapshot metadata for a label, newest first. The
// state column is not fetched; use GetSnapshot for a full record.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, label string, limit int) ([]domain.SnapshotRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT snapshot_id, label, sim_day, created_at
		FROM world_snapshots
		WHERE label = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, label, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []domain.SnapshotRecord
	for rows.Next() {
		var rec domain.SnapshotRecord
		if err := rows.Scan(&rec.ID, &rec.Label, &rec.Day, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// PruneSnapshots deletes all but the newest keep snapshots for a label
func (r *SnapshotRepository) PruneSnapshots(ctx context.Context, label string, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	query := `
		DELETE FROM world_snapshots
		WHERE label = $1
		AND snapshot_id NOT IN (
			SELECT snapshot_id FROM world_snapshots
			WHERE label = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`
	tag, err := r.db.Exec(ctx, query, label, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
