package worker

import (
	"context"
	"sync"

	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/metrics"
	"github.com/quennell/hearthstead/internal/repository"
	"github.com/quennell/hearthstead/internal/sim"
)

// SnapshotJob persists the world on a schedule. A tick may not have run
// between invocations; saving the same day twice is pointless, so the job
// remembers the last day it wrote.
type SnapshotJob struct {
	mu           sync.Mutex
	world        *sim.World
	store        repository.Snapshot
	keep         int
	lastSavedDay int
}

// NewSnapshotJob creates a new snapshot job. keep bounds how many autosaves
// are retained.
func NewSnapshotJob(world *sim.World, store repository.Snapshot, keep int) *SnapshotJob {
	return &SnapshotJob{world: world, store: store, keep: keep, lastSavedDay: -1}
}

// Process saves one snapshot if the world has advanced since the last save
func (j *SnapshotJob) Process(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	snap := j.world.Snapshot()

	j.mu.Lock()
	if snap.Day == j.lastSavedDay {
		j.mu.Unlock()
		log.Debug(LogMsgSnapshotSkipped, "day", snap.Day)
		return nil
	}
	j.lastSavedDay = snap.Day
	j.mu.Unlock()

	rec, err := j.store.SaveSnapshot(ctx, AutosaveLabel, snap)
	if err != nil {
		log.Error(LogMsgSnapshotFailed, "day", snap.Day, "error", err)
		return err
	}
	metrics.SnapshotsSaved.Inc()
	log.Info(LogMsgSnapshotSaved, "snapshot_id", rec.ID, "day", rec.Day)

	if j.keep > 0 {
		if _, err := j.store.PruneSnapshots(ctx, AutosaveLabel, j.keep); err != nil {
			log.Warn("Snapshot prune failed", "error", err)
		}
	}
	return nil
}
