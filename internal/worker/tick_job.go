package worker

import (
	"context"

	"github.com/quennell/hearthstead/internal/logger"
	"github.com/quennell/hearthstead/internal/sim"
)

// TickJob advances the world by one day when scheduled. The world is
// single-threaded by contract, so ticks must run on a one-worker pool or be
// otherwise serialized.
type TickJob struct {
	world *sim.World
}

// NewTickJob creates a new tick job
func NewTickJob(world *sim.World) *TickJob {
	return &TickJob{world: world}
}

// Process advances the world by one day
func (j *TickJob) Process(ctx context.Context) error {
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())
	log := logger.FromContext(ctx)

	log.Debug(LogMsgTickStarting, "day", j.world.Day()+1)
	report := j.world.AdvanceDay(ctx)
	log.Info(LogMsgTickCompleted,
		"day", report.Day,
		"births", report.Births.Births,
		"deaths", len(report.Deaths.Deaths))
	return nil
}
