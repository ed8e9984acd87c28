// Package scheduler runs worker jobs at fixed intervals. It owns no
// execution itself: every due job is handed to the worker pool, so a slow
// tick can never stack concurrent runs when the pool is sized to one.
package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/quennell/hearthstead/internal/worker"
)

// Scheduler drives registered jobs on their intervals until stopped.
type Scheduler struct {
	workerPool *worker.Pool
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a scheduler backed by the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. Enqueue blocks when
// the pool's queue is full, which backpressures the schedule rather than
// dropping runs.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	slog.Debug("Job scheduled", "interval", interval)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.Enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop halts all schedules and waits for the ticker goroutines to exit.
// Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
	})
	s.wg.Wait()
}
