package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quennell/hearthstead/internal/worker"
)

type signalJob struct {
	done chan struct{}
}

func (j *signalJob) Process(ctx context.Context) error {
	select {
	case j.done <- struct{}{}:
	default:
	}
	return nil
}

func TestSchedulerRunsJobOnInterval(t *testing.T) {
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	defer sched.Stop()

	job := &signalJob{done: make(chan struct{}, 10)}
	sched.Schedule(10*time.Millisecond, job)

	runs := 0
	timeout := time.After(time.Second)
	for runs < 2 {
		select {
		case <-job.done:
			runs++
		case <-timeout:
			t.Fatal("timed out waiting for scheduled runs")
		}
	}
	assert.GreaterOrEqual(t, runs, 2)
}

func TestSchedulerStopIsIdempotent(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	defer pool.Stop()

	sched := New(pool)
	sched.Schedule(time.Hour, &signalJob{done: make(chan struct{}, 1)})

	sched.Stop()
	sched.Stop() // must not panic
}
