package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quennell/hearthstead/internal/testing/leaktest"
)

type countingJob struct {
	executed *int32
	done     chan struct{}
}

func (j *countingJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	j.done <- struct{}{}
	return nil
}

func TestPoolProcessesJobs(t *testing.T) {
	var executed int32
	done := make(chan struct{}, TestExpectedJobCount)

	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &countingJob{executed: &executed, done: done}
	pool.Enqueue(job)
	pool.Enqueue(job)

	for i := 0; i < TestExpectedJobCount; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	pool.Stop()
	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPoolStopTerminatesWorkers(t *testing.T) {
	leaktest.CheckNoGoroutineLeak(t, func() {
		pool := NewPool(TestWorkerCount, TestQueueSize)
		pool.Start()
		pool.Stop()
	})
}
