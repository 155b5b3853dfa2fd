package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/testing/leaktest"
)

const (
	testWorkerCount = 2
	testQueueSize   = 10
)

type testJob struct {
	executed *int32
	delay    time.Duration
}

func (j *testJob) Process(ctx context.Context) error {
	if j.delay > 0 {
		time.Sleep(j.delay)
	}
	atomic.AddInt32(j.executed, 1)
	return nil
}

func TestPool(t *testing.T) {
	var executed int32
	pool := NewPool(testWorkerCount, testQueueSize)
	pool.Start()

	job := &testJob{executed: &executed}
	require.NoError(t, pool.Enqueue(context.Background(), job))
	require.NoError(t, pool.Enqueue(context.Background(), job))

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&executed) == 2 }, time.Second, 5*time.Millisecond)
	pool.Stop()
	assert.Equal(t, PoolStats{Succeeded: 2}, pool.Stats())
}

func TestPool_StopDrainsQueue(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(1, 20)
	pool.Start()

	for i := 0; i < 20; i++ {
		require.NoError(t, pool.Enqueue(context.Background(), &testJob{executed: &executed, delay: time.Millisecond}))
	}
	pool.Stop()

	assert.Equal(t, int32(20), atomic.LoadInt32(&executed))
	checker.Check(0)
}

func TestPool_EnqueueAfterStop(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	pool.Stop()

	var executed int32
	err := pool.Enqueue(context.Background(), &testJob{executed: &executed})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestPool_EnqueueRespectsContext(t *testing.T) {
	// Not started: the single slot fills and the next enqueue must give up
	pool := NewPool(1, 1)
	var executed int32
	require.NoError(t, pool.Enqueue(context.Background(), &testJob{executed: &executed}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := pool.Enqueue(ctx, &testJob{executed: &executed})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pool.Start()
	pool.Stop()
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
}

type panicJob struct{}

func (panicJob) Process(context.Context) error { panic("boom") }

type failingJob struct{}

func (failingJob) Process(context.Context) error { return errors.New("nope") }

func TestPool_FailuresAndPanicsAreCounted(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	var executed int32
	pool := NewPool(1, 4)
	pool.Start()
	require.NoError(t, pool.Enqueue(context.Background(), panicJob{}))
	require.NoError(t, pool.Enqueue(context.Background(), failingJob{}))
	require.NoError(t, pool.Enqueue(context.Background(), &testJob{executed: &executed}))
	pool.Stop()

	assert.Equal(t, PoolStats{Succeeded: 1, Failed: 2}, pool.Stats())
	assert.Equal(t, int32(1), atomic.LoadInt32(&executed))
	checker.Check(0)
}
