package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/osse101/geotreasure/internal/logger"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// Job is a unit of background work
type Job interface {
	Process(ctx context.Context) error
}

// PoolStats counts finished jobs; a panicking job counts as failed
type PoolStats struct {
	Succeeded int64
	Failed    int64
}

// Pool runs jobs on a fixed set of goroutines fed by a bounded queue. Stop
// closes the queue, so jobs accepted before Stop still run.
type Pool struct {
	workers int
	jobs    chan Job
	wg      sync.WaitGroup

	// mu guards closing jobs against concurrent sends
	mu      sync.RWMutex
	stopped bool

	succeeded atomic.Int64
	failed    atomic.Int64
}

func NewPool(workers, queueSize int) *Pool {
	return &Pool{
		workers: max(workers, 1),
		jobs:    make(chan Job, max(queueSize, 0)),
	}
}

func (p *Pool) Start() {
	p.wg.Add(p.workers)
	for range p.workers {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.run(job)
			}
		}()
	}
}

func (p *Pool) run(job Job) {
	ctx := context.Background()
	if err := safeProcess(ctx, job); err != nil {
		p.failed.Add(1)
		logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "job", fmt.Sprintf("%T", job), "error", err)
		return
	}
	p.succeeded.Add(1)
}

func safeProcess(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job.Process(ctx)
}

// Enqueue blocks while the queue is full. It fails once the pool is stopped
// or ctx is done.
func (p *Pool) Enqueue(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop refuses new jobs, lets the workers drain the queue and waits for them.
// It is safe to call more than once.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	stats := p.Stats()
	logger.Info(LogMsgPoolStopped, "succeeded", stats.Succeeded, "failed", stats.Failed)
}

func (p *Pool) Stats() PoolStats {
	return PoolStats{Succeeded: p.succeeded.Load(), Failed: p.failed.Load()}
}
