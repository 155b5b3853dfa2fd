package worker

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/geotreasure/internal/logger"
)

// PeriodicWorker enqueues a fresh job on the pool every interval
type PeriodicWorker struct {
	name     string
	pool     *Pool
	clock    clockwork.Clock
	interval time.Duration
	newJob   func() Job

	shutdown  chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewPeriodicWorker creates a periodic worker; call Start to begin ticking
func NewPeriodicWorker(name string, pool *Pool, clock clockwork.Clock, interval time.Duration, newJob func() Job) *PeriodicWorker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &PeriodicWorker{
		name:     name,
		pool:     pool,
		clock:    clock,
		interval: interval,
		newJob:   newJob,
		shutdown: make(chan struct{}),
	}
}

// Start begins the tick loop
func (w *PeriodicWorker) Start() {
	ticker := w.clock.NewTicker(w.interval)
	logger.Info(LogMsgPeriodicScheduled, "worker", w.name, "interval", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.Chan():
				ctx, cancel := context.WithTimeout(context.Background(), w.interval)
				if err := w.pool.Enqueue(ctx, w.newJob()); err != nil {
					logger.Warn(LogMsgPeriodicEnqueueFail, "worker", w.name, "error", err)
				}
				cancel()
			case <-w.shutdown:
				return
			}
		}
	}()
}

// Shutdown stops the tick loop and waits for it to exit
func (w *PeriodicWorker) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgPeriodicShutdown, "worker", w.name)
	w.closeOnce.Do(func() { close(w.shutdown) })

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
