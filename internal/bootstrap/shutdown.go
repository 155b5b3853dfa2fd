package bootstrap

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/notify"
	"github.com/osse101/geotreasure/internal/server"
	"github.com/osse101/geotreasure/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	PeriodicWorkers    []*worker.PeriodicWorker
	WorkerPool         *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Forwarder          *notify.KafkaForwarder
	Redis              *redis.Client
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new claims)
// 2. periodic workers, then the pool (queued claim writes drain to storage)
// 3. event publisher (flush retries, dead-letter the rest)
// 4. kafka forwarder (flush buffered records)
// 5. redis and the database pool
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)
	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownWorkers)
	for _, w := range c.PeriodicWorkers {
		if err := w.Shutdown(ctx); err != nil {
			slog.Error(LogMsgPeriodicWorkerFailed, "error", err)
		}
	}
	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if c.ResilientPublisher != nil {
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Forwarder != nil {
		if err := c.Forwarder.Shutdown(ctx); err != nil {
			slog.Error(LogMsgForwarderFailed, "error", err)
		}
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			slog.Error(LogMsgRedisCloseFailed, "error", err)
		}
	}
	if c.Repositories != nil {
		c.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}
