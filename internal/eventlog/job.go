package eventlog

import (
	"context"
	"time"

	"github.com/osse101/geotreasure/internal/logger"
)

// CleanupJob purges logged events past the retention window. It runs on the
// worker pool, scheduled by a periodic worker.
type CleanupJob struct {
	service       Service
	retentionDays int
}

// NewCleanupJob creates a job keeping retentionDays of history. A
// non-positive retention keeps everything.
func NewCleanupJob(service Service, retentionDays int) *CleanupJob {
	return &CleanupJob{service: service, retentionDays: retentionDays}
}

func (j *CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	if j.retentionDays <= 0 {
		log.Debug(LogMsgCleanupDisabled)
		return nil
	}

	start := time.Now()
	deleted, err := j.service.CleanupOldEvents(ctx, j.retentionDays)
	if err != nil {
		log.Error(LogMsgCleanupJobFailed, LogFieldRetentionDays, j.retentionDays, LogFieldError, err)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted,
		LogFieldRetentionDays, j.retentionDays,
		LogFieldDeletedCount, deleted,
		LogFieldDuration, time.Since(start))
	return nil
}
