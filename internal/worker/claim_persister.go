package worker

import (
	"context"
	"time"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/repository"
)

// ClaimPersister writes committed claims to the reward repository in the background
type ClaimPersister struct {
	pool        *Pool
	repo        repository.Reward
	maxAttempts int
	retryDelay  time.Duration
}

// NewClaimPersister creates a persister that queues writes on pool
func NewClaimPersister(pool *Pool, repo repository.Reward) *ClaimPersister {
	return &ClaimPersister{
		pool:        pool,
		repo:        repo,
		maxAttempts: PersistMaxAttempts,
		retryDelay:  PersistInitialRetryWait,
	}
}

// PersistClaim queues the claim for writing. The job keeps the request's
// logging context but not its cancellation.
func (c *ClaimPersister) PersistClaim(ctx context.Context, item domain.Item, profile domain.Profile, record domain.RewardRecord) error {
	return c.pool.Enqueue(ctx, &persistClaimJob{
		parent:      context.WithoutCancel(ctx),
		repo:        c.repo,
		item:        item,
		profile:     profile,
		record:      record,
		maxAttempts: c.maxAttempts,
		retryDelay:  c.retryDelay,
	})
}

type persistClaimJob struct {
	parent      context.Context
	repo        repository.Reward
	item        domain.Item
	profile     domain.Profile
	record      domain.RewardRecord
	maxAttempts int
	retryDelay  time.Duration
}

// Process writes the claim, retrying with exponential backoff
func (j *persistClaimJob) Process(_ context.Context) error {
	ctx := j.parent
	log := logger.FromContext(ctx)

	var err error
	for attempt := 1; attempt <= j.maxAttempts; attempt++ {
		if err = j.repo.SaveClaim(ctx, j.item, j.profile, j.record); err == nil {
			log.Debug(LogMsgClaimPersisted, "record_id", j.record.ID, "attempt", attempt)
			return nil
		}
		if attempt < j.maxAttempts {
			log.Warn(LogMsgClaimPersistRetry, "record_id", j.record.ID, "attempt", attempt, "error", err)
			time.Sleep(event.CalculateRetryDelay(j.retryDelay, attempt))
		}
	}

	log.Error(LogMsgClaimPersistExhausted, "record_id", j.record.ID, "item_id", j.item.ID, "error", err)
	return err
}
