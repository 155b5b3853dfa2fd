package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolStopped     = "Worker pool stopped"
)

// ============================================================================
// Log Messages - Claim Persistence
// ============================================================================

// Log messages for claim persistence jobs
const (
	LogMsgClaimPersisted        = "Claim persisted"
	LogMsgClaimPersistRetry     = "Claim persistence failed, retrying"
	LogMsgClaimPersistExhausted = "Claim persistence failed permanently"
)

// ============================================================================
// Log Messages - Periodic Worker
// ============================================================================

// Log messages for periodic workers
const (
	LogMsgPeriodicScheduled   = "Periodic job scheduled"
	LogMsgPeriodicEnqueueFail = "Failed to enqueue periodic job"
	LogMsgPeriodicShutdown    = "Periodic worker shutting down"
)

// Claim persistence retry policy
const (
	PersistMaxAttempts      = 5
	PersistInitialRetryWait = 200 * time.Millisecond
)
