package event

import "time"

// EventSchemaVersion is stamped on every event this service creates
const EventSchemaVersion = "1.0"

const (
	RetryQueueBufferSize = 1000
	RetryInitialDelay    = 2 * time.Second
	RetryMaxAttempts     = 5
	// MaxRetryDelay caps the backoff however many attempts have been made
	MaxRetryDelay = 5 * time.Minute

	DeadLetterFilePermissions = 0o644
)

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgEventDeadLettered     = "Event dead-lettered"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"

	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
)

// CalculateRetryDelay doubles baseDelay per attempt after the first, capped at
// MaxRetryDelay: 2s, 4s, 8s, 16s, 32s for the default base
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	delay := baseDelay
	for i := 1; i < attempt; i++ {
		if delay >= MaxRetryDelay/2 {
			return MaxRetryDelay
		}
		delay *= 2
	}
	return min(delay, MaxRetryDelay)
}
