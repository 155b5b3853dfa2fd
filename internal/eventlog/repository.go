package eventlog

import (
	"context"
	"time"
)

// Event is one stored bus event. OwnerID is nil for events that concern no
// single owner.
type Event struct {
	ID        int64                  `json:"id"`
	EventType string                 `json:"event_type"`
	OwnerID   *string                `json:"owner_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// EventFilter narrows a query; nil fields match everything and a zero Limit
// is unbounded
type EventFilter struct {
	OwnerID   *string
	EventType *string
	Since     *time.Time
	Until     *time.Time
	Limit     int
}

type Repository interface {
	LogEvent(ctx context.Context, eventType string, ownerID *string, payload, metadata map[string]interface{}) error
	// GetEvents returns matches newest first
	GetEvents(ctx context.Context, filter EventFilter) ([]Event, error)
	// CleanupOldEvents deletes events older than retentionDays and reports how many went
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}
