package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/geotreasure/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Event types, aliased from the domain so subscribers only import this package
const (
	ItemDiscovered Type = domain.EventTypeItemDiscovered
	RankAdvanced   Type = domain.EventTypeRankAdvanced
	ProfileCreated Type = domain.EventTypeProfileCreated
)

// AllTypes lists every event type the service emits, in declaration order
var AllTypes = []Type{ItemDiscovered, RankAdvanced, ProfileCreated}

// ItemDiscoveredPayloadV1 is emitted once per successful claim
type ItemDiscoveredPayloadV1 struct {
	ItemID   string `json:"item_id"`
	Finder   string `json:"finder"`
	Location string `json:"location"`
	Rarity   string `json:"rarity"`
	Time     int64  `json:"time"` // ms since epoch
}

// RankAdvancedPayloadV1 is emitted when a claim moves a profile into a higher rank
type RankAdvancedPayloadV1 struct {
	Owner      string `json:"owner"`
	OldRank    string `json:"old_rank"`
	NewRank    string `json:"new_rank"`
	TotalFound int    `json:"total_found"`
}

// ProfileCreatedPayloadV1 is emitted when a profile is registered
type ProfileCreatedPayloadV1 struct {
	Owner    string `json:"owner"`
	Username string `json:"username"`
	Time     int64  `json:"time"` // ms since epoch
}

// NewItemDiscoveredEvent builds the discovery event for a minted record
func NewItemDiscoveredEvent(record domain.RewardRecord) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemDiscovered,
		Payload: ItemDiscoveredPayloadV1{
			ItemID:   record.ItemID,
			Finder:   record.OwnerID,
			Location: record.LocationRef,
			Rarity:   record.Rarity.String(),
			Time:     record.FoundAt,
		},
	}
}

// NewRankAdvancedEvent builds a rank advancement event
func NewRankAdvancedEvent(owner string, oldRank, newRank domain.Rank, totalFound int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RankAdvanced,
		Payload: RankAdvancedPayloadV1{
			Owner:      owner,
			OldRank:    oldRank.String(),
			NewRank:    newRank.String(),
			TotalFound: totalFound,
		},
	}
}

// NewProfileCreatedEvent builds a profile creation event
func NewProfileCreatedEvent(owner, username string, timeMillis int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ProfileCreated,
		Payload: ProfileCreatedPayloadV1{
			Owner:    owner,
			Username: username,
			Time:     timeMillis,
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order; every handler runs even
// if an earlier one fails.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// SubscribeAll subscribes handler to every event type the service emits
func SubscribeAll(bus Bus, handler Handler) {
	for _, t := range AllTypes {
		bus.Subscribe(t, handler)
	}
}
