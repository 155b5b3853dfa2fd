package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultMemoryCapacity bounds the in-memory log; the oldest events are dropped first
const DefaultMemoryCapacity = 10_000

// MemoryRepository keeps recent events in process when no database is configured
type MemoryRepository struct {
	mu       sync.RWMutex
	clock    clockwork.Clock
	capacity int
	nextID   int64
	events   []Event // oldest first
}

// NewMemoryRepository creates a bounded in-memory event log
func NewMemoryRepository(clock clockwork.Clock, capacity int) *MemoryRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryRepository{clock: clock, capacity: capacity}
}

func (m *MemoryRepository) LogEvent(_ context.Context, eventType string, ownerID *string, payload, metadata map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.events = append(m.events, Event{
		ID:        m.nextID,
		EventType: eventType,
		OwnerID:   ownerID,
		Payload:   payload,
		Metadata:  metadata,
		CreatedAt: m.clock.Now().UTC(),
	})
	if over := len(m.events) - m.capacity; over > 0 {
		m.events = append([]Event(nil), m.events[over:]...)
	}
	return nil
}

// GetEvents walks newest to oldest so the limit keeps the most recent matches
func (m *MemoryRepository) GetEvents(_ context.Context, filter EventFilter) ([]Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Event, 0)
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if !matches(e, filter) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryRepository) CleanupOldEvents(_ context.Context, retentionDays int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.clock.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	kept := m.events[:0]
	for _, e := range m.events {
		if !e.CreatedAt.Before(cutoff) {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(m.events) - len(kept))
	m.events = kept
	return deleted, nil
}

func matches(e Event, f EventFilter) bool {
	switch {
	case f.EventType != nil && e.EventType != *f.EventType:
		return false
	case f.OwnerID != nil && (e.OwnerID == nil || *e.OwnerID != *f.OwnerID):
		return false
	case f.Since != nil && e.CreatedAt.Before(*f.Since):
		return false
	case f.Until != nil && e.CreatedAt.After(*f.Until):
		return false
	}
	return true
}
