package reward

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/repository"
)

// MemoryRepository keeps reward records in process. It backs the service
// when no database is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	byOwner map[string][]domain.RewardRecord
	seen    map[string]struct{}
}

var _ repository.Reward = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory reward repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byOwner: make(map[string][]domain.RewardRecord),
		seen:    make(map[string]struct{}),
	}
}

// SaveClaim stores the record once; replays are ignored
func (m *MemoryRepository) SaveClaim(_ context.Context, _ domain.Item, _ domain.Profile, record domain.RewardRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.seen[record.ID]; ok {
		return nil
	}
	m.seen[record.ID] = struct{}{}
	m.byOwner[record.OwnerID] = append(m.byOwner[record.OwnerID], record)
	return nil
}

// GetRewardsByOwner returns the owner's records, newest first
func (m *MemoryRepository) GetRewardsByOwner(_ context.Context, ownerID string) ([]domain.RewardRecord, error) {
	m.mu.RLock()
	records := cloneRecords(m.byOwner[ownerID])
	m.mu.RUnlock()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FoundAt > records[j].FoundAt
	})
	return records, nil
}
