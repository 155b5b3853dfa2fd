package leaderboard

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/geotreasure/internal/domain"
)

// MemoryBoard is an in-process Board
type MemoryBoard struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewMemoryBoard creates an empty in-memory board
func NewMemoryBoard() *MemoryBoard {
	return &MemoryBoard{entries: make(map[string]Entry)}
}

func (b *MemoryBoard) Record(_ context.Context, p domain.Profile) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if existing, ok := b.entries[p.OwnerID]; ok && existing.Score > p.Score {
		return nil
	}
	b.entries[p.OwnerID] = entryFor(p)
	return nil
}

func (b *MemoryBoard) Top(_ context.Context, n int) ([]Entry, error) {
	n = ClampTopN(n)

	b.mu.RLock()
	all := make([]Entry, 0, len(b.entries))
	for _, e := range b.entries {
		all = append(all, e)
	}
	b.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].OwnerID > all[j].OwnerID
	})

	if len(all) > n {
		all = all[:n]
	}
	for i := range all {
		all[i].Position = i + 1
	}
	return all, nil
}
