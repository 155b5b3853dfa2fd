package reward

import (
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/geotreasure/internal/domain"
)

// CacheConfig sizes the collection cache
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// DefaultCacheConfig returns the default cache sizing
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{Size: DefaultCacheSize, TTL: DefaultCacheTTL}
}

// CacheStats reports cache effectiveness
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type cachedCollection struct {
	Version string
	Records []domain.RewardRecord
}

// collectionCache is an expiring LRU of reward collections keyed by owner
type collectionCache struct {
	lru    *expirable.LRU[string, *cachedCollection]
	hits   atomic.Int64
	misses atomic.Int64
}

func newCollectionCache(cfg CacheConfig) *collectionCache {
	if cfg.Size <= 0 {
		cfg.Size = DefaultCacheSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCacheTTL
	}
	return &collectionCache{
		lru: expirable.NewLRU[string, *cachedCollection](cfg.Size, nil, cfg.TTL),
	}
}

// Get returns a copy of the cached collection. Entries from an older schema
// version are dropped.
func (c *collectionCache) Get(ownerID string) ([]domain.RewardRecord, bool) {
	entry, found := c.lru.Get(ownerID)
	if !found || entry.Version != CacheSchemaVersion {
		if found {
			c.lru.Remove(ownerID)
		}
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return cloneRecords(entry.Records), true
}

func (c *collectionCache) Set(ownerID string, records []domain.RewardRecord) {
	c.lru.Add(ownerID, &cachedCollection{
		Version: CacheSchemaVersion,
		Records: cloneRecords(records),
	})
}

func (c *collectionCache) Invalidate(ownerID string) {
	c.lru.Remove(ownerID)
}

func (c *collectionCache) Stats() CacheStats {
	return CacheStats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Size:   c.lru.Len(),
	}
}

func cloneRecords(records []domain.RewardRecord) []domain.RewardRecord {
	out := make([]domain.RewardRecord, len(records))
	for i, rec := range records {
		out[i] = rec
		if rec.Metadata != nil {
			out[i].Metadata = make(map[string]string, len(rec.Metadata))
			for k, v := range rec.Metadata {
				out[i].Metadata[k] = v
			}
		}
	}
	return out
}
