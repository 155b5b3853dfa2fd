package reward

import "time"

// CacheSchemaVersion is the current version of the cache schema.
// Increment this when the cached data structure changes to auto-invalidate old entries.
const CacheSchemaVersion = "1.0"

// Cache defaults
const (
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 5 * time.Minute
)

// Log messages
const (
	LogMsgCollectionCacheHit   = "Reward collection served from cache"
	LogMsgCollectionInvalidate = "Reward collection cache invalidated"
	LogMsgPayloadDecodeFailed  = "Failed to decode discovery payload"
)
