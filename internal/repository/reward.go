package repository

import (
	"context"

	"github.com/osse101/geotreasure/internal/domain"
)

// Reward defines the interface for reward record persistence
type Reward interface {
	// SaveClaim writes the discovered item, the finder's updated profile and
	// the minted record in one transaction. Replays of the same record are
	// no-ops, and an older profile snapshot never overwrites a newer one.
	SaveClaim(ctx context.Context, item domain.Item, profile domain.Profile, record domain.RewardRecord) error

	// GetRewardsByOwner returns the owner's records, newest first
	GetRewardsByOwner(ctx context.Context, ownerID string) ([]domain.RewardRecord, error)
}
