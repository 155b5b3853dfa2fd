package reward

import (
	"context"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/repository"
)

// Service answers reward collection queries. It also decorates the
// underlying repository so writes invalidate the owner's cached collection.
type Service interface {
	repository.Reward

	// Collection returns the owner's reward records, newest first
	Collection(ctx context.Context, ownerID string) ([]domain.RewardRecord, error)

	// Subscribe invalidates cached collections on ItemDiscovered
	Subscribe(bus event.Bus)

	GetCacheStats() CacheStats
}

type service struct {
	repo  repository.Reward
	cache *collectionCache
}

// NewService creates a cached reward service over repo
func NewService(repo repository.Reward, cfg CacheConfig) Service {
	return &service{
		repo:  repo,
		cache: newCollectionCache(cfg),
	}
}

func (s *service) Collection(ctx context.Context, ownerID string) ([]domain.RewardRecord, error) {
	if records, ok := s.cache.Get(ownerID); ok {
		logger.FromContext(ctx).Debug(LogMsgCollectionCacheHit, "owner_id", ownerID)
		return records, nil
	}

	records, err := s.repo.GetRewardsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.RewardRecord{}
	}
	s.cache.Set(ownerID, records)
	return records, nil
}

// SaveClaim writes through and drops the finder's cached collection
func (s *service) SaveClaim(ctx context.Context, item domain.Item, profile domain.Profile, record domain.RewardRecord) error {
	err := s.repo.SaveClaim(ctx, item, profile, record)
	s.cache.Invalidate(record.OwnerID)
	return err
}

func (s *service) GetRewardsByOwner(ctx context.Context, ownerID string) ([]domain.RewardRecord, error) {
	return s.Collection(ctx, ownerID)
}

func (s *service) Subscribe(bus event.Bus) {
	bus.Subscribe(event.ItemDiscovered, s.handleDiscovery)
}

func (s *service) handleDiscovery(ctx context.Context, evt event.Event) error {
	payload, err := event.DecodePayload[event.ItemDiscoveredPayloadV1](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Debug(LogMsgPayloadDecodeFailed, "error", err)
		return nil
	}
	s.cache.Invalidate(payload.Finder)
	logger.FromContext(ctx).Debug(LogMsgCollectionInvalidate, "owner_id", payload.Finder)
	return nil
}

func (s *service) GetCacheStats() CacheStats {
	return s.cache.Stats()
}
