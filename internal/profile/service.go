package profile

import (
	"context"
	"fmt"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/progression"
	"github.com/osse101/geotreasure/internal/repository"
)

// View is a profile plus derived progress toward the next rank
type View struct {
	domain.Profile
	RankLabel       string `json:"rank_label"`
	NextRankAt      *int   `json:"next_rank_at,omitempty"`
	FindsToNextRank int    `json:"finds_to_next_rank"`
}

// NewView derives the progress fields for p
func NewView(p domain.Profile) View {
	v := View{Profile: p, RankLabel: p.Rank.Label()}
	if next, ok := progression.NextThreshold(p.TotalFound); ok {
		v.NextRankAt = &next
		v.FindsToNextRank = next - p.TotalFound
	}
	return v
}

// Scoreboard receives newly registered profiles
type Scoreboard interface {
	Record(ctx context.Context, profile domain.Profile) error
}

// Service defines profile registration and lookup
type Service interface {
	Register(ctx context.Context, ownerID, username string) (View, error)
	Get(ctx context.Context, ownerID string) (View, error)
}

type service struct {
	store      *Store
	repo       repository.Profile
	bus        event.Bus
	scoreboard Scoreboard
}

// NewService creates a profile service. repo, bus and scoreboard may each be nil.
func NewService(store *Store, repo repository.Profile, bus event.Bus, scoreboard Scoreboard) Service {
	return &service{
		store:      store,
		repo:       repo,
		bus:        bus,
		scoreboard: scoreboard,
	}
}

// Register creates the profile, stores it and announces it. A storage failure
// backs the in-memory profile out again.
func (s *service) Register(ctx context.Context, ownerID, username string) (View, error) {
	log := logger.FromContext(ctx)

	p, evt, err := s.store.Create(ctx, ownerID, username)
	if err != nil {
		return View{}, err
	}

	if s.repo != nil {
		if err := s.repo.InsertProfile(ctx, p); err != nil {
			log.Error(LogMsgProfilePersistFailed, "owner_id", p.OwnerID, "error", err)
			if rmErr := s.store.Remove(p.OwnerID); rmErr != nil {
				log.Error(LogMsgRemoveFailed, "owner_id", p.OwnerID, "error", rmErr)
			}
			return View{}, fmt.Errorf("failed to persist profile %s: %w", p.OwnerID, err)
		}
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, evt); err != nil {
			log.Error(LogMsgProfilePublishFailed, "owner_id", p.OwnerID, "error", err)
		}
	}

	if s.scoreboard != nil {
		if err := s.scoreboard.Record(ctx, p); err != nil {
			log.Warn(LogMsgLeaderboardFailed, "owner_id", p.OwnerID, "error", err)
		}
	}

	return NewView(p), nil
}

func (s *service) Get(_ context.Context, ownerID string) (View, error) {
	p, err := s.store.Get(ownerID)
	if err != nil {
		return View{}, err
	}
	return NewView(p), nil
}
