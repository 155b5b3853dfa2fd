package profile

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/geotreasure/internal/concurrency"
	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/progression"
)

// Store holds every progress profile. Each owner has an exclusive FIFO lock;
// owners never contend with each other.
type Store struct {
	clock    clockwork.Clock
	locks    *concurrency.LockManager
	mu       sync.RWMutex
	profiles map[string]*domain.Profile
}

// NewStore creates an empty profile store
func NewStore(clock clockwork.Clock) *Store {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Store{
		clock:    clock,
		locks:    concurrency.NewLockManager(),
		profiles: make(map[string]*domain.Profile),
	}
}

// Create registers a fresh Beginner profile for ownerID and returns the
// ProfileCreated event for the caller to publish.
func (s *Store) Create(ctx context.Context, ownerID, username string) (domain.Profile, event.Event, error) {
	log := logger.FromContext(ctx)

	ownerID = strings.TrimSpace(ownerID)
	username = strings.TrimSpace(username)
	if err := validate(ownerID, username); err != nil {
		return domain.Profile{}, event.Event{}, err
	}

	now := s.clock.Now().UTC()
	p := &domain.Profile{
		OwnerID:      ownerID,
		Username:     username,
		Rank:         domain.RankBeginner,
		Achievements: []string{},
		CreatedAt:    now,
	}

	s.mu.Lock()
	if _, exists := s.profiles[ownerID]; exists {
		s.mu.Unlock()
		log.Warn(LogMsgProfileExists, "owner_id", ownerID)
		return domain.Profile{}, event.Event{}, fmt.Errorf("%w: %s", domain.ErrProfileExists, ownerID)
	}
	s.profiles[ownerID] = p
	s.mu.Unlock()

	log.Info(LogMsgProfileCreated, "owner_id", ownerID, "username", username)
	return p.Clone(), event.NewProfileCreatedEvent(ownerID, username, now.UnixMilli()), nil
}

// Get returns a consistent snapshot of the owner's profile. It waits for any
// in-flight claim by the same owner to finish.
func (s *Store) Get(ownerID string) (domain.Profile, error) {
	var out domain.Profile
	err := s.Update(ownerID, func(p *domain.Profile) error {
		out = p.Clone()
		return nil
	})
	return out, err
}

// Update runs fn with exclusive access to the owner's profile. fn must not
// retain the pointer after returning.
func (s *Store) Update(ownerID string, fn func(p *domain.Profile) error) error {
	s.mu.RLock()
	p, ok := s.profiles[ownerID]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, ownerID)
	}

	return s.locks.WithLock(ownerID, func() error {
		// the profile may have been removed while we waited
		s.mu.RLock()
		current := s.profiles[ownerID]
		s.mu.RUnlock()
		if current != p {
			return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, ownerID)
		}
		return fn(p)
	})
}

// Remove deletes a profile. It backs out a creation whose persistence failed.
// Updates queued on the owner find the profile gone; Remove waits for an
// update already running before it returns.
func (s *Store) Remove(ownerID string) error {
	s.mu.Lock()
	if _, ok := s.profiles[ownerID]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", domain.ErrProfileNotFound, ownerID)
	}
	delete(s.profiles, ownerID)
	s.mu.Unlock()

	return s.locks.WithLock(ownerID, func() error {
		s.mu.RLock()
		defer s.mu.RUnlock()
		// a re-created owner keeps serializing on the same lock
		if _, back := s.profiles[ownerID]; !back {
			s.locks.Forget(ownerID)
		}
		return nil
	})
}

// List returns snapshots of all profiles ordered by score, highest first
func (s *Store) List() []domain.Profile {
	s.mu.RLock()
	owners := make([]string, 0, len(s.profiles))
	for owner := range s.profiles {
		owners = append(owners, owner)
	}
	s.mu.RUnlock()

	out := make([]domain.Profile, 0, len(owners))
	for _, owner := range owners {
		if p, err := s.Get(owner); err == nil {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].OwnerID < out[j].OwnerID
	})
	return out
}

// Len returns the number of profiles
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.profiles)
}

// Restore loads persisted profiles, skipping owners already present.
// Rank is re-derived from TotalFound.
func (s *Store) Restore(ctx context.Context, profiles []domain.Profile) int {
	added := 0
	s.mu.Lock()
	for _, p := range profiles {
		if _, exists := s.profiles[p.OwnerID]; exists || p.OwnerID == "" {
			continue
		}
		restored := p.Clone()
		restored.Rank = progression.RankFor(restored.TotalFound)
		if restored.Achievements == nil {
			restored.Achievements = []string{}
		}
		s.profiles[p.OwnerID] = &restored
		added++
	}
	s.mu.Unlock()

	logger.FromContext(ctx).Info(LogMsgProfilesRestored, "profiles", added)
	return added
}

func validate(ownerID, username string) error {
	switch {
	case ownerID == "":
		return fmt.Errorf("%w: owner id is required", domain.ErrInvalidInput)
	case len(ownerID) > MaxOwnerIDLength:
		return fmt.Errorf("%w: owner id longer than %d", domain.ErrInvalidInput, MaxOwnerIDLength)
	case username == "":
		return fmt.Errorf("%w: username is required", domain.ErrInvalidInput)
	case len(username) > MaxUsernameLength:
		return fmt.Errorf("%w: username longer than %d", domain.ErrInvalidInput, MaxUsernameLength)
	}
	return nil
}
