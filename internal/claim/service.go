package claim

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/metrics"
)

// Service defines the interface for claim operations
type Service interface {
	Claim(ctx context.Context, ownerID, itemID, locationProof string) (*Result, error)
}

// Persister durably records a committed claim. Implementations are expected
// to queue the write rather than block the caller.
type Persister interface {
	PersistClaim(ctx context.Context, item domain.Item, profile domain.Profile, record domain.RewardRecord) error
}

// Scoreboard tracks profile scores for ranking
type Scoreboard interface {
	Record(ctx context.Context, profile domain.Profile) error
}

type service struct {
	coordinator *Coordinator
	clock       clockwork.Clock
	bus         event.Bus
	persister   Persister
	scoreboard  Scoreboard
}

// NewService creates a claim service. persister and scoreboard may be nil.
func NewService(coordinator *Coordinator, clock clockwork.Clock, bus event.Bus, persister Persister, scoreboard Scoreboard) Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &service{
		coordinator: coordinator,
		clock:       clock,
		bus:         bus,
		persister:   persister,
		scoreboard:  scoreboard,
	}
}

// Claim stamps the attempt with the current time, runs it through the
// coordinator, then fans the committed outcome out to the bus, the
// persistence queue and the scoreboard. Failures past the commit are
// logged; the claim itself stands.
func (s *service) Claim(ctx context.Context, ownerID, itemID, locationProof string) (*Result, error) {
	log := logger.FromContext(ctx)

	start := time.Now()
	result, err := s.coordinator.Claim(ctx, Request{
		OwnerID:       ownerID,
		ItemID:        itemID,
		LocationProof: locationProof,
		Now:           s.clock.Now().UnixMilli(),
	})
	metrics.ClaimDuration.Observe(time.Since(start).Seconds())
	metrics.ClaimsTotal.WithLabelValues(Outcome(err)).Inc()
	if err != nil {
		return nil, err
	}

	if s.bus != nil {
		for _, evt := range result.Events {
			if pubErr := s.bus.Publish(ctx, evt); pubErr != nil {
				log.Error(LogMsgEventPublishFailed, "type", evt.Type, "error", pubErr)
			}
		}
	}

	if s.persister != nil {
		if perr := s.persister.PersistClaim(ctx, result.Item, result.Profile, result.Record); perr != nil {
			log.Error(LogMsgPersistFailed, "record_id", result.Record.ID, "error", perr)
		}
	}

	if s.scoreboard != nil {
		if serr := s.scoreboard.Record(ctx, result.Profile); serr != nil {
			log.Warn(LogMsgScoreRecordFailed, "owner_id", result.Profile.OwnerID, "error", serr)
		}
	}

	if result.RankAdvanced() {
		log.Info(LogMsgRankAdvanced, "owner_id", result.Profile.OwnerID, "rank", result.Profile.Rank.String())
	}

	return result, nil
}

// Outcome maps a claim error onto its metric label
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, domain.ErrUnknownItem):
		return OutcomeUnknownItem
	case errors.Is(err, domain.ErrAlreadyDiscovered):
		return OutcomeAlreadyDiscovered
	case errors.Is(err, domain.ErrInsufficientRank):
		return OutcomeInsufficientRank
	case errors.Is(err, domain.ErrLocationMismatch):
		return OutcomeLocationMismatch
	case errors.Is(err, domain.ErrProfileNotFound):
		return OutcomeProfileNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return OutcomeInvalidInput
	default:
		return OutcomeError
	}
}
