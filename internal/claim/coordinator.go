package claim

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/profile"
	"github.com/osse101/geotreasure/internal/progression"
	"github.com/osse101/geotreasure/internal/registry"
)

// Request is a single claim attempt
type Request struct {
	OwnerID       string
	ItemID        string
	LocationProof string
	Now           int64 // ms since epoch
}

// Result is the committed outcome of a successful claim
type Result struct {
	Record  domain.RewardRecord `json:"record"`
	Events  []event.Event       `json:"events"`
	Profile domain.Profile      `json:"profile"`
	Item    domain.Item         `json:"item"`
}

// RankAdvanced reports whether the claim moved the profile into a higher rank
func (r *Result) RankAdvanced() bool {
	for _, evt := range r.Events {
		if evt.Type == event.RankAdvanced {
			return true
		}
	}
	return false
}

// Coordinator runs the claim state machine over one registry and one profile store
type Coordinator struct {
	registry *registry.Registry
	profiles *profile.Store
	newID    func() string
}

// NewCoordinator creates a coordinator over the given handles
func NewCoordinator(reg *registry.Registry, profiles *profile.Store) *Coordinator {
	return &Coordinator{
		registry: reg,
		profiles: profiles,
		newID:    uuid.NewString,
	}
}

// Claim validates req against the registry and the owner's profile, commits
// the discovery and applies the profile transition.
//
// The owner's lock is held for the whole operation and the item's lock for
// validation plus the flag flip, so no observer sees an item discovered by
// this claim while the finder's profile is still un-updated. Nothing after
// the flag flip can fail.
func (c *Coordinator) Claim(ctx context.Context, req Request) (*Result, error) {
	log := logger.FromContext(ctx)

	if strings.TrimSpace(req.OwnerID) == "" || strings.TrimSpace(req.ItemID) == "" {
		return nil, fmt.Errorf("%w: owner id and item id are required", domain.ErrInvalidInput)
	}

	var result *Result
	err := c.profiles.Update(req.OwnerID, func(p *domain.Profile) error {
		item, err := c.registry.Claim(req.ItemID, req.OwnerID, func(item domain.Item) error {
			if !p.Rank.AtLeast(item.RequiredRank) {
				return fmt.Errorf("%w: %s requires %s, profile is %s",
					domain.ErrInsufficientRank, item.ID, item.RequiredRank, p.Rank)
			}
			if req.LocationProof != item.LocationRef {
				return fmt.Errorf("%w: %s", domain.ErrLocationMismatch, item.ID)
			}
			return nil
		})
		if err != nil {
			return err
		}

		result = apply(p, item, req.Now, c.newID())
		return nil
	})
	if err != nil {
		log.Debug(LogMsgClaimRejected, "owner_id", req.OwnerID, "item_id", req.ItemID, "error", err)
		return nil, err
	}

	log.Info(LogMsgClaimCommitted,
		"owner_id", req.OwnerID,
		"item_id", req.ItemID,
		"record_id", result.Record.ID,
		"total_found", result.Profile.TotalFound,
		"streak", result.Profile.StreakCount)

	return result, nil
}

// apply performs the post-commit profile transition and derives the record
// and events. It is pure arithmetic over validated data.
func apply(p *domain.Profile, item domain.Item, now int64, recordID string) *Result {
	newStreak := progression.NextStreak(p.LastActivity, now, p.StreakCount)
	record := Mint(item, p.OwnerID, now, recordID)

	p.TotalFound++
	p.Score += int64(item.RewardPoints)
	p.StreakCount = newStreak
	if now > p.LastActivity {
		p.LastActivity = now
	}

	oldRank := p.Rank
	p.Rank = progression.RankFor(p.TotalFound)

	unlock := func(name string) {
		if !p.HasAchievement(name) {
			p.Achievements = append(p.Achievements, name)
		}
	}
	if p.TotalFound == 1 {
		unlock(domain.AchievementFirstDiscovery)
	}
	if item.Rarity == domain.RarityLegendary {
		unlock(domain.AchievementLegendaryFinder)
	}

	events := []event.Event{event.NewItemDiscoveredEvent(record)}
	if p.Rank > oldRank {
		unlock(domain.AchievementRankPrefix + p.Rank.String())
		events = append(events, event.NewRankAdvancedEvent(p.OwnerID, oldRank, p.Rank, p.TotalFound))
	}

	return &Result{
		Record:  record,
		Events:  events,
		Profile: p.Clone(),
		Item:    item,
	}
}

// Mint builds the immutable reward record for item found by owner at now
func Mint(item domain.Item, owner string, now int64, recordID string) domain.RewardRecord {
	return domain.RewardRecord{
		ID:           recordID,
		ItemID:       item.ID,
		Name:         item.Name,
		Description:  item.Description,
		ImageURI:     item.ImageURI,
		Rarity:       item.Rarity,
		LocationRef:  item.LocationRef,
		RewardPoints: item.RewardPoints,
		FoundAt:      now,
		OwnerID:      owner,
		Metadata: map[string]string{
			domain.MetadataKeyRarity:    item.Rarity.Label(),
			domain.MetadataKeyLocation:  item.LocationRef,
			domain.MetadataKeyFoundDate: FoundDateLabel(now),
		},
	}
}

// FoundDateLabel renders a ms timestamp as a UTC calendar date
func FoundDateLabel(millis int64) string {
	return time.UnixMilli(millis).UTC().Format(domain.FoundDateLayout)
}
