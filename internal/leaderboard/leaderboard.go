// Package leaderboard ranks profiles by score.
//
// Entries only move forward: recording a profile whose score is lower than
// the stored one is ignored. Ties are ordered by owner id, descending, in
// every implementation.
package leaderboard

import (
	"context"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
)

// Entry is one leaderboard row
type Entry struct {
	Position   int    `json:"position"`
	OwnerID    string `json:"owner_id"`
	Username   string `json:"username"`
	Rank       string `json:"rank"`
	TotalFound int    `json:"total_found"`
	Score      int64  `json:"score"`
}

// Board records scores and answers top-N queries
type Board interface {
	Record(ctx context.Context, profile domain.Profile) error
	Top(ctx context.Context, n int) ([]Entry, error)
}

// Seed records every profile, typically after a restart
func Seed(ctx context.Context, board Board, profiles []domain.Profile) error {
	for _, p := range profiles {
		if err := board.Record(ctx, p); err != nil {
			return err
		}
	}
	logger.FromContext(ctx).Info(LogMsgLeaderboardSeeded, "profiles", len(profiles))
	return nil
}

// ClampTopN bounds a requested leaderboard size
func ClampTopN(n int) int {
	switch {
	case n <= 0:
		return DefaultTopN
	case n > MaxTopN:
		return MaxTopN
	default:
		return n
	}
}

func entryFor(p domain.Profile) Entry {
	return Entry{
		OwnerID:    p.OwnerID,
		Username:   p.Username,
		Rank:       p.Rank.String(),
		TotalFound: p.TotalFound,
		Score:      p.Score,
	}
}
