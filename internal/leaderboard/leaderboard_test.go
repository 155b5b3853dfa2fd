package leaderboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
)

func profile(owner string, score int64, found int) domain.Profile {
	return domain.Profile{
		OwnerID:    owner,
		Username:   "user-" + owner,
		Score:      score,
		TotalFound: found,
		Rank:       domain.RankBeginner,
	}
}

// exerciseBoard runs the shared Board contract against any implementation
func exerciseBoard(t *testing.T, board Board) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, Seed(ctx, board, []domain.Profile{
		profile("A", 30, 3),
		profile("B", 50, 5),
		profile("C", 30, 2),
		profile("D", 10, 1),
	}))

	top, err := board.Top(ctx, 3)
	require.NoError(t, err)
	require.Len(t, top, 3)

	assert.Equal(t, "B", top[0].OwnerID)
	assert.Equal(t, 1, top[0].Position)
	assert.Equal(t, int64(50), top[0].Score)
	assert.Equal(t, "user-B", top[0].Username)
	assert.Equal(t, "beginner", top[0].Rank)

	// Equal scores: owner id descending
	assert.Equal(t, "C", top[1].OwnerID)
	assert.Equal(t, "A", top[2].OwnerID)
	assert.Equal(t, 3, top[2].Position)

	// Lower scores never replace higher ones
	require.NoError(t, board.Record(ctx, profile("B", 5, 1)))
	top, err = board.Top(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), top[0].Score)

	require.NoError(t, board.Record(ctx, profile("D", 100, 2)))
	top, err = board.Top(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 4)
	assert.Equal(t, "D", top[0].OwnerID)
}

func TestMemoryBoard(t *testing.T) {
	exerciseBoard(t, NewMemoryBoard())
}

func TestMemoryBoard_Empty(t *testing.T) {
	top, err := NewMemoryBoard().Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestClampTopN(t *testing.T) {
	assert.Equal(t, DefaultTopN, ClampTopN(0))
	assert.Equal(t, DefaultTopN, ClampTopN(-1))
	assert.Equal(t, 7, ClampTopN(7))
	assert.Equal(t, MaxTopN, ClampTopN(MaxTopN+50))
}
