package profile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
)

var epoch = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func TestCreate(t *testing.T) {
	store := NewStore(clockwork.NewFakeClockAt(epoch))

	p, evt, err := store.Create(context.Background(), "A", " alice ")
	require.NoError(t, err)

	assert.Equal(t, "A", p.OwnerID)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, domain.RankBeginner, p.Rank)
	assert.Zero(t, p.TotalFound)
	assert.Zero(t, p.StreakCount)
	assert.Zero(t, p.LastActivity)
	assert.Zero(t, p.Score)
	assert.Empty(t, p.Achievements)
	assert.Equal(t, epoch, p.CreatedAt)

	assert.Equal(t, event.ProfileCreated, evt.Type)
	assert.Equal(t, event.ProfileCreatedPayloadV1{Owner: "A", Username: "alice", Time: epoch.UnixMilli()}, evt.Payload)
}

func TestCreate_Duplicate(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	_, _, err := store.Create(context.Background(), "A", "alice")
	require.NoError(t, err)

	_, _, err = store.Create(context.Background(), "A", "other")
	assert.ErrorIs(t, err, domain.ErrProfileExists)

	p, err := store.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
}

func TestCreate_InvalidInput(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())

	_, _, err := store.Create(context.Background(), "", "alice")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = store.Create(context.Background(), "A", "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, store.Len())
}

func TestGet_NotFound(t *testing.T) {
	_, err := NewStore(nil).Get("ghost")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	_, _, err := store.Create(context.Background(), "A", "alice")
	require.NoError(t, err)

	require.NoError(t, store.Update("A", func(p *domain.Profile) error {
		p.Achievements = append(p.Achievements, domain.AchievementFirstDiscovery)
		return nil
	}))

	snapshot, err := store.Get("A")
	require.NoError(t, err)
	snapshot.Achievements[0] = "tampered"
	snapshot.Score = 999

	again, err := store.Get("A")
	require.NoError(t, err)
	assert.Equal(t, domain.AchievementFirstDiscovery, again.Achievements[0])
	assert.Zero(t, again.Score)
}

func TestUpdate_PropagatesError(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	_, _, err := store.Create(context.Background(), "A", "alice")
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, store.Update("A", func(*domain.Profile) error { return boom }), boom)
	assert.ErrorIs(t, store.Update("B", func(*domain.Profile) error { return nil }), domain.ErrProfileNotFound)
}

func TestUpdate_SerializedPerOwner(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	_, _, err := store.Create(context.Background(), "A", "alice")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update("A", func(p *domain.Profile) error {
				p.Score++
				return nil
			})
		}()
	}
	wg.Wait()

	p, err := store.Get("A")
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.Score)
}

func TestList_OrderedByScore(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	for _, owner := range []string{"A", "B", "C"} {
		_, _, err := store.Create(context.Background(), owner, "user-"+owner)
		require.NoError(t, err)
	}
	require.NoError(t, store.Update("B", func(p *domain.Profile) error { p.Score = 30; return nil }))
	require.NoError(t, store.Update("C", func(p *domain.Profile) error { p.Score = 10; return nil }))

	list := store.List()
	require.Len(t, list, 3)
	assert.Equal(t, "B", list[0].OwnerID)
	assert.Equal(t, "C", list[1].OwnerID)
	assert.Equal(t, "A", list[2].OwnerID)
}

func TestRestore(t *testing.T) {
	store := NewStore(clockwork.NewFakeClock())
	_, _, err := store.Create(context.Background(), "A", "alice")
	require.NoError(t, err)

	added := store.Restore(context.Background(), []domain.Profile{
		{OwnerID: "A", Username: "stale"},
		{OwnerID: "B", Username: "bob", TotalFound: 6, Rank: domain.RankExplorer},
		{OwnerID: ""},
	})
	assert.Equal(t, 1, added)

	b, err := store.Get("B")
	require.NoError(t, err)
	assert.Equal(t, domain.RankExplorer, b.Rank)
	assert.NotNil(t, b.Achievements)

	a, err := store.Get("A")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.Username)
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	s := NewStore(clockwork.NewFakeClockAt(epoch))

	_, _, err := s.Create(ctx, "owner-1", "alice")
	require.NoError(t, err)

	require.NoError(t, s.Remove("owner-1"))
	assert.Equal(t, 0, s.Len())
	_, err = s.Get("owner-1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	assert.ErrorIs(t, s.Remove("owner-1"), domain.ErrProfileNotFound)

	// the owner id is free again
	_, _, err = s.Create(ctx, "owner-1", "alice")
	assert.NoError(t, err)
}

func TestRemove_QueuedUpdateSeesRemoval(t *testing.T) {
	ctx := context.Background()
	s := NewStore(clockwork.NewFakeClockAt(epoch))
	_, _, err := s.Create(ctx, "A", "alice")
	require.NoError(t, err)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = s.Update("A", func(*domain.Profile) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held
	lock := s.locks.GetLock("A")

	var ran bool
	queued := make(chan error, 1)
	go func() {
		queued <- s.Update("A", func(*domain.Profile) error {
			ran = true
			return nil
		})
	}()

	removed := make(chan error, 1)
	go func() { removed <- s.Remove("A") }()
	require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, time.Millisecond)

	close(release)
	require.NoError(t, <-removed)
	assert.ErrorIs(t, <-queued, domain.ErrProfileNotFound)
	assert.False(t, ran)

	// the owner lock is evicted and a re-created owner gets a fresh one
	assert.NotSame(t, lock, s.locks.GetLock("A"))
	_, _, err = s.Create(ctx, "A", "alice")
	require.NoError(t, err)
	_, err = s.Get("A")
	assert.NoError(t, err)
}
