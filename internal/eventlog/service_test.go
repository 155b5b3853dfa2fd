package eventlog

import (
	"context"
	"errors"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
)

func ownerIs(want string) interface{} {
	return mock.MatchedBy(func(owner *string) bool { return owner != nil && *owner == want })
}

func TestService_RecordsEveryPublishedType(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	repo := NewMemoryRepository(clockwork.NewFakeClock(), 10)
	svc := NewService(repo)
	require.NoError(t, svc.Subscribe(bus))

	require.NoError(t, bus.Publish(ctx, event.NewProfileCreatedEvent("A", "alice", 1)))
	require.NoError(t, bus.Publish(ctx, event.NewItemDiscoveredEvent(domain.RewardRecord{
		ItemID: "t1", OwnerID: "A", Rarity: domain.RarityCommon, FoundAt: 2,
	})))
	require.NoError(t, bus.Publish(ctx, event.NewRankAdvancedEvent("A", domain.RankBeginner, domain.RankExplorer, 5)))

	events, err := svc.Recent(ctx, EventFilter{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, string(event.RankAdvanced), events[0].EventType)
	assert.Equal(t, string(event.ProfileCreated), events[2].EventType)
	for _, e := range events {
		require.NotNil(t, e.OwnerID)
		assert.Equal(t, "A", *e.OwnerID)
		assert.Equal(t, event.EventSchemaVersion, e.Metadata[MetadataKeyVersion])
	}
}

func TestService_RecordFlattensDiscovery(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo).(*service)

	evt := event.NewItemDiscoveredEvent(domain.RewardRecord{
		ItemID:      "t1",
		OwnerID:     "A",
		LocationRef: "40.0,-70.0",
		Rarity:      domain.RarityRare,
		FoundAt:     1000,
	})
	repo.On("LogEvent", ctx, "item.discovered", ownerIs("A"),
		mock.MatchedBy(func(p map[string]interface{}) bool {
			return p["item_id"] == "t1" && p["rarity"] == "rare" && p["time"] == float64(1000)
		}),
		map[string]interface{}{MetadataKeyVersion: event.EventSchemaVersion},
	).Return(nil)

	assert.NoError(t, svc.record(ctx, evt))
	repo.AssertExpectations(t)
}

func TestService_RecordOwnerFromFlattenedPayload(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo).(*service)

	// shape of an event read back from a dead-letter file
	replayed := event.Event{
		Version: event.EventSchemaVersion,
		Type:    event.RankAdvanced,
		Payload: map[string]interface{}{"owner": "B", "old_rank": "beginner", "new_rank": "explorer"},
	}
	repo.On("LogEvent", ctx, "rank.advanced", ownerIs("B"), mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, svc.record(ctx, replayed))
	repo.AssertExpectations(t)
}

func TestService_RecordFailures(t *testing.T) {
	t.Run("repository error is returned", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("db down"))

		err := NewService(repo).(*service).record(context.Background(), event.NewProfileCreatedEvent("A", "alice", 1))
		assert.Error(t, err)
	})

	t.Run("non-object payload is skipped", func(t *testing.T) {
		repo := new(MockRepository)
		err := NewService(repo).(*service).record(context.Background(),
			event.Event{Type: event.ItemDiscovered, Payload: "not an object"})
		assert.NoError(t, err)
		repo.AssertNotCalled(t, "LogEvent", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_Recent_ClampsLimit(t *testing.T) {
	for limit, want := range map[int]int{
		0:                 DefaultQueryLimit,
		-3:                DefaultQueryLimit,
		20:                20,
		MaxQueryLimit + 1: MaxQueryLimit,
	} {
		repo := new(MockRepository)
		repo.On("GetEvents", mock.Anything, mock.MatchedBy(func(f EventFilter) bool {
			return f.Limit == want
		})).Return([]Event{}, nil)

		_, err := NewService(repo).Recent(context.Background(), EventFilter{Limit: limit})
		assert.NoError(t, err, "limit %d", limit)
		repo.AssertExpectations(t)
	}
}

func TestService_CleanupOldEvents(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	repo.On("CleanupOldEvents", ctx, 10).Return(int64(5), nil)

	count, err := NewService(repo).CleanupOldEvents(ctx, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(5), count)
	repo.AssertExpectations(t)
}
