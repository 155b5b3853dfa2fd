package notify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/event"
)

type fakeProducer struct {
	mu      sync.Mutex
	records []*kgo.Record
	fail    error
	flushed bool
	closed  bool
}

func (p *fakeProducer) Produce(_ context.Context, r *kgo.Record, promise func(*kgo.Record, error)) {
	p.mu.Lock()
	p.records = append(p.records, r)
	p.mu.Unlock()
	promise(r, p.fail)
}

func (p *fakeProducer) Flush(context.Context) error {
	p.flushed = true
	return nil
}

func (p *fakeProducer) Close() { p.closed = true }

func header(r *kgo.Record, key string) string {
	for _, h := range r.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaForwarder_ForwardsEveryEventType(t *testing.T) {
	fake := &fakeProducer{}
	fwd := newKafkaForwarder(fake, "treasure-events")
	bus := event.NewMemoryBus()
	fwd.Register(bus)
	ctx := context.Background()

	require.NoError(t, bus.Publish(ctx, event.NewProfileCreatedEvent("A", "alice", 1)))
	require.NoError(t, bus.Publish(ctx, event.NewItemDiscoveredEvent(domain.RewardRecord{
		ItemID: "t1", OwnerID: "A", Rarity: domain.RarityRare, FoundAt: 1000,
	})))
	require.NoError(t, bus.Publish(ctx, event.NewRankAdvancedEvent("A", domain.RankBeginner, domain.RankExplorer, 5)))

	require.Len(t, fake.records, 3)
	for _, r := range fake.records {
		assert.Equal(t, "treasure-events", r.Topic)
		assert.Equal(t, "A", string(r.Key))
		assert.Equal(t, event.EventSchemaVersion, header(r, HeaderEventVersion))
	}
	assert.Equal(t, "item.discovered", header(fake.records[1], HeaderEventType))

	var decoded struct {
		Type    string                 `json:"type"`
		Payload map[string]interface{} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(fake.records[1].Value, &decoded))
	assert.Equal(t, "item.discovered", decoded.Type)
	assert.Equal(t, "t1", decoded.Payload["item_id"])
	assert.Equal(t, "A", decoded.Payload["finder"])
}

func TestKafkaForwarder_DeliveryFailureDoesNotFailPublish(t *testing.T) {
	fake := &fakeProducer{fail: errors.New("broker unavailable")}
	fwd := newKafkaForwarder(fake, "t")

	err := fwd.HandleEvent(context.Background(), event.NewProfileCreatedEvent("A", "alice", 1))
	assert.NoError(t, err)
	assert.Len(t, fake.records, 1)
}

func TestKafkaForwarder_Shutdown(t *testing.T) {
	fake := &fakeProducer{}
	fwd := newKafkaForwarder(fake, "t")

	require.NoError(t, fwd.Shutdown(context.Background()))
	assert.True(t, fake.flushed)
	assert.True(t, fake.closed)
}

func TestPartitionKey_UnknownPayload(t *testing.T) {
	assert.Equal(t, "custom", partitionKey(event.Event{Type: "custom", Payload: map[string]string{}}))
}
