package metrics

import (
	"context"

	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	event.SubscribeAll(bus, e.HandleEvent)
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ItemDiscovered:
		payload, err := event.DecodePayload[event.ItemDiscoveredPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		DiscoveriesTotal.WithLabelValues(payload.Rarity).Inc()

	case event.RankAdvanced:
		payload, err := event.DecodePayload[event.RankAdvancedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadDecodeFailed, "type", evt.Type, "error", err)
			return nil
		}
		RankAdvancesTotal.WithLabelValues(payload.NewRank).Inc()

	case event.ProfileCreated:
		ProfilesRegistered.Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// instrumentedBus counts handler failures per event type
type instrumentedBus struct {
	event.Bus
}

// InstrumentBus wraps bus so every handler subscribed through it feeds
// EventHandlerErrors when it fails
func InstrumentBus(bus event.Bus) event.Bus {
	return instrumentedBus{Bus: bus}
}

func (b instrumentedBus) Subscribe(eventType event.Type, handler event.Handler) {
	b.Bus.Subscribe(eventType, func(ctx context.Context, evt event.Event) error {
		err := handler(ctx, evt)
		if err != nil {
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		}
		return err
	})
}
