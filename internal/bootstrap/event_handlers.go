package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/geotreasure/internal/config"
	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/eventlog"
	"github.com/osse101/geotreasure/internal/metrics"
	"github.com/osse101/geotreasure/internal/notify"
	"github.com/osse101/geotreasure/internal/reward"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus        event.Bus
	EventLogService eventlog.Service
	RewardService   reward.Service
	Config          *config.Config
}

// RegisterEventHandlers sets up every bus subscriber:
// - metrics collector (discoveries by rarity, rank advances)
// - event logger (persists events for the admin query)
// - reward cache invalidation
// - kafka forwarder, when brokers are configured
//
// The forwarder is returned so it can be flushed at shutdown; it is nil when
// Kafka is disabled.
func RegisterEventHandlers(deps EventHandlerDependencies) (*notify.KafkaForwarder, error) {
	// failures of any subscriber below are counted per event type
	bus := metrics.InstrumentBus(deps.EventBus)

	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := deps.EventLogService.Subscribe(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedSubscribeEventLogger, err)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	deps.RewardService.Subscribe(bus)
	slog.Info(LogMsgRewardCacheSubscribed)

	if len(deps.Config.KafkaBrokers) == 0 {
		slog.Info(LogMsgKafkaDisabled)
		return nil, nil
	}

	forwarder, err := notify.NewKafkaForwarder(deps.Config.KafkaBrokers, deps.Config.KafkaTopic)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateForwarder, err)
	}
	forwarder.Register(bus)

	return forwarder, nil
}
