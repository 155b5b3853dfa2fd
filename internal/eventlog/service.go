package eventlog

import (
	"context"

	"github.com/osse101/geotreasure/internal/event"
	"github.com/osse101/geotreasure/internal/logger"
)

// Service records every bus event and serves the admin event query
type Service interface {
	Subscribe(bus event.Bus) error
	// Recent returns matches newest first, with the limit clamped to
	// [1, MaxQueryLimit] and defaulting to DefaultQueryLimit
	Recent(ctx context.Context, filter EventFilter) ([]Event, error)
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) error {
	event.SubscribeAll(bus, s.record)
	return nil
}

// record stores evt with its payload flattened to a JSON object. Payloads that
// are not objects are skipped rather than failing the publish.
func (s *service) record(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := event.DecodePayload[map[string]interface{}](evt.Payload)
	if err != nil || payload == nil {
		log.Debug(LogMsgEventPayloadNotMap, LogFieldType, evt.Type, LogFieldError, err)
		return nil
	}

	owner := subjectOf(evt, payload)
	meta := map[string]interface{}{MetadataKeyVersion: evt.Version}
	if err := s.repo.LogEvent(ctx, string(evt.Type), owner, payload, meta); err != nil {
		log.Error(LogMsgFailedToLogEvent, LogFieldType, evt.Type, LogFieldError, err)
		return err
	}

	log.Debug(LogMsgEventLogged, LogFieldType, evt.Type, LogFieldOwnerID, owner)
	return nil
}

// subjectOf prefers the typed payload; events replayed from a dead-letter
// file or decoded off the wire only carry the flattened map
func subjectOf(evt event.Event, payload map[string]interface{}) *string {
	if owner := event.Subject(evt); owner != "" {
		return &owner
	}
	for _, key := range []string{PayloadKeyFinder, PayloadKeyOwner} {
		if v, ok := payload[key].(string); ok && v != "" {
			return &v
		}
	}
	return nil
}

func (s *service) Recent(ctx context.Context, filter EventFilter) ([]Event, error) {
	switch {
	case filter.Limit <= 0:
		filter.Limit = DefaultQueryLimit
	case filter.Limit > MaxQueryLimit:
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, retentionDays)
}
