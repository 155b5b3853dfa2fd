package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/geotreasure/internal/eventlog"
)

const selectEvents = `SELECT id, event_type, owner_id, payload, metadata, created_at FROM events`

// EventLogRepository implements eventlog.Repository over the events table
type EventLogRepository struct {
	pool *pgxpool.Pool
}

func NewEventLogRepository(pool *pgxpool.Pool) eventlog.Repository {
	return &EventLogRepository{pool: pool}
}

func (r *EventLogRepository) LogEvent(ctx context.Context, eventType string, ownerID *string, payload, metadata map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
	}
	// nil metadata stays SQL NULL rather than the JSON literal null
	var meta []byte
	if metadata != nil {
		if meta, err = json.Marshal(metadata); err != nil {
			return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
		}
	}

	if _, err := r.pool.Exec(ctx,
		`INSERT INTO events (event_type, owner_id, payload, metadata) VALUES ($1, $2, $3, $4)`,
		eventType, ownerID, body, meta,
	); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvent, err)
	}
	return nil
}

// GetEvents returns matching events newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	var w whereClause
	if filter.OwnerID != nil {
		w.add("owner_id =", *filter.OwnerID)
	}
	if filter.EventType != nil {
		w.add("event_type =", *filter.EventType)
	}
	if filter.Since != nil {
		w.add("created_at >=", *filter.Since)
	}
	if filter.Until != nil {
		w.add("created_at <=", *filter.Until)
	}

	query := selectEvents + w.String() + ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(w.args)+1)
		w.args = append(w.args, filter.Limit)
	}

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	events, err := pgx.CollectRows(rows, scanEvent)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
	}
	return events, nil
}

func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM events WHERE created_at < NOW() - make_interval(days => $1)`, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToPurgeEvents, err)
	}
	return tag.RowsAffected(), nil
}

func scanEvent(row pgx.CollectableRow) (eventlog.Event, error) {
	var (
		evt           eventlog.Event
		payload, meta []byte
	)
	if err := row.Scan(&evt.ID, &evt.EventType, &evt.OwnerID, &payload, &meta, &evt.CreatedAt); err != nil {
		return evt, err
	}
	if err := json.Unmarshal(payload, &evt.Payload); err != nil {
		return evt, err
	}
	if len(meta) > 0 {
		if err := json.Unmarshal(meta, &evt.Metadata); err != nil {
			return evt, err
		}
	}
	return evt, nil
}

// whereClause accumulates AND-ed predicates with positional arguments
type whereClause struct {
	preds []string
	args  []interface{}
}

func (w *whereClause) add(predicate string, arg interface{}) {
	w.args = append(w.args, arg)
	w.preds = append(w.preds, fmt.Sprintf("%s $%d", predicate, len(w.args)))
}

func (w *whereClause) String() string {
	if len(w.preds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.preds, " AND ")
}
