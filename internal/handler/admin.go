package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/eventlog"
	"github.com/osse101/geotreasure/internal/item"
	"github.com/osse101/geotreasure/internal/logger"
)

// RegisterItemRequest is the body of POST /admin/items
type RegisterItemRequest struct {
	ItemID            string `json:"item_id" validate:"required,max=64,itemid"`
	Name              string `json:"name" validate:"required,max=120"`
	Description       string `json:"description" validate:"max=2000"`
	ImageURI          string `json:"image_uri" validate:"max=512"`
	Rarity            string `json:"rarity" validate:"required,rarity"`
	LocationReference string `json:"location_reference" validate:"required,max=256"`
	RequiredRank      string `json:"required_rank" validate:"rank"`
	RewardPoints      int    `json:"reward_points" validate:"min=0"`
}

func (req RegisterItemRequest) toItem() (domain.Item, error) {
	rarity, err := domain.ParseRarity(req.Rarity)
	if err != nil {
		return domain.Item{}, err
	}
	rank := domain.RankBeginner
	if req.RequiredRank != "" {
		if rank, err = domain.ParseRank(req.RequiredRank); err != nil {
			return domain.Item{}, err
		}
	}
	return domain.Item{
		ID:           req.ItemID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURI:     req.ImageURI,
		Rarity:       rarity,
		LocationRef:  req.LocationReference,
		RequiredRank: rank,
		RewardPoints: req.RewardPoints,
	}, nil
}

// RegisterItemResponse echoes the stored item, location reference included
type RegisterItemResponse struct {
	Message string      `json:"message"`
	Item    domain.Item `json:"item"`
}

// HandleAdminRegisterItem adds a treasure to the catalogue
func HandleAdminRegisterItem(svc item.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := requireOwner(w, r)
		if !ok {
			return
		}

		var req RegisterItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Register item"); err != nil {
			return
		}

		it, err := req.toItem()
		if err != nil {
			respondServiceError(w, r, "Register item", err)
			return
		}

		registered, err := svc.Register(r.Context(), caller, it)
		if err != nil {
			respondServiceError(w, r, "Register item", err)
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgItemRegistered, "item_id", registered.ID, "caller", caller)
		respondJSON(w, http.StatusCreated, RegisterItemResponse{Message: MsgTreasureRegistered, Item: registered})
	}
}

// EventLister reads the persisted event log
type EventLister interface {
	Recent(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error)
}

// EventsResponse contains event log query results
type EventsResponse struct {
	Count  int             `json:"count"`
	Events []EventLogEntry `json:"events"`
}

// EventLogEntry represents a single event log entry
type EventLogEntry struct {
	ID        int64       `json:"id"`
	EventType string      `json:"event_type"`
	OwnerID   *string     `json:"owner_id,omitempty"`
	Payload   interface{} `json:"payload"`
	Metadata  interface{} `json:"metadata,omitempty"`
	CreatedAt string      `json:"created_at"`
}

// HandleAdminEvents returns recent events, newest first.
// GET /api/v1/admin/events?owner_id=X&event_type=Y&since=Z&until=Z&limit=N
func HandleAdminEvents(events EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if events == nil {
			respondError(w, http.StatusServiceUnavailable, ErrMsgEventLogUnavailable)
			return
		}

		query := r.URL.Query()
		var filter eventlog.EventFilter

		if ownerID := query.Get("owner_id"); ownerID != "" {
			filter.OwnerID = &ownerID
		}
		if eventType := query.Get("event_type"); eventType != "" {
			filter.EventType = &eventType
		}

		var ok bool
		if filter.Since, ok = parseTimeParam(w, r, "since"); !ok {
			return
		}
		if filter.Until, ok = parseTimeParam(w, r, "until"); !ok {
			return
		}
		if filter.Limit, ok = GetLimitParam(r, w); !ok {
			return
		}

		found, err := events.Recent(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "List events", err)
			return
		}

		entries := make([]EventLogEntry, len(found))
		for i, evt := range found {
			entries[i] = EventLogEntry{
				ID:        evt.ID,
				EventType: evt.EventType,
				OwnerID:   evt.OwnerID,
				Payload:   evt.Payload,
				Metadata:  evt.Metadata,
				CreatedAt: evt.CreatedAt.Format(time.RFC3339),
			}
		}

		respondJSON(w, http.StatusOK, EventsResponse{Count: len(entries), Events: entries})
	}
}

func parseTimeParam(w http.ResponseWriter, r *http.Request, name string) (*time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidTime)
		return nil, false
	}
	return &t, true
}
