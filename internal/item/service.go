package item

import (
	"context"
	"fmt"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
	"github.com/osse101/geotreasure/internal/metrics"
	"github.com/osse101/geotreasure/internal/registry"
	"github.com/osse101/geotreasure/internal/repository"
)

// ListFilter narrows a catalogue listing
type ListFilter struct {
	// Rarity, when set, keeps only items of that tier
	Rarity *domain.Rarity
	// OnlyAvailable drops discovered items
	OnlyAvailable bool
}

// Service is the catalogue read/write surface
type Service interface {
	Register(ctx context.Context, caller string, item domain.Item) (domain.Item, error)
	Get(ctx context.Context, itemID string) (domain.Item, error)
	List(ctx context.Context, filter ListFilter) []domain.Item
}

type service struct {
	registry *registry.Registry
	repo     repository.Item
}

// NewService creates the catalogue service. repo may be nil when running
// without a database.
func NewService(reg *registry.Registry, repo repository.Item) Service {
	metrics.CatalogueSize.Set(float64(reg.Len()))
	return &service{registry: reg, repo: repo}
}

// Register adds the item to the registry and stores it. If storing fails the
// registration is backed out so memory and storage agree.
func (s *service) Register(ctx context.Context, caller string, item domain.Item) (domain.Item, error) {
	registered, err := s.registry.Register(ctx, caller, item)
	if err != nil {
		return domain.Item{}, err
	}

	if s.repo != nil {
		if err := s.repo.InsertItem(ctx, registered); err != nil {
			if rbErr := s.registry.Unregister(registered.ID); rbErr != nil {
				logger.FromContext(ctx).Error(LogMsgRollbackFailed, "item_id", registered.ID, "error", rbErr)
			}
			return domain.Item{}, fmt.Errorf(ErrMsgPersistItemFailed, registered.ID, err)
		}
		logger.FromContext(ctx).Debug(LogMsgItemPersisted, "item_id", registered.ID)
	}

	metrics.CatalogueSize.Set(float64(s.registry.Len()))
	return registered, nil
}

func (s *service) Get(_ context.Context, itemID string) (domain.Item, error) {
	return s.registry.Lookup(itemID)
}

func (s *service) List(_ context.Context, filter ListFilter) []domain.Item {
	all := s.registry.List()
	out := all[:0]
	for _, it := range all {
		if filter.OnlyAvailable && it.Discovered {
			continue
		}
		if filter.Rarity != nil && it.Rarity != *filter.Rarity {
			continue
		}
		out = append(out, it)
	}
	return out
}
