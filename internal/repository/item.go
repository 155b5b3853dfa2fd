package repository

import (
	"context"

	"github.com/osse101/geotreasure/internal/domain"
)

// Item defines the interface for treasure catalogue persistence
type Item interface {
	// InsertItem stores a newly registered item. An existing id is an ErrDuplicateItem.
	InsertItem(ctx context.Context, item domain.Item) error

	// GetAllItems returns the whole catalogue, discovery state included
	GetAllItems(ctx context.Context) ([]domain.Item, error)
}
