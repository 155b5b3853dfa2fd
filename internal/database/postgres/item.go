package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/repository"
)

// ItemRepository implements repository.Item for PostgreSQL
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository creates a new ItemRepository
func NewItemRepository(pool *pgxpool.Pool) repository.Item {
	return &ItemRepository{pool: pool}
}

// InsertItem stores a newly registered treasure
func (r *ItemRepository) InsertItem(ctx context.Context, item domain.Item) error {
	query := `
		INSERT INTO treasures (item_id, name, description, image_uri, rarity,
			location_reference, required_rank, reward_points, discovered, discovered_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), $11)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.ImageURI, int16(item.Rarity),
		item.LocationRef, int16(item.RequiredRank), item.RewardPoints,
		item.Discovered, item.DiscoveredBy, item.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateItem, item.ID)
		}
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// GetAllItems retrieves the whole catalogue ordered by id
func (r *ItemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	query := `
		SELECT item_id, name, description, image_uri, rarity, location_reference,
			required_rank, reward_points, discovered, COALESCE(discovered_by, ''), created_at
		FROM treasures
		ORDER BY item_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		var (
			item         domain.Item
			rarity, rank int16
		)
		err := row.Scan(&item.ID, &item.Name, &item.Description, &item.ImageURI, &rarity,
			&item.LocationRef, &rank, &item.RewardPoints, &item.Discovered, &item.DiscoveredBy,
			&item.CreatedAt)
		item.Rarity = domain.Rarity(rarity)
		item.RequiredRank = domain.Rank(rank)
		return item, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
	}
	return items, nil
}
