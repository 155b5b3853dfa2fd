package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/repository"
)

// RewardRepository implements repository.Reward for PostgreSQL
type RewardRepository struct {
	pool *pgxpool.Pool
}

// NewRewardRepository creates a new RewardRepository
func NewRewardRepository(pool *pgxpool.Pool) repository.Reward {
	return &RewardRepository{pool: pool}
}

// SaveClaim persists a committed claim atomically. Profile rows only move
// forward: a snapshot with fewer finds than the stored row is ignored, so
// out-of-order writes from the worker pool converge on the latest state.
func (r *RewardRepository) SaveClaim(ctx context.Context, item domain.Item, p domain.Profile, record domain.RewardRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEncodeJSON, err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		UPDATE treasures
		SET discovered = TRUE, discovered_by = $2
		WHERE item_id = $1
	`, item.ID, record.OwnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkFound, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (owner_id, username, rank, total_found, streak_count,
			last_activity_ms, score, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (owner_id) DO UPDATE SET
			rank = EXCLUDED.rank,
			total_found = EXCLUDED.total_found,
			streak_count = EXCLUDED.streak_count,
			last_activity_ms = EXCLUDED.last_activity_ms,
			score = EXCLUDED.score,
			achievements = EXCLUDED.achievements,
			updated_at = NOW()
		WHERE profiles.total_found < EXCLUDED.total_found
	`, p.OwnerID, p.Username, int16(p.Rank), p.TotalFound, p.StreakCount,
		p.LastActivity, p.Score, achievementsOf(p), p.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveProfile, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reward_records (record_id, item_id, owner_id, name, description, image_uri,
			rarity, location_reference, reward_points, found_at_ms, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (record_id) DO NOTHING
	`, record.ID, record.ItemID, record.OwnerID, record.Name, record.Description, record.ImageURI,
		int16(record.Rarity), record.LocationRef, record.RewardPoints, record.FoundAt, metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveRecord, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTx, err)
	}
	return nil
}

// GetRewardsByOwner returns the owner's reward records, newest first
func (r *RewardRepository) GetRewardsByOwner(ctx context.Context, ownerID string) ([]domain.RewardRecord, error) {
	query := `
		SELECT record_id, item_id, owner_id, name, description, image_uri, rarity,
			location_reference, reward_points, found_at_ms, metadata
		FROM reward_records
		WHERE owner_id = $1
		ORDER BY found_at_ms DESC, record_id
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rewards: %w", err)
	}

	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RewardRecord, error) {
		var (
			rec      domain.RewardRecord
			rarity   int16
			metadata []byte
		)
		if err := row.Scan(&rec.ID, &rec.ItemID, &rec.OwnerID, &rec.Name, &rec.Description,
			&rec.ImageURI, &rarity, &rec.LocationRef, &rec.RewardPoints, &rec.FoundAt, &metadata); err != nil {
			return rec, err
		}
		rec.Rarity = domain.Rarity(rarity)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &rec.Metadata); err != nil {
				return rec, err
			}
		}
		return rec, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
	}
	return records, nil
}
