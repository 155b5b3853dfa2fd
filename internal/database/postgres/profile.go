package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/repository"
)

// ProfileRepository implements repository.Profile for PostgreSQL
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(pool *pgxpool.Pool) repository.Profile {
	return &ProfileRepository{pool: pool}
}

// InsertProfile stores a newly created profile
func (r *ProfileRepository) InsertProfile(ctx context.Context, p domain.Profile) error {
	query := `
		INSERT INTO profiles (owner_id, username, rank, total_found, streak_count,
			last_activity_ms, score, achievements, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		p.OwnerID, p.Username, int16(p.Rank), p.TotalFound, p.StreakCount,
		p.LastActivity, p.Score, achievementsOf(p), p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrProfileExists, p.OwnerID)
		}
		return fmt.Errorf("failed to insert profile: %w", err)
	}
	return nil
}

// GetAllProfiles retrieves every stored profile
func (r *ProfileRepository) GetAllProfiles(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT owner_id, username, rank, total_found, streak_count,
			last_activity_ms, score, achievements, created_at
		FROM profiles
		ORDER BY owner_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all profiles: %w", err)
	}

	profiles, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Profile, error) {
		var (
			p    domain.Profile
			rank int16
		)
		err := row.Scan(&p.OwnerID, &p.Username, &rank, &p.TotalFound, &p.StreakCount,
			&p.LastActivity, &p.Score, &p.Achievements, &p.CreatedAt)
		p.Rank = domain.Rank(rank)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
	}
	return profiles, nil
}

func achievementsOf(p domain.Profile) []string {
	if p.Achievements == nil {
		return []string{}
	}
	return p.Achievements
}
