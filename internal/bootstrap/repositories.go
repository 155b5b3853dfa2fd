package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/osse101/geotreasure/internal/config"
	"github.com/osse101/geotreasure/internal/database"
	"github.com/osse101/geotreasure/internal/database/postgres"
	"github.com/osse101/geotreasure/internal/eventlog"
	"github.com/osse101/geotreasure/internal/handler"
	"github.com/osse101/geotreasure/internal/leaderboard"
	"github.com/osse101/geotreasure/internal/profile"
	"github.com/osse101/geotreasure/internal/registry"
	"github.com/osse101/geotreasure/internal/repository"
	"github.com/osse101/geotreasure/internal/reward"
	"github.com/osse101/geotreasure/migrations"
)

// Repositories holds the storage the services are built on. Without a
// database Item and Profile are nil and the reward and event log
// repositories are in-memory.
type Repositories struct {
	Pool     *pgxpool.Pool
	Item     repository.Item
	Profile  repository.Profile
	Reward   repository.Reward
	EventLog eventlog.Repository
}

// InitializeRepositories connects and migrates postgres when cfg names a
// database, otherwise falls back to in-memory storage.
func InitializeRepositories(ctx context.Context, cfg *config.Config, clock clockwork.Clock) (*Repositories, error) {
	if !cfg.HasDatabase() {
		slog.Warn(LogMsgInMemoryMode)
		return &Repositories{
			Reward:   reward.NewMemoryRepository(),
			EventLog: eventlog.NewMemoryRepository(clock, eventlog.DefaultMemoryCapacity),
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
	}

	if err := database.Migrate(ctx, pool, migrations.FS); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}

	return &Repositories{
		Pool:     pool,
		Item:     postgres.NewItemRepository(pool),
		Profile:  postgres.NewProfileRepository(pool),
		Reward:   postgres.NewRewardRepository(pool),
		EventLog: postgres.NewEventLogRepository(pool),
	}, nil
}

// RestoreState loads the persisted catalogue and profiles into memory.
// It is a no-op without a database.
func (r *Repositories) RestoreState(ctx context.Context, reg *registry.Registry, store *profile.Store) error {
	if r.Item == nil || r.Profile == nil {
		return nil
	}

	items, err := r.Item.GetAllItems(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadItems, err)
	}
	profiles, err := r.Profile.GetAllProfiles(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadProfiles, err)
	}

	slog.Info(LogMsgStateRestored,
		"treasures", reg.Restore(ctx, items),
		"profiles", store.Restore(ctx, profiles))
	return nil
}

// ReadinessChecks lists the dependencies /readyz probes
func (r *Repositories) ReadinessChecks() []handler.ReadinessCheck {
	if r.Pool == nil {
		return nil
	}
	return []handler.ReadinessCheck{{Name: "database", Check: r.Pool.Ping}}
}

// Close releases the database pool, if any
func (r *Repositories) Close() {
	if r.Pool != nil {
		r.Pool.Close()
	}
}

// InitializeLeaderboard picks the redis board when REDIS_URL is set and the
// in-memory board otherwise, then seeds it from the restored profiles. The
// redis client is returned for readiness checks and shutdown; it is nil in
// memory mode.
func InitializeLeaderboard(ctx context.Context, cfg *config.Config, store *profile.Store) (leaderboard.Board, *redis.Client, error) {
	client, err := leaderboard.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectRedis, err)
	}

	var board leaderboard.Board
	if client != nil {
		slog.Info(LogMsgRedisLeaderboard)
		board = leaderboard.NewRedisBoard(client)
	} else {
		slog.Info(LogMsgMemoryLeaderboard)
		board = leaderboard.NewMemoryBoard()
	}

	if err := leaderboard.Seed(ctx, board, store.List()); err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedSeedLeaderboard, err)
	}
	return board, client, nil
}

// RedisReadiness probes the redis client
func RedisReadiness(client *redis.Client) handler.ReadinessCheck {
	return handler.ReadinessCheck{
		Name:  "redis",
		Check: func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}
