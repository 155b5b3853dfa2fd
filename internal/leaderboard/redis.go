package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/osse101/geotreasure/internal/domain"
	"github.com/osse101/geotreasure/internal/logger"
)

// NewRedisClient parses url, connects and pings. An empty url returns nil.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	logger.FromContext(ctx).Info(LogMsgRedisConnected, "addr", opts.Addr)
	return client, nil
}

// RedisBoard keeps scores in a sorted set and display fields in a hash
type RedisBoard struct {
	client *redis.Client
}

// NewRedisBoard creates a Board backed by client
func NewRedisBoard(client *redis.Client) *RedisBoard {
	return &RedisBoard{client: client}
}

// Record upserts the profile's score. ZADD GT keeps the higher score when
// writes arrive out of order.
func (b *RedisBoard) Record(ctx context.Context, p domain.Profile) error {
	info, err := json.Marshal(entryFor(p))
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	pipe := b.client.TxPipeline()
	pipe.ZAddArgs(ctx, keyScores, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: float64(p.Score), Member: p.OwnerID}},
	})
	pipe.HSet(ctx, keyInfo, p.OwnerID, info)
	_, err = pipe.Exec(ctx)
	return err
}

// Top returns the n highest scores
func (b *RedisBoard) Top(ctx context.Context, n int) ([]Entry, error) {
	n = ClampTopN(n)

	scores, err := b.client.ZRevRangeWithScores(ctx, keyScores, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	if len(scores) == 0 {
		return []Entry{}, nil
	}

	owners := make([]string, len(scores))
	for i, z := range scores {
		owners[i] = z.Member.(string)
	}

	infos, err := b.client.HMGet(ctx, keyInfo, owners...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	entries := make([]Entry, len(scores))
	for i, z := range scores {
		entry := Entry{OwnerID: owners[i]}
		if raw, ok := infos[i].(string); ok {
			if err := json.Unmarshal([]byte(raw), &entry); err != nil {
				return nil, fmt.Errorf("failed to decode entry: %w", err)
			}
		}
		entry.Position = i + 1
		entry.Score = int64(z.Score)
		entries[i] = entry
	}
	return entries, nil
}
