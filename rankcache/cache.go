// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rankcache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/danielhkuo/game-leaderboard/models"
)

// DefaultKey is the sorted set holding game id -> popularity score.
const DefaultKey = "games:popularity"

// Cache mirrors popularity scores into a Redis sorted set so the most popular
// games can be read without touching the database.
type Cache struct {
	client *redis.Client
	key    string
}

func New(client *redis.Client, key string) *Cache {
	if key == "" {
		key = DefaultKey
	}
	return &Cache{client: client, key: key}
}

// Connect dials addr and pings it.
func Connect(ctx context.Context, addr string) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return New(client, DefaultKey), nil
}

// Publish sets the game's score.
func (c *Cache) Publish(ctx context.Context, gameID string, score float64) error {
	if err := c.client.ZAdd(ctx, c.key, &redis.Z{Score: score, Member: gameID}).Err(); err != nil {
		return fmt.Errorf("zadd %s: %w", c.key, err)
	}
	return nil
}

// Remove drops a deleted game from the ranking.
func (c *Cache) Remove(ctx context.Context, gameID string) error {
	if err := c.client.ZRem(ctx, c.key, gameID).Err(); err != nil {
		return fmt.Errorf("zrem %s: %w", c.key, err)
	}
	return nil
}

// Rebuild replaces the whole ranking with records.
func (c *Cache) Rebuild(ctx context.Context, records []models.PopularityRecord) error {
	members := make([]*redis.Z, 0, len(records))
	for _, r := range records {
		members = append(members, &redis.Z{Score: r.PopularityScore, Member: r.GameID})
	}

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key)
	if len(members) > 0 {
		pipe.ZAdd(ctx, c.key, members...)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuild %s: %w", c.key, err)
	}
	return nil
}

// PopularityLister is the source Sync copies from.
type PopularityLister interface {
	ListPopularity(ctx context.Context) ([]models.PopularityRecord, error)
}

// Sync rebuilds the ranking from every stored record and returns how many
// games it now holds.
func (c *Cache) Sync(ctx context.Context, src PopularityLister) (int, error) {
	records, err := src.ListPopularity(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list popularity: %w", err)
	}
	if err := c.Rebuild(ctx, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Top returns up to n games, highest score first. Equal scores are ordered
// by game id, descending, as Redis orders them.
func (c *Cache) Top(ctx context.Context, n int) ([]models.RankedGame, error) {
	if n <= 0 {
		return []models.RankedGame{}, nil
	}

	items, err := c.client.ZRevRangeWithScores(ctx, c.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("zrevrange %s: %w", c.key, err)
	}

	games := make([]models.RankedGame, 0, len(items))
	for i, z := range items {
		id, ok := z.Member.(string)
		if !ok {
			id = fmt.Sprint(z.Member)
		}
		games = append(games, models.RankedGame{
			Rank:            i + 1,
			GameID:          id,
			PopularityScore: z.Score,
		})
	}
	return games, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}
