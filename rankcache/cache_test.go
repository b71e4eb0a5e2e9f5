// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rankcache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/danielhkuo/game-leaderboard/models"
)

// setupTestCache connects to REDIS_ADDR and returns a cache on a throwaway key.
func setupTestCache(t *testing.T) *Cache {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis unavailable at %s: %v", addr, err)
	}

	key := "test:games:popularity:" + uuid.NewString()
	t.Cleanup(func() {
		client.Del(context.Background(), key)
		client.Close()
	})

	return New(client, key)
}

func TestNew_DefaultKey(t *testing.T) {
	c := New(nil, "")
	if c.key != DefaultKey {
		t.Errorf("key = %q, want %q", c.key, DefaultKey)
	}
}

func TestTop_NonPositive(t *testing.T) {
	games, err := New(nil, "").Top(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Errorf("expected no games, got %d", len(games))
	}
}

func TestPublishAndTop(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	for id, score := range map[string]float64{"low": 0.25, "high": 0.8, "mid": 0.6} {
		if err := c.Publish(ctx, id, score); err != nil {
			t.Fatalf("Publish(%s) error = %v", id, err)
		}
	}
	// re-publishing replaces the score
	if err := c.Publish(ctx, "low", 0.1); err != nil {
		t.Fatal(err)
	}

	games, err := c.Top(ctx, 2)
	if err != nil {
		t.Fatalf("Top() error = %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}
	if games[0].GameID != "high" || games[0].Rank != 1 {
		t.Errorf("first = %+v, want high at rank 1", games[0])
	}
	if games[1].GameID != "mid" || games[1].Rank != 2 {
		t.Errorf("second = %+v, want mid at rank 2", games[1])
	}

	if err := c.Remove(ctx, "high"); err != nil {
		t.Fatal(err)
	}
	games, err = c.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].GameID != "mid" || games[1].GameID != "low" {
		t.Errorf("after remove got %+v", games)
	}
}

func TestRebuild(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	if err := c.Publish(ctx, "stale", 1.0); err != nil {
		t.Fatal(err)
	}

	err := c.Rebuild(ctx, []models.PopularityRecord{
		{GameID: "a", PopularityScore: 0.25},
		{GameID: "b", PopularityScore: 0.8},
	})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	games, err := c.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 2 || games[0].GameID != "b" || games[1].GameID != "a" {
		t.Errorf("after rebuild got %+v", games)
	}

	// rebuilding with nothing empties the ranking
	if err := c.Rebuild(ctx, nil); err != nil {
		t.Fatal(err)
	}
	games, err = c.Top(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 0 {
		t.Errorf("expected empty ranking, got %+v", games)
	}
}

type listerFunc func(ctx context.Context) ([]models.PopularityRecord, error)

func (f listerFunc) ListPopularity(ctx context.Context) ([]models.PopularityRecord, error) {
	return f(ctx)
}

func TestSync_ListError(t *testing.T) {
	listErr := errors.New("db gone")
	_, err := New(nil, "").Sync(context.Background(), listerFunc(func(context.Context) ([]models.PopularityRecord, error) {
		return nil, listErr
	}))
	if !errors.Is(err, listErr) {
		t.Errorf("Sync() error = %v, want %v", err, listErr)
	}
}

func TestSync(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	n, err := c.Sync(ctx, listerFunc(func(context.Context) ([]models.PopularityRecord, error) {
		return []models.PopularityRecord{
			{GameID: "a", PopularityScore: 0.6},
			{GameID: "b", PopularityScore: 0.9},
			{GameID: "c", PopularityScore: 0},
		}, nil
	}))
	if err != nil {
		t.Fatalf("Sync() error = %v", err)
	}
	if n != 3 {
		t.Errorf("Sync() = %d, want 3", n)
	}

	games, err := c.Top(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(games) != 1 || games[0].GameID != "b" {
		t.Errorf("top after sync = %+v, want b", games)
	}
}
