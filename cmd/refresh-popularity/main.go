// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command refresh-popularity recomputes the popularity score of every game
// once and exits. It takes the same flags and environment as the server and
// is meant to be run from cron when the server's own sweep is disabled.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielhkuo/game-leaderboard/cliparse"
	"github.com/danielhkuo/game-leaderboard/db"
	"github.com/danielhkuo/game-leaderboard/popularity"
	"github.com/danielhkuo/game-leaderboard/rankcache"
	"github.com/danielhkuo/game-leaderboard/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		return 1
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		return 1
	}

	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return 1
	}
	defer dbConn.Close()

	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(dbConn)
	res, err := popularity.NewScorer(st, popularity.WithLocation(loc)).Sweep(ctx, st)
	if err != nil {
		slog.Error("popularity sweep failed", "error", err)
		return 1
	}

	// Mirror the fresh scores in a single rebuild
	if cfg.RedisAddr != "" {
		ranks, err := rankcache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Error("ranking cache unavailable", "error", err)
			return 1
		}
		defer ranks.Close()

		n, err := ranks.Sync(ctx, st)
		if err != nil {
			slog.Error("failed to sync ranking cache", "error", err)
			return 1
		}
		slog.Info("Ranking cache synced", "games", n)
	}

	if res.Failed > 0 {
		return 1
	}
	return 0
}
