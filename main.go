package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/game-leaderboard/cliparse"
	"github.com/danielhkuo/game-leaderboard/db"
	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/popularity"
	"github.com/danielhkuo/game-leaderboard/rankcache"
	"github.com/danielhkuo/game-leaderboard/router"
	"github.com/danielhkuo/game-leaderboard/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	// Connect and verify
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	// Stops the sweep and the server on Ctrl-C
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(dbConn)
	opts := []popularity.Option{popularity.WithLocation(loc)}

	// The ranking cache is optional; without it the API reads from the database
	var ranks *rankcache.Cache
	if cfg.RedisAddr != "" {
		ranks, err = rankcache.Connect(ctx, cfg.RedisAddr)
		if err != nil {
			slog.Warn("ranking cache disabled", "error", err)
		} else {
			defer ranks.Close()
			n, err := ranks.Sync(ctx, st)
			if err != nil {
				slog.Warn("failed to sync ranking cache", "error", err)
			} else {
				slog.Info("Ranking cache ready", "addr", cfg.RedisAddr, "games", n)
			}
			opts = append(opts, popularity.WithRanker(ranks))
		}
	}

	scorer := popularity.NewScorer(st, opts...)

	if cfg.RefreshInterval > 0 {
		slog.Info("Popularity sweep enabled", "interval", cfg.RefreshInterval)
		go scorer.RunPeriodic(ctx, st, cfg.RefreshInterval)
	}

	// Create router
	mux := router.NewRouter(st, scorer, ranks)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C signal
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
