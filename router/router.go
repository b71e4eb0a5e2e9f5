// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/game-leaderboard/handlers"
	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/popularity"
	"github.com/danielhkuo/game-leaderboard/rankcache"
	"github.com/danielhkuo/game-leaderboard/store"
)

// NewRouter wires every route. ranks may be nil when Redis is not configured.
func NewRouter(st *store.Store, scorer *popularity.Scorer, ranks *rankcache.Cache) *http.ServeMux {
	mux := http.NewServeMux()

	// A nil *Cache must not become a non-nil interface
	var ranking handlers.Ranking
	if ranks != nil {
		ranking = ranks
	}

	// Initialize handlers
	contestantHandler := handlers.NewContestantHandler(st)
	gameHandler := handlers.NewGameHandler(st, scorer, ranking)
	sessionHandler := handlers.NewSessionHandler(st)
	leaderboardHandler := handlers.NewLeaderboardHandler(st)
	popularityHandler := handlers.NewPopularityHandler(st, ranking)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Contestants
	mux.HandleFunc("GET /contestants", middleware.WithLogging(contestantHandler.List))
	mux.HandleFunc("POST /contestants", middleware.WithLogging(contestantHandler.Create))
	mux.HandleFunc("GET /contestants/{id}", middleware.WithLogging(contestantHandler.Get))
	mux.HandleFunc("PUT /contestants/{id}", middleware.WithLogging(contestantHandler.Update))
	mux.HandleFunc("PATCH /contestants/{id}", middleware.WithLogging(contestantHandler.Update))
	mux.HandleFunc("DELETE /contestants/{id}", middleware.WithLogging(contestantHandler.Delete))

	// Games
	mux.HandleFunc("GET /games", middleware.WithLogging(gameHandler.List))
	mux.HandleFunc("POST /games", middleware.WithLogging(gameHandler.Create))
	mux.HandleFunc("GET /games/{id}", middleware.WithLogging(gameHandler.Get))
	mux.HandleFunc("PUT /games/{id}", middleware.WithLogging(gameHandler.Update))
	mux.HandleFunc("PATCH /games/{id}", middleware.WithLogging(gameHandler.Update))
	mux.HandleFunc("DELETE /games/{id}", middleware.WithLogging(gameHandler.Delete))
	mux.HandleFunc("GET /games/{id}/leaderboard", middleware.WithLogging(gameHandler.Leaderboard))
	mux.HandleFunc("GET /games/{id}/popularity", middleware.WithLogging(gameHandler.Popularity))

	// Game sessions
	mux.HandleFunc("GET /game_sessions", middleware.WithLogging(sessionHandler.List))
	mux.HandleFunc("POST /game_sessions", middleware.WithLogging(sessionHandler.Create))
	mux.HandleFunc("GET /game_sessions/{id}", middleware.WithLogging(sessionHandler.Get))
	mux.HandleFunc("PUT /game_sessions/{id}", middleware.WithLogging(sessionHandler.Update))
	mux.HandleFunc("PATCH /game_sessions/{id}", middleware.WithLogging(sessionHandler.Update))
	mux.HandleFunc("DELETE /game_sessions/{id}", middleware.WithLogging(sessionHandler.Delete))
	mux.HandleFunc("POST /game_sessions/{id}/exit", middleware.WithLogging(sessionHandler.Exit))

	// Leaderboard
	mux.HandleFunc("GET /leaderboard", middleware.WithLogging(leaderboardHandler.List))
	mux.HandleFunc("POST /leaderboard", middleware.WithLogging(leaderboardHandler.Create))
	mux.HandleFunc("GET /leaderboard/{id}", middleware.WithLogging(leaderboardHandler.Get))
	mux.HandleFunc("PUT /leaderboard/{id}", middleware.WithLogging(leaderboardHandler.Update))
	mux.HandleFunc("PATCH /leaderboard/{id}", middleware.WithLogging(leaderboardHandler.Update))
	mux.HandleFunc("DELETE /leaderboard/{id}", middleware.WithLogging(leaderboardHandler.Delete))

	// Popularity (read-only; /top wins over {id})
	mux.HandleFunc("GET /game_popularity", middleware.WithLogging(popularityHandler.List))
	mux.HandleFunc("GET /game_popularity/top", middleware.WithLogging(popularityHandler.Top))
	mux.HandleFunc("GET /game_popularity/{id}", middleware.WithLogging(popularityHandler.Get))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("game-leaderboard API v1"))
	})

	return mux
}
