// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
)

const (
	defaultTopLimit = 10
	maxTopLimit     = 100
)

// Values of TopGamesResponse.Source
const (
	SourceRedis    = "redis"
	SourceDatabase = "database"
)

// PopularityHandler serves the cached popularity records. It never
// recomputes scores; GET /games/{id}/popularity does that.
type PopularityHandler struct {
	store *store.Store
	ranks Ranking
}

// NewPopularityHandler builds the popularity routes. ranks may be nil.
func NewPopularityHandler(st *store.Store, ranks Ranking) *PopularityHandler {
	return &PopularityHandler{store: st, ranks: ranks}
}

// List handles GET /game_popularity
func (h *PopularityHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListPopularity(r.Context())
	if err != nil {
		writeStoreError(w, err, "Popularity record", "list popularity")
		return
	}

	resp := make([]models.PopularityResponse, 0, len(records))
	for _, rec := range records {
		resp = append(resp, popularityResponse(rec))
	}
	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Get handles GET /game_popularity/{id}
func (h *PopularityHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.store.GetPopularity(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Popularity record", "get popularity")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, popularityResponse(rec))
}

// Top handles GET /game_popularity/top?limit=N
func (h *PopularityHandler) Top(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxTopLimit {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	if h.ranks != nil {
		games, err := h.ranks.Top(r.Context(), limit)
		if err == nil {
			middleware.JSONResponse(w, http.StatusOK, models.TopGamesResponse{
				Source: SourceRedis,
				Games:  games,
			})
			return
		}
		// Fall through to the database
		slog.Warn("failed to read ranking", "error", err)
	}

	records, err := h.store.TopPopularity(r.Context(), limit)
	if err != nil {
		writeStoreError(w, err, "Popularity record", "get top popularity")
		return
	}

	games := make([]models.RankedGame, 0, len(records))
	for i, rec := range records {
		games = append(games, models.RankedGame{
			Rank:            i + 1,
			GameID:          rec.GameID,
			PopularityScore: rec.PopularityScore,
		})
	}

	middleware.JSONResponse(w, http.StatusOK, models.TopGamesResponse{
		Source: SourceDatabase,
		Games:  games,
	})
}
