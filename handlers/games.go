// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/popularity"
	"github.com/danielhkuo/game-leaderboard/store"
)

type GameHandler struct {
	store  *store.Store
	scorer *popularity.Scorer
	ranks  Ranking
}

// NewGameHandler builds the game routes. ranks may be nil.
func NewGameHandler(st *store.Store, scorer *popularity.Scorer, ranks Ranking) *GameHandler {
	return &GameHandler{store: st, scorer: scorer, ranks: ranks}
}

// List handles GET /games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.store.ListGames(r.Context())
	if err != nil {
		writeStoreError(w, err, "Game", "list games")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, games)
}

// Get handles GET /games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.store.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Game", "get game")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, g)
}

// Create handles POST /games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Validate input
	if blank(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be 'active' or 'ended'")
		return
	}
	if req.Upvotes < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "upvotes must not be negative")
		return
	}

	g, err := h.store.CreateGame(r.Context(), req)
	if err != nil {
		writeStoreError(w, err, "Game", "create game")
		return
	}

	slog.Info("game created", "game_id", g.ID, "name", g.Name)

	middleware.JSONResponse(w, http.StatusCreated, g)
}

// Update handles PUT and PATCH /games/{id}. Both are partial updates.
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGameRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if req.Name != nil && blank(*req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must not be blank")
		return
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be 'active' or 'ended'")
		return
	}
	if req.Upvotes != nil && *req.Upvotes < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "upvotes must not be negative")
		return
	}

	g, err := h.store.UpdateGame(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err, "Game", "update game")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, g)
}

// Delete handles DELETE /games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")
	if err := h.store.DeleteGame(r.Context(), gameID); err != nil {
		writeStoreError(w, err, "Game", "delete game")
		return
	}

	if h.ranks != nil {
		if err := h.ranks.Remove(r.Context(), gameID); err != nil {
			slog.Warn("failed to remove game from ranking", "game_id", gameID, "error", err)
		}
	}

	slog.Info("game deleted", "game_id", gameID)
	w.WriteHeader(http.StatusNoContent)
}

// Leaderboard handles GET /games/{id}/leaderboard
func (h *GameHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.LeaderboardForGame(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Game", "get game leaderboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// Popularity handles GET /games/{id}/popularity. The score is recomputed
// on every call.
func (h *GameHandler) Popularity(w http.ResponseWriter, r *http.Request) {
	rec, err := h.scorer.Refresh(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Game", "refresh popularity")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, popularityResponse(rec))
}

func popularityResponse(rec models.PopularityRecord) models.PopularityResponse {
	return models.PopularityResponse{
		PopularityRecord: rec,
		LastUpdatedHuman: humanize.Time(rec.LastUpdated),
	}
}
