// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
)

type LeaderboardHandler struct {
	store *store.Store
}

func NewLeaderboardHandler(st *store.Store) *LeaderboardHandler {
	return &LeaderboardHandler{store: st}
}

// List handles GET /leaderboard, highest score first
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.store.Leaderboard(r.Context())
	if err != nil {
		writeStoreError(w, err, "Leaderboard entry", "list leaderboard")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, entries)
}

// Get handles GET /leaderboard/{id}
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.GetLeaderboardEntry(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Leaderboard entry", "get leaderboard entry")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// Create handles POST /leaderboard. game_id is optional.
func (h *LeaderboardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLeaderboardEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ContestantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestant_id is required")
		return
	}

	e, err := h.store.CreateLeaderboardEntry(r.Context(), req)
	if err != nil {
		writeStoreError(w, err, "Leaderboard entry", "create leaderboard entry")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, e)
}

// Update handles PUT and PATCH /leaderboard/{id}
func (h *LeaderboardHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateLeaderboardEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	e, err := h.store.UpdateLeaderboardEntry(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err, "Leaderboard entry", "update leaderboard entry")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, e)
}

// Delete handles DELETE /leaderboard/{id}
func (h *LeaderboardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteLeaderboardEntry(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Leaderboard entry", "delete leaderboard entry")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
