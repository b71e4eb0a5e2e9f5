// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
)

const exitMessage = "Contestant has exited the game."

type SessionHandler struct {
	store *store.Store
}

func NewSessionHandler(st *store.Store) *SessionHandler {
	return &SessionHandler{store: st}
}

// List handles GET /game_sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(r.Context())
	if err != nil {
		writeStoreError(w, err, "Game session", "list sessions")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, sessions)
}

// Get handles GET /game_sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	gs, err := h.store.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Game session", "get session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, gs)
}

// Create handles POST /game_sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.GameID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "game_id is required")
		return
	}
	if req.ContestantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "contestant_id is required")
		return
	}

	gs, err := h.store.CreateSession(r.Context(), req)
	if err != nil {
		writeStoreError(w, err, "Game session", "create session")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, gs)
}

// Update handles PUT and PATCH /game_sessions/{id}
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSessionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gs, err := h.store.UpdateSession(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err, "Game session", "update session")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, gs)
}

// Delete handles DELETE /game_sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteSession(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Game session", "delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Exit handles POST /game_sessions/{id}/exit. Only open sessions can be
// exited; anything else is a 404.
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	gs, err := h.store.ExitSession(r.Context(), sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Game session not found or already exited")
		return
	}
	if err != nil {
		writeStoreError(w, err, "Game session", "exit session")
		return
	}

	slog.Info("session exited", "session_id", gs.ID, "game_id", gs.GameID,
		"length_s", gs.SessionLength())

	middleware.JSONResponse(w, http.StatusOK, models.ExitSessionResponse{
		Message: exitMessage,
		EndTime: *gs.EndTime,
	})
}
