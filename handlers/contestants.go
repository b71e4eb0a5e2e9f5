// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
)

type ContestantHandler struct {
	store *store.Store
}

func NewContestantHandler(st *store.Store) *ContestantHandler {
	return &ContestantHandler{store: st}
}

// List handles GET /contestants
func (h *ContestantHandler) List(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.store.ListContestants(r.Context())
	if err != nil {
		writeStoreError(w, err, "Contestant", "list contestants")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, contestants)
}

// Get handles GET /contestants/{id}
func (h *ContestantHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.store.GetContestant(r.Context(), r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err, "Contestant", "get contestant")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Create handles POST /contestants
func (h *ContestantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateContestantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if blank(req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	c, err := h.store.CreateContestant(r.Context(), req.Name)
	if err != nil {
		writeStoreError(w, err, "Contestant", "create contestant")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, c)
}

// Update handles PUT and PATCH /contestants/{id}
func (h *ContestantHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateContestantRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name != nil && blank(*req.Name) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name must not be blank")
		return
	}

	c, err := h.store.UpdateContestant(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeStoreError(w, err, "Contestant", "update contestant")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}

// Delete handles DELETE /contestants/{id}
func (h *ContestantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteContestant(r.Context(), r.PathValue("id")); err != nil {
		writeStoreError(w, err, "Contestant", "delete contestant")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
