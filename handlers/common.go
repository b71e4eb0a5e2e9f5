// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/game-leaderboard/middleware"
	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
)

// Ranking is the optional popularity ranking kept outside the database.
// A nil Ranking means every ranking read goes to the database.
type Ranking interface {
	Remove(ctx context.Context, gameID string) error
	Top(ctx context.Context, n int) ([]models.RankedGame, error)
}

// decodeBody parses the JSON body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := middleware.ParseJSONBody(r, v); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}

// blank reports whether a required name is missing.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// writeStoreError maps a store error to a response. resource names the
// record in 404 messages; action is logged with unexpected errors.
func writeStoreError(w http.ResponseWriter, err error, resource, action string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, store.ErrInvalidReference),
		errors.Is(err, store.ErrEndBeforeStart),
		errors.Is(err, store.ErrScoreRequired):
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
