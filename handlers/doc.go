// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the game leaderboard API.

# Handler Types

One handler struct per resource, each built over a *store.Store:

  - ContestantHandler: contestant CRUD
  - GameHandler: game CRUD, per-game leaderboard, popularity refresh
  - SessionHandler: game session CRUD and exit
  - LeaderboardHandler: leaderboard entry CRUD
  - PopularityHandler: cached popularity records and the top-N ranking

	st := store.New(db)
	gameHandler := handlers.NewGameHandler(st, scorer, ranking)

PUT and PATCH share one Update method per resource; both are partial.

# Errors

Store errors are mapped in one place:

	store.ErrNotFound          → 404
	store.ErrInvalidReference  → 400
	store.ErrEndBeforeStart    → 400
	store.ErrScoreRequired     → 400
	anything else              → 500 "Database error" (logged)

# Popularity

GET /games/{id}/popularity recomputes the score through the popularity
Scorer on every call. The /game_popularity routes only read what was last
stored. /game_popularity/top reads the Redis ranking when one is configured
and falls back to the database when it is not, or when Redis fails.
*/
package handlers
