// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the game leaderboard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, scorer, ranks)

ranks may be nil when Redis is not configured.

# Endpoints

Health:

	GET /health
	GET /                               - API banner

Contestants, games, sessions and leaderboard entries each have:

	GET    /{resource}                  - List
	POST   /{resource}                  - Create
	GET    /{resource}/{id}             - Retrieve
	PUT    /{resource}/{id}             - Partial update
	PATCH  /{resource}/{id}             - Partial update
	DELETE /{resource}/{id}             - Delete

where resource is contestants, games, game_sessions or leaderboard.

Extra actions:

	GET  /games/{id}/leaderboard        - Entries for one game, score desc
	GET  /games/{id}/popularity         - Recompute and return popularity
	POST /game_sessions/{id}/exit       - Close an open session

Popularity (read-only):

	GET /game_popularity                - All stored records
	GET /game_popularity/top?limit=N    - Top N games (default 10, max 100)
	GET /game_popularity/{id}           - One record by record id

Every route except /health and / is wrapped in middleware.WithLogging.
*/
package router
