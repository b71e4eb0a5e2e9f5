// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the game leaderboard API server.

The server keeps contestants, games, game sessions and leaderboard entries,
and scores each game's popularity from yesterday's sessions, the players
online now, and its upvotes.

# Starting the Server

The server requires environment variables or CLI flags for configuration.
A .env file in the working directory is loaded first if present:

	DATABASE_URL=leaderboard.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - REDIS_ADDR (-redis): Redis address for the popularity ranking
  - POPULARITY_TZ (-tz): IANA zone whose calendar defines "yesterday"
  - POPULARITY_REFRESH_INTERVAL (-refresh-interval): rescore every game on
    this interval, e.g. 15m (default: off)

For a one-shot rescore from cron, see cmd/refresh-popularity.

# Architecture

  - handlers: HTTP request handlers, one per resource
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request, response and domain types
  - store: Record access over database/sql
  - popularity: The popularity scorer and sweep
  - rankcache: Redis sorted-set mirror of popularity scores
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
