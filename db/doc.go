// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open picks the driver from the config (lib/pq for postgres, modernc.org/sqlite
for sqlite) and pings the connection:

	conn, err := db.Open(cfg)

SQLite DSNs get foreign keys and the "sqlite" time format appended, and the
pool is limited to one connection.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - contestant: people who play
  - game: name, status (active/ended), upvotes
  - game_session: one play of a game by a contestant
  - leaderboard_entry: recorded scores, optionally tied to a game
  - game_popularity: cached popularity score, one row per game

# Relationships

	game 1──* game_session *──1 contestant
	game 1──* leaderboard_entry *──1 contestant
	game 1──1 game_popularity

All foreign keys use ON DELETE CASCADE.
*/
package db
