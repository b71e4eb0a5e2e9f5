// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/game-leaderboard/cliparse"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver, dsn := cfg.DatabaseType, cfg.DatabaseURL
	if driver == cliparse.DatabaseSQLite {
		dsn = sqliteDSN(dsn)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == cliparse.DatabaseSQLite {
		// SQLite serializes writers anyway, and in-memory databases are
		// per-connection
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", driver, err)
	}

	return conn, nil
}

// sqliteDSN turns on foreign keys (needed for ON DELETE CASCADE) and a
// sortable time format.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "foreign_keys") {
		dsn += sep + "_pragma=foreign_keys(1)"
		sep = "&"
	}
	if !strings.Contains(dsn, "_time_format") {
		dsn += sep + "_time_format=sqlite"
	}
	return dsn
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return nil
}

// Works unchanged on Postgres and SQLite. Timestamps are written in UTC.
const schema = `
-- Contestants
CREATE TABLE IF NOT EXISTS contestant (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Games
CREATE TABLE IF NOT EXISTS game (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'ended')),
    upvotes INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_game_status ON game(status);

-- Game sessions (end_time NULL = in progress)
CREATE TABLE IF NOT EXISTS game_session (
    id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL REFERENCES game(id) ON DELETE CASCADE,
    contestant_id TEXT NOT NULL REFERENCES contestant(id) ON DELETE CASCADE,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    score INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_game_session_game_start ON game_session(game_id, start_time);
CREATE INDEX IF NOT EXISTS idx_game_session_contestant ON game_session(contestant_id);

-- Leaderboard entries (game is optional)
CREATE TABLE IF NOT EXISTS leaderboard_entry (
    id TEXT PRIMARY KEY,
    game_id TEXT REFERENCES game(id) ON DELETE CASCADE,
    contestant_id TEXT NOT NULL REFERENCES contestant(id) ON DELETE CASCADE,
    score INTEGER NOT NULL,
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_leaderboard_entry_game ON leaderboard_entry(game_id);

-- Cached popularity, one row per game
CREATE TABLE IF NOT EXISTS game_popularity (
    id TEXT PRIMARY KEY,
    game_id TEXT NOT NULL UNIQUE REFERENCES game(id) ON DELETE CASCADE,
    popularity_score DOUBLE PRECISION NOT NULL DEFAULT 0,
    last_updated TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_game_popularity_score ON game_popularity(popularity_score);
`
