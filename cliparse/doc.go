// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (if present). Values
already set in the process environment are never overwritten by it.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Postgres connection string or SQLite DSN (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - RedisAddr: Redis address for the popularity ranking (optional)
  - Timezone: IANA zone that defines "yesterday" for scoring (default: local)
  - RefreshInterval: in-process popularity sweep interval (0 disables)

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database type
	-redis             Redis address
	-tz                Popularity timezone
	-refresh-interval  Sweep interval (e.g. 15m)

# Environment Variables

Flags fall back to environment variables:

	PORT                        → -p
	DATABASE_URL                → -d
	DATABASE_TYPE               → -t
	REDIS_ADDR                  → -redis
	POPULARITY_TZ               → -tz
	POPULARITY_REFRESH_INTERVAL → -refresh-interval

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing
  - the port is not a valid TCP port
  - the database type is not sqlite or postgres
  - the timezone cannot be loaded
  - the refresh interval is malformed or negative
*/
package cliparse
