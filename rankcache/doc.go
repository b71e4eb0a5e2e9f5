// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package rankcache keeps a Redis sorted set of game popularity scores
// (member = game id) for fast "most popular games" reads. It is optional:
// the API falls back to the database when no Redis address is configured.
package rankcache
