// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store reads and writes every record type over database/sql.

	st := store.New(conn)
	game, err := st.CreateGame(ctx, req)

Queries use $N placeholders and run unchanged on PostgreSQL and SQLite.
Timestamps are written in UTC at microsecond precision.

# Errors

Lookups and writes against a missing row return an error wrapping
ErrNotFound. Writes that name a game or contestant that does not exist
return ErrInvalidReference. Test with errors.Is.

# Popularity

CreateGame writes the game and its popularity record in one transaction.
EnsurePopularity backfills a record for games that lack one, and
SavePopularity upserts a newly computed score.
*/
package store
