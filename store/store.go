// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned (wrapped) when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidReference is returned when a write names a game or
	// contestant that does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// Store is the record access layer over database/sql. Queries use $N
// placeholders, which both lib/pq and modernc.org/sqlite accept.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// WithClock returns a copy of the store that stamps rows using now.
func (s *Store) WithClock(now func() time.Time) *Store {
	return &Store{db: s.db, now: now}
}

// DB exposes the underlying connection for callers that need raw access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// timestamp is the current time truncated to the precision Postgres keeps.
func (s *Store) timestamp() time.Time {
	return utc(s.now())
}

func utc(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func newID() string {
	return uuid.NewString()
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func exists(ctx context.Context, q querier, table, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, "SELECT 1 FROM "+table+" WHERE id = $1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// affectedOne maps a zero-row UPDATE/DELETE to ErrNotFound.
func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
