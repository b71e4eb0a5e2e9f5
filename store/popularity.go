// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/danielhkuo/game-leaderboard/models"
)

const popularityColumns = `id, game_id, popularity_score, last_updated`

func scanPopularity(row interface{ Scan(...any) error }, p *models.PopularityRecord) error {
	return row.Scan(&p.ID, &p.GameID, &p.PopularityScore, &p.LastUpdated)
}

func ensurePopularity(ctx context.Context, q querier, gameID string, now time.Time) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO game_popularity (id, game_id, popularity_score, last_updated)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (game_id) DO NOTHING
	`, newID(), gameID, now)
	if err != nil {
		return fmt.Errorf("failed to create popularity record: %w", err)
	}
	return nil
}

// EnsurePopularity fetches the game's popularity record, creating it with a
// score of 0 if it is missing. A missing game yields ErrNotFound.
func (s *Store) EnsurePopularity(ctx context.Context, gameID string) (models.PopularityRecord, error) {
	ok, err := exists(ctx, s.db, "game", gameID)
	if err != nil {
		return models.PopularityRecord{}, fmt.Errorf("failed to check game: %w", err)
	}
	if !ok {
		return models.PopularityRecord{}, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}

	if err := ensurePopularity(ctx, s.db, gameID, s.timestamp()); err != nil {
		return models.PopularityRecord{}, err
	}
	return s.GetPopularityForGame(ctx, gameID)
}

// SavePopularity stores a freshly computed score stamped with at.
func (s *Store) SavePopularity(ctx context.Context, gameID string, score float64, at time.Time) (models.PopularityRecord, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_popularity (id, game_id, popularity_score, last_updated)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (game_id) DO UPDATE
		SET popularity_score = excluded.popularity_score,
		    last_updated = excluded.last_updated
	`, newID(), gameID, score, utc(at))
	if err != nil {
		return models.PopularityRecord{}, fmt.Errorf("failed to save popularity: %w", err)
	}
	return s.GetPopularityForGame(ctx, gameID)
}

func (s *Store) GetPopularityForGame(ctx context.Context, gameID string) (models.PopularityRecord, error) {
	var p models.PopularityRecord
	err := scanPopularity(s.db.QueryRowContext(ctx, `SELECT `+popularityColumns+` FROM game_popularity WHERE game_id = $1`, gameID), &p)
	if err == sql.ErrNoRows {
		return models.PopularityRecord{}, fmt.Errorf("popularity for game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return models.PopularityRecord{}, fmt.Errorf("failed to get popularity: %w", err)
	}
	return p, nil
}

func (s *Store) GetPopularity(ctx context.Context, id string) (models.PopularityRecord, error) {
	var p models.PopularityRecord
	err := scanPopularity(s.db.QueryRowContext(ctx, `SELECT `+popularityColumns+` FROM game_popularity WHERE id = $1`, id), &p)
	if err == sql.ErrNoRows {
		return models.PopularityRecord{}, fmt.Errorf("popularity record %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.PopularityRecord{}, fmt.Errorf("failed to get popularity: %w", err)
	}
	return p, nil
}

func (s *Store) ListPopularity(ctx context.Context) ([]models.PopularityRecord, error) {
	return s.queryPopularity(ctx, `SELECT `+popularityColumns+` FROM game_popularity ORDER BY game_id`)
}

// TopPopularity returns up to limit records, highest cached score first.
func (s *Store) TopPopularity(ctx context.Context, limit int) ([]models.PopularityRecord, error) {
	return s.queryPopularity(ctx, `
		SELECT `+popularityColumns+` FROM game_popularity
		ORDER BY popularity_score DESC, game_id
		LIMIT $1
	`, limit)
}

func (s *Store) queryPopularity(ctx context.Context, query string, args ...any) ([]models.PopularityRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list popularity: %w", err)
	}
	defer rows.Close()

	records := []models.PopularityRecord{}
	for rows.Next() {
		var p models.PopularityRecord
		if err := scanPopularity(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan popularity: %w", err)
		}
		records = append(records, p)
	}

	return records, rows.Err()
}
