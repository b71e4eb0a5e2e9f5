// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/game-leaderboard/models"
)

// ErrScoreRequired rejects leaderboard entries created without a score.
var ErrScoreRequired = errors.New("score is required")

const entryColumns = `id, game_id, contestant_id, score, recorded_at`

func scanEntry(row interface{ Scan(...any) error }, e *models.LeaderboardEntry) error {
	var gameID sql.NullString
	if err := row.Scan(&e.ID, &gameID, &e.ContestantID, &e.Score, &e.Timestamp); err != nil {
		return err
	}
	e.GameID = nil
	if gameID.Valid {
		id := gameID.String
		e.GameID = &id
	}
	return nil
}

// listEntries returns entries ordered by score, highest first. Ties keep the
// earliest entry first.
func (s *Store) listEntries(ctx context.Context, where string, args ...any) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM leaderboard_entry `+where+` ORDER BY score DESC, recorded_at, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Leaderboard returns every entry, highest score first.
func (s *Store) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	return s.listEntries(ctx, "")
}

// LeaderboardForGame returns the game's entries, highest score first.
// A missing game yields ErrNotFound.
func (s *Store) LeaderboardForGame(ctx context.Context, gameID string) ([]models.LeaderboardEntry, error) {
	ok, err := exists(ctx, s.db, "game", gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to check game: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	return s.listEntries(ctx, `WHERE game_id = $1`, gameID)
}

func (s *Store) GetLeaderboardEntry(ctx context.Context, id string) (models.LeaderboardEntry, error) {
	var e models.LeaderboardEntry
	err := scanEntry(s.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM leaderboard_entry WHERE id = $1`, id), &e)
	if err == sql.ErrNoRows {
		return models.LeaderboardEntry{}, fmt.Errorf("leaderboard entry %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}
	return e, nil
}

func (s *Store) CreateLeaderboardEntry(ctx context.Context, req models.CreateLeaderboardEntryRequest) (models.LeaderboardEntry, error) {
	if req.Score == nil {
		return models.LeaderboardEntry{}, ErrScoreRequired
	}

	e := models.LeaderboardEntry{
		ID:           newID(),
		GameID:       req.GameID,
		ContestantID: req.ContestantID,
		Score:        *req.Score,
		Timestamp:    s.timestamp(),
	}
	if req.Timestamp != nil {
		e.Timestamp = utc(*req.Timestamp)
	}

	if err := s.checkReferences(ctx, e.GameID, e.ContestantID); err != nil {
		return models.LeaderboardEntry{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO leaderboard_entry (id, game_id, contestant_id, score, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, e.ID, e.GameID, e.ContestantID, e.Score, e.Timestamp)
	if err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("failed to insert leaderboard entry: %w", err)
	}

	return e, nil
}

func (s *Store) UpdateLeaderboardEntry(ctx context.Context, id string, req models.UpdateLeaderboardEntryRequest) (models.LeaderboardEntry, error) {
	var ts any
	if req.Timestamp != nil {
		ts = utc(*req.Timestamp)
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE leaderboard_entry
		SET score = COALESCE($1, score),
		    recorded_at = COALESCE($2, recorded_at)
		WHERE id = $3
	`, req.Score, ts, id)
	if err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("failed to update leaderboard entry: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return models.LeaderboardEntry{}, fmt.Errorf("leaderboard entry %s: %w", id, err)
	}
	return s.GetLeaderboardEntry(ctx, id)
}

func (s *Store) DeleteLeaderboardEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM leaderboard_entry WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leaderboard entry: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("leaderboard entry %s: %w", id, err)
	}
	return nil
}
