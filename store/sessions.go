// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/game-leaderboard/models"
)

// ErrEndBeforeStart rejects sessions whose end_time precedes start_time.
var ErrEndBeforeStart = errors.New("end_time must not be before start_time")

const sessionColumns = `id, game_id, contestant_id, start_time, end_time, score`

func scanSession(row interface{ Scan(...any) error }, gs *models.GameSession) error {
	var end sql.NullTime
	if err := row.Scan(&gs.ID, &gs.GameID, &gs.ContestantID, &gs.StartTime, &end, &gs.Score); err != nil {
		return err
	}
	gs.EndTime = nil
	if end.Valid {
		t := end.Time
		gs.EndTime = &t
	}
	return nil
}

func (s *Store) listSessions(ctx context.Context, where string, args ...any) ([]models.GameSession, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sessionColumns+` FROM game_session `+where+` ORDER BY start_time, id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []models.GameSession{}
	for rows.Next() {
		var gs models.GameSession
		if err := scanSession(rows, &gs); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, gs)
	}

	return sessions, rows.Err()
}

func (s *Store) ListSessions(ctx context.Context) ([]models.GameSession, error) {
	return s.listSessions(ctx, "")
}

// SessionsStartedBetween returns the game's sessions with from <= start_time < to.
func (s *Store) SessionsStartedBetween(ctx context.Context, gameID string, from, to time.Time) ([]models.GameSession, error) {
	return s.listSessions(ctx, `WHERE game_id = $1 AND start_time >= $2 AND start_time < $3`,
		gameID, utc(from), utc(to))
}

// CountOpenSessions counts the game's sessions that have no end_time.
func (s *Store) CountOpenSessions(ctx context.Context, gameID string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM game_session WHERE game_id = $1 AND end_time IS NULL
	`, gameID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count open sessions: %w", err)
	}
	return n, nil
}

func (s *Store) GetSession(ctx context.Context, id string) (models.GameSession, error) {
	var gs models.GameSession
	err := scanSession(s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM game_session WHERE id = $1`, id), &gs)
	if err == sql.ErrNoRows {
		return models.GameSession{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.GameSession{}, fmt.Errorf("failed to get session: %w", err)
	}
	return gs, nil
}

func (s *Store) CreateSession(ctx context.Context, req models.CreateSessionRequest) (models.GameSession, error) {
	gs := models.GameSession{
		ID:           newID(),
		GameID:       req.GameID,
		ContestantID: req.ContestantID,
		StartTime:    s.timestamp(),
		Score:        req.Score,
	}
	if req.StartTime != nil {
		gs.StartTime = utc(*req.StartTime)
	}
	if req.EndTime != nil {
		end := utc(*req.EndTime)
		gs.EndTime = &end
	}
	if gs.EndTime != nil && gs.EndTime.Before(gs.StartTime) {
		return models.GameSession{}, ErrEndBeforeStart
	}

	if err := s.checkReferences(ctx, &gs.GameID, gs.ContestantID); err != nil {
		return models.GameSession{}, err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO game_session (id, game_id, contestant_id, start_time, end_time, score)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, gs.ID, gs.GameID, gs.ContestantID, gs.StartTime, gs.EndTime, gs.Score)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return gs, nil
}

// UpdateSession merges the non-nil fields of req into the stored session.
// An end_time cannot be cleared once set.
func (s *Store) UpdateSession(ctx context.Context, id string, req models.UpdateSessionRequest) (models.GameSession, error) {
	gs, err := s.GetSession(ctx, id)
	if err != nil {
		return models.GameSession{}, err
	}

	if req.StartTime != nil {
		gs.StartTime = utc(*req.StartTime)
	}
	if req.EndTime != nil {
		end := utc(*req.EndTime)
		gs.EndTime = &end
	}
	if req.Score != nil {
		gs.Score = *req.Score
	}
	if gs.EndTime != nil && gs.EndTime.Before(gs.StartTime) {
		return models.GameSession{}, ErrEndBeforeStart
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE game_session SET start_time = $1, end_time = $2, score = $3 WHERE id = $4
	`, gs.StartTime, gs.EndTime, gs.Score, id)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("failed to update session: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return models.GameSession{}, fmt.Errorf("session %s: %w", id, err)
	}

	return gs, nil
}

func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM game_session WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("session %s: %w", id, err)
	}
	return nil
}

// ExitSession closes an open session at the current time. A missing or
// already closed session yields ErrNotFound.
func (s *Store) ExitSession(ctx context.Context, id string) (models.GameSession, error) {
	end := s.timestamp()
	res, err := s.db.ExecContext(ctx, `
		UPDATE game_session SET end_time = $1 WHERE id = $2 AND end_time IS NULL
	`, end, id)
	if err != nil {
		return models.GameSession{}, fmt.Errorf("failed to exit session: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return models.GameSession{}, fmt.Errorf("open session %s: %w", id, err)
	}
	return s.GetSession(ctx, id)
}

// checkReferences verifies that the contestant and (if set) the game exist.
func (s *Store) checkReferences(ctx context.Context, gameID *string, contestantID string) error {
	if gameID != nil {
		ok, err := exists(ctx, s.db, "game", *gameID)
		if err != nil {
			return fmt.Errorf("failed to check game: %w", err)
		}
		if !ok {
			return fmt.Errorf("game %s: %w", *gameID, ErrInvalidReference)
		}
	}

	ok, err := exists(ctx, s.db, "contestant", contestantID)
	if err != nil {
		return fmt.Errorf("failed to check contestant: %w", err)
	}
	if !ok {
		return fmt.Errorf("contestant %s: %w", contestantID, ErrInvalidReference)
	}
	return nil
}
