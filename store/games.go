// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/game-leaderboard/models"
)

const gameColumns = `id, name, status, upvotes, created_at, updated_at`

func scanGame(row interface{ Scan(...any) error }, g *models.Game) error {
	return row.Scan(&g.ID, &g.Name, &g.Status, &g.Upvotes, &g.CreatedAt, &g.UpdatedAt)
}

func (s *Store) ListGames(ctx context.Context) ([]models.Game, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM game ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	games := []models.Game{}
	for rows.Next() {
		var g models.Game
		if err := scanGame(rows, &g); err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// ListGameIDs returns every game id, for the popularity sweep.
func (s *Store) ListGameIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM game ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list game ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game id: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (s *Store) GetGame(ctx context.Context, id string) (models.Game, error) {
	var g models.Game
	err := scanGame(s.db.QueryRowContext(ctx, `SELECT `+gameColumns+` FROM game WHERE id = $1`, id), &g)
	if err == sql.ErrNoRows {
		return models.Game{}, fmt.Errorf("game %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to get game: %w", err)
	}
	return g, nil
}

// CreateGame inserts a game together with its popularity record. Both rows
// are written in one transaction, so a game never exists without one.
func (s *Store) CreateGame(ctx context.Context, req models.CreateGameRequest) (models.Game, error) {
	now := s.timestamp()
	g := models.Game{
		ID:        newID(),
		Name:      req.Name,
		Status:    req.Status,
		Upvotes:   req.Upvotes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if g.Status == "" {
		g.Status = models.StatusActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO game (id, name, status, upvotes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, g.ID, g.Name, g.Status, g.Upvotes, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to insert game: %w", err)
	}

	if err := ensurePopularity(ctx, tx, g.ID, now); err != nil {
		return models.Game{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Game{}, fmt.Errorf("failed to commit game: %w", err)
	}

	return g, nil
}

// UpdateGame applies the non-nil fields of req and bumps updated_at.
func (s *Store) UpdateGame(ctx context.Context, id string, req models.UpdateGameRequest) (models.Game, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE game
		SET name = COALESCE($1, name),
		    status = COALESCE($2, status),
		    upvotes = COALESCE($3, upvotes),
		    updated_at = $4
		WHERE id = $5
	`, req.Name, req.Status, req.Upvotes, s.timestamp(), id)
	if err != nil {
		return models.Game{}, fmt.Errorf("failed to update game: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return models.Game{}, fmt.Errorf("game %s: %w", id, err)
	}
	return s.GetGame(ctx, id)
}

func (s *Store) DeleteGame(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM game WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("game %s: %w", id, err)
	}
	return nil
}

// GameUpvotes returns the cumulative upvote count of a game.
func (s *Store) GameUpvotes(ctx context.Context, gameID string) (int64, error) {
	var upvotes int64
	err := s.db.QueryRowContext(ctx, `SELECT upvotes FROM game WHERE id = $1`, gameID).Scan(&upvotes)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get upvotes: %w", err)
	}
	return upvotes, nil
}
