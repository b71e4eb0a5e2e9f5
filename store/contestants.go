// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/game-leaderboard/models"
)

func (s *Store) ListContestants(ctx context.Context) ([]models.Contestant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at FROM contestant ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list contestants: %w", err)
	}
	defer rows.Close()

	contestants := []models.Contestant{}
	for rows.Next() {
		var c models.Contestant
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contestant: %w", err)
		}
		contestants = append(contestants, c)
	}

	return contestants, rows.Err()
}

func (s *Store) GetContestant(ctx context.Context, id string) (models.Contestant, error) {
	var c models.Contestant
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM contestant WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Contestant{}, fmt.Errorf("contestant %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Contestant{}, fmt.Errorf("failed to get contestant: %w", err)
	}
	return c, nil
}

func (s *Store) CreateContestant(ctx context.Context, name string) (models.Contestant, error) {
	c := models.Contestant{ID: newID(), Name: name, CreatedAt: s.timestamp()}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO contestant (id, name, created_at) VALUES ($1, $2, $3)
	`, c.ID, c.Name, c.CreatedAt)
	if err != nil {
		return models.Contestant{}, fmt.Errorf("failed to insert contestant: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateContestant(ctx context.Context, id string, req models.UpdateContestantRequest) (models.Contestant, error) {
	if req.Name != nil {
		res, err := s.db.ExecContext(ctx, `UPDATE contestant SET name = $1 WHERE id = $2`, *req.Name, id)
		if err != nil {
			return models.Contestant{}, fmt.Errorf("failed to update contestant: %w", err)
		}
		if err := affectedOne(res); err != nil {
			return models.Contestant{}, fmt.Errorf("contestant %s: %w", id, err)
		}
	}
	return s.GetContestant(ctx, id)
}

func (s *Store) DeleteContestant(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM contestant WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contestant: %w", err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("contestant %s: %w", id, err)
	}
	return nil
}
