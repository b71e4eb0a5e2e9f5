// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package popularity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
)

// GameLister lists the games a sweep should refresh.
type GameLister interface {
	ListGameIDs(ctx context.Context) ([]string, error)
}

// SweepResult summarizes one pass over all games.
type SweepResult struct {
	Refreshed int
	Failed    int
	Duration  time.Duration
}

// Sweep refreshes every game in turn. A failing game is logged and skipped;
// only a failure to list games, or cancellation, aborts the pass.
func (s *Scorer) Sweep(ctx context.Context, games GameLister) (SweepResult, error) {
	start := time.Now()
	var res SweepResult

	ids, err := games.ListGameIDs(ctx)
	if err != nil {
		return res, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			res.Duration = time.Since(start)
			return res, err
		}
		if _, err := s.Refresh(ctx, id); err != nil {
			res.Failed++
			slog.Error("popularity refresh failed", "game_id", id, "error", err)
			continue
		}
		res.Refreshed++
	}

	res.Duration = time.Since(start)
	slog.Info("popularity sweep finished",
		"refreshed", humanize.Comma(int64(res.Refreshed)),
		"failed", res.Failed,
		"duration", res.Duration.String(),
	)
	return res, nil
}

// RunPeriodic sweeps immediately and then every interval until ctx is done.
func (s *Scorer) RunPeriodic(ctx context.Context, games GameLister, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		if _, err := s.Sweep(ctx, games); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("popularity sweep failed", "error", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
