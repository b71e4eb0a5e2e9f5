// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package popularity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/game-leaderboard/models"
)

// Signal weights. They sum to 1.0.
const (
	WeightDailyPlayers      = 0.30
	WeightConcurrentPlayers = 0.20
	WeightUpvotes           = 0.25
	WeightSessionLength     = 0.15
	WeightDailySessions     = 0.10
)

// Signals are the raw inputs of a popularity score.
type Signals struct {
	DailyPlayers      int64   // w1: sessions started yesterday
	ConcurrentPlayers int64   // w2: sessions currently open
	Upvotes           int64   // w3: cumulative upvotes
	MaxSessionLength  float64 // w4: longest session started yesterday, seconds
	DailySessions     int64   // w5: sessions started yesterday (same count as w1)
}

// Score combines the signals into a value in [0,1]. Each signal is divided by
// max(signal, 1), so a term is 1 when the signal is nonzero and 0 otherwise.
func (s Signals) Score() float64 {
	return WeightDailyPlayers*term(float64(s.DailyPlayers)) +
		WeightConcurrentPlayers*term(float64(s.ConcurrentPlayers)) +
		WeightUpvotes*term(float64(s.Upvotes)) +
		WeightSessionLength*term(s.MaxSessionLength) +
		WeightDailySessions*term(float64(s.DailySessions))
}

func term(v float64) float64 {
	return v / max(v, 1)
}

// Source is the data the scorer reads and writes.
type Source interface {
	EnsurePopularity(ctx context.Context, gameID string) (models.PopularityRecord, error)
	SessionsStartedBetween(ctx context.Context, gameID string, from, to time.Time) ([]models.GameSession, error)
	CountOpenSessions(ctx context.Context, gameID string) (int64, error)
	GameUpvotes(ctx context.Context, gameID string) (int64, error)
	SavePopularity(ctx context.Context, gameID string, score float64, at time.Time) (models.PopularityRecord, error)
}

// Ranker receives every freshly saved score.
type Ranker interface {
	Publish(ctx context.Context, gameID string, score float64) error
}

type Scorer struct {
	src    Source
	ranker Ranker
	now    func() time.Time
	loc    *time.Location
}

type Option func(*Scorer)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// WithLocation sets the zone whose calendar defines "yesterday".
func WithLocation(loc *time.Location) Option {
	return func(s *Scorer) { s.loc = loc }
}

// WithRanker mirrors saved scores to r.
func WithRanker(r Ranker) Option {
	return func(s *Scorer) { s.ranker = r }
}

func NewScorer(src Source, opts ...Option) *Scorer {
	s := &Scorer{src: src, now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// YesterdayRange returns [start of yesterday, start of today) in loc.
func YesterdayRange(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return today.AddDate(0, 0, -1), today
}

// Collect reads the signals for a game as of the scorer's clock.
func (s *Scorer) Collect(ctx context.Context, gameID string) (Signals, error) {
	from, to := YesterdayRange(s.now(), s.loc)

	yesterday, err := s.src.SessionsStartedBetween(ctx, gameID, from, to)
	if err != nil {
		return Signals{}, fmt.Errorf("failed to get yesterday's sessions: %w", err)
	}

	open, err := s.src.CountOpenSessions(ctx, gameID)
	if err != nil {
		return Signals{}, fmt.Errorf("failed to count open sessions: %w", err)
	}

	upvotes, err := s.src.GameUpvotes(ctx, gameID)
	if err != nil {
		return Signals{}, fmt.Errorf("failed to get upvotes: %w", err)
	}

	var longest float64
	for _, gs := range yesterday {
		longest = max(longest, gs.SessionLength())
	}

	return Signals{
		DailyPlayers:      int64(len(yesterday)),
		ConcurrentPlayers: open,
		Upvotes:           upvotes,
		MaxSessionLength:  longest,
		DailySessions:     int64(len(yesterday)),
	}, nil
}

// Refresh recomputes a game's popularity and stores it. The record is
// created first if the game has none. Publishing to the ranker is
// best-effort.
func (s *Scorer) Refresh(ctx context.Context, gameID string) (models.PopularityRecord, error) {
	if _, err := s.src.EnsurePopularity(ctx, gameID); err != nil {
		return models.PopularityRecord{}, err
	}

	signals, err := s.Collect(ctx, gameID)
	if err != nil {
		return models.PopularityRecord{}, err
	}

	score := signals.Score()
	rec, err := s.src.SavePopularity(ctx, gameID, score, s.now())
	if err != nil {
		return models.PopularityRecord{}, err
	}

	if s.ranker != nil {
		if err := s.ranker.Publish(ctx, gameID, rec.PopularityScore); err != nil {
			slog.Warn("failed to publish popularity", "game_id", gameID, "error", err)
		}
	}

	slog.Info("popularity refreshed", "game_id", gameID, "score", score,
		"daily_players", signals.DailyPlayers, "concurrent_players", signals.ConcurrentPlayers,
		"upvotes", signals.Upvotes, "max_session_length", signals.MaxSessionLength)

	return rec, nil
}
