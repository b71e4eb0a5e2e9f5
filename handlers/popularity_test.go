// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
	"github.com/danielhkuo/game-leaderboard/testutil"
)

func TestListAndGetPopularity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := store.New(db)
	handler := NewPopularityHandler(st, nil)
	gameID := testutil.CreateTestGame(t, db, "Chess", 0)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/game_popularity", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var records []models.PopularityResponse
	testutil.AssertJSON(t, w, &records)
	if len(records) != 1 || records[0].GameID != gameID {
		t.Fatalf("Expected one record for %s, got %+v", gameID, records)
	}
	if records[0].LastUpdatedHuman == "" {
		t.Error("Expected last_updated_human to be set")
	}

	recordID := records[0].ID

	t.Run("by record id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/game_popularity/"+recordID, nil)
		req.SetPathValue("id", recordID)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.PopularityResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.GameID != gameID {
			t.Errorf("Expected game_id %s, got %s", gameID, resp.GameID)
		}
	})

	t.Run("game id is not a record id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/game_popularity/"+gameID, nil)
		req.SetPathValue("id", gameID)
		w := httptest.NewRecorder()
		handler.Get(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestTopPopularity_Database(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	st := store.New(db)
	ctx := context.Background()
	scores := map[string]float64{}
	for name, score := range map[string]float64{"Low": 0.1, "High": 0.9, "Mid": 0.5} {
		id := testutil.CreateTestGame(t, db, name, 0)
		if _, err := st.SavePopularity(ctx, id, score, fixedNow); err != nil {
			t.Fatal(err)
		}
		scores[id] = score
	}

	handler := NewPopularityHandler(st, nil)

	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedScores []float64
	}{
		{"default limit", "", http.StatusOK, []float64{0.9, 0.5, 0.1}},
		{"limit 2", "?limit=2", http.StatusOK, []float64{0.9, 0.5}},
		{"limit zero", "?limit=0", http.StatusBadRequest, nil},
		{"limit too large", "?limit=101", http.StatusBadRequest, nil},
		{"limit not a number", "?limit=ten", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Top(w, httptest.NewRequest("GET", "/game_popularity/top"+tt.query, nil))

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var resp models.TopGamesResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Source != SourceDatabase {
				t.Errorf("Expected source %q, got %q", SourceDatabase, resp.Source)
			}
			if len(resp.Games) != len(tt.expectedScores) {
				t.Fatalf("Expected %d games, got %d", len(tt.expectedScores), len(resp.Games))
			}
			for i, g := range resp.Games {
				if g.Rank != i+1 {
					t.Errorf("game %d: expected rank %d, got %d", i, i+1, g.Rank)
				}
				if g.PopularityScore != tt.expectedScores[i] || scores[g.GameID] != g.PopularityScore {
					t.Errorf("game %d: unexpected %+v", i, g)
				}
			}
		})
	}
}

func TestTopPopularity_Ranking(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	ranks := &fakeRanking{games: []models.RankedGame{
		{Rank: 1, GameID: "a", PopularityScore: 0.7},
		{Rank: 2, GameID: "b", PopularityScore: 0.2},
	}}
	handler := NewPopularityHandler(store.New(db), ranks)

	w := httptest.NewRecorder()
	handler.Top(w, httptest.NewRequest("GET", "/game_popularity/top?limit=1", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TopGamesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Source != SourceRedis {
		t.Errorf("Expected source %q, got %q", SourceRedis, resp.Source)
	}
	if len(resp.Games) != 1 || resp.Games[0].GameID != "a" {
		t.Errorf("Unexpected games: %+v", resp.Games)
	}
}

func TestTopPopularity_RankingFailureFallsBack(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	testutil.CreateTestGame(t, db, "Chess", 0)
	handler := NewPopularityHandler(store.New(db), &fakeRanking{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	handler.Top(w, httptest.NewRequest("GET", "/game_popularity/top", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.TopGamesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Source != SourceDatabase || len(resp.Games) != 1 {
		t.Errorf("Expected database fallback with 1 game, got %+v", resp)
	}
}
