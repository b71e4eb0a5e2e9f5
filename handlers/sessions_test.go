// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/game-leaderboard/models"
	"github.com/danielhkuo/game-leaderboard/store"
	"github.com/danielhkuo/game-leaderboard/testutil"
)

func TestCreateSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewSessionHandler(store.New(db))
	gameID := testutil.CreateTestGame(t, db, "Chess", 0)
	alice := testutil.CreateTestContestant(t, db, "Alice")

	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	before := start.Add(-time.Minute)

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "open session starting now",
			body:           models.CreateSessionRequest{GameID: gameID, ContestantID: alice},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "closed session",
			body:           models.CreateSessionRequest{GameID: gameID, ContestantID: alice, StartTime: &start, EndTime: &start, Score: 12},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "end before start",
			body:           models.CreateSessionRequest{GameID: gameID, ContestantID: alice, StartTime: &start, EndTime: &before},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown game",
			body:           models.CreateSessionRequest{GameID: "nope", ContestantID: alice},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown contestant",
			body:           models.CreateSessionRequest{GameID: gameID, ContestantID: "nope"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing game_id",
			body:           models.CreateSessionRequest{ContestantID: alice},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing contestant_id",
			body:           models.CreateSessionRequest{GameID: gameID},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/game_sessions", tt.body, nil)
			w := httptest.NewRecorder()

			handler.Create(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest("GET", "/game_sessions", nil))
	var sessions []models.GameSession
	testutil.AssertJSON(t, w, &sessions)
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}
}

func TestExitSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewSessionHandler(store.New(db))
	gameID := testutil.CreateTestGame(t, db, "Chess", 0)
	alice := testutil.CreateTestContestant(t, db, "Alice")

	start := time.Now().Add(-90 * time.Second).Truncate(time.Second)
	sessionID := testutil.CreateTestSession(t, db, gameID, alice, start, nil)

	exit := func(id string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/game_sessions/"+id+"/exit", nil)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		handler.Exit(w, req)
		return w
	}

	t.Run("open session", func(t *testing.T) {
		w := exit(sessionID)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ExitSessionResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Contestant has exited the game." {
			t.Errorf("Unexpected message %q", resp.Message)
		}
		if resp.EndTime.Before(start) {
			t.Errorf("end_time %v before start %v", resp.EndTime, start)
		}

		// The stored session now has a length
		req := httptest.NewRequest("GET", "/game_sessions/"+sessionID, nil)
		req.SetPathValue("id", sessionID)
		rec := httptest.NewRecorder()
		handler.Get(rec, req)

		var gs models.GameSession
		testutil.AssertJSON(t, rec, &gs)
		if gs.Open() {
			t.Fatal("Expected session to be closed")
		}
		if gs.SessionLength() < 90 {
			t.Errorf("Expected session length >= 90s, got %v", gs.SessionLength())
		}
	})

	t.Run("already exited", func(t *testing.T) {
		w := exit(sessionID)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing session", func(t *testing.T) {
		w := exit("nope")
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestUpdateSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewSessionHandler(store.New(db))
	gameID := testutil.CreateTestGame(t, db, "Chess", 0)
	alice := testutil.CreateTestContestant(t, db, "Alice")

	start := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	sessionID := testutil.CreateTestSession(t, db, gameID, alice, start, nil)

	t.Run("score only", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/game_sessions/"+sessionID, map[string]int{"score": 40}, nil)
		req.SetPathValue("id", sessionID)
		w := httptest.NewRecorder()
		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)
		var gs models.GameSession
		testutil.AssertJSON(t, w, &gs)
		if gs.Score != 40 || !gs.Open() || !gs.StartTime.Equal(start) {
			t.Errorf("Unexpected session: %+v", gs)
		}
	})

	t.Run("end before start", func(t *testing.T) {
		body := map[string]time.Time{"end_time": start.Add(-time.Second)}
		req := testutil.MakeRequest("PUT", "/game_sessions/"+sessionID, body, nil)
		req.SetPathValue("id", sessionID)
		w := httptest.NewRecorder()
		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing session", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/game_sessions/nope", map[string]int{"score": 1}, nil)
		req.SetPathValue("id", "nope")
		w := httptest.NewRecorder()
		handler.Update(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/game_sessions/"+sessionID, nil)
		req.SetPathValue("id", sessionID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		testutil.AssertStatus(t, w, http.StatusNoContent)
	})
}
