// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/game-leaderboard/cliparse"
	"github.com/danielhkuo/game-leaderboard/db"
)

// TestDBURL is an in-memory SQLite database; each SetupTestDB call gets a
// fresh one.
const TestDBURL = "file::memory:"

// SetupTestDB creates a fresh test database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(GetTestConfig())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  TestDBURL,
		DatabaseType: cliparse.DatabaseSQLite,
		Timezone:     "UTC",
	}
}

// Yesterday returns noon of the previous calendar day in loc, relative to now.
func Yesterday(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()-1, 12, 0, 0, 0, loc)
}

// CreateTestContestant inserts a contestant and returns its ID
func CreateTestContestant(t *testing.T, db *sql.DB, name string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO contestant (id, name, created_at) VALUES ($1, $2, $3)
	`, id, name, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test contestant: %v", err)
	}

	return id
}

// CreateTestGame inserts a game and its popularity record and returns the game ID
func CreateTestGame(t *testing.T, db *sql.DB, name string, upvotes int64) string {
	t.Helper()

	id := CreateTestGameWithoutPopularity(t, db, name, upvotes)
	_, err := db.Exec(`
		INSERT INTO game_popularity (id, game_id, popularity_score, last_updated)
		VALUES ($1, $2, 0, $3)
	`, uuid.NewString(), id, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test popularity record: %v", err)
	}

	return id
}

// CreateTestGameWithoutPopularity inserts a bare game row, as left behind by
// data written before popularity records existed.
func CreateTestGameWithoutPopularity(t *testing.T, db *sql.DB, name string, upvotes int64) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now().UTC()
	_, err := db.Exec(`
		INSERT INTO game (id, name, status, upvotes, created_at, updated_at)
		VALUES ($1, $2, 'active', $3, $4, $4)
	`, id, name, upvotes, now)
	if err != nil {
		t.Fatalf("Failed to create test game: %v", err)
	}

	return id
}

// CreateTestSession inserts a session; a nil end leaves it open
func CreateTestSession(t *testing.T, db *sql.DB, gameID, contestantID string, start time.Time, end *time.Time) string {
	t.Helper()

	var endUTC *time.Time
	if end != nil {
		e := end.UTC()
		endUTC = &e
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO game_session (id, game_id, contestant_id, start_time, end_time, score)
		VALUES ($1, $2, $3, $4, $5, 0)
	`, id, gameID, contestantID, start.UTC(), endUTC)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return id
}

// CreateTestLeaderboardEntry inserts a leaderboard entry; gameID may be empty
func CreateTestLeaderboardEntry(t *testing.T, db *sql.DB, gameID, contestantID string, score int64) string {
	t.Helper()

	var game *string
	if gameID != "" {
		game = &gameID
	}

	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO leaderboard_entry (id, game_id, contestant_id, score, recorded_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, game, contestantID, score, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test leaderboard entry: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
