package models

import "time"

// Game status constants
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// ValidStatus reports whether s is a known game status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusEnded
}

// Request types
//
// Update requests use pointer fields: nil means "leave unchanged".

type CreateContestantRequest struct {
	Name string `json:"name"`
}

type UpdateContestantRequest struct {
	Name *string `json:"name"`
}

type CreateGameRequest struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Upvotes int64  `json:"upvotes"`
}

type UpdateGameRequest struct {
	Name    *string `json:"name"`
	Status  *string `json:"status"`
	Upvotes *int64  `json:"upvotes"`
}

type CreateSessionRequest struct {
	GameID       string     `json:"game_id"`
	ContestantID string     `json:"contestant_id"`
	StartTime    *time.Time `json:"start_time"`
	EndTime      *time.Time `json:"end_time"`
	Score        int64      `json:"score"`
}

type UpdateSessionRequest struct {
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Score     *int64     `json:"score"`
}

type CreateLeaderboardEntryRequest struct {
	GameID       *string    `json:"game_id"`
	ContestantID string     `json:"contestant_id"`
	Score        *int64     `json:"score"`
	Timestamp    *time.Time `json:"timestamp"`
}

type UpdateLeaderboardEntryRequest struct {
	Score     *int64     `json:"score"`
	Timestamp *time.Time `json:"timestamp"`
}

// Response types

type ExitSessionResponse struct {
	Message string    `json:"message"`
	EndTime time.Time `json:"end_time"`
}

type PopularityResponse struct {
	PopularityRecord
	LastUpdatedHuman string `json:"last_updated_human"`
}

type RankedGame struct {
	Rank            int     `json:"rank"` // 1-indexed
	GameID          string  `json:"game_id"`
	PopularityScore float64 `json:"popularity_score"`
}

type TopGamesResponse struct {
	Source string       `json:"source"` // "redis" or "database"
	Games  []RankedGame `json:"games"`
}

// Domain types

type Contestant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Game struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Upvotes   int64     `json:"upvotes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type GameSession struct {
	ID           string     `json:"id"`
	GameID       string     `json:"game_id"`
	ContestantID string     `json:"contestant_id"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time"` // nil while in progress
	Score        int64      `json:"score"`
}

// Open reports whether the session is still in progress.
func (s GameSession) Open() bool {
	return s.EndTime == nil
}

// SessionLength is end - start in seconds, or 0 while the session is open.
func (s GameSession) SessionLength() float64 {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime).Seconds()
}

type LeaderboardEntry struct {
	ID           string    `json:"id"`
	GameID       *string   `json:"game_id"`
	ContestantID string    `json:"contestant_id"`
	Score        int64     `json:"score"`
	Timestamp    time.Time `json:"timestamp"`
}

type PopularityRecord struct {
	ID              string    `json:"id"`
	GameID          string    `json:"game_id"`
	PopularityScore float64   `json:"popularity_score"`
	LastUpdated     time.Time `json:"last_updated"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
