// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON. Update requests use pointer fields so an
absent field leaves the stored value alone:

  - CreateContestantRequest / UpdateContestantRequest: name
  - CreateGameRequest / UpdateGameRequest: name, status, upvotes
  - CreateSessionRequest: game_id, contestant_id, start_time, end_time, score
  - UpdateSessionRequest: start_time, end_time, score
  - CreateLeaderboardEntryRequest: game_id (optional), contestant_id, score, timestamp
  - UpdateLeaderboardEntryRequest: score, timestamp

# Response Types

  - ExitSessionResponse: message, end_time
  - PopularityResponse: a PopularityRecord plus last_updated_human
  - TopGamesResponse: source ("redis" or "database") and ranked games
  - ErrorResponse: error, message

# Domain Types

  - Contestant
  - Game: status is StatusActive or StatusEnded
  - GameSession: EndTime is nil while the session is open
  - LeaderboardEntry: GameID is nil for entries not tied to a game
  - PopularityRecord: one per game
  - RankedGame: a game's 1-indexed place in the popularity ranking

GameSession.SessionLength returns the length in seconds of a closed session
and 0 for an open one.
*/
package models
