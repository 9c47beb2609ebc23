// Package gameapi exposes the labyrinth over HTTP.
package gameapi

import (
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/game"
	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/google/uuid"
)

// NewGameRequest represents a request to start a labyrinth.
// Omitted dimensions are derived from the player's level.
type NewGameRequest struct {
	Width  int    `json:"width" binding:"omitempty,min=0"`
	Height int    `json:"height" binding:"omitempty,min=0"`
	Seed   *int64 `json:"seed"`
}

// MoveRequest represents a single step of the player.
type MoveRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// EventResponse is an event produced by a move.
type EventResponse struct {
	Type      string      `json:"type"`
	Quote     *maze.Quote `json:"quote,omitempty"`
	ElapsedMs int64       `json:"elapsed_ms,omitempty"`
}

// GameResponse is the player's view of a labyrinth.
type GameResponse struct {
	ID               uuid.UUID     `json:"id"`
	Width            int           `json:"width"`
	Height           int           `json:"height"`
	Seed             int64         `json:"seed"`
	Player           maze.Position `json:"player"`
	Rows             []string      `json:"rows"`
	DiscoveredQuotes []maze.Quote  `json:"discovered_quotes"`
	TotalQuotes      int           `json:"total_quotes"`
	Status           string        `json:"status"`
	Completed        bool          `json:"completed"`
	StartedAt        time.Time     `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
}

// MoveResponse is the outcome of a move.
type MoveResponse struct {
	Moved     bool            `json:"moved"`
	Position  maze.Position   `json:"position"`
	Events    []EventResponse `json:"events"`
	Completed bool            `json:"completed"`
	Summary   *game.Summary   `json:"summary,omitempty"`
	Warning   string          `json:"warning,omitempty"` // Set when the completed run could not be saved.
}

// LeaderboardEntryResponse is one ranked player.
type LeaderboardEntryResponse struct {
	Rank      int64     `json:"rank"`
	PlayerID  uuid.UUID `json:"player_id"`
	ElapsedMs int64     `json:"elapsed_ms"`
}

// LeaderboardResponse lists the fastest players on a maze size.
type LeaderboardResponse struct {
	Width   int                        `json:"width"`
	Height  int                        `json:"height"`
	Entries []LeaderboardEntryResponse `json:"entries"`
}

// RankResponse is the caller's position on a leaderboard, 0 when unranked.
type RankResponse struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Rank   int64 `json:"rank"`
}

func newGameResponse(g *game.Game) *GameResponse {
	response := &GameResponse{
		ID:               g.ID(),
		Width:            g.Width(),
		Height:           g.Height(),
		Seed:             g.Seed(),
		Player:           g.Player(),
		Rows:             g.Rows(),
		DiscoveredQuotes: g.DiscoveredQuotes(),
		TotalQuotes:      len(g.Quotes()),
		Status:           g.Status().String(),
		Completed:        g.Completed(),
		StartedAt:        g.StartedAt(),
	}
	if response.Completed {
		completedAt := g.CompletedAt()
		response.CompletedAt = &completedAt
	}
	return response
}

func newEventResponses(events []game.Event) []EventResponse {
	responses := make([]EventResponse, 0, len(events))
	for _, e := range events {
		response := EventResponse{Type: e.Name()}
		switch ev := e.(type) {
		case game.QuoteDiscovered:
			quote := ev.Quote
			response.Quote = &quote
		case game.GameCompleted:
			response.ElapsedMs = ev.ElapsedMs
		}
		responses = append(responses, response)
	}
	return responses
}

func newLeaderboardResponse(width, height int, entries []i.LeaderboardEntry) *LeaderboardResponse {
	response := &LeaderboardResponse{
		Width:   width,
		Height:  height,
		Entries: make([]LeaderboardEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		response.Entries = append(response.Entries, LeaderboardEntryResponse{
			Rank:      e.Rank,
			PlayerID:  e.PlayerID,
			ElapsedMs: e.ElapsedMs,
		})
	}
	return response
}
