package i

import (
	"context"

	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/beka-birhanu/mindful-labyrinth/game"
	"github.com/google/uuid"
)

// NewGameRequest carries the optional parameters of a new labyrinth.
// Zero width and height let the manager size the maze from the player's level.
type NewGameRequest struct {
	Width  int
	Height int
	Seed   *int64
}

// MoveResult is the outcome of one move.
type MoveResult struct {
	Moved   bool
	Events  []game.Event
	Summary *game.Summary // Set when the move completed the game.
}

// LeaderboardEntry is one line of a leaderboard.
type LeaderboardEntry struct {
	Rank      int64
	PlayerID  uuid.UUID
	ElapsedMs int64
}

// LabyrinthManager keeps the live labyrinth of every player.
type LabyrinthManager interface {
	NewGame(ctx context.Context, playerID uuid.UUID, req NewGameRequest) (*game.Game, error)
	Move(ctx context.Context, playerID uuid.UUID, d game.Direction) (MoveResult, error)
	Current(playerID uuid.UUID) (*game.Game, error)
	End(playerID uuid.UUID) error
	Results(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Result, error)
}

// Leaderboard ranks players by their best completion time per maze size.
type Leaderboard interface {
	Submit(ctx context.Context, width, height int, playerID uuid.UUID, elapsedMs int64) (bool, error)
	Top(ctx context.Context, width, height int, n int64) ([]LeaderboardEntry, error)
	// Rank returns the one based rank of the player, 0 when unranked.
	Rank(ctx context.Context, width, height int, playerID uuid.UUID) (int64, error)
}
