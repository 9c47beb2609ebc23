package i

import (
	"context"

	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/google/uuid"
)

// ResultRepo defines persistence operations for completed labyrinth runs.
type ResultRepo interface {
	// Save inserts a new result.
	Save(ctx context.Context, result *dmn.Result) error

	// ByUser returns the most recent results of a user, newest first.
	ByUser(ctx context.Context, userID uuid.UUID, limit int64) ([]*dmn.Result, error)
}

// ProgressRepo defines persistence operations for minigame progress.
type ProgressRepo interface {
	// Level returns the current level of the user for a game type.
	// A user without progress is on level 1.
	Level(ctx context.Context, userID uuid.UUID, gameType string) (int, error)

	// Advance increments the level of the user, creating the record if needed,
	// and returns the new level.
	Advance(ctx context.Context, userID uuid.UUID, gameType string) (int, error)
}
