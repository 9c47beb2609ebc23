// Package domain holds the records the labyrinth service persists.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// LabyrinthGameType is the game_type under which labyrinth progress is stored.
const LabyrinthGameType = "mindful_labyrinth"

// Result is the stored summary of a completed labyrinth run.
type Result struct {
	ID               uuid.UUID `bson:"_id" json:"id"`
	UserID           uuid.UUID `bson:"userID" json:"user_id"`
	GameID           uuid.UUID `bson:"gameID" json:"game_id"`
	Width            int       `bson:"width" json:"width"`
	Height           int       `bson:"height" json:"height"`
	Seed             int64     `bson:"seed" json:"seed"`
	ElapsedMs        int64     `bson:"elapsedMs" json:"elapsed_ms"`
	QuotesFound      int       `bson:"quotesFound" json:"quotes_found"`
	TotalQuotes      int       `bson:"totalQuotes" json:"total_quotes"`
	DiscoveryRate    int       `bson:"discoveryRate" json:"discovery_rate"`
	PerfectDiscovery bool      `bson:"perfectDiscovery" json:"perfect_discovery"`
	CompletedAt      time.Time `bson:"completedAt" json:"completed_at"`
}

// Progress tracks how far a user has advanced in a minigame.
type Progress struct {
	UserID       uuid.UUID `bson:"userID" json:"user_id"`
	GameType     string    `bson:"gameType" json:"game_type"`
	CurrentLevel int       `bson:"currentLevel" json:"current_level"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updated_at"`
}
