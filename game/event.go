package game

import "github.com/beka-birhanu/mindful-labyrinth/game/maze"

// Event is emitted by an accepted move.
type Event interface {
	// Name identifies the event kind on the wire.
	Name() string
}

// QuoteDiscovered is emitted the first time the player steps on a quote cell.
type QuoteDiscovered struct {
	Quote maze.Quote
}

// GameCompleted is emitted once, when the player reaches the end cell.
type GameCompleted struct {
	ElapsedMs int64
}

// Name implements Event.
func (QuoteDiscovered) Name() string { return "quote_discovered" }

// Name implements Event.
func (GameCompleted) Name() string { return "game_completed" }
