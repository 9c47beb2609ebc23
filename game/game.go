// Package game runs a single labyrinth: it owns the player position and turns
// directional moves into visits, quote discoveries and completion.
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/google/uuid"
)

// Game-related errors.
var (
	ErrPoolTooSmall     = errors.New("quote pool is smaller than the requested quote count")
	ErrGameNotCompleted = errors.New("game is not completed")
)

// Status is the state of the navigation state machine.
type Status int

const (
	InProgress Status = iota // Player is still inside the maze.
	Completed                // Player reached the end; no further moves are accepted.
)

// String returns the status name.
func (s Status) String() string {
	if s == Completed {
		return "completed"
	}
	return "in_progress"
}

// Config describes a new game.
type Config struct {
	Width      int              // Number of columns of the maze.
	Height     int              // Number of rows of the maze.
	Pool       []maze.Quote     // Quotes to hide; cloned, never mutated.
	QuoteCount int              // How many pool entries to place, 0 means all.
	Seed       *int64           // Optional seed for reproducible mazes.
	Clock      func() time.Time // Time source, defaults to time.Now.
}

// Game is the state of one labyrinth run.
// Moves are serialized by the game's lock; readers get copies.
type Game struct {
	id          uuid.UUID
	grid        *maze.Grid
	player      maze.Position
	quotes      []*maze.Quote
	discovered  []*maze.Quote // Discovery order, references into quotes.
	status      Status
	seed        int64
	startedAt   time.Time
	completedAt time.Time
	clock       func() time.Time
	sync.RWMutex
}

// New generates a maze, hides the quotes and places the player on the start cell.
func New(cfg Config) (*Game, error) {
	count := cfg.QuoteCount
	if count == 0 {
		count = len(cfg.Pool)
	}
	if count < 0 || count > len(cfg.Pool) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrPoolTooSmall, count, len(cfg.Pool))
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	var opts []maze.GeneratorOption
	if cfg.Seed != nil {
		opts = append(opts, maze.WithSeed(*cfg.Seed))
	}
	generator := maze.NewGenerator(opts...)

	grid, err := generator.Generate(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	quotes := make([]*maze.Quote, count)
	for i := range quotes {
		quote := cfg.Pool[i]
		quote.Discovered = false
		quotes[i] = &quote
	}
	if err := maze.PlaceQuotes(grid, quotes, generator.Rand()); err != nil {
		return nil, err
	}

	start := grid.Start()
	grid.At(start).Visited = true

	return &Game{
		id:        uuid.New(),
		grid:      grid,
		player:    start,
		quotes:    quotes,
		status:    InProgress,
		seed:      generator.Seed(),
		startedAt: clock(),
		clock:     clock,
	}, nil
}

// Move shifts the player one cell in the given direction.
//
// Bumping into a wall or the border leaves the game untouched and returns no
// events. Once the game is completed every move is a no-op.
func (g *Game) Move(d Direction) ([]Event, error) {
	delta, ok := deltas[d]
	if !ok {
		return nil, ErrInvalidDirection
	}

	g.Lock()
	defer g.Unlock()

	if g.status == Completed {
		return nil, nil
	}

	target := g.grid.At(g.player.Add(delta))
	if target == nil || target.IsWall {
		return nil, nil
	}

	var events []Event
	target.Visited = true
	if target.HasQuote && !target.Quote.Discovered {
		target.Quote.Discovered = true
		g.discovered = append(g.discovered, target.Quote)
		events = append(events, QuoteDiscovered{Quote: *target.Quote})
	}

	g.player = target.Position

	if target.IsEnd {
		g.status = Completed
		g.completedAt = g.clock()
		events = append(events, GameCompleted{ElapsedMs: g.completedAt.Sub(g.startedAt).Milliseconds()})
	}

	return events, nil
}

// ID returns the game identifier.
func (g *Game) ID() uuid.UUID {
	return g.id
}

// Seed returns the seed the maze was generated from.
func (g *Game) Seed() int64 {
	return g.seed
}

// Width returns the maze width.
func (g *Game) Width() int {
	return g.grid.Width()
}

// Height returns the maze height.
func (g *Game) Height() int {
	return g.grid.Height()
}

// Player returns the current player position.
func (g *Game) Player() maze.Position {
	g.RLock()
	defer g.RUnlock()
	return g.player
}

// Status returns the state machine status.
func (g *Game) Status() Status {
	g.RLock()
	defer g.RUnlock()
	return g.status
}

// Completed reports whether the player has reached the end.
func (g *Game) Completed() bool {
	return g.Status() == Completed
}

// StartedAt returns when the game was created.
func (g *Game) StartedAt() time.Time {
	return g.startedAt
}

// CompletedAt returns when the end was reached, zero while in progress.
func (g *Game) CompletedAt() time.Time {
	g.RLock()
	defer g.RUnlock()
	return g.completedAt
}

// Quotes returns copies of every placed quote.
func (g *Game) Quotes() []maze.Quote {
	g.RLock()
	defer g.RUnlock()
	return copyQuotes(g.quotes)
}

// DiscoveredQuotes returns copies of the discovered quotes in discovery order.
func (g *Game) DiscoveredQuotes() []maze.Quote {
	g.RLock()
	defer g.RUnlock()
	return copyQuotes(g.discovered)
}

// Snapshot returns a copy of the grid for rendering.
func (g *Game) Snapshot() [][]maze.Cell {
	g.RLock()
	defer g.RUnlock()
	return g.grid.Snapshot()
}

// Rows returns the ASCII rendering of the grid with the player drawn as '@'.
func (g *Game) Rows() []string {
	g.RLock()
	defer g.RUnlock()

	rows := g.grid.Rows()
	row := []byte(rows[g.player.Y])
	row[g.player.X] = '@'
	rows[g.player.Y] = string(row)
	return rows
}

func copyQuotes(quotes []*maze.Quote) []maze.Quote {
	result := make([]maze.Quote, 0, len(quotes))
	for _, q := range quotes {
		result = append(result, *q)
	}
	return result
}
