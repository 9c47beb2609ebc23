package game

import (
	"testing"
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances by step on every call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	now := start
	return func() time.Time {
		t := now
		now = now.Add(step)
		return t
	}
}

func newTestGame(t *testing.T, width, height int, seed int64) *Game {
	t.Helper()
	g, err := New(Config{
		Width:  width,
		Height: height,
		Pool:   maze.DefaultPool(),
		Seed:   &seed,
		Clock:  fakeClock(time.Unix(1700000000, 0), 1500*time.Millisecond),
	})
	require.NoError(t, err)
	return g
}

// solve returns the directions leading from the player to the end cell.
func solve(t *testing.T, g *Game) []Direction {
	t.Helper()
	type step struct {
		from maze.Position
		dir  Direction
	}

	start, end := g.grid.Start(), g.grid.End()
	prev := map[maze.Position]step{}
	seen := map[maze.Position]bool{start: true}
	queue := []maze.Position{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range []Direction{Up, Right, Down, Left} {
			n := p.Add(deltas[d])
			cell := g.grid.At(n)
			if cell == nil || cell.IsWall || seen[n] {
				continue
			}
			seen[n] = true
			prev[n] = step{from: p, dir: d}
			queue = append(queue, n)
		}
	}

	require.True(t, seen[end], "end must be reachable")
	var path []Direction
	for p := end; p != start; p = prev[p].from {
		path = append([]Direction{prev[p].dir}, path...)
	}
	return path
}

func TestNew(t *testing.T) {
	t.Run("player starts on the start cell", func(t *testing.T) {
		g := newTestGame(t, 15, 15, 1)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, g.Player())
		assert.Equal(t, InProgress, g.Status())
		assert.False(t, g.Completed())
		assert.Len(t, g.Quotes(), 8)
		assert.Empty(t, g.DiscoveredQuotes())
		assert.True(t, g.Snapshot()[1][1].Visited)
		assert.Equal(t, int64(1), g.Seed())
		assert.True(t, g.CompletedAt().IsZero())
	})

	t.Run("does not mutate the pool", func(t *testing.T) {
		pool := maze.DefaultPool()
		seed := int64(2)
		_, err := New(Config{Width: 15, Height: 15, Pool: pool, Seed: &seed})
		require.NoError(t, err)
		assert.Empty(t, cmp.Diff(maze.DefaultPool(), pool))
	})

	t.Run("quote count limits placement", func(t *testing.T) {
		seed := int64(3)
		g, err := New(Config{Width: 9, Height: 9, Pool: maze.DefaultPool(), QuoteCount: 3, Seed: &seed})
		require.NoError(t, err)
		assert.Len(t, g.Quotes(), 3)
	})

	t.Run("construction errors", func(t *testing.T) {
		_, err := New(Config{Width: 2, Height: 15, Pool: maze.DefaultPool()})
		assert.ErrorIs(t, err, maze.ErrInvalidDimension)

		_, err = New(Config{Width: 3, Height: 3})
		assert.ErrorIs(t, err, maze.ErrMazeGenerationFailed)

		_, err = New(Config{Width: 5, Height: 5, Pool: maze.DefaultPool()})
		assert.ErrorIs(t, err, maze.ErrInsufficientPathCells)

		_, err = New(Config{Width: 15, Height: 15, Pool: maze.DefaultPool(), QuoteCount: 9})
		assert.ErrorIs(t, err, ErrPoolTooSmall)
	})
}

func TestMoveIntoWallIsNoop(t *testing.T) {
	g := newTestGame(t, 15, 15, 4)
	before := g.Snapshot()

	for i := 0; i < 5; i++ {
		// (1,0) and (0,1) are border walls.
		events, err := g.Move(Up)
		require.NoError(t, err)
		assert.Empty(t, events)

		events, err = g.Move(Left)
		require.NoError(t, err)
		assert.Empty(t, events)
	}

	assert.Equal(t, maze.Position{X: 1, Y: 1}, g.Player())
	assert.Empty(t, cmp.Diff(before, g.Snapshot()))
}

func TestMoveInvalidDirection(t *testing.T) {
	g := newTestGame(t, 15, 15, 4)
	_, err := g.Move(Direction(0))
	assert.ErrorIs(t, err, ErrInvalidDirection)
	_, err = g.Move(Direction(99))
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestMoveMarksVisited(t *testing.T) {
	g := newTestGame(t, 15, 15, 5)
	path := solve(t, g)
	require.NotEmpty(t, path)

	_, err := g.Move(path[0])
	require.NoError(t, err)

	p := g.Player()
	assert.NotEqual(t, maze.Position{X: 1, Y: 1}, p)
	assert.True(t, g.Snapshot()[p.Y][p.X].Visited)
}

func TestDiscoveryIsIdempotent(t *testing.T) {
	seed := int64(6)
	g, err := New(Config{Width: 15, Height: 15, Pool: maze.DefaultPool(), Seed: &seed})
	require.NoError(t, err)

	// Move a quote next to the start so a single step reaches it.
	var neighbor maze.Position
	for _, d := range []Direction{Right, Down} {
		if cell := g.grid.At(g.player.Add(deltas[d])); cell != nil && cell.IsPath {
			neighbor = cell.Position
			break
		}
	}
	original := g.quotes[0]
	g.grid.At(original.Position).HasQuote = false
	g.grid.At(original.Position).Quote = nil
	target := g.grid.At(neighbor)
	target.HasQuote = true
	target.Quote = original
	original.Position = neighbor

	var dirTo, dirBack Direction
	if neighbor.X == 2 {
		dirTo, dirBack = Right, Left
	} else {
		dirTo, dirBack = Down, Up
	}

	events, err := g.Move(dirTo)
	require.NoError(t, err)
	require.Len(t, events, 1)
	discovered, ok := events[0].(QuoteDiscovered)
	require.True(t, ok)
	assert.Equal(t, original.ID, discovered.Quote.ID)
	assert.True(t, discovered.Quote.Discovered)

	_, err = g.Move(dirBack)
	require.NoError(t, err)
	events, err = g.Move(dirTo)
	require.NoError(t, err)
	assert.Empty(t, events)

	found := g.DiscoveredQuotes()
	require.Len(t, found, 1)
	assert.Equal(t, original.ID, found[0].ID)
}

func TestPlaythroughScenario(t *testing.T) {
	g := newTestGame(t, 15, 15, 2024)
	assert.Equal(t, maze.Position{X: 1, Y: 1}, g.grid.Start())

	quoteCells := map[maze.Position]bool{}
	for _, q := range g.Quotes() {
		quoteCells[q.Position] = true
	}
	require.Len(t, quoteCells, 8)

	path := solve(t, g)
	onPath := 0
	p := g.Player()
	for _, d := range path {
		p = p.Add(deltas[d])
		if quoteCells[p] {
			onPath++
		}
	}

	var completions, discoveries int
	for _, d := range path {
		events, err := g.Move(d)
		require.NoError(t, err)
		for _, e := range events {
			switch e.(type) {
			case GameCompleted:
				completions++
			case QuoteDiscovered:
				discoveries++
			}
		}
	}

	assert.Equal(t, 1, completions)
	assert.Equal(t, onPath, discoveries)
	assert.Len(t, g.DiscoveredQuotes(), onPath)
	assert.True(t, g.Completed())
	assert.Equal(t, g.grid.End(), g.Player())
	assert.Equal(t, g.StartedAt().Add(1500*time.Millisecond), g.CompletedAt())
}

func TestCompletionIsTerminal(t *testing.T) {
	g := newTestGame(t, 9, 9, 8)
	path := solve(t, g)

	var last []Event
	for _, d := range path {
		var err error
		last, err = g.Move(d)
		require.NoError(t, err)
	}
	require.NotEmpty(t, last)
	completed, ok := last[len(last)-1].(GameCompleted)
	require.True(t, ok)
	assert.Equal(t, int64(1500), completed.ElapsedMs)

	end := g.Player()
	before := g.Snapshot()
	for _, d := range []Direction{Up, Down, Left, Right, Up, Left} {
		events, err := g.Move(d)
		require.NoError(t, err)
		assert.Empty(t, events)
	}
	assert.Equal(t, end, g.Player())
	assert.Empty(t, cmp.Diff(before, g.Snapshot()))
}

func TestRowsDrawsPlayer(t *testing.T) {
	g := newTestGame(t, 7, 7, 9)
	rows := g.Rows()
	require.Len(t, rows, 7)
	assert.Equal(t, byte('@'), rows[1][1])
	assert.Equal(t, "#######", rows[0])
}
