package maze

import (
	"errors"
	"math/rand"
	"time"
)

const (
	// endSearchSpan is how many rows and columns, counted back from the
	// corner opposite the start, are scanned for the end cell.
	endSearchSpan = 4
)

var (
	ErrMazeGenerationFailed = errors.New("maze generation failed: no cell available for the end")

	// startPosition is the fixed interior cell the carving starts from.
	startPosition = Position{X: 1, Y: 1}

	// carveSteps are the two-cell jumps used while carving: up, right, down, left.
	carveSteps = []Position{{X: 0, Y: -2}, {X: 2, Y: 0}, {X: 0, Y: 2}, {X: -2, Y: 0}}
)

// Generator carves perfect mazes with randomized recursive backtracking.
// A Generator is not safe for concurrent use.
type Generator struct {
	seed int64
	rng  *rand.Rand
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) GeneratorOption {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a generator seeded from the clock unless WithSeed is given.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{seed: time.Now().UnixNano()}
	for _, opt := range opts {
		opt(g)
	}
	g.rng = rand.New(rand.NewSource(g.seed))
	return g
}

// Seed returns the seed the generator was built with.
func (gen *Generator) Seed() int64 {
	return gen.seed
}

// Rand exposes the generator's random source so quote placement can share it
// and stay reproducible under a fixed seed.
func (gen *Generator) Rand() *rand.Rand {
	return gen.rng
}

// Generate builds a width x height grid and carves a maze into it.
// The start is always (1, 1); the end is a path cell near the opposite corner.
func (gen *Generator) Generate(width, height int) (*Grid, error) {
	grid, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}

	gen.carve(grid)

	end, ok := findEnd(grid)
	if !ok {
		return nil, ErrMazeGenerationFailed
	}
	grid.cells[end.Y][end.X].IsEnd = true
	grid.end = end

	return grid, nil
}

// carve runs the backtracking walk from the start cell until the stack empties.
func (gen *Generator) carve(grid *Grid) {
	start := grid.cells[startPosition.Y][startPosition.X]
	start.carve()
	start.IsStart = true
	grid.start = startPosition

	stack := []Position{startPosition}
	for len(stack) > 0 {
		current := stack[len(stack)-1]

		candidates := unvisitedNeighbors(grid, current)
		if len(candidates) == 0 {
			pop(&stack)
			continue
		}

		step := candidates[gen.rng.Intn(len(candidates))]
		next := current.Add(step)
		wall := current.Add(Position{X: step.X / 2, Y: step.Y / 2})

		grid.cells[wall.Y][wall.X].carve()
		grid.cells[next.Y][next.X].carve()
		stack = append(stack, next)
	}
}

// unvisitedNeighbors returns the steps from pos that land on a wall cell
// strictly inside the border.
func unvisitedNeighbors(grid *Grid, pos Position) []Position {
	var result []Position
	for _, step := range carveSteps {
		n := pos.Add(step)
		if n.X > 0 && n.X < grid.width-1 && n.Y > 0 && n.Y < grid.height-1 && grid.cells[n.Y][n.X].IsWall {
			result = append(result, step)
		}
	}
	return result
}

// findEnd scans backward and upward from (width-2, height-2) inside a bounded
// window and returns the first path cell that is not the start.
func findEnd(grid *Grid) (Position, bool) {
	lowestY := max(1, grid.height-1-endSearchSpan)
	lowestX := max(1, grid.width-1-endSearchSpan)

	for y := grid.height - 2; y >= lowestY; y-- {
		for x := grid.width - 2; x >= lowestX; x-- {
			cell := grid.cells[y][x]
			if cell.IsPath && !cell.IsStart {
				return cell.Position, true
			}
		}
	}
	return Position{}, false
}

// pop removes the last element of a stack of positions.
func pop(s *[]Position) Position {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
