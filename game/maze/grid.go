/*
Package maze provides the labyrinth grid, its generator and quote placement.

A Grid is a rectangle of Cells where every cell is either a wall or a path.
Mazes are carved with randomized recursive backtracking starting at (1, 1), so
the outer border always stays wall and odd dimensions give the densest maze.

Quotes drawn from a static pool are scattered over path cells other than the
start and the end. Rendering is left to callers through Snapshot and String.
*/
package maze

import (
	"errors"
	"strings"
)

const (
	minDimension = 3
	// MaxDimension bounds the width and height of a grid.
	MaxDimension = 101
)

var (
	ErrInvalidDimension = errors.New("invalid maze dimensions")
	ErrOutOfBounds      = errors.New("position is out of the maze")
)

// Grid is a fixed size two dimensional collection of cells stored row-major.
type Grid struct {
	width  int       // Number of columns
	height int       // Number of rows
	cells  [][]*Cell // cells[y][x]
	start  Position  // Position of the start cell, set by the generator
	end    Position  // Position of the end cell, set by the generator
}

// NewGrid returns a width x height grid whose cells are all walls.
func NewGrid(width, height int) (*Grid, error) {
	if min(width, height) < minDimension || max(width, height) > MaxDimension {
		return nil, ErrInvalidDimension
	}

	cells := make([][]*Cell, height)
	for y := range cells {
		cells[y] = make([]*Cell, width)
		for x := range cells[y] {
			cells[y][x] = &Cell{
				Position: Position{X: x, Y: y},
				IsWall:   true,
			}
		}
	}

	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Start returns the position of the start cell.
func (g *Grid) Start() Position {
	return g.start
}

// End returns the position of the end cell.
func (g *Grid) End() Position {
	return g.end
}

// InBound reports whether (x, y) lies inside the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Cell returns the cell at (x, y).
func (g *Grid) Cell(x, y int) (*Cell, error) {
	if !g.InBound(x, y) {
		return nil, ErrOutOfBounds
	}
	return g.cells[y][x], nil
}

// At returns the cell at p, or nil when p is outside the grid.
func (g *Grid) At(p Position) *Cell {
	if !g.InBound(p.X, p.Y) {
		return nil
	}
	return g.cells[p.Y][p.X]
}

// PathCells returns every path cell in row-major order.
func (g *Grid) PathCells() []*Cell {
	var result []*Cell
	for _, row := range g.cells {
		for _, cell := range row {
			if cell.IsPath {
				result = append(result, cell)
			}
		}
	}
	return result
}

// Snapshot returns a deep copy of the cells for read-only consumers such as renderers.
// Quotes are copied too, so mutating the snapshot never touches the grid.
func (g *Grid) Snapshot() [][]Cell {
	snapshot := make([][]Cell, g.height)
	for y, row := range g.cells {
		snapshot[y] = make([]Cell, g.width)
		for x, cell := range row {
			snapshot[y][x] = *cell
			if cell.Quote != nil {
				quote := *cell.Quote
				snapshot[y][x].Quote = &quote
			}
		}
	}
	return snapshot
}

// Rows renders the grid as one string per row.
//
//	# wall, S start, E end, ? undiscovered quote, * discovered quote,
//	. visited path, space unvisited path.
func (g *Grid) Rows() []string {
	rows := make([]string, 0, g.height)
	for _, row := range g.cells {
		var b strings.Builder
		for _, cell := range row {
			b.WriteByte(symbol(cell))
		}
		rows = append(rows, b.String())
	}
	return rows
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n") + "\n"
}

// symbol picks the character used to draw a cell.
func symbol(c *Cell) byte {
	switch {
	case c.IsWall:
		return '#'
	case c.IsStart:
		return 'S'
	case c.IsEnd:
		return 'E'
	case c.HasQuote && c.Quote.Discovered:
		return '*'
	case c.HasQuote:
		return '?'
	case c.Visited:
		return '.'
	default:
		return ' '
	}
}
