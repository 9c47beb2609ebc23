package maze

// Position is the (X, Y) coordinate of a cell in the grid.
// X grows to the right (column) and Y grows downward (row).
type Position struct {
	X int `json:"x"` // Column index of the cell
	Y int `json:"y"` // Row index of the cell
}

// Add returns the position shifted by the given delta.
func (p Position) Add(delta Position) Position {
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Cell represents a single square of the labyrinth.
// A cell is either a wall or a path, never both.
type Cell struct {
	Position

	// IsWall indicates the cell blocks movement.
	IsWall bool
	// IsPath indicates the cell is traversable.
	IsPath bool
	// IsStart marks the single entry cell.
	IsStart bool
	// IsEnd marks the single exit cell.
	IsEnd bool
	// Visited is set once the player has occupied the cell.
	Visited bool
	// HasQuote indicates a quote is placed on the cell.
	HasQuote bool
	// Quote placed on the cell, nil unless HasQuote is set.
	Quote *Quote
}

// carve turns the cell into a path cell.
func (c *Cell) carve() {
	c.IsWall = false
	c.IsPath = true
}

// eligibleForQuote reports whether a quote may be placed on the cell.
func (c *Cell) eligibleForQuote() bool {
	return c.IsPath && !c.IsStart && !c.IsEnd && !c.HasQuote
}
