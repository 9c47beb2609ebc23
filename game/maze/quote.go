package maze

import (
	"errors"
	"fmt"
	"math/rand"
)

// QuoteType tags a quote as encouragement or as a hint.
type QuoteType string

const (
	Motivational QuoteType = "motivational"
	Hint         QuoteType = "hint"
)

var (
	ErrInsufficientPathCells = errors.New("not enough path cells to place quotes")
	ErrInvalidQuote          = errors.New("invalid quote")
)

// Quote is a discoverable piece of content hidden in the labyrinth.
type Quote struct {
	ID         string    `json:"id" yaml:"id"`
	Text       string    `json:"text" yaml:"text"`
	Author     string    `json:"author" yaml:"author"`
	Type       QuoteType `json:"type" yaml:"type"`
	Position   Position  `json:"position" yaml:"-"`
	Discovered bool      `json:"discovered" yaml:"-"`
}

// Valid reports whether the type is one of the known quote types.
func (t QuoteType) Valid() bool {
	return t == Motivational || t == Hint
}

// Validate checks that the quote can be shown to a player.
func (q Quote) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuote)
	}
	if !q.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuote, q.Type)
	}
	return nil
}

// PlaceQuotes puts each quote on a distinct random path cell that is neither the
// start nor the end. Cells are drawn without replacement.
func PlaceQuotes(grid *Grid, quotes []*Quote, rng *rand.Rand) error {
	var eligible []*Cell
	for _, cell := range grid.PathCells() {
		if cell.eligibleForQuote() {
			eligible = append(eligible, cell)
		}
	}

	if len(eligible) < len(quotes) {
		return fmt.Errorf("%w: %d cells for %d quotes", ErrInsufficientPathCells, len(eligible), len(quotes))
	}

	// Partial Fisher-Yates: the first len(quotes) entries end up a uniform sample.
	for i, quote := range quotes {
		j := i + rng.Intn(len(eligible)-i)
		eligible[i], eligible[j] = eligible[j], eligible[i]

		cell := eligible[i]
		cell.HasQuote = true
		cell.Quote = quote
		quote.Position = cell.Position
	}

	return nil
}
