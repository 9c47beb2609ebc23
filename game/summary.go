package game

import "math"

// Summary is the end-of-game report shown to the player.
type Summary struct {
	ElapsedMs        int64 `json:"elapsed_ms"`
	ElapsedSeconds   int64 `json:"elapsed_seconds"`
	QuotesFound      int   `json:"quotes_found"`
	TotalQuotes      int   `json:"total_quotes"`
	DiscoveryRate    int   `json:"discovery_rate"` // Percentage of quotes found, rounded.
	PerfectDiscovery bool  `json:"perfect_discovery"`
}

// Summarize computes the summary of a completed game.
func Summarize(g *Game) (Summary, error) {
	g.RLock()
	defer g.RUnlock()

	if g.status != Completed {
		return Summary{}, ErrGameNotCompleted
	}

	elapsed := g.completedAt.Sub(g.startedAt).Milliseconds()
	found, total := len(g.discovered), len(g.quotes)

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(found) * 100 / float64(total)))
	}

	return Summary{
		ElapsedMs:        elapsed,
		ElapsedSeconds:   elapsed / 1000,
		QuotesFound:      found,
		TotalQuotes:      total,
		DiscoveryRate:    rate,
		PerfectDiscovery: total > 0 && found == total,
	}, nil
}
