package i

import "context"

// ScoredMember is an entry of a sorted set.
type ScoredMember struct {
	Member string
	Score  float64
}

// SortedSet is a keyed collection of members ordered by ascending score.
type SortedSet interface {
	// KeepLowest stores score for member unless the member already has a lower
	// one. It reports whether the stored score changed.
	KeepLowest(ctx context.Context, key, member string, score float64) (bool, error)

	// Lowest returns up to n members with the lowest scores.
	Lowest(ctx context.Context, key string, n int64) ([]ScoredMember, error)

	// Rank returns the zero based position of member, or -1 when absent.
	Rank(ctx context.Context, key, member string) (int64, error)
}
