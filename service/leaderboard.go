package service

import (
	"context"
	"fmt"

	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/google/uuid"
)

const (
	defaultLeaderboardPrefix = "labyrinth:leaderboard"
	leaderboardKeyFmt        = "%s:%dx%d"
)

var _ i.Leaderboard = &Leaderboard{}

// Leaderboard keeps the best completion time of every player per maze size.
type Leaderboard struct {
	set    i.SortedSet
	prefix string
	logger i.Logger
}

// NewLeaderboard returns a leaderboard stored in set under prefix.
// An empty prefix uses the default one.
func NewLeaderboard(set i.SortedSet, logger i.Logger, prefix string) (*Leaderboard, error) {
	if set == nil || logger == nil {
		return nil, ErrMissingDependency
	}
	if prefix == "" {
		prefix = defaultLeaderboardPrefix
	}
	return &Leaderboard{set: set, prefix: prefix, logger: logger}, nil
}

// Submit records a completion time and reports whether it is the player's new best.
func (l *Leaderboard) Submit(ctx context.Context, width, height int, playerID uuid.UUID, elapsedMs int64) (bool, error) {
	improved, err := l.set.KeepLowest(ctx, l.key(width, height), playerID.String(), float64(elapsedMs))
	if err != nil {
		l.logger.Error(fmt.Sprintf("submitting %dms for player %s: %s", elapsedMs, playerID, err))
		return false, err
	}

	if improved {
		l.logger.Info(fmt.Sprintf("new best time %dms on %dx%d for player %s", elapsedMs, width, height, playerID))
	}
	return improved, nil
}

// Top returns the n fastest players on a maze size.
func (l *Leaderboard) Top(ctx context.Context, width, height int, n int64) ([]i.LeaderboardEntry, error) {
	members, err := l.set.Lowest(ctx, l.key(width, height), n)
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(members))
	for _, m := range members {
		id, err := uuid.Parse(m.Member)
		if err != nil {
			l.logger.Warning(fmt.Sprintf("Non-UUID value in leaderboard: %s", m.Member))
			continue
		}
		entries = append(entries, i.LeaderboardEntry{
			Rank:      int64(len(entries)) + 1,
			PlayerID:  id,
			ElapsedMs: int64(m.Score),
		})
	}
	return entries, nil
}

// Rank returns the player's one based position on a maze size, 0 when the
// player has no time there.
func (l *Leaderboard) Rank(ctx context.Context, width, height int, playerID uuid.UUID) (int64, error) {
	rank, err := l.set.Rank(ctx, l.key(width, height), playerID.String())
	if err != nil {
		return 0, err
	}
	return rank + 1, nil
}

func (l *Leaderboard) key(width, height int) string {
	return fmt.Sprintf(leaderboardKeyFmt, l.prefix, width, height)
}
