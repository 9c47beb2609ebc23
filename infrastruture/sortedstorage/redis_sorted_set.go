package sortedstorage

import (
	"context"
	"errors"
	"time"

	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// RedisSortedSet manages sorted sets in Redis with optional TTL support.
type RedisSortedSet struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
}

// NewRedisSortedSet initializes a RedisSortedSet with the provided Redis client and TTL.
// A ttlSeconds of zero keeps keys forever.
func NewRedisSortedSet(client *redis.Client, ttlSeconds int) (i.SortedSet, error) {
	set := &RedisSortedSet{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
	pool := goredis.NewPool(client)
	set.locker = redsync.New(pool)
	return set, nil
}

// KeepLowest stores score for member unless it already holds a lower score.
// The read-compare-write runs under a distributed lock on the key.
func (rs *RedisSortedSet) KeepLowest(ctx context.Context, key, member string, score float64) (bool, error) {
	mutex := rs.locker.NewMutex(key + ":submit_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	current, err := rs.client.ZScore(ctx, key, member).Result()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return false, err
	case current <= score:
		return false, nil
	}

	if err := rs.client.ZAdd(ctx, key, redis.Z{Score: score, Member: member}).Err(); err != nil {
		return false, err
	}

	// Set expiration only if it's not already set
	if rs.ttl > 0 {
		ttl, err := rs.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rs.client.Expire(ctx, key, rs.ttl).Err()
		}
	}

	return true, nil
}

// Lowest returns up to n members with the lowest scores, lowest first.
func (rs *RedisSortedSet) Lowest(ctx context.Context, key string, n int64) ([]i.ScoredMember, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := rs.client.ZRangeWithScores(ctx, key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	members := make([]i.ScoredMember, 0, len(entries))
	for _, e := range entries {
		member, ok := e.Member.(string)
		if !ok {
			continue
		}
		members = append(members, i.ScoredMember{Member: member, Score: e.Score})
	}
	return members, nil
}

// Rank returns the zero based rank of member, or -1 if it is not in the set.
func (rs *RedisSortedSet) Rank(ctx context.Context, key, member string) (int64, error) {
	rank, err := rs.client.ZRank(ctx, key, member).Result()
	if errors.Is(err, redis.Nil) {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return rank, nil
}
