package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "maze"
	defaultMaxSize = 100

	boardKeyFmt = "%s:leaderboard:%s"
)

var ErrInvalidLimit = errors.New("limit must be positive")

// RedisLeaderboard ranks solves in Redis sorted sets with TTL support.
type RedisLeaderboard struct {
	client  *redis.Client
	locker  *redsync.Redsync
	ttl     time.Duration
	prefix  string
	maxSize int64
}

// Options configures a RedisLeaderboard.
type Options struct {
	Prefix  string        // Key prefix, "maze" by default
	TTL     time.Duration // Expiration set on a board when it is created
	MaxSize int64         // Entries kept per board, 100 by default
}

// NewRedisLeaderboard initializes a RedisLeaderboard with the provided Redis client and options.
func NewRedisLeaderboard(client *redis.Client, opts Options) (i.Leaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is nil")
	}
	if opts.Prefix == "" {
		opts.Prefix = defaultPrefix
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = defaultMaxSize
	}

	lb := &RedisLeaderboard{
		client:  client,
		ttl:     opts.TTL,
		prefix:  opts.Prefix,
		maxSize: opts.MaxSize,
	}
	pool := goredis.NewPool(client)
	lb.locker = redsync.New(pool)
	return lb, nil
}

// Submit records moves for member, keeping the member's lowest score, and trims the board
// to its maximum size.
func (rl *RedisLeaderboard) Submit(ctx context.Context, board string, member string, moves int) error {
	key := rl.boardKey(board)
	if err := rl.client.ZAddLT(ctx, key, redis.Z{Score: float64(moves), Member: member}).Err(); err != nil {
		return err
	}

	// Set expiration only if it's not already set
	if rl.ttl > 0 {
		ttl, err := rl.client.TTL(ctx, key).Result()
		if err == nil && ttl == -1 {
			_ = rl.client.Expire(ctx, key, rl.ttl).Err()
		}
	}

	return rl.trim(ctx, key)
}

// trim drops the worst entries beyond maxSize while holding the board lock.
func (rl *RedisLeaderboard) trim(ctx context.Context, key string) error {
	mutex := rl.locker.NewMutex(key + ":trim_lock")
	if err := mutex.LockContext(ctx); err != nil {
		return err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	if rl.client.ZCard(ctx, key).Val() <= rl.maxSize {
		return nil
	}
	return rl.client.ZRemRangeByRank(ctx, key, rl.maxSize, -1).Err()
}

// Top returns up to limit entries with the fewest moves.
func (rl *RedisLeaderboard) Top(ctx context.Context, board string, limit int64) ([]i.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}

	scores, err := rl.client.ZRangeWithScores(ctx, rl.boardKey(board), 0, limit-1).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]i.LeaderboardEntry, 0, len(scores))
	for _, z := range scores {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		entries = append(entries, i.LeaderboardEntry{Member: member, Moves: int(z.Score)})
	}
	return entries, nil
}

func (rl *RedisLeaderboard) boardKey(board string) string {
	return fmt.Sprintf(boardKeyFmt, rl.prefix, board)
}
