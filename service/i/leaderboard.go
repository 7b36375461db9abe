package i

import (
	"context"
)

// LeaderboardEntry is one ranked solve.
type LeaderboardEntry struct {
	Member string `json:"member"`
	Moves  int    `json:"moves"`
}

// Leaderboard ranks solves by move count, fewest first, per board key.
type Leaderboard interface {
	// Submit records a solve. Only the best score of a member is kept.
	Submit(ctx context.Context, board string, member string, moves int) error

	// Top returns up to limit entries with the fewest moves.
	Top(ctx context.Context, board string, limit int64) ([]LeaderboardEntry, error)
}
