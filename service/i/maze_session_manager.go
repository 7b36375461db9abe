package i

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Session manager errors.
var (
	ErrTableNotFound = errors.New("no maze table for player")
	ErrDisabled      = errors.New("storage backend is not configured")
)

// Ticket is handed to a client whenever a session starts. The token binds the client's
// input to that session only.
type Ticket struct {
	PlayerID uuid.UUID     `json:"player_id"`
	Token    string        `json:"token"`
	Session  game.Snapshot `json:"session"`
}

// MazeSessionManager manages one maze table per player.
type MazeSessionManager interface {
	// Open creates a player table and starts its first session.
	Open(ctx context.Context, d game.Difficulty) (*Ticket, error)

	// SetDifficulty replaces the player's session with a new one of difficulty d.
	SetDifficulty(ctx context.Context, playerID uuid.UUID, d game.Difficulty) (*Ticket, error)

	// Restart replaces the player's session with a new one of the same difficulty.
	Restart(ctx context.Context, playerID uuid.UUID) (*Ticket, error)

	// Move applies a direction to the session the binding points at.
	Move(ctx context.Context, b Binding, d maze.Direction) (game.MoveResult, error)

	// Snapshot returns the render state of the player's active session.
	Snapshot(playerID uuid.UUID) (game.Snapshot, error)

	// Subscribe streams the player's session events until cancel is called.
	Subscribe(playerID uuid.UUID) (events <-chan game.Event, cancel func(), err error)

	// Close drops the player's table.
	Close(playerID uuid.UUID) error

	// Leaderboard returns the best solves of a difficulty.
	Leaderboard(ctx context.Context, d game.Difficulty, limit int64) ([]LeaderboardEntry, error)

	// History returns the player's most recent solved runs.
	History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error)
}
