package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRunMoves    = errors.New("a solved run needs at least one move")
	ErrInvalidRunDuration = errors.New("run duration is negative")
	ErrMissingRunSession  = errors.New("run has no session")
)

// Run is the outcome of one solved maze, as stored in the run history.
type Run struct {
	ID         uuid.UUID     `bson:"_id" json:"id"`
	PlayerID   uuid.UUID     `bson:"playerId" json:"player_id"`
	SessionID  uuid.UUID     `bson:"sessionId" json:"session_id"`
	Difficulty string        `bson:"difficulty" json:"difficulty"`
	Mode       string        `bson:"mode" json:"mode"`
	Moves      int           `bson:"moves" json:"moves"`
	Duration   time.Duration `bson:"duration" json:"duration"`
	SolvedAt   time.Time     `bson:"solvedAt" json:"solved_at"`
}

// RunConfig holds the parameters for recording a solved maze.
type RunConfig struct {
	PlayerID   uuid.UUID
	SessionID  uuid.UUID
	Difficulty string
	Mode       string
	Moves      int
	Duration   time.Duration
	SolvedAt   time.Time
}

// NewRun validates config and creates a Run with a fresh ID.
func NewRun(config RunConfig) (*Run, error) {
	if config.SessionID == uuid.Nil {
		return nil, ErrMissingRunSession
	}
	if config.Moves < 1 {
		return nil, ErrInvalidRunMoves
	}
	if config.Duration < 0 {
		return nil, ErrInvalidRunDuration
	}

	return &Run{
		ID:         uuid.New(),
		PlayerID:   config.PlayerID,
		SessionID:  config.SessionID,
		Difficulty: config.Difficulty,
		Mode:       config.Mode,
		Moves:      config.Moves,
		Duration:   config.Duration,
		SolvedAt:   config.SolvedAt,
	}, nil
}
