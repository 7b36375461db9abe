package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Controller errors.
var (
	ErrNoSession    = errors.New("no active session")
	ErrStaleSession = errors.New("session has been replaced")
)

// EventType classifies session events.
type EventType string

const (
	EventStarted EventType = "started" // A new session replaced the previous one.
	EventMoved   EventType = "moved"   // The player changed position.
	EventSolved  EventType = "solved"  // The player arrived at the exit.
)

// Event is delivered synchronously to the controller's event handler.
type Event struct {
	Type       EventType     `json:"type"`
	SessionID  uuid.UUID     `json:"session_id"`
	Difficulty Difficulty    `json:"difficulty"`
	Position   maze.Position `json:"position"`
	Moves      int           `json:"moves"`
}

// MoveResult reports the outcome of a move request.
type MoveResult struct {
	Moved    bool          `json:"moved"`
	Solved   bool          `json:"solved"`
	Position maze.Position `json:"position"`
	Moves    int           `json:"moves"`
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithMoveMode sets how move requests are resolved. The default is maze.Slide.
func WithMoveMode(m maze.MoveMode) ControllerOption {
	return func(c *Controller) {
		c.mode = m
	}
}

// WithRand sets the random source used for generation and hard-mode markers.
func WithRand(rng *rand.Rand) ControllerOption {
	return func(c *Controller) {
		c.rng = rng
	}
}

// WithEventHandler registers a function called for every session event.
func WithEventHandler(h func(Event)) ControllerOption {
	return func(c *Controller) {
		c.onEvent = h
	}
}

// Controller owns the single active session of one player and replaces it as a whole on
// every difficulty change or restart. It is not safe for concurrent use.
type Controller struct {
	mode    maze.MoveMode
	rng     *rand.Rand
	onEvent func(Event)
	current *Session
}

// NewController creates a Controller without an active session.
func NewController(opts ...ControllerOption) *Controller {
	c := &Controller{mode: maze.Slide}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// Setup generates a new session for d and makes it the active one. The previous session is
// discarded together with any request bound to it.
func (c *Controller) Setup(d Difficulty) (*Session, error) {
	s, err := NewSession(d, c.mode, c.rng)
	if err != nil {
		return nil, err
	}

	c.current = s
	c.emit(EventStarted, s)
	return s, nil
}

// Restart re-runs setup with the difficulty of the active session.
func (c *Controller) Restart() (*Session, error) {
	if c.current == nil {
		return nil, ErrNoSession
	}
	return c.Setup(c.current.Difficulty())
}

// Current returns the active session or nil.
func (c *Controller) Current() *Session {
	return c.current
}

// Move applies d to the active session. The request must be bound to the active session's
// ID; requests carrying the ID of a replaced session fail with ErrStaleSession.
func (c *Controller) Move(sessionID uuid.UUID, d maze.Direction) (MoveResult, error) {
	s := c.current
	if s == nil {
		return MoveResult{}, ErrNoSession
	}
	if s.ID() != sessionID {
		return MoveResult{}, ErrStaleSession
	}

	moved, solved := s.Move(d)
	if moved {
		c.emit(EventMoved, s)
	}
	if solved {
		c.emit(EventSolved, s)
	}

	return MoveResult{
		Moved:    moved,
		Solved:   solved,
		Position: s.Player(),
		Moves:    s.Moves(),
	}, nil
}

func (c *Controller) emit(t EventType, s *Session) {
	if c.onEvent == nil {
		return
	}
	c.onEvent(Event{
		Type:       t,
		SessionID:  s.ID(),
		Difficulty: s.Difficulty(),
		Position:   s.Player(),
		Moves:      s.Moves(),
	})
}
