package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultTokenTTL = time.Hour
	storageTimeout  = 2 * time.Second
)

var _ i.MazeSessionManager = &SessionManager{}

// table is the state of one player: a controller holding exactly one active session.
type table struct {
	controller *game.Controller
	sync.Mutex
}

// SessionManager owns every player table and serializes the input of each one.
type SessionManager struct {
	tables      map[uuid.UUID]*table
	tokenizer   i.Tokenizer
	runs        i.RunRepo
	leaderboard i.Leaderboard
	hub         *eventHub
	logger      i.Logger
	moveMode    maze.MoveMode
	tokenTTL    time.Duration
	seeds       *rand.Rand
	seedsLock   sync.Mutex
	now         func() time.Time
	sync.RWMutex
}

// Config holds the dependencies of a SessionManager.
type Config struct {
	Tokenizer   i.Tokenizer   // Issues binding tokens, required
	Logger      i.Logger      // Required
	RunRepo     i.RunRepo     // Optional solved-run history
	Leaderboard i.Leaderboard // Optional ranking of solves
	MoveMode    maze.MoveMode // How move requests are resolved
	TokenTTL    time.Duration // Lifetime of binding tokens, one hour by default
	Seed        int64         // Seed for maze generation, 0 picks a time based seed
}

// NewSessionManager creates a SessionManager from c.
func NewSessionManager(c *Config) (*SessionManager, error) {
	if c == nil || c.Tokenizer == nil {
		return nil, errors.New("tokenizer is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	ttl := c.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &SessionManager{
		tables:      make(map[uuid.UUID]*table),
		tokenizer:   c.Tokenizer,
		runs:        c.RunRepo,
		leaderboard: c.Leaderboard,
		hub:         newEventHub(),
		logger:      c.Logger,
		moveMode:    c.MoveMode,
		tokenTTL:    ttl,
		seeds:       rand.New(rand.NewSource(seed)),
		now:         time.Now,
	}, nil
}

// Open creates a player table and starts its first session.
func (m *SessionManager) Open(ctx context.Context, d game.Difficulty) (*i.Ticket, error) {
	if _, err := game.PresetFor(d); err != nil {
		return nil, err
	}

	m.Lock()
	playerID := uuid.New()
	for {
		if _, ok := m.tables[playerID]; !ok {
			break
		}
		playerID = uuid.New()
	}
	t := &table{controller: m.newController(playerID)}
	m.tables[playerID] = t
	m.Unlock()

	t.Lock()
	s, err := t.controller.Setup(d)
	var ticket *i.Ticket
	if err == nil {
		ticket, err = m.ticket(playerID, s)
	}
	t.Unlock()

	if err != nil {
		m.drop(playerID)
		m.logger.Error(fmt.Sprintf("opening table: %s", err))
		return nil, err
	}

	m.logger.Info(fmt.Sprintf("opened table %s with a %s maze", playerID, d))
	return ticket, nil
}

// SetDifficulty replaces the player's session with a new one of difficulty d.
func (m *SessionManager) SetDifficulty(ctx context.Context, playerID uuid.UUID, d game.Difficulty) (*i.Ticket, error) {
	return m.replace(playerID, func(c *game.Controller) (*game.Session, error) {
		return c.Setup(d)
	})
}

// Restart replaces the player's session with a new one of the same difficulty.
func (m *SessionManager) Restart(ctx context.Context, playerID uuid.UUID) (*i.Ticket, error) {
	return m.replace(playerID, func(c *game.Controller) (*game.Session, error) {
		return c.Restart()
	})
}

// replace runs setup under the table lock so the new session and its token are issued as
// one step; tokens bound to the old session stop working immediately.
func (m *SessionManager) replace(playerID uuid.UUID, setup func(*game.Controller) (*game.Session, error)) (*i.Ticket, error) {
	t, err := m.table(playerID)
	if err != nil {
		return nil, err
	}

	t.Lock()
	defer t.Unlock()

	s, err := setup(t.controller)
	if err != nil {
		return nil, err
	}

	m.logger.Info(fmt.Sprintf("table %s started a %s maze", playerID, s.Difficulty()))
	return m.ticket(playerID, s)
}

// Move applies a direction to the session the binding points at.
func (m *SessionManager) Move(ctx context.Context, b i.Binding, d maze.Direction) (game.MoveResult, error) {
	t, err := m.table(b.PlayerID)
	if err != nil {
		return game.MoveResult{}, err
	}

	t.Lock()
	res, err := t.controller.Move(b.SessionID, d)
	var solved dmn.RunConfig
	if err == nil && res.Solved {
		s := t.controller.Current()
		solved = dmn.RunConfig{
			PlayerID:   b.PlayerID,
			SessionID:  s.ID(),
			Difficulty: string(s.Difficulty()),
			Mode:       s.Mode().String(),
			Moves:      s.Moves(),
			Duration:   m.now().Sub(s.StartedAt()),
			SolvedAt:   m.now(),
		}
	}
	t.Unlock()

	if err != nil {
		return game.MoveResult{}, err
	}
	if res.Solved {
		m.recordSolve(ctx, solved)
	}
	return res, nil
}

// recordSolve stores a solved run. Storage failures are logged and never fail the move.
func (m *SessionManager) recordSolve(ctx context.Context, c dmn.RunConfig) {
	m.logger.Info(fmt.Sprintf("player %s solved a %s maze in %d moves", c.PlayerID, c.Difficulty, c.Moves))

	run, err := dmn.NewRun(c)
	if err != nil {
		m.logger.Error(fmt.Sprintf("building run record: %s", err))
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), storageTimeout)
	defer cancel()

	if m.runs != nil {
		if err := m.runs.Save(ctx, run); err != nil {
			m.logger.Error(fmt.Sprintf("saving run %s: %s", run.ID, err))
		}
	}

	if m.leaderboard != nil {
		if err := m.leaderboard.Submit(ctx, run.Difficulty, run.PlayerID.String(), run.Moves); err != nil {
			m.logger.Error(fmt.Sprintf("submitting run %s to leaderboard: %s", run.ID, err))
		}
	}
}

// Snapshot returns the render state of the player's active session.
func (m *SessionManager) Snapshot(playerID uuid.UUID) (game.Snapshot, error) {
	t, err := m.table(playerID)
	if err != nil {
		return game.Snapshot{}, err
	}

	t.Lock()
	defer t.Unlock()
	s := t.controller.Current()
	if s == nil {
		return game.Snapshot{}, game.ErrNoSession
	}
	return s.Snapshot(), nil
}

// Subscribe streams the player's session events until cancel is called or the table closes.
// The table lookup and the registration share the read lock, so a concurrent Close either
// rejects the subscription or ends it.
func (m *SessionManager) Subscribe(playerID uuid.UUID) (<-chan game.Event, func(), error) {
	m.RLock()
	defer m.RUnlock()
	if _, ok := m.tables[playerID]; !ok {
		return nil, nil, i.ErrTableNotFound
	}
	events, cancel := m.hub.subscribe(playerID)
	return events, cancel, nil
}

// Close drops the player's table and ends its subscriptions.
func (m *SessionManager) Close(playerID uuid.UUID) error {
	if _, err := m.table(playerID); err != nil {
		return err
	}
	m.drop(playerID)
	m.logger.Info(fmt.Sprintf("closed table %s", playerID))
	return nil
}

// Leaderboard returns the best solves of a difficulty.
func (m *SessionManager) Leaderboard(ctx context.Context, d game.Difficulty, limit int64) ([]i.LeaderboardEntry, error) {
	if m.leaderboard == nil {
		return nil, i.ErrDisabled
	}
	if _, err := game.PresetFor(d); err != nil {
		return nil, err
	}
	return m.leaderboard.Top(ctx, string(d), limit)
}

// History returns the player's most recent solved runs.
func (m *SessionManager) History(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Run, error) {
	if m.runs == nil {
		return nil, i.ErrDisabled
	}
	return m.runs.ByPlayer(ctx, playerID, limit)
}

// StopAll drops every table.
func (m *SessionManager) StopAll() {
	m.Lock()
	ids := make([]uuid.UUID, 0, len(m.tables))
	for id := range m.tables {
		ids = append(ids, id)
	}
	m.Unlock()

	for _, id := range ids {
		m.drop(id)
	}
}

func (m *SessionManager) newController(playerID uuid.UUID) *game.Controller {
	m.seedsLock.Lock()
	seed := m.seeds.Int63()
	m.seedsLock.Unlock()

	return game.NewController(
		game.WithMoveMode(m.moveMode),
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithEventHandler(func(e game.Event) {
			if dropped := m.hub.publish(playerID, e); dropped > 0 {
				m.logger.Warning(fmt.Sprintf("%d subscribers of %s missed a %s event", dropped, playerID, e.Type))
			}
		}),
	)
}

func (m *SessionManager) ticket(playerID uuid.UUID, s *game.Session) (*i.Ticket, error) {
	token, err := m.tokenizer.Generate(i.Binding{PlayerID: playerID, SessionID: s.ID()}, m.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuing binding token: %w", err)
	}
	return &i.Ticket{PlayerID: playerID, Token: token, Session: s.Snapshot()}, nil
}

func (m *SessionManager) table(playerID uuid.UUID) (*table, error) {
	m.RLock()
	defer m.RUnlock()
	t, ok := m.tables[playerID]
	if !ok {
		return nil, i.ErrTableNotFound
	}
	return t, nil
}

func (m *SessionManager) drop(playerID uuid.UUID) {
	m.Lock()
	defer m.Unlock()
	delete(m.tables, playerID)
	m.hub.closeAll(playerID)
}
