package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// Session is one generated maze and the player walking it.
// It is not safe for concurrent use; the Controller owning it serializes access.
type Session struct {
	id         uuid.UUID
	difficulty Difficulty
	preset     Preset
	mode       maze.MoveMode
	grid       *maze.Grid
	start      maze.Position
	exit       maze.Position
	player     maze.Position
	moves      int
	solves     int
	startedAt  time.Time
}

// NewSession generates a fresh maze for difficulty d using rng for every random choice.
func NewSession(d Difficulty, mode maze.MoveMode, rng *rand.Rand) (*Session, error) {
	preset, err := PresetFor(d)
	if err != nil {
		return nil, err
	}

	cols, rows := preset.Dimensions()
	start, exit := pickEnds(preset, cols, rows, rng)

	grid, err := maze.Generate(cols, rows, start, &maze.RandShuffler{Rand: rng})
	if err != nil {
		return nil, fmt.Errorf("generating %s maze: %w", d, err)
	}

	return &Session{
		id:         uuid.New(),
		difficulty: d,
		preset:     preset,
		mode:       mode,
		grid:       grid,
		start:      start,
		exit:       exit,
		player:     start,
		startedAt:  time.Now(),
	}, nil
}

// pickEnds places the start and exit markers. Random markers are drawn independently and
// may coincide.
func pickEnds(p Preset, cols, rows int, rng *rand.Rand) (start, exit maze.Position) {
	if !p.RandomEnds {
		return maze.Position{X: 0, Y: 0}, maze.Position{X: cols - 1, Y: rows - 1}
	}
	start = maze.Position{X: rng.Intn(cols), Y: rng.Intn(rows)}
	exit = maze.Position{X: rng.Intn(cols), Y: rng.Intn(rows)}
	return start, exit
}

// Move applies a direction request. solved is true when the move ended on the exit.
func (s *Session) Move(d maze.Direction) (moved, solved bool) {
	s.player, moved = maze.Move(s.grid, s.player, d, s.mode)
	if !moved {
		return false, false
	}

	s.moves++
	// A successful move always changes position, so landing on the exit is a new arrival.
	if s.player == s.exit {
		s.solves++
		return true, true
	}
	return true, false
}

// ID returns the unique identifier of the session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Difficulty returns the preset the session was generated for.
func (s *Session) Difficulty() Difficulty {
	return s.difficulty
}

// Preset returns the drawing configuration of the session.
func (s *Session) Preset() Preset {
	return s.preset
}

// Mode returns how move requests are resolved.
func (s *Session) Mode() maze.MoveMode {
	return s.mode
}

// Grid returns the generated maze.
func (s *Session) Grid() *maze.Grid {
	return s.grid
}

// Start returns the start marker.
func (s *Session) Start() maze.Position {
	return s.start
}

// Exit returns the exit marker.
func (s *Session) Exit() maze.Position {
	return s.exit
}

// Player returns the current player position.
func (s *Session) Player() maze.Position {
	return s.player
}

// Moves returns the number of successful moves.
func (s *Session) Moves() int {
	return s.moves
}

// Solves returns how many times the player arrived at the exit.
func (s *Session) Solves() int {
	return s.solves
}

// StartedAt returns when the maze was generated.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Snapshot is the render state of a session.
type Snapshot struct {
	ID         uuid.UUID     `json:"id"`
	Difficulty Difficulty    `json:"difficulty"`
	Mode       string        `json:"mode"`
	Cols       int           `json:"cols"`
	Rows       int           `json:"rows"`
	CellSize   int           `json:"cell_size"`
	Walls      [][4]bool     `json:"walls"` // row-major, indexed x + y*cols
	Start      maze.Position `json:"start"`
	Exit       maze.Position `json:"exit"`
	Player     maze.Position `json:"player"`
	Moves      int           `json:"moves"`
	Solved     bool          `json:"solved"`
}

// Snapshot copies the state a renderer needs.
func (s *Session) Snapshot() Snapshot {
	cells := s.grid.Cells()
	walls := make([][4]bool, len(cells))
	for i, c := range cells {
		walls[i] = c.Walls
	}

	return Snapshot{
		ID:         s.id,
		Difficulty: s.difficulty,
		Mode:       s.mode.String(),
		Cols:       s.grid.Cols(),
		Rows:       s.grid.Rows(),
		CellSize:   s.preset.CellSize,
		Walls:      walls,
		Start:      s.start,
		Exit:       s.exit,
		Player:     s.player,
		Moves:      s.moves,
		Solved:     s.solves > 0,
	}
}
