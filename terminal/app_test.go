package terminal

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var arrowKeys = map[maze.Direction]tcell.Key{
	maze.Up:    tcell.KeyUp,
	maze.Right: tcell.KeyRight,
	maze.Down:  tcell.KeyDown,
	maze.Left:  tcell.KeyLeft,
}

func newTestApp(t *testing.T, d game.Difficulty) (*App, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 50)
	t.Cleanup(screen.Fini)

	app, err := New(screen, d,
		game.WithMoveMode(maze.SingleStep),
		game.WithRand(rand.New(rand.NewSource(3))),
	)
	require.NoError(t, err)
	return app, screen
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// path walks the grid breadth-first from the player to the exit.
func path(s *game.Session) []maze.Direction {
	type step struct {
		prev maze.Position
		dir  maze.Direction
	}
	g, from, to := s.Grid(), s.Player(), s.Exit()
	came := map[maze.Position]step{from: {}}
	queue := []maze.Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range maze.Directions {
			if !g.CanMove(cur, d) {
				continue
			}
			next := cur.Step(d)
			if _, ok := came[next]; ok {
				continue
			}
			came[next] = step{prev: cur, dir: d}
			queue = append(queue, next)
		}
	}

	var out []maze.Direction
	for cur := to; cur != from; cur = came[cur].prev {
		out = append([]maze.Direction{came[cur].dir}, out...)
	}
	return out
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"arrow up", key(tcell.KeyUp), Command{Action: ActionMove, Direction: maze.Up}},
		{"arrow right", key(tcell.KeyRight), Command{Action: ActionMove, Direction: maze.Right}},
		{"arrow down", key(tcell.KeyDown), Command{Action: ActionMove, Direction: maze.Down}},
		{"arrow left", key(tcell.KeyLeft), Command{Action: ActionMove, Direction: maze.Left}},
		{"vi left", char('h'), Command{Action: ActionMove, Direction: maze.Left}},
		{"vi down", char('j'), Command{Action: ActionMove, Direction: maze.Down}},
		{"easy", char('1'), Command{Action: ActionDifficulty, Difficulty: game.Easy}},
		{"medium", char('m'), Command{Action: ActionDifficulty, Difficulty: game.Medium}},
		{"hard", char('H'), Command{Action: ActionDifficulty, Difficulty: game.Hard}},
		{"restart", char('r'), Command{Action: ActionRestart}},
		{"quit", char('q'), Command{Action: ActionQuit}},
		{"escape", key(tcell.KeyEscape), Command{Action: ActionQuit}},
		{"unbound rune", char('z'), Command{Action: ActionNone}},
		{"unbound key", key(tcell.KeyF5), Command{Action: ActionNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommandFor(tt.ev))
		})
	}
}

func TestNewRequiresScreen(t *testing.T) {
	_, err := New(nil, game.Easy)
	assert.Error(t, err)
}

func TestDraw(t *testing.T) {
	app, screen := newTestApp(t, game.Easy)
	app.Draw()

	s := app.Session()
	p := cellOrigin(s.Player())
	r, _, _, _ := screen.GetContent(p.X, p.Y)
	assert.Equal(t, '@', r)

	// Outer corners and borders are always walls.
	_, _, style, _ := screen.GetContent(0, headerRows)
	assert.Equal(t, wallStyle, style)
	_, _, style, _ = screen.GetContent(2*s.Grid().Cols(), headerRows+2*s.Grid().Rows())
	assert.Equal(t, wallStyle, style)

	// Every open passage leaves a gap between the two cells.
	for _, c := range s.Grid().Cells() {
		o := cellOrigin(c.Position())
		for _, d := range maze.Directions {
			if c.HasWall(d) {
				continue
			}
			delta := d.Delta()
			_, _, style, _ := screen.GetContent(o.X+delta.X, o.Y+delta.Y)
			assert.NotEqual(t, wallStyle, style)
		}
	}
}

func TestHandleEventMovesAndSolves(t *testing.T) {
	app, _ := newTestApp(t, game.Easy)
	s := app.Session()

	// The start is in the top-left corner, so Up is always blocked.
	assert.True(t, app.HandleEvent(key(tcell.KeyUp)))
	assert.Equal(t, 0, s.Moves())

	steps := path(s)
	require.NotEmpty(t, steps)
	for _, d := range steps {
		assert.True(t, app.HandleEvent(key(arrowKeys[d])))
	}
	assert.Equal(t, s.Exit(), s.Player())
	assert.Equal(t, winMessage, app.Banner())

	// Moving off the exit clears the banner.
	back := steps[len(steps)-1].Opposite()
	assert.True(t, app.HandleEvent(key(arrowKeys[back])))
	assert.Empty(t, app.Banner())
}

func TestHandleEventSessionSelection(t *testing.T) {
	app, _ := newTestApp(t, game.Easy)
	first := app.Session()

	assert.True(t, app.HandleEvent(char('2')))
	second := app.Session()
	assert.Equal(t, game.Medium, second.Difficulty())
	assert.NotEqual(t, first.ID(), second.ID())

	assert.True(t, app.HandleEvent(char('r')))
	third := app.Session()
	assert.Equal(t, game.Medium, third.Difficulty())
	assert.NotEqual(t, second.ID(), third.ID())

	assert.True(t, app.HandleEvent(char('3')))
	assert.Equal(t, game.Hard, app.Session().Difficulty())

	assert.True(t, app.HandleEvent(tcell.NewEventResize(100, 50)))
	assert.False(t, app.HandleEvent(char('q')))
	assert.False(t, app.HandleEvent(key(tcell.KeyCtrlC)))
}
