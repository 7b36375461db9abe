package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedOrder always yields the same direction order.
type fixedOrder [4]Direction

func (f fixedOrder) Shuffle(dirs []Direction) {
	copy(dirs, f[:])
}

// reachable walks open passages breadth-first from start and returns each cell's visit count.
func reachable(g *Grid, start Position) map[Position]int {
	seen := map[Position]int{start: 1}
	queue := []Position{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range Directions {
			if !g.CanMove(cur, d) {
				continue
			}
			next := cur.Step(d)
			if _, ok := seen[next]; ok {
				continue
			}
			seen[next]++
			queue = append(queue, next)
		}
	}
	return seen
}

func TestGenerate(t *testing.T) {
	t.Run("rejects empty grids", func(t *testing.T) {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
			_, err := Generate(dims[0], dims[1], Position{}, NewShuffler(1))
			assert.ErrorIs(t, err, ErrInvalidDimensions)
		}
	})

	t.Run("rejects start outside the grid", func(t *testing.T) {
		_, err := Generate(3, 3, Position{X: 3, Y: 0}, NewShuffler(1))
		assert.ErrorIs(t, err, ErrStartOutOfBounds)
	})

	t.Run("rejects nil shuffler", func(t *testing.T) {
		_, err := Generate(3, 3, Position{}, nil)
		assert.ErrorIs(t, err, ErrNilShuffler)
	})

	t.Run("single cell keeps every wall", func(t *testing.T) {
		g, err := Generate(1, 1, Position{}, NewShuffler(1))
		require.NoError(t, err)
		c, ok := g.Cell(0, 0)
		require.True(t, ok)
		assert.Equal(t, [4]bool{true, true, true, true}, c.Walls)
		assert.Zero(t, g.OpenPassages())
	})
}

func TestGeneratePerfectMaze(t *testing.T) {
	cases := []struct {
		cols, rows int
		start      Position
	}{
		{10, 10, Position{0, 0}},
		{20, 20, Position{0, 0}},
		{20, 20, Position{13, 7}},
		{7, 3, Position{6, 2}},
		{1, 12, Position{0, 5}},
		{64, 64, Position{32, 32}},
	}

	for seed := int64(1); seed <= 5; seed++ {
		for _, tc := range cases {
			g, err := Generate(tc.cols, tc.rows, tc.start, NewShuffler(seed))
			require.NoError(t, err)

			assert.Equal(t, tc.cols*tc.rows-1, g.OpenPassages(), "passages in %dx%d seed %d", tc.cols, tc.rows, seed)

			seen := reachable(g, tc.start)
			assert.Len(t, seen, tc.cols*tc.rows)
			for pos, visits := range seen {
				assert.Equal(t, 1, visits, "cell %v visited more than once", pos)
			}
		}
	}
}

func TestGenerateWallSymmetry(t *testing.T) {
	g, err := Generate(20, 20, Position{4, 9}, NewShuffler(42))
	require.NoError(t, err)

	for _, c := range g.Cells() {
		// Border walls are never removed.
		if c.X == 0 {
			assert.True(t, c.HasWall(Left))
		}
		if c.Y == 0 {
			assert.True(t, c.HasWall(Up))
		}
		if c.X == g.Cols()-1 {
			assert.True(t, c.HasWall(Right))
		}
		if c.Y == g.Rows()-1 {
			assert.True(t, c.HasWall(Down))
		}

		for _, d := range Directions {
			n := c.Position().Step(d)
			other, ok := g.Cell(n.X, n.Y)
			if !ok {
				continue
			}
			assert.Equal(t, c.HasWall(d), other.HasWall(d.Opposite()), "cell %v direction %v", c.Position(), d)
		}
	}
}

func TestGenerateIsReproducible(t *testing.T) {
	a, err := Generate(15, 15, Position{}, NewShuffler(7))
	require.NoError(t, err)
	b, err := Generate(15, 15, Position{}, NewShuffler(7))
	require.NoError(t, err)
	assert.Equal(t, a.Cells(), b.Cells())
}

func TestGenerateFixedOrderTwoByTwo(t *testing.T) {
	g, err := Generate(2, 2, Position{0, 0}, fixedOrder{Right, Down, Left, Up})
	require.NoError(t, err)

	assert.Equal(t, 3, g.OpenPassages())
	assert.True(t, g.CanMove(Position{0, 0}, Right))
	assert.True(t, g.CanMove(Position{1, 0}, Down))
	assert.True(t, g.CanMove(Position{1, 1}, Left))
	assert.False(t, g.CanMove(Position{0, 0}, Down))

	want := "" +
		"+---+---+\n" +
		"|       |\n" +
		"+---+   +\n" +
		"|       |\n" +
		"+---+---+\n"
	assert.Equal(t, want, g.String())

	pos := Position{0, 0}
	steps := 0
	for _, d := range []Direction{Right, Down} {
		var moved bool
		pos, moved = Move(g, pos, d, SingleStep)
		require.True(t, moved)
		steps++
	}
	assert.Equal(t, Position{1, 1}, pos)
	assert.Equal(t, 2, steps)
}

func TestCellsReturnsCopy(t *testing.T) {
	g, err := Generate(3, 3, Position{}, NewShuffler(3))
	require.NoError(t, err)

	cells := g.Cells()
	cells[0].Walls = [4]bool{}
	c, _ := g.Cell(0, 0)
	assert.True(t, c.HasWall(Up))
	assert.True(t, c.HasWall(Left))
}

func TestParseDirection(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Direction
	}{
		{"up", Up}, {"RIGHT", Right}, {" Down ", Down}, {"left", Left},
	} {
		got, err := ParseDirection(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ParseDirection("north")
	assert.ErrorIs(t, err, ErrInvalidDirection)
}

func TestDirectionOpposite(t *testing.T) {
	assert.Equal(t, Down, Up.Opposite())
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, Up, Down.Opposite())
	assert.Equal(t, Right, Left.Opposite())
}
