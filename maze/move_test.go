package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridorWithBranch builds a 4x2 grid with a straight corridor along row 0 and a single
// branch going down from (2,0):
//
//	+---+---+---+---+
//	|               |
//	+---+---+   +---+
//	|   |   |   |   |
//	+---+---+---+---+
func corridorWithBranch() *Grid {
	g := newGrid(4, 2)
	g.openWall(Position{0, 0}, Right)
	g.openWall(Position{1, 0}, Right)
	g.openWall(Position{2, 0}, Right)
	g.openWall(Position{2, 0}, Down)
	return g
}

func TestMoveSingleStep(t *testing.T) {
	g := corridorWithBranch()

	pos, moved := Move(g, Position{0, 0}, Right, SingleStep)
	assert.True(t, moved)
	assert.Equal(t, Position{1, 0}, pos)
}

func TestMoveNoOp(t *testing.T) {
	g := corridorWithBranch()

	for _, mode := range []MoveMode{SingleStep, Slide} {
		t.Run(mode.String(), func(t *testing.T) {
			cases := []struct {
				name string
				from Position
				dir  Direction
			}{
				{"off the top edge", Position{0, 0}, Up},
				{"off the left edge", Position{0, 0}, Left},
				{"off the right edge", Position{3, 0}, Right},
				{"off the bottom edge", Position{1, 1}, Down},
				{"into a wall", Position{0, 0}, Down},
				{"into a side wall", Position{0, 1}, Right},
				{"invalid direction", Position{0, 0}, Direction(9)},
			}
			for _, tc := range cases {
				pos, moved := Move(g, tc.from, tc.dir, mode)
				assert.False(t, moved, tc.name)
				assert.Equal(t, tc.from, pos, tc.name)
			}
		})
	}
}

func TestMoveSlide(t *testing.T) {
	g := corridorWithBranch()

	t.Run("stops at the first junction", func(t *testing.T) {
		pos, moved := Move(g, Position{0, 0}, Right, Slide)
		assert.True(t, moved)
		assert.Equal(t, Position{2, 0}, pos)
	})

	t.Run("continues from a junction to the dead end", func(t *testing.T) {
		pos, moved := Move(g, Position{2, 0}, Right, Slide)
		assert.True(t, moved)
		assert.Equal(t, Position{3, 0}, pos)
	})

	t.Run("stops at a dead end", func(t *testing.T) {
		pos, moved := Move(g, Position{2, 0}, Down, Slide)
		assert.True(t, moved)
		assert.Equal(t, Position{2, 1}, pos)
	})

	t.Run("runs back to the junction", func(t *testing.T) {
		pos, moved := Move(g, Position{3, 0}, Left, Slide)
		assert.True(t, moved)
		assert.Equal(t, Position{2, 0}, pos)
	})
}

// TestMoveSlideNeverOvershoots checks every slide in a generated maze against a step-by-step
// walk along the same ray.
func TestMoveSlideNeverOvershoots(t *testing.T) {
	g, err := Generate(20, 20, Position{}, NewShuffler(11))
	require.NoError(t, err)

	for _, c := range g.Cells() {
		for _, d := range Directions {
			from := c.Position()
			got, moved := Move(g, from, d, Slide)

			want := from
			for g.CanMove(want, d) {
				want = want.Step(d)
				cell, _ := g.Cell(want.X, want.Y)
				if cell.OpenWalls() > 2 {
					break
				}
			}

			assert.Equal(t, want, got, "slide from %v %v", from, d)
			assert.Equal(t, want != from, moved)

			if moved {
				end, _ := g.Cell(got.X, got.Y)
				assert.True(t, end.OpenWalls() > 2 || !g.CanMove(got, d), "slide from %v %v stopped mid-corridor", from, d)
			}
		}
	}
}

func TestParseMoveMode(t *testing.T) {
	m, err := ParseMoveMode("single")
	require.NoError(t, err)
	assert.Equal(t, SingleStep, m)

	m, err = ParseMoveMode("Slide")
	require.NoError(t, err)
	assert.Equal(t, Slide, m)

	_, err = ParseMoveMode("teleport")
	assert.ErrorIs(t, err, ErrInvalidMoveMode)
}
