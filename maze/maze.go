/*
Package maze generates perfect rectangular mazes and resolves player moves against them.

A Grid is carved with a randomized depth-first backtracker rooted at a start cell. The
backtracker keeps its path on an explicit stack, so grid size is not bounded by recursion
depth. Directions are shuffled through a Shuffler, which makes generation reproducible when
a seeded source is supplied.

Once generated, a Grid is never mutated. Move resolves directional requests in either
single-step or corridor-slide mode.
*/
package maze

import (
	"errors"
	"math/rand"
	"strings"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrStartOutOfBounds  = errors.New("start position is out of the maze")
	ErrNilShuffler       = errors.New("shuffler is required")
)

// Shuffler reorders the candidate directions tried from a cell during generation.
type Shuffler interface {
	Shuffle(dirs []Direction)
}

// RandShuffler is a Fisher-Yates Shuffler backed by a math/rand source.
type RandShuffler struct {
	Rand *rand.Rand
}

// NewShuffler returns a RandShuffler seeded with seed.
func NewShuffler(seed int64) *RandShuffler {
	return &RandShuffler{Rand: rand.New(rand.NewSource(seed))}
}

// Shuffle implements Shuffler.
func (s *RandShuffler) Shuffle(dirs []Direction) {
	for i := len(dirs) - 1; i > 0; i-- {
		j := s.Rand.Intn(i + 1)
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
}

// Grid is a generated maze of Cols x Rows cells.
type Grid struct {
	cols  int
	rows  int
	cells []Cell // flat, indexed by x + y*cols
}

// frame is one entry of the backtracker's path.
type frame struct {
	pos  Position
	dirs [4]Direction
	next int
}

// Generate carves a perfect maze of the given dimensions, rooted at start.
func Generate(cols, rows int, start Position, s Shuffler) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, ErrInvalidDimensions
	}
	if s == nil {
		return nil, ErrNilShuffler
	}

	g := newGrid(cols, rows)
	if !g.InBound(start.X, start.Y) {
		return nil, ErrStartOutOfBounds
	}

	g.carve(start, s)
	for i := range g.cells {
		g.cells[i].visited = false
	}
	return g, nil
}

func newGrid(cols, rows int) *Grid {
	cells := make([]Cell, cols*rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			cells[x+y*cols] = Cell{X: x, Y: y, Walls: [4]bool{true, true, true, true}}
		}
	}
	return &Grid{cols: cols, rows: rows, cells: cells}
}

// carve runs the depth-first backtracker. Each cell shuffles its directions once, on entry,
// and later directions are only examined after the subtree of earlier ones is finished.
func (g *Grid) carve(start Position, s Shuffler) {
	push := func(stack []frame, pos Position) []frame {
		g.cells[g.index(pos.X, pos.Y)].visited = true
		f := frame{pos: pos, dirs: Directions}
		s.Shuffle(f.dirs[:])
		return append(stack, f)
	}

	stack := push(make([]frame, 0, len(g.cells)), start)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.dirs[top.next]
		top.next++

		next := top.pos.Step(d)
		idx := g.index(next.X, next.Y)
		if idx == -1 || g.cells[idx].visited {
			continue
		}

		g.openWall(top.pos, d)
		stack = push(stack, next)
	}
}

// openWall removes the wall between pos and its neighbour in direction d, on both sides.
func (g *Grid) openWall(pos Position, d Direction) {
	next := pos.Step(d)
	g.cells[g.index(pos.X, pos.Y)].Walls[d] = false
	g.cells[g.index(next.X, next.Y)].Walls[d.Opposite()] = false
}

// index returns the flat index of (x, y) or -1 when it is off the grid.
func (g *Grid) index(x, y int) int {
	if !g.InBound(x, y) {
		return -1
	}
	return x + y*g.cols
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// InBound reports whether (x, y) lies inside the grid.
func (g *Grid) InBound(x, y int) bool {
	return x >= 0 && x < g.cols && y >= 0 && y < g.rows
}

// Cell returns a copy of the cell at (x, y). ok is false when the coordinate is off the grid.
func (g *Grid) Cell(x, y int) (Cell, bool) {
	idx := g.index(x, y)
	if idx == -1 {
		return Cell{}, false
	}
	return g.cells[idx], true
}

// Cells returns a copy of every cell in row-major order.
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// CanMove reports whether a single step from pos in direction d stays on the grid and
// crosses no wall.
func (g *Grid) CanMove(pos Position, d Direction) bool {
	if !d.Valid() {
		return false
	}
	from := g.index(pos.X, pos.Y)
	if from == -1 {
		return false
	}
	next := pos.Step(d)
	if g.index(next.X, next.Y) == -1 {
		return false
	}
	return !g.cells[from].Walls[d]
}

// OpenPassages counts the open connections between adjacent cells.
func (g *Grid) OpenPassages() int {
	open := 0
	for _, c := range g.cells {
		// Count each passage once, from its left or upper cell.
		if !c.Walls[Right] && c.X+1 < g.cols {
			open++
		}
		if !c.Walls[Down] && c.Y+1 < g.rows {
			open++
		}
	}
	return open
}

// String provides a textual representation of the maze.
func (g *Grid) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", g.cols) + "\n")

	for y := 0; y < g.rows; y++ {
		b.WriteString("|")
		for x := 0; x < g.cols; x++ {
			if g.cells[g.index(x, y)].Walls[Right] {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for x := 0; x < g.cols; x++ {
			if g.cells[g.index(x, y)].Walls[Down] {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
