package maze

import (
	"errors"
	"strings"
)

// Direction is one of the four cardinal moves. Its value doubles as the wall index of a Cell.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

var (
	// Directions lists the cardinal directions in wall-index order.
	Directions = [4]Direction{Up, Right, Down, Left}

	ErrInvalidDirection = errors.New("invalid direction")

	deltas = [4]Position{
		Up:    {X: 0, Y: -1},
		Right: {X: 1, Y: 0},
		Down:  {X: 0, Y: 1},
		Left:  {X: -1, Y: 0},
	}

	directionNames = [4]string{"up", "right", "down", "left"}
)

// ParseDirection converts a case-insensitive direction name (up, right, down, left).
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return 0, ErrInvalidDirection
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Left
}

// Delta returns the coordinate offset of a single step in direction d.
func (d Direction) Delta() Position {
	return deltas[d]
}

// Opposite returns the direction pointing back the way d came.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, ErrInvalidDirection
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Position is a cell coordinate within a grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the position one cell away in direction d.
func (p Position) Step(d Direction) Position {
	delta := d.Delta()
	return Position{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Cell represents a single cell in a maze grid.
type Cell struct {
	X       int     // Column of the cell
	Y       int     // Row of the cell
	Walls   [4]bool // Walls indexed by Direction; true means the side is blocked
	visited bool
}

// HasWall reports whether the side of the cell facing d is blocked.
func (c Cell) HasWall(d Direction) bool {
	return c.Walls[d]
}

// OpenWalls counts the sides of the cell without a wall.
func (c Cell) OpenWalls() int {
	open := 0
	for _, wall := range c.Walls {
		if !wall {
			open++
		}
	}
	return open
}

// Position returns the coordinate of the cell.
func (c Cell) Position() Position {
	return Position{X: c.X, Y: c.Y}
}
