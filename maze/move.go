package maze

import (
	"errors"
	"strings"
)

// MoveMode selects how far a single move request carries the player.
type MoveMode int

const (
	// SingleStep moves exactly one cell.
	SingleStep MoveMode = iota
	// Slide keeps stepping along a corridor until a junction, a dead end or a wall.
	Slide
)

// junctionOpenWalls is the open-wall count above which a cell stops a slide.
const junctionOpenWalls = 2

var ErrInvalidMoveMode = errors.New("invalid move mode")

// ParseMoveMode converts "single" or "slide" into a MoveMode.
func ParseMoveMode(s string) (MoveMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "step", "single-step":
		return SingleStep, nil
	case "slide", "corridor":
		return Slide, nil
	}
	return 0, ErrInvalidMoveMode
}

func (m MoveMode) String() string {
	switch m {
	case SingleStep:
		return "single"
	case Slide:
		return "slide"
	}
	return "invalid"
}

// Move resolves a move request from pos. Blocked or off-grid requests are no-ops and
// return pos unchanged with moved set to false.
func Move(g *Grid, pos Position, d Direction, mode MoveMode) (Position, bool) {
	moved := false
	for g.CanMove(pos, d) {
		pos = pos.Step(d)
		moved = true

		if mode != Slide {
			break
		}
		if c, _ := g.Cell(pos.X, pos.Y); c.OpenWalls() > junctionOpenWalls {
			break
		}
	}
	return pos, moved
}
