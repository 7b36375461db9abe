// Package input translates raw keyboard and touch input into maze directions.
package input

import (
	"errors"
	"math"

	"github.com/beka-birhanu/vinom-maze/maze"
)

var (
	ErrUnknownKey       = errors.New("unknown key")
	ErrEmptyRequest     = errors.New("move request carries no input")
	ErrAmbiguousRequest = errors.New("move request carries more than one input")
)

var keys = map[string]maze.Direction{
	"ArrowUp":    maze.Up,
	"ArrowRight": maze.Right,
	"ArrowDown":  maze.Down,
	"ArrowLeft":  maze.Left,
}

// FromKey maps a browser key name (ArrowUp, ArrowRight, ArrowDown, ArrowLeft) to a direction.
func FromKey(name string) (maze.Direction, error) {
	d, ok := keys[name]
	if !ok {
		return 0, ErrUnknownKey
	}
	return d, nil
}

// Swipe is the displacement between the touch-start and touch-end points.
type Swipe struct {
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

// FromSwipe classifies a swipe by its dominant axis. Ties, including no displacement at all,
// count as vertical.
func FromSwipe(s Swipe) maze.Direction {
	if math.Abs(s.DX) > math.Abs(s.DY) {
		if s.DX > 0 {
			return maze.Right
		}
		return maze.Left
	}
	if s.DY > 0 {
		return maze.Down
	}
	return maze.Up
}

// Request is a move request as it arrives from a client. Exactly one field must be set.
type Request struct {
	Direction string `json:"direction,omitempty"`
	Key       string `json:"key,omitempty"`
	Swipe     *Swipe `json:"swipe,omitempty"`
}

// Resolve turns a Request into a direction.
func Resolve(r Request) (maze.Direction, error) {
	set := 0
	for _, ok := range []bool{r.Direction != "", r.Key != "", r.Swipe != nil} {
		if ok {
			set++
		}
	}
	switch {
	case set == 0:
		return 0, ErrEmptyRequest
	case set > 1:
		return 0, ErrAmbiguousRequest
	}

	switch {
	case r.Direction != "":
		return maze.ParseDirection(r.Direction)
	case r.Key != "":
		return FromKey(r.Key)
	default:
		return FromSwipe(*r.Swipe), nil
	}
}
