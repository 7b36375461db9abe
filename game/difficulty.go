package game

import (
	"errors"
	"strings"
)

// Difficulty names one of the maze presets.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

var ErrUnknownDifficulty = errors.New("unknown difficulty")

// Preset describes the drawing surface a difficulty is played on.
type Preset struct {
	CanvasSize int  // Side of the square drawing surface in pixels
	CellSize   int  // Side of one maze cell in pixels
	RandomEnds bool // Start and exit are drawn at random instead of opposite corners
}

var presets = map[Difficulty]Preset{
	Easy:   {CanvasSize: 400, CellSize: 40},
	Medium: {CanvasSize: 600, CellSize: 30},
	Hard:   {CanvasSize: 600, CellSize: 30, RandomEnds: true},
}

// Difficulties lists the presets from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Medium, Hard}
}

// ParseDifficulty converts a case-insensitive preset name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := presets[d]; !ok {
		return "", ErrUnknownDifficulty
	}
	return d, nil
}

// PresetFor returns the preset configured for d.
func PresetFor(d Difficulty) (Preset, error) {
	p, ok := presets[d]
	if !ok {
		return Preset{}, ErrUnknownDifficulty
	}
	return p, nil
}

// Dimensions returns the grid size that fits the preset's canvas.
func (p Preset) Dimensions() (cols, rows int) {
	side := p.CanvasSize / p.CellSize
	return side, side
}
