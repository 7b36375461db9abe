// Package terminal hosts a maze session in a text terminal.
package terminal

import (
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

// Action is what a key press asks the host to do.
type Action int

const (
	ActionNone Action = iota
	ActionMove
	ActionDifficulty
	ActionRestart
	ActionQuit
)

// Command is a decoded key press.
type Command struct {
	Action     Action
	Direction  maze.Direction  // Set for ActionMove
	Difficulty game.Difficulty // Set for ActionDifficulty
}

var runeCommands = map[rune]Command{
	'k': {Action: ActionMove, Direction: maze.Up},
	'l': {Action: ActionMove, Direction: maze.Right},
	'j': {Action: ActionMove, Direction: maze.Down},
	'h': {Action: ActionMove, Direction: maze.Left},
	'1': {Action: ActionDifficulty, Difficulty: game.Easy},
	'2': {Action: ActionDifficulty, Difficulty: game.Medium},
	'3': {Action: ActionDifficulty, Difficulty: game.Hard},
	'e': {Action: ActionDifficulty, Difficulty: game.Easy},
	'm': {Action: ActionDifficulty, Difficulty: game.Medium},
	'H': {Action: ActionDifficulty, Difficulty: game.Hard},
	'r': {Action: ActionRestart},
	'q': {Action: ActionQuit},
}

// CommandFor decodes a key event. Unbound keys yield ActionNone.
func CommandFor(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return Command{Action: ActionMove, Direction: maze.Up}
	case tcell.KeyRight:
		return Command{Action: ActionMove, Direction: maze.Right}
	case tcell.KeyDown:
		return Command{Action: ActionMove, Direction: maze.Down}
	case tcell.KeyLeft:
		return Command{Action: ActionMove, Direction: maze.Left}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Command{Action: ActionQuit}
	case tcell.KeyRune:
		if cmd, ok := runeCommands[ev.Rune()]; ok {
			return cmd
		}
	}
	return Command{Action: ActionNone}
}
