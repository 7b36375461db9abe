package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/terminal"
	"github.com/gdamore/tcell/v2"
)

var (
	difficultyFlag = flag.String("difficulty", "easy", "Starting difficulty: easy, medium, hard")
	modeFlag       = flag.String("mode", "slide", "Move mode: single or slide")
	seedFlag       = flag.Int64("seed", 0, "Seed for maze generation, 0 picks one from the clock")
)

func main() {
	flag.Parse()

	d, err := game.ParseDifficulty(*difficultyFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	mode, err := maze.ParseMoveMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	app, err := terminal.New(screen, d,
		game.WithMoveMode(mode),
		game.WithRand(rand.New(rand.NewSource(seed))),
	)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}
	app.Run()
}
