package terminal

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/gdamore/tcell/v2"
)

const (
	headerRows = 2
	winMessage = "You reached the exit!"
	helpLine   = "arrows/hjkl move  1/2/3 difficulty  r restart  q quit"
)

var (
	wallStyle   = tcell.StyleDefault.Background(tcell.ColorGray)
	startStyle  = tcell.StyleDefault.Background(tcell.ColorGreen)
	exitStyle   = tcell.StyleDefault.Background(tcell.ColorRed)
	bannerStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	errorStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

// App renders one maze controller to a tcell screen and feeds it key presses.
type App struct {
	screen     tcell.Screen
	controller *game.Controller
	banner     string
	bannerErr  bool
}

// New creates an App on an initialized screen and starts a session of difficulty d.
func New(screen tcell.Screen, d game.Difficulty, opts ...game.ControllerOption) (*App, error) {
	if screen == nil {
		return nil, errors.New("screen is nil")
	}

	a := &App{screen: screen}
	opts = append(opts, game.WithEventHandler(a.handleSessionEvent))
	a.controller = game.NewController(opts...)
	if _, err := a.controller.Setup(d); err != nil {
		return nil, err
	}
	return a, nil
}

// Session returns the active session.
func (a *App) Session() *game.Session {
	return a.controller.Current()
}

// Banner returns the message line currently shown under the header.
func (a *App) Banner() string {
	return a.banner
}

// Run draws and handles events until the player quits or the screen is finalized.
func (a *App) Run() {
	for {
		a.Draw()
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		if !a.HandleEvent(ev) {
			return
		}
	}
}

// HandleEvent processes a tcell event and returns false if the host should exit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleCommand(CommandFor(ev))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleCommand(cmd Command) bool {
	switch cmd.Action {
	case ActionQuit:
		return false
	case ActionMove:
		s := a.controller.Current()
		if _, err := a.controller.Move(s.ID(), cmd.Direction); err != nil {
			a.showError(err)
		}
	case ActionDifficulty:
		if _, err := a.controller.Setup(cmd.Difficulty); err != nil {
			a.showError(err)
		}
	case ActionRestart:
		if _, err := a.controller.Restart(); err != nil {
			a.showError(err)
		}
	}
	return true
}

func (a *App) handleSessionEvent(e game.Event) {
	switch e.Type {
	case game.EventStarted, game.EventMoved:
		a.banner, a.bannerErr = "", false
	case game.EventSolved:
		a.banner, a.bannerErr = winMessage, false
	}
}

func (a *App) showError(err error) {
	a.banner, a.bannerErr = err.Error(), true
}

// Draw renders the header, the maze and the help line.
func (a *App) Draw() {
	a.screen.Clear()
	s := a.controller.Current()

	header := fmt.Sprintf("difficulty: %s  mode: %s  moves: %d", s.Difficulty(), s.Mode(), s.Moves())
	a.drawText(0, 0, tcell.StyleDefault, header)
	if a.bannerErr {
		a.drawText(0, 1, errorStyle, a.banner)
	} else {
		a.drawText(0, 1, bannerStyle, a.banner)
	}

	g := s.Grid()
	for _, c := range g.Cells() {
		a.drawCell(c)
	}

	start, exit := cellOrigin(s.Start()), cellOrigin(s.Exit())
	a.screen.SetContent(start.X, start.Y, ' ', nil, startStyle)
	a.screen.SetContent(exit.X, exit.Y, ' ', nil, exitStyle)

	player := cellOrigin(s.Player())
	_, _, style, _ := a.screen.GetContent(player.X, player.Y)
	a.screen.SetContent(player.X, player.Y, '@', nil, style.Foreground(tcell.ColorYellow).Bold(true))

	a.drawText(0, headerRows+2*g.Rows()+1, tcell.StyleDefault, helpLine)
	a.screen.Show()
}

// drawCell draws the corners and walls surrounding c. Shared walls are drawn twice
// and agree because walls are symmetric.
func (a *App) drawCell(c maze.Cell) {
	o := cellOrigin(c.Position())
	for _, dx := range []int{-1, 1} {
		for _, dy := range []int{-1, 1} {
			a.screen.SetContent(o.X+dx, o.Y+dy, ' ', nil, wallStyle)
		}
	}
	for _, d := range maze.Directions {
		if !c.HasWall(d) {
			continue
		}
		delta := d.Delta()
		a.screen.SetContent(o.X+delta.X, o.Y+delta.Y, ' ', nil, wallStyle)
	}
}

func (a *App) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

// cellOrigin maps a maze position to the screen coordinates of its center.
func cellOrigin(p maze.Position) maze.Position {
	return maze.Position{X: 2*p.X + 1, Y: headerRows + 2*p.Y + 1}
}
