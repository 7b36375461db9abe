package mazeapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-maze/api/auth"
	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/input"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// MazeController exposes the session selection surface and move input of maze tables.
type MazeController struct {
	sessions i.MazeSessionManager
	logger   i.Logger
}

// NewMazeController initializes a MazeController.
func NewMazeController(sm i.MazeSessionManager, logger i.Logger) (*MazeController, error) {
	if sm == nil {
		return nil, errors.New("session manager is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &MazeController{
		sessions: sm,
		logger:   logger,
	}, nil
}

// RegisterPublic registers public routes.
func (mc *MazeController) RegisterPublic(route *gin.RouterGroup) {
	route.POST("/mazes", mc.open)
	route.GET("/leaderboard/:difficulty", mc.leaderboard)
}

// RegisterProtected registers routes that need a binding token.
func (mc *MazeController) RegisterProtected(route *gin.RouterGroup) {
	mazes := route.Group("/mazes/:ID")
	{
		mazes.GET("", mc.snapshot)
		mazes.DELETE("", mc.close)
		mazes.POST("/difficulty", mc.setDifficulty)
		mazes.POST("/restart", mc.restart)
		mazes.POST("/moves", mc.move)
		mazes.GET("/runs", mc.history)
		mazes.GET("/events", mc.events)
	}
}

// open creates a table and its first session.
func (mc *MazeController) open(ctx *gin.Context) {
	var request DifficultyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := game.ParseDifficulty(request.Difficulty)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := mc.sessions.Open(ctx, d)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, ticket)
}

// snapshot returns the render state of the active session.
func (mc *MazeController) snapshot(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	snap, err := mc.sessions.Snapshot(binding.PlayerID)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

// setDifficulty replaces the active session with one of the requested difficulty.
func (mc *MazeController) setDifficulty(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	var request DifficultyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := game.ParseDifficulty(request.Difficulty)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := mc.sessions.SetDifficulty(ctx, binding.PlayerID, d)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ticket)
}

// restart replaces the active session with a new one of the same difficulty.
func (mc *MazeController) restart(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	ticket, err := mc.sessions.Restart(ctx, binding.PlayerID)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, ticket)
}

// move resolves a direction, key or swipe request against the bound session.
func (mc *MazeController) move(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	var request input.Request
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := input.Resolve(request)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := mc.sessions.Move(ctx, binding, d)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, res)
}

// history lists the table's recent solved runs.
func (mc *MazeController) history(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	limit, err := parseLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	runs, err := mc.sessions.History(ctx, binding.PlayerID, limit)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"runs": runs})
}

// close drops the table.
func (mc *MazeController) close(ctx *gin.Context) {
	binding, ok := mc.authorizedBinding(ctx)
	if !ok {
		return
	}

	if err := mc.sessions.Close(binding.PlayerID); err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// leaderboard lists the fewest-move solves of a difficulty.
func (mc *MazeController) leaderboard(ctx *gin.Context) {
	d, err := game.ParseDifficulty(ctx.Param("difficulty"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	limit, err := parseLimit(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := mc.sessions.Leaderboard(ctx, d, limit)
	if err != nil {
		mc.abort(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, LeaderboardResponse{Difficulty: string(d), Entries: entries})
}

// authorizedBinding checks that the binding token belongs to the table in the path.
func (mc *MazeController) authorizedBinding(ctx *gin.Context) (i.Binding, bool) {
	id, err := uuid.Parse(ctx.Param("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
		return i.Binding{}, false
	}

	binding, ok := auth.BindingFrom(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return i.Binding{}, false
	}
	if binding.PlayerID != id {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "token belongs to another table"})
		return i.Binding{}, false
	}
	return binding, true
}

// abort maps service errors to HTTP responses.
func (mc *MazeController) abort(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrTableNotFound), errors.Is(err, game.ErrNoSession):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrStaleSession):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrUnknownDifficulty), errors.Is(err, maze.ErrInvalidDirection):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, i.ErrDisabled):
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		mc.logger.Error(err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected error"})
	}
}

func parseLimit(ctx *gin.Context) (int64, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return defaultLimit, nil
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, errors.New("limit must be between 1 and 100")
	}
	return limit, nil
}
