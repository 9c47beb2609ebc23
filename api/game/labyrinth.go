package gameapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/beka-birhanu/mindful-labyrinth/api/identity"
	"github.com/beka-birhanu/mindful-labyrinth/game"
	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/beka-birhanu/mindful-labyrinth/service"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/gin-gonic/gin"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	defaultResultsLimit     = 20
	maxResultsLimit         = 100
)

var ErrMissingDependency = errors.New("missing dependency")

// LabyrinthController serves the labyrinth of the authenticated player and
// the public leaderboards.
type LabyrinthController struct {
	manager     i.LabyrinthManager
	leaderboard i.Leaderboard
	logger      i.Logger
}

// NewLabyrinthController initializes a LabyrinthController.
func NewLabyrinthController(m i.LabyrinthManager, l i.Leaderboard, logger i.Logger) (*LabyrinthController, error) {
	if m == nil || l == nil || logger == nil {
		return nil, ErrMissingDependency
	}
	return &LabyrinthController{
		manager:     m,
		leaderboard: l,
		logger:      logger,
	}, nil
}

// RegisterPublic registers public routes.
func (lc *LabyrinthController) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/labyrinth/leaderboard/:size", lc.leaderboardTop)
}

// RegisterProtected registers protected routes.
func (lc *LabyrinthController) RegisterProtected(route *gin.RouterGroup) {
	labyrinth := route.Group("/labyrinth")
	{
		labyrinth.POST("/games", lc.newGame)
		labyrinth.GET("/games/current", lc.current)
		labyrinth.POST("/games/current/moves", lc.move)
		labyrinth.DELETE("/games/current", lc.end)
		labyrinth.GET("/results", lc.results)
		labyrinth.GET("/leaderboard/:size/me", lc.leaderboardRank)
	}
}

// newGame starts a labyrinth for the caller.
func (lc *LabyrinthController) newGame(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request NewGameRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	g, err := lc.manager.NewGame(ctx, playerID, i.NewGameRequest{
		Width:  request.Width,
		Height: request.Height,
		Seed:   request.Seed,
	})
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newGameResponse(g))
}

// current returns the caller's labyrinth.
func (lc *LabyrinthController) current(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	g, err := lc.manager.Current(playerID)
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newGameResponse(g))
}

// move applies one step to the caller's labyrinth.
func (lc *LabyrinthController) move(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	direction, err := game.ParseDirection(request.Direction)
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	result, err := lc.manager.Move(ctx, playerID, direction)
	if err != nil && !errors.Is(err, service.ErrPersistFailed) {
		lc.writeError(ctx, err)
		return
	}

	g, currentErr := lc.manager.Current(playerID)
	if currentErr != nil {
		lc.writeError(ctx, currentErr)
		return
	}

	response := &MoveResponse{
		Moved:     result.Moved,
		Position:  g.Player(),
		Events:    newEventResponses(result.Events),
		Completed: g.Completed(),
		Summary:   result.Summary,
	}
	if err != nil {
		response.Warning = "the run is complete but could not be saved"
	}

	ctx.JSON(http.StatusOK, response)
}

// end discards the caller's labyrinth.
func (lc *LabyrinthController) end(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	if err := lc.manager.End(playerID); err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// results lists the caller's completed runs.
func (lc *LabyrinthController) results(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	limit, err := queryLimit(ctx, defaultResultsLimit, maxResultsLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := lc.manager.Results(ctx, playerID, limit)
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results})
}

// leaderboardTop lists the fastest players on a maze size.
func (lc *LabyrinthController) leaderboardTop(ctx *gin.Context) {
	width, height, err := parseSize(ctx.Param("size"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	limit, err := queryLimit(ctx, defaultLeaderboardLimit, maxLeaderboardLimit)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := lc.leaderboard.Top(ctx, width, height, limit)
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newLeaderboardResponse(width, height, entries))
}

// leaderboardRank returns the caller's rank on a maze size.
func (lc *LabyrinthController) leaderboardRank(ctx *gin.Context) {
	playerID, ok := identity.PlayerID(ctx)
	if !ok {
		ctx.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	width, height, err := parseSize(ctx.Param("size"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rank, err := lc.leaderboard.Rank(ctx, width, height, playerID)
	if err != nil {
		lc.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &RankResponse{Width: width, Height: height, Rank: rank})
}

// writeError maps service errors to HTTP responses.
func (lc *LabyrinthController) writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSession):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrInvalidDirection):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, maze.ErrMazeGenerationFailed),
		errors.Is(err, maze.ErrInsufficientPathCells),
		errors.Is(err, game.ErrPoolTooSmall):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "could not build the labyrinth, try another size: " + err.Error()})
	default:
		lc.logger.Error("request " + ctx.Request.Method + " " + ctx.FullPath() + ": " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
	}
}

// parseSize accepts "N" for a square maze or "WxH".
func parseSize(raw string) (int, int, error) {
	w, h, found := strings.Cut(strings.ToLower(raw), "x")
	width, err := strconv.Atoi(w)
	if err != nil || width <= 0 {
		return 0, 0, errors.New("invalid maze size: " + raw)
	}
	if !found {
		return width, width, nil
	}

	height, err := strconv.Atoi(h)
	if err != nil || height <= 0 {
		return 0, 0, errors.New("invalid maze size: " + raw)
	}
	return width, height, nil
}

func queryLimit(ctx *gin.Context, def, maxLimit int64) (int64, error) {
	raw := ctx.Query("limit")
	if raw == "" {
		return def, nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return 0, errors.New("invalid limit: " + raw)
	}
	return min(limit, maxLimit), nil
}
