package gameapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/beka-birhanu/mindful-labyrinth/api/identity"
	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/beka-birhanu/mindful-labyrinth/game"
	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	logger "github.com/beka-birhanu/mindful-labyrinth/infrastruture/log"
	"github.com/beka-birhanu/mindful-labyrinth/service"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeManager struct {
	games   map[uuid.UUID]*game.Game
	lastReq i.NewGameRequest
	moveErr error
	results []*dmn.Result
}

func (f *fakeManager) NewGame(_ context.Context, playerID uuid.UUID, req i.NewGameRequest) (*game.Game, error) {
	f.lastReq = req
	width, height := req.Width, req.Height
	if width == 0 {
		width, height = 15, 15
	}
	seed := int64(7)
	if req.Seed != nil {
		seed = *req.Seed
	}
	g, err := game.New(game.Config{Width: width, Height: height, Pool: maze.DefaultPool(), Seed: &seed})
	if err != nil {
		return nil, err
	}
	f.games[playerID] = g
	return g, nil
}

func (f *fakeManager) Move(_ context.Context, playerID uuid.UUID, d game.Direction) (i.MoveResult, error) {
	g, ok := f.games[playerID]
	if !ok {
		return i.MoveResult{}, service.ErrNoSession
	}
	before := g.Player()
	events, err := g.Move(d)
	if err != nil {
		return i.MoveResult{}, err
	}
	return i.MoveResult{Moved: before != g.Player(), Events: events}, f.moveErr
}

func (f *fakeManager) Current(playerID uuid.UUID) (*game.Game, error) {
	g, ok := f.games[playerID]
	if !ok {
		return nil, service.ErrNoSession
	}
	return g, nil
}

func (f *fakeManager) End(playerID uuid.UUID) error {
	if _, ok := f.games[playerID]; !ok {
		return service.ErrNoSession
	}
	delete(f.games, playerID)
	return nil
}

func (f *fakeManager) Results(_ context.Context, _ uuid.UUID, limit int64) ([]*dmn.Result, error) {
	if int64(len(f.results)) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

type fakeLeaderboard struct {
	width, height int
	n             int64
	entries       []i.LeaderboardEntry
	rank          int64
	err           error
}

func (f *fakeLeaderboard) Submit(context.Context, int, int, uuid.UUID, int64) (bool, error) {
	return true, nil
}

func (f *fakeLeaderboard) Rank(_ context.Context, width, height int, _ uuid.UUID) (int64, error) {
	f.width, f.height = width, height
	return f.rank, f.err
}

func (f *fakeLeaderboard) Top(_ context.Context, width, height int, n int64) ([]i.LeaderboardEntry, error) {
	f.width, f.height, f.n = width, height, n
	return f.entries, f.err
}

type fixture struct {
	engine      *gin.Engine
	manager     *fakeManager
	leaderboard *fakeLeaderboard
	playerID    uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		manager:     &fakeManager{games: map[uuid.UUID]*game.Game{}},
		leaderboard: &fakeLeaderboard{},
		playerID:    uuid.New(),
	}
	controller, err := NewLabyrinthController(f.manager, f.leaderboard, logger.NewNop())
	require.NoError(t, err)

	f.engine = gin.New()
	public := f.engine.Group("/api/v1")
	controller.RegisterPublic(public)
	protected := f.engine.Group("/api/v1")
	protected.Use(func(c *gin.Context) {
		c.Set(identity.ContextPlayerID, f.playerID)
		c.Next()
	})
	controller.RegisterProtected(protected)
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func TestNewLabyrinthController(t *testing.T) {
	_, err := NewLabyrinthController(nil, &fakeLeaderboard{}, logger.NewNop())
	assert.ErrorIs(t, err, ErrMissingDependency)
}

func TestNewGameRoute(t *testing.T) {
	t.Run("level sized game without body", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games", nil)
		require.Equal(t, http.StatusCreated, w.Code)

		var response GameResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, 15, response.Width)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, response.Player)
		assert.Len(t, response.Rows, 15)
		assert.Equal(t, 8, response.TotalQuotes)
		assert.Equal(t, "in_progress", response.Status)
		assert.Nil(t, response.CompletedAt)
	})

	t.Run("explicit size and seed", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games", gin.H{"width": 9, "height": 11, "seed": 42})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, 9, f.manager.lastReq.Width)
		assert.Equal(t, 11, f.manager.lastReq.Height)
		require.NotNil(t, f.manager.lastReq.Seed)
		assert.Equal(t, int64(42), *f.manager.lastReq.Seed)
	})

	t.Run("construction errors are bad requests", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games", gin.H{"width": 3, "height": 3})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative size is rejected", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games", gin.H{"width": -1})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCurrentAndEndRoutes(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/v1/labyrinth/games/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/v1/labyrinth/games", nil).Code)

	w = f.do(http.MethodGet, "/api/v1/labyrinth/games/current", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/labyrinth/games/current", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = f.do(http.MethodDelete, "/api/v1/labyrinth/games/current", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMoveRoute(t *testing.T) {
	t.Run("no game", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{"direction": "up"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid direction", func(t *testing.T) {
		f := newFixture(t)
		f.do(http.MethodPost, "/api/v1/labyrinth/games", nil)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{"direction": "sideways"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		w = f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wall bump", func(t *testing.T) {
		f := newFixture(t)
		f.do(http.MethodPost, "/api/v1/labyrinth/games", nil)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{"direction": "ArrowUp"})
		require.Equal(t, http.StatusOK, w.Code)

		var response MoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.False(t, response.Moved)
		assert.Equal(t, maze.Position{X: 1, Y: 1}, response.Position)
		assert.Empty(t, response.Events)
		assert.False(t, response.Completed)
		assert.Empty(t, response.Warning)
	})

	t.Run("persistence failure keeps the move", func(t *testing.T) {
		f := newFixture(t)
		f.manager.moveErr = service.ErrPersistFailed
		f.do(http.MethodPost, "/api/v1/labyrinth/games", nil)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{"direction": "w"})
		require.Equal(t, http.StatusOK, w.Code)

		var response MoveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Warning)
	})

	t.Run("unexpected error", func(t *testing.T) {
		f := newFixture(t)
		f.manager.moveErr = errors.New("boom")
		f.do(http.MethodPost, "/api/v1/labyrinth/games", nil)
		w := f.do(http.MethodPost, "/api/v1/labyrinth/games/current/moves", gin.H{"direction": "w"})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "boom")
	})
}

func TestResultsRoute(t *testing.T) {
	f := newFixture(t)
	for n := 0; n < 3; n++ {
		f.manager.results = append(f.manager.results, &dmn.Result{ID: uuid.New(), UserID: f.playerID})
	}

	w := f.do(http.MethodGet, "/api/v1/labyrinth/results?limit=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var response struct {
		Results []dmn.Result `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Results, 2)

	w = f.do(http.MethodGet, "/api/v1/labyrinth/results?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeaderboardRoute(t *testing.T) {
	t.Run("square size", func(t *testing.T) {
		f := newFixture(t)
		player := uuid.New()
		f.leaderboard.entries = []i.LeaderboardEntry{{Rank: 1, PlayerID: player, ElapsedMs: 4200}}

		w := f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/15", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 15, f.leaderboard.width)
		assert.Equal(t, 15, f.leaderboard.height)
		assert.Equal(t, int64(defaultLeaderboardLimit), f.leaderboard.n)

		var response LeaderboardResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Entries, 1)
		assert.Equal(t, player, response.Entries[0].PlayerID)
		assert.Equal(t, int64(4200), response.Entries[0].ElapsedMs)
	})

	t.Run("rectangular size and capped limit", func(t *testing.T) {
		f := newFixture(t)
		w := f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/17x21?limit=1000", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 17, f.leaderboard.width)
		assert.Equal(t, 21, f.leaderboard.height)
		assert.Equal(t, int64(maxLeaderboardLimit), f.leaderboard.n)
	})

	t.Run("malformed size", func(t *testing.T) {
		f := newFixture(t)
		for _, size := range []string{"big", "15x", "0", "x15"} {
			w := f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/"+size, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, size)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.leaderboard.err = errors.New("redis down")
		w := f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/15", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestLeaderboardRankRoute(t *testing.T) {
	f := newFixture(t)
	f.leaderboard.rank = 3

	w := f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/21/me", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var response RankResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, RankResponse{Width: 21, Height: 21, Rank: 3}, response)

	w = f.do(http.MethodGet, "/api/v1/labyrinth/leaderboard/abc/me", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseSize(t *testing.T) {
	width, height, err := parseSize("21X15")
	require.NoError(t, err)
	assert.Equal(t, 21, width)
	assert.Equal(t, 15, height)
}
