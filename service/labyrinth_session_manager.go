package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	dmn "github.com/beka-birhanu/mindful-labyrinth/domain"
	"github.com/beka-birhanu/mindful-labyrinth/game"
	"github.com/beka-birhanu/mindful-labyrinth/game/maze"
	"github.com/beka-birhanu/mindful-labyrinth/service/i"
	"github.com/google/uuid"
)

const (
	baseMazeSize     = 15
	maxLevelMazeSize = 41
	minMazeSize      = 5
)

var (
	ErrNoSession         = errors.New("player has no labyrinth in progress")
	ErrPersistFailed     = errors.New("saving the completed labyrinth failed")
	ErrMissingDependency = errors.New("missing dependency")
)

var _ i.LabyrinthManager = &LabyrinthSessionManager{}

// session is the live game of one player.
type session struct {
	game      *game.Game
	persisted bool
	sync.Mutex
}

// LabyrinthSessionManager keeps one live labyrinth per player and records
// completed runs.
type LabyrinthSessionManager struct {
	sessions    map[uuid.UUID]*session // Live games indexed by player ID.
	pool        []maze.Quote
	quoteCount  int
	results     i.ResultRepo
	progress    i.ProgressRepo
	leaderboard i.Leaderboard
	logger      i.Logger
	sync.RWMutex
}

// Config holds the dependencies of a LabyrinthSessionManager.
type Config struct {
	Pool        []maze.Quote // Quote pool hidden in every labyrinth.
	QuoteCount  int          // Quotes per labyrinth, 0 places the whole pool.
	Results     i.ResultRepo
	Progress    i.ProgressRepo
	Leaderboard i.Leaderboard
	Logger      i.Logger
}

// NewLabyrinthSessionManager validates the configuration and returns a manager.
func NewLabyrinthSessionManager(c *Config) (*LabyrinthSessionManager, error) {
	if c == nil || c.Results == nil || c.Progress == nil || c.Leaderboard == nil || c.Logger == nil {
		return nil, ErrMissingDependency
	}
	if len(c.Pool) == 0 || c.QuoteCount < 0 || c.QuoteCount > len(c.Pool) {
		return nil, fmt.Errorf("%w: pool of %d quotes, %d per game", game.ErrPoolTooSmall, len(c.Pool), c.QuoteCount)
	}

	return &LabyrinthSessionManager{
		sessions:    make(map[uuid.UUID]*session),
		pool:        c.Pool,
		quoteCount:  c.QuoteCount,
		results:     c.Results,
		progress:    c.Progress,
		leaderboard: c.Leaderboard,
		logger:      c.Logger,
	}, nil
}

// SizeForLevel returns the maze side used for a player level.
// Each level adds two cells so the maze stays odd-sized.
func SizeForLevel(level int) int {
	level = max(level, 1)
	return min(baseMazeSize+2*(level-1), maxLevelMazeSize)
}

// NewGame starts a fresh labyrinth for the player, discarding any game in progress.
func (m *LabyrinthSessionManager) NewGame(ctx context.Context, playerID uuid.UUID, req i.NewGameRequest) (*game.Game, error) {
	width, height, err := m.dimensions(ctx, playerID, req)
	if err != nil {
		return nil, err
	}

	g, err := game.New(game.Config{
		Width:      width,
		Height:     height,
		Pool:       m.pool,
		QuoteCount: m.quoteCount,
		Seed:       req.Seed,
	})
	if err != nil {
		m.logger.Error(fmt.Sprintf("creating labyrinth %dx%d for player %s: %s", width, height, playerID, err))
		return nil, err
	}

	m.Lock()
	m.sessions[playerID] = &session{game: g}
	m.Unlock()

	m.logger.Info(fmt.Sprintf("started labyrinth %s (%dx%d, seed %d) for player %s", g.ID(), width, height, g.Seed(), playerID))
	return g, nil
}

// dimensions resolves the maze size of a request. Without explicit dimensions
// the size follows the player's level.
func (m *LabyrinthSessionManager) dimensions(ctx context.Context, playerID uuid.UUID, req i.NewGameRequest) (int, int, error) {
	width, height := req.Width, req.Height
	if width == 0 && height == 0 {
		level, err := m.progress.Level(ctx, playerID, dmn.LabyrinthGameType)
		if err != nil {
			m.logger.Warning(fmt.Sprintf("reading level of player %s, using level 1: %s", playerID, err))
			level = 1
		}
		size := SizeForLevel(level)
		return size, size, nil
	}

	if width == 0 {
		width = height
	}
	if height == 0 {
		height = width
	}

	if min(width, height) < minMazeSize || max(width, height) > maze.MaxDimension {
		return 0, 0, fmt.Errorf("%w: size must be between %d and %d", maze.ErrInvalidDimension, minMazeSize, maze.MaxDimension)
	}
	return width, height, nil
}

// Move applies a move to the player's labyrinth.
// The move that completes the game also records the run.
func (m *LabyrinthSessionManager) Move(ctx context.Context, playerID uuid.UUID, d game.Direction) (i.MoveResult, error) {
	s, err := m.session(playerID)
	if err != nil {
		return i.MoveResult{}, err
	}

	s.Lock()
	defer s.Unlock()

	before := s.game.Player()
	events, err := s.game.Move(d)
	if err != nil {
		return i.MoveResult{}, err
	}

	result := i.MoveResult{
		Moved:  before != s.game.Player(),
		Events: events,
	}

	if !s.game.Completed() || s.persisted {
		return result, nil
	}

	summary, err := game.Summarize(s.game)
	if err != nil {
		return result, err
	}
	result.Summary = &summary
	s.persisted = true

	m.logger.Info(fmt.Sprintf("player %s completed labyrinth %s in %dms with %d/%d quotes", playerID, s.game.ID(), summary.ElapsedMs, summary.QuotesFound, summary.TotalQuotes))
	if err := m.record(ctx, playerID, s.game, summary); err != nil {
		return result, err
	}
	return result, nil
}

// record stores the result, advances the player's level and submits the time.
// Every step is attempted; failures are joined.
func (m *LabyrinthSessionManager) record(ctx context.Context, playerID uuid.UUID, g *game.Game, summary game.Summary) error {
	var errs []error

	result := &dmn.Result{
		ID:               uuid.New(),
		UserID:           playerID,
		GameID:           g.ID(),
		Width:            g.Width(),
		Height:           g.Height(),
		Seed:             g.Seed(),
		ElapsedMs:        summary.ElapsedMs,
		QuotesFound:      summary.QuotesFound,
		TotalQuotes:      summary.TotalQuotes,
		DiscoveryRate:    summary.DiscoveryRate,
		PerfectDiscovery: summary.PerfectDiscovery,
		CompletedAt:      g.CompletedAt(),
	}
	if err := m.results.Save(ctx, result); err != nil {
		m.logger.Error(fmt.Sprintf("saving result of labyrinth %s: %s", g.ID(), err))
		errs = append(errs, err)
	}

	if level, err := m.progress.Advance(ctx, playerID, dmn.LabyrinthGameType); err != nil {
		m.logger.Error(fmt.Sprintf("advancing level of player %s: %s", playerID, err))
		errs = append(errs, err)
	} else {
		m.logger.Debug(fmt.Sprintf("player %s reached level %d", playerID, level))
	}

	if _, err := m.leaderboard.Submit(ctx, g.Width(), g.Height(), playerID, summary.ElapsedMs); err != nil {
		m.logger.Error(fmt.Sprintf("submitting time of player %s: %s", playerID, err))
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrPersistFailed, errors.Join(errs...))
	}
	return nil
}

// Current returns the player's live labyrinth.
func (m *LabyrinthSessionManager) Current(playerID uuid.UUID) (*game.Game, error) {
	s, err := m.session(playerID)
	if err != nil {
		return nil, err
	}
	return s.game, nil
}

// End discards the player's labyrinth.
func (m *LabyrinthSessionManager) End(playerID uuid.UUID) error {
	m.Lock()
	defer m.Unlock()

	if _, ok := m.sessions[playerID]; !ok {
		return ErrNoSession
	}
	delete(m.sessions, playerID)
	m.logger.Info(fmt.Sprintf("ended labyrinth of player %s", playerID))
	return nil
}

// Results returns the player's completed runs, newest first.
func (m *LabyrinthSessionManager) Results(ctx context.Context, playerID uuid.UUID, limit int64) ([]*dmn.Result, error) {
	return m.results.ByUser(ctx, playerID, limit)
}

func (m *LabyrinthSessionManager) session(playerID uuid.UUID) (*session, error) {
	m.RLock()
	defer m.RUnlock()

	s, ok := m.sessions[playerID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}
