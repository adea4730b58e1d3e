// service/game_manager.go
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/model"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrNoMove       = errors.New("no move available")
)

type MatchStatus string

const (
	MatchStatusIdle    MatchStatus = "idle"
	MatchStatusQueued  MatchStatus = "queued"
	MatchStatusMatched MatchStatus = "matched"
)

// MatchResult tells a player where matchmaking left them.
type MatchResult struct {
	Status MatchStatus       `json:"status"`
	GameID string            `json:"gameId,omitempty"`
	Color  model.PlayerColor `json:"color,omitempty"`
}

type ManagerOptions struct {
	Agent     model.Agent
	AgentSide chess.Side
	Logger    *log.Logger
	// NewID generates game ids. Defaults to random UUIDs.
	NewID func() string
}

type GameManager struct {
	games     map[string]*model.Game
	queue     *model.Queue
	matches   map[string]MatchResult // playerID -> last match
	agent     model.Agent
	agentSide chess.Side
	newID     func() string
	logger    *log.Logger
	mu        sync.RWMutex
}

func NewGameManager(opts ManagerOptions) *GameManager {
	if opts.Agent == nil {
		opts.Agent = chess.GreedyAgent{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}
	return &GameManager{
		games:     make(map[string]*model.Game),
		queue:     model.NewQueue(),
		matches:   make(map[string]MatchResult),
		agent:     opts.Agent,
		agentSide: opts.AgentSide,
		newID:     opts.NewID,
		logger:    opts.Logger,
	}
}

func (gm *GameManager) Agent() model.Agent {
	return gm.agent
}

// CreateGame registers a new session. start may be nil for the standard
// opening position.
func (gm *GameManager) CreateGame(mode model.Mode, start *chess.GameState) (*model.Game, error) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	return gm.createGame(mode, start)
}

func (gm *GameManager) createGame(mode model.Mode, start *chess.GameState) (*model.Game, error) {
	gameID := gm.newID()
	if _, exists := gm.games[gameID]; exists {
		return nil, errors.New("game already exists")
	}

	game, err := model.NewGame(gameID, model.GameOptions{
		Mode:      mode,
		Start:     start,
		Agent:     gm.agent,
		AgentSide: gm.agentSide,
		Logger:    gm.logger,
	})
	if err != nil {
		return nil, err
	}
	gm.games[gameID] = game
	gm.logger.Info("game created", "game", gameID, "mode", mode)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return game, nil
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

// JoinMatchmaking queues playerID. A previous match result is forgotten.
func (gm *GameManager) JoinMatchmaking(playerID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if err := gm.queue.AddPlayer(playerID); err != nil {
		return err
	}
	delete(gm.matches, playerID)
	gm.logger.Debug("player queued", "player", playerID, "waiting", gm.queue.Size())
	return nil
}

// LeaveMatchmaking takes playerID out of the queue and reports whether it was waiting.
func (gm *GameManager) LeaveMatchmaking(playerID string) bool {
	return gm.queue.RemovePlayer(playerID)
}

func (gm *GameManager) MatchmakingStatus(playerID string) MatchResult {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	if m, ok := gm.matches[playerID]; ok {
		return m
	}
	if gm.queue.Contains(playerID) {
		return MatchResult{Status: MatchStatusQueued}
	}
	return MatchResult{Status: MatchStatusIdle}
}

// RunMatchmaking pairs waiting players every interval until ctx is done.
func (gm *GameManager) RunMatchmaking(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			gm.logger.Debug("matchmaking stopped")
			return
		case <-ticker.C:
			gm.matchWaitingPlayers()
		}
	}
}

// matchWaitingPlayers starts a two-player game for each pair in the queue,
// oldest first, and returns how many games it created.
func (gm *GameManager) matchWaitingPlayers() int {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	created := 0
	for {
		first, second, ok := gm.queue.NextPair()
		if !ok {
			return created
		}

		game, err := gm.createGame(model.ModeTwoPlayer, nil)
		if err != nil {
			gm.logger.Error("failed to create matched game", "err", err)
			return created
		}
		for _, p := range []model.QueuedPlayer{first, second} {
			color, err := game.AddPlayer(p.PlayerID)
			if err != nil {
				gm.logger.Error("error adding player to game", "player", p.PlayerID, "err", err)
				continue
			}
			gm.matches[p.PlayerID] = MatchResult{
				Status: MatchStatusMatched,
				GameID: game.ID,
				Color:  color,
			}
		}
		gm.logger.Info("match found", "game", game.ID, "white", first.PlayerID, "black", second.PlayerID)
		created++
	}
}
