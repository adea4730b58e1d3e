package service

import (
	"fmt"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/model"
	"github.com/benbeisheim/greedychess-backend/internal/ws"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame starts a session in the given mode, optionally from a FEN
// position, and seats the creator.
func (gs *GameService) CreateGame(playerID, mode, fen string) (string, model.PlayerColor, error) {
	m, err := model.ParseMode(mode)
	if err != nil {
		return "", "", err
	}

	var start *chess.GameState
	if fen != "" {
		s, err := chess.ParseFEN(fen)
		if err != nil {
			return "", "", err
		}
		start = &s
	}

	game, err := gs.gameManager.CreateGame(m, start)
	if err != nil {
		return "", "", fmt.Errorf("failed to create game: %w", err)
	}
	color, err := game.AddPlayer(playerID)
	if err != nil {
		return "", "", err
	}
	return game.ID, color, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) LeaveMatchmaking(playerID string) bool {
	return gs.gameManager.LeaveMatchmaking(playerID)
}

func (gs *GameService) MatchmakingStatus(playerID string) MatchResult {
	return gs.gameManager.MatchmakingStatus(playerID)
}

func (gs *GameService) GetGameView(gameID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gs *GameService) LegalMoves(gameID string, sq chess.Square) ([]chess.Square, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.LegalMoves(sq)
}

func (gs *GameService) HandleMove(gameID string, playerID string, move model.WSMove) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	if err := game.MakeMove(playerID, move.Move()); err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

// Suggest returns the agent's choice for the side to move without playing it.
func (gs *GameService) Suggest(gameID string) (chess.Move, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return chess.Move{}, err
	}
	m, ok := game.Suggest(gs.gameManager.Agent())
	if !ok {
		return chess.Move{}, ErrNoMove
	}
	return m, nil
}

func (gs *GameService) Reset(gameID string, playerID string) (model.GameView, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	if err := game.Reset(playerID); err != nil {
		return model.GameView{}, err
	}
	return game.View(), nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

// SendError reports text to playerID's socket in gameID.
func (gs *GameService) SendError(gameID string, playerID string, text string) error {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.SendTo(playerID, ws.ErrorMessage(text))
}
