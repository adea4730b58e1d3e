package controller

import (
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/model"
	"github.com/benbeisheim/greedychess-backend/internal/service"
)

type GameController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewGameController(gameService *service.GameService, logger *log.Logger) *GameController {
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	Mode string `json:"mode"`
	FEN  string `json:"fen"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, color, err := gc.gameService.CreateGame(playerID, req.Mode, req.FEN)
	if err != nil {
		gc.logger.Warn("create game failed", "player", playerID, "err", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"gameId":  gameID,
		"color":   color,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameView(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

// LegalMoves answers GET /:gameId/moves?row=&col=.
func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	sq := chess.Square{Row: c.QueryInt("row", -1), Col: c.QueryInt("col", -1)}

	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), sq)
	if err != nil {
		return respondError(c, err)
	}
	if moves == nil {
		moves = []chess.Square{}
	}
	return c.JSON(fiber.Map{
		"square": sq,
		"moves":  moves,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move model.WSMove
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move",
		})
	}

	view, err := gc.gameService.HandleMove(gameID, playerID, move)
	if err != nil {
		gc.logger.Debug("move rejected", "game", gameID, "player", playerID, "move", move.Move(), "err", err)
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) Suggest(c *fiber.Ctx) error {
	m, err := gc.gameService.Suggest(c.Params("gameId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"move": m,
	})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	view, err := gc.gameService.Reset(c.Params("gameId"), playerID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": service.MatchStatusQueued,
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	gc.gameService.LeaveMatchmaking(playerID)
	return c.JSON(gc.gameService.MatchmakingStatus(playerID))
}

func (gc *GameController) MatchmakingStatus(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)
	return c.JSON(gc.gameService.MatchmakingStatus(playerID))
}
