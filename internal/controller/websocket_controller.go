package controller

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gofiber/websocket/v2"

	"github.com/benbeisheim/greedychess-backend/internal/model"
	"github.com/benbeisheim/greedychess-backend/internal/service"
	"github.com/benbeisheim/greedychess-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *log.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *log.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := wsc.logger.With("game", gameID, "player", playerID)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn("failed to register connection", "err", err)
		if werr := c.WriteJSON(ws.ErrorMessage(err.Error())); werr != nil {
			logger.Debug("failed to send error", "err", werr)
		}
		closeMsg := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		if werr := c.WriteMessage(websocket.CloseMessage, closeMsg); werr != nil {
			logger.Debug("failed to send close frame", "err", werr)
		}
		if cerr := c.Close(); cerr != nil {
			logger.Debug("failed to close connection", "err", cerr)
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)
	logger.Debug("websocket connected")

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read error", "err", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("parse error", "err", err)
			wsc.sendError(gameID, playerID, "malformed message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Debug("handle error", "type", msg.Type, "err", err)
			wsc.sendError(gameID, playerID, err.Error())
		}
	}
}

// Handle different types of incoming messages. Successful changes reach
// every socket through the game's broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move model.WSMove
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("invalid move payload: %w", err)
		}
		_, err := wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.Reset(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(gameID, playerID, text string) {
	if err := wsc.gameService.SendError(gameID, playerID, text); err != nil {
		wsc.logger.Warn("failed to send error", "game", gameID, "player", playerID, "err", err)
	}
}
