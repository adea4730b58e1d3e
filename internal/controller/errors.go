package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/benbeisheim/greedychess-backend/internal/chess"
	"github.com/benbeisheim/greedychess-backend/internal/model"
	"github.com/benbeisheim/greedychess-backend/internal/service"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrGameFull),
		errors.Is(err, model.ErrAlreadyQueued):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotParticipant):
		return fiber.StatusForbidden
	case errors.Is(err, chess.ErrOutOfBounds),
		errors.Is(err, chess.ErrInvalidFEN),
		errors.Is(err, model.ErrInvalidMode):
		return fiber.StatusBadRequest
	case errors.Is(err, chess.ErrEmptySquare),
		errors.Is(err, chess.ErrNotYourTurn),
		errors.Is(err, chess.ErrIllegalMove),
		errors.Is(err, chess.ErrGameOver),
		errors.Is(err, service.ErrNoMove):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusFor(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}
