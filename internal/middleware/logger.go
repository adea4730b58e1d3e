package middleware

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs each request once it has been handled. Server errors
// log at error level, client errors at warn, the rest at debug.
func RequestLogger(logger *log.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if err != nil {
			status = fiber.StatusInternalServerError
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}

		keyvals := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start),
		}
		if id, ok := c.Locals("playerID").(string); ok {
			keyvals = append(keyvals, "player", id)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", append(keyvals, "err", err)...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", keyvals...)
		default:
			logger.Debug("request", keyvals...)
		}
		return err
	}
}
