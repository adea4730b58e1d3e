package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

const PlayerIDHeader = "X-Player-ID"

// EnsurePlayerID stores the caller's player id in c.Locals("playerID"). The
// id comes from the X-Player-ID header, or the playerId query parameter for
// clients that cannot set headers (browser websockets). The id outlives the
// request as a seat, queue entry and map key, so it is copied out of the
// request buffer.
func EnsurePlayerID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Check if playerID is already set
		if c.Locals("playerID") != nil {
			return c.Next()
		}

		playerID := strings.TrimSpace(c.Get(PlayerIDHeader))
		if playerID == "" {
			playerID = strings.TrimSpace(c.Query("playerId"))
		}

		if playerID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Player ID is required. Please ensure client is properly initialized.",
			})
		}

		c.Locals("playerID", utils.CopyString(playerID))
		return c.Next()
	}
}
