package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/platform/session"
)

func SignOutHandler(sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessions.Clear(c)
		return c.JSON(fiber.Map{"message": "Sign out successful."})
	}
}
