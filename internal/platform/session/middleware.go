package session

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth/domain"
)

// RequireAuth rejects requests without a valid session and exposes the
// record to downstream handlers via FromCtx.
func (m *Manager) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, ok := m.Read(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error_code": "UNAUTHORIZED",
				"message":    "Not authenticated. Please sign in.",
			})
		}
		c.Locals(localsKey, rec)
		return c.Next()
	}
}

// FromCtx returns the session stored by RequireAuth, or nil.
func FromCtx(c *fiber.Ctx) *domain.Session {
	rec, _ := c.Locals(localsKey).(*domain.Session)
	return rec
}
