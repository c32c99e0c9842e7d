package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/platform/session"
)

func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := session.FromCtx(c)
		return c.JSON(fiber.Map{
			"id":                       rec.UserID,
			"email":                    rec.Email,
			"name":                     rec.Name,
			"role":                     rec.Role,
			"department":               rec.Department,
			"has_selected_data_source": rec.HasSelectedDataSource,
			"last_login":               nil,
		})
	}
}
