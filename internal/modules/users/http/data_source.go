package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
	"authgw/internal/platform/session"
)

// SelectDataSourceHandler marks onboarding's data-source selection in the
// provider metadata and patches the flag into the current session without
// rebuilding the rest of the record.
func SelectDataSourceHandler(svc *auth.Service, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := session.FromCtx(c)

		if err := svc.SelectDataSource(c.Context(), rec.UserID); err != nil {
			de := domain.AsError(err)
			return c.Status(de.Status).JSON(fiber.Map{
				"error_code": de.Code,
				"message":    de.Message,
			})
		}

		if err := sessions.Patch(c, func(s *domain.Session) { s.HasSelectedDataSource = true }); err != nil {
			de := domain.ErrUnexpected
			return c.Status(de.Status).JSON(fiber.Map{
				"error_code": de.Code,
				"message":    de.Message,
			})
		}

		return c.JSON(fiber.Map{
			"success":                  true,
			"message":                  "Data source selection recorded",
			"has_selected_data_source": true,
		})
	}
}
