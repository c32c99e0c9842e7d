package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
)

func VerifyResetOTPHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req verifyOTPReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body.")
		}
		req.Email = normalizeEmail(req.Email)
		req.OTP = strings.TrimSpace(req.OTP)
		if !validEmail(req.Email) {
			return badRequest(c, "A valid email is required.")
		}
		if len(req.OTP) != 6 {
			return renderError(c, domain.ErrInvalidCode)
		}

		if err := svc.VerifyResetOTC(c.Context(), req.Email, req.OTP); err != nil {
			return renderError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Verification code confirmed. You can now reset your password.",
		})
	}
}
