package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
)

type resendOTPReq struct {
	Email string `json:"email"`
}

func ResendOTPHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resendOTPReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body.")
		}
		req.Email = normalizeEmail(req.Email)
		if !validEmail(req.Email) {
			return badRequest(c, "A valid email is required.")
		}

		if err := svc.ResendOTC(c.Context(), req.Email); err != nil {
			return renderError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Verification code resent. Please check your email.",
		})
	}
}
