package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
	"authgw/internal/platform/security"
)

type resetPasswordReq struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

func ResetPasswordHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req resetPasswordReq
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
		if violations := security.PasswordViolations(req.NewPassword); len(violations) > 0 {
			return renderViolations(c, violations)
		}

		if err := svc.ResetPassword(c.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
			return renderError(c, err)
		}

		return c.JSON(fiber.Map{
			"message": "Password reset successful. You can now sign in with your new password.",
		})
	}
}
