package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
	"authgw/internal/platform/session"
)

type verifyOTPReq struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

func VerifyOTPHandler(svc *auth.Service, sessions *session.Manager) fiber.Handler {
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

		sess, err := svc.VerifySignup(c.Context(), req.Email, req.OTP)
		if err != nil {
			return renderError(c, err)
		}
		if err := sessions.Issue(c, *sess); err != nil {
			return renderError(c, domain.ErrUnexpected)
		}

		return c.JSON(fiber.Map{
			"message": "Email verified successfully.",
			"user":    sess,
		})
	}
}
