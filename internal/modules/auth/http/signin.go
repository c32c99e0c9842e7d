package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
	"authgw/internal/modules/auth/domain"
	"authgw/internal/platform/session"
)

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SignInHandler(svc *auth.Service, sessions *session.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req signInReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body.")
		}
		req.Email = normalizeEmail(req.Email)
		if req.Email == "" || req.Password == "" {
			return renderError(c, domain.ErrInvalidCredentials)
		}

		sess, err := svc.SignIn(c.Context(), req.Email, req.Password)
		if err != nil {
			return renderError(c, err)
		}
		if err := sessions.Issue(c, *sess); err != nil {
			return renderError(c, domain.ErrUnexpected)
		}

		return c.JSON(fiber.Map{
			"success": true,
			"message": "Sign in successful.",
			"user":    sess,
		})
	}
}
