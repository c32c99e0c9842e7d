package http

import (
	"github.com/gofiber/fiber/v2"

	"authgw/internal/modules/auth"
)

// The body below is the response for every forgot-password request. It must
// stay byte-identical whether or not the account exists.
const forgotPasswordMessage = "If an account exists with this email, you will receive a verification code."

type forgotPasswordReq struct {
	Email string `json:"email"`
}

func ForgotPasswordHandler(svc *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req forgotPasswordReq
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Malformed request body.")
		}
		req.Email = normalizeEmail(req.Email)

		svc.ForgotPassword(c.Context(), req.Email)

		return c.JSON(fiber.Map{"message": forgotPasswordMessage})
	}
}
